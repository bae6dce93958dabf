package models

// ServerStatus is the outcome of one status resolution. It is one of
// *OnlineStatus, *OfflineStatus or *UnreachableStatus.
type ServerStatus interface {
	isServerStatus()
	String() string
}

// OnlineStatus means the server answered a live ping.
type OnlineStatus struct {
	Info      ServerInfo
	Favicon   Favicon
	WeekStats WeekStats
}

// OfflineStatus means the live ping failed but the server answered at some
// point before, so cached data is returned.
type OfflineStatus struct {
	Favicon   Favicon
	WeekStats WeekStats
}

// UnreachableStatus means the live ping failed and nothing was ever cached for
// the server. It is also the catch-all for faults during resolution.
type UnreachableStatus struct {
	Err error
}

func (*OnlineStatus) isServerStatus()      {}
func (*OfflineStatus) isServerStatus()     {}
func (*UnreachableStatus) isServerStatus() {}

func (*OnlineStatus) String() string      { return "Online" }
func (*OfflineStatus) String() string     { return "Offline" }
func (*UnreachableStatus) String() string { return "Unreachable" }

// Message is the human readable error text for the caller.
func (u *UnreachableStatus) Message() string {
	if u.Err == nil {
		return "failed to ping server"
	}
	return "failed to ping server: " + u.Err.Error()
}
