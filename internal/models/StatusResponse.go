package models

// StatusResponse is the JSON shape of a ServerStatus for the API and the CLI.
type StatusResponse struct {
	Status    string      `json:"status"`
	Server    *ServerInfo `json:"server,omitempty"`
	Favicon   *Favicon    `json:"favicon,omitempty"`
	WeekStats *WeekStats  `json:"week_stats,omitempty"`
	Error     string      `json:"error,omitempty"`
}

func NewStatusResponse(status ServerStatus) StatusResponse {
	switch s := status.(type) {
	case *OnlineStatus:
		return StatusResponse{
			Status:    "online",
			Server:    &s.Info,
			Favicon:   &s.Favicon,
			WeekStats: &s.WeekStats,
		}
	case *OfflineStatus:
		return StatusResponse{
			Status:    "offline",
			Favicon:   &s.Favicon,
			WeekStats: &s.WeekStats,
		}
	case *UnreachableStatus:
		return StatusResponse{Status: "unreachable", Error: s.Message()}
	default:
		return StatusResponse{Status: "unreachable", Error: "failed to ping server"}
	}
}
