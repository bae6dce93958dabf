package models

// Player is one entry of the online player sample.
type Player struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

type Players struct {
	Online int64 `json:"online"`
	Max    int64 `json:"max"`
	// Sample is a preview of who is online, in the order the server sent it.
	// Servers often omit it or use it for advertising.
	Sample []Player `json:"sample,omitempty"`
}

type Version struct {
	// Name is free-form; servers put all kinds of text here.
	Name     string `json:"name"`
	Protocol *int64 `json:"protocol,omitempty"`
}

// ServerInfo is the parsed result of one successful ping.
type ServerInfo struct {
	Protocol    ProtocolType `json:"protocol"`
	Latency     uint64       `json:"latency"`
	Version     Version      `json:"version"`
	Players     Players      `json:"players"`
	Description string       `json:"description"`
	// Favicon is the raw favicon as sent by the server, usually a data URI.
	Favicon *string `json:"-"`
}
