package models

import (
	"fmt"
	"strings"
)

// ProtocolType selects which wire protocol is used for a ping.
type ProtocolType int

const (
	// ProtocolJava pings using the Java Server List Ping only.
	ProtocolJava ProtocolType = iota
	// ProtocolBedrock pings using the Bedrock unconnected ping only.
	ProtocolBedrock
	// ProtocolAuto races both protocols and accepts whichever answers first.
	ProtocolAuto
)

func (p ProtocolType) String() string {
	switch p {
	case ProtocolJava:
		return "java"
	case ProtocolBedrock:
		return "bedrock"
	case ProtocolAuto:
		return "auto"
	default:
		return fmt.Sprintf("protocol(%d)", int(p))
	}
}

// Title is the capitalised name, used as identicon seed prefix.
func (p ProtocolType) Title() string {
	switch p {
	case ProtocolJava:
		return "Java"
	case ProtocolBedrock:
		return "Bedrock"
	case ProtocolAuto:
		return "Auto"
	default:
		return p.String()
	}
}

func (p ProtocolType) Valid() bool {
	return p >= ProtocolJava && p <= ProtocolAuto
}

func (p ProtocolType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("unknown protocol type %d", int(p))
	}
	return []byte(p.String()), nil
}

func (p *ProtocolType) UnmarshalText(text []byte) error {
	parsed, err := ParseProtocolType(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// ParseProtocolType accepts "java", "bedrock" or "auto" in any case.
// An empty string means auto.
func ParseProtocolType(s string) (ProtocolType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "java":
		return ProtocolJava, nil
	case "bedrock":
		return ProtocolBedrock, nil
	case "auto", "":
		return ProtocolAuto, nil
	default:
		return ProtocolAuto, fmt.Errorf("unknown protocol type %q", s)
	}
}
