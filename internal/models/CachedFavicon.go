package models

import "strings"

const faviconDataPrefix = "data:image/png;base64,"

// CachedFavicon is the on-disk favicon record for one server identity.
type CachedFavicon struct {
	Favicon *string `json:"favicon"`
}

// NormalizeFavicon trims the media-type prefix so only the base64 payload remains.
func NormalizeFavicon(favicon string) string {
	for strings.HasPrefix(favicon, faviconDataPrefix) {
		favicon = favicon[len(faviconDataPrefix):]
	}
	return favicon
}

// NewCachedFavicon builds a record from a raw probe favicon.
func NewCachedFavicon(raw *string) CachedFavicon {
	if raw == nil {
		return CachedFavicon{}
	}
	normalized := NormalizeFavicon(*raw)
	return CachedFavicon{Favicon: &normalized}
}

type FaviconSource int

const (
	FaviconNone FaviconSource = iota
	FaviconServerProvided
	FaviconGenerated
)

func (s FaviconSource) String() string {
	switch s {
	case FaviconServerProvided:
		return "server_provided"
	case FaviconGenerated:
		return "generated"
	default:
		return "none"
	}
}

func (s FaviconSource) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Favicon is the icon handed back to the caller together with where it came from.
type Favicon struct {
	Source FaviconSource `json:"source"`
	Data   string        `json:"data,omitempty"`
}
