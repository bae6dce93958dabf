package ping

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// splitAddress splits "host[:port]". explicit reports whether a port was given.
func splitAddress(address string, defaultPort uint16) (host string, port uint16, explicit bool, err error) {
	h, p, splitErr := net.SplitHostPort(address)
	if splitErr != nil {
		host = strings.TrimSuffix(strings.TrimPrefix(address, "["), "]")
		if host == "" {
			return "", 0, false, fmt.Errorf("empty host in %q", address)
		}
		return host, defaultPort, false, nil
	}
	if h == "" {
		return "", 0, false, fmt.Errorf("empty host in %q", address)
	}
	n, convErr := strconv.ParseUint(p, 10, 16)
	if convErr != nil {
		return "", 0, false, fmt.Errorf("invalid port in %q: %w", address, convErr)
	}
	return h, uint16(n), true, nil
}
