package ping

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"mcstatus/internal/models"
	"net"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBedrockPort = 19132

	idUnconnectedPing = 0x01
	idUnconnectedPong = 0x1c
)

// offlineMessageID is the RakNet magic that marks offline messages.
var offlineMessageID = []byte{
	0x00, 0xff, 0xff, 0x00, 0xfe, 0xfe, 0xfe, 0xfe,
	0xfd, 0xfd, 0xfd, 0xfd, 0x12, 0x34, 0x56, 0x78,
}

// BedrockProbe implements the RakNet unconnected ping used by Bedrock servers.
type BedrockProbe struct {
	dialer net.Dialer
	// attempts is how many pings are sent before giving up, since UDP may drop them.
	attempts int
}

func NewBedrockProbe() BedrockProbeInterface {
	return &BedrockProbe{attempts: 3}
}

func (p *BedrockProbe) Probe(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error) {
	host, port, _, err := splitAddress(address, defaultBedrockPort)
	if err != nil {
		return nil, &ProbeError{Protocol: models.ProtocolBedrock, Kind: ErrDNSLookup, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	conn, err := p.dialer.DialContext(ctx, "udp", net.JoinHostPort(host, strconv.Itoa(int(port))))
	if err != nil {
		return nil, classify(models.ProtocolBedrock, err)
	}
	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	deadline, _ := ctx.Deadline()
	attempts := max(p.attempts, 1)
	perAttempt := time.Until(deadline) / time.Duration(attempts)

	var lastErr error
	for i := 0; i < attempts; i++ {
		attemptDeadline := time.Now().Add(perAttempt)
		if i == attempts-1 {
			attemptDeadline = deadline
		}
		_ = conn.SetDeadline(attemptDeadline)
		// Checked after SetDeadline so a cancel that already fired is not undone.
		if ctx.Err() != nil {
			break
		}

		info, err := bedrockExchange(conn)
		if err == nil {
			return info, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, classify(models.ProtocolBedrock, ctxErr)
	}
	return nil, classify(models.ProtocolBedrock, lastErr)
}

func bedrockExchange(conn net.Conn) (*models.ServerInfo, error) {
	sent := time.Now()
	packet := []byte{idUnconnectedPing}
	packet = appendInt64(packet, sent.UnixMilli())
	packet = append(packet, offlineMessageID...)
	packet = appendInt64(packet, rand.Int64())

	if _, err := conn.Write(packet); err != nil {
		return nil, err
	}

	buf := make([]byte, 1500)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, err
	}
	latency := uint64(time.Since(sent).Milliseconds())

	return parseUnconnectedPong(buf[:n], latency)
}

// parseUnconnectedPong decodes id, time, server guid, magic and the
// semicolon separated server id string.
func parseUnconnectedPong(b []byte, latency uint64) (*models.ServerInfo, error) {
	const header = 1 + 8 + 8 + 16 + 2
	if len(b) < header || b[0] != idUnconnectedPong {
		return nil, malformed(models.ProtocolBedrock, "not an unconnected pong")
	}
	if !bytes.Equal(b[17:33], offlineMessageID) {
		return nil, malformed(models.ProtocolBedrock, "bad offline message id")
	}
	length := int(binary.BigEndian.Uint16(b[33:35]))
	if len(b) < header+length {
		return nil, malformed(models.ProtocolBedrock, "truncated server id string")
	}
	return parseServerID(string(b[header:header+length]), latency)
}

// parseServerID reads "MCPE;motd1;protocol;version;online;max;guid;motd2;...".
func parseServerID(s string, latency uint64) (*models.ServerInfo, error) {
	fields := strings.Split(s, ";")
	if len(fields) < 6 {
		return nil, malformed(models.ProtocolBedrock, "server id has %d fields", len(fields))
	}

	info := &models.ServerInfo{
		Protocol: models.ProtocolBedrock,
		Latency:  latency,
		Version:  models.Version{Name: fields[3]},
	}
	if v, err := strconv.ParseInt(fields[2], 10, 64); err == nil {
		info.Version.Protocol = &v
	}
	info.Players.Online, _ = strconv.ParseInt(fields[4], 10, 64)
	info.Players.Max, _ = strconv.ParseInt(fields[5], 10, 64)

	motd2 := ""
	if len(fields) > 7 {
		motd2 = fields[7]
	}
	info.Description = fmt.Sprintf("motd1: %s motd2: %s", fields[1], motd2)
	return info, nil
}
