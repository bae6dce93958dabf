package ping

import (
	"bufio"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"mcstatus/internal/models"
	"net"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const (
	defaultJavaPort = 25565
	// handshakeProtocol is sent when we only want the status; -1 is the
	// conventional "any version" value.
	handshakeProtocol = -1
	nextStateStatus   = 1
)

// JavaProbe implements the Server List Ping used by Java edition servers.
type JavaProbe struct {
	srv    SRVResolverInterface
	dialer net.Dialer
}

func NewJavaProbe(srv SRVResolverInterface) JavaProbeInterface {
	return &JavaProbe{srv: srv}
}

type javaStatus struct {
	Version struct {
		Name     string `json:"name"`
		Protocol int64  `json:"protocol"`
	} `json:"version"`
	Players struct {
		Max    int64 `json:"max"`
		Online int64 `json:"online"`
		Sample []struct {
			Name string `json:"name"`
			ID   string `json:"id"`
		} `json:"sample"`
	} `json:"players"`
	Description chatComponent `json:"description"`
	Favicon     *string       `json:"favicon"`
}

func (p *JavaProbe) Probe(ctx context.Context, address string, timeout time.Duration) (*models.ServerInfo, error) {
	host, port, explicit, err := splitAddress(address, defaultJavaPort)
	if err != nil {
		return nil, &ProbeError{Protocol: models.ProtocolJava, Kind: ErrDNSLookup, Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialHost, dialPort := host, port
	if !explicit && p.srv != nil {
		if target, srvPort, ok := p.srv.LookupMinecraft(ctx, host); ok {
			dialHost, dialPort = target, srvPort
		}
	}

	conn, err := p.dialer.DialContext(ctx, "tcp", net.JoinHostPort(dialHost, strconv.Itoa(int(dialPort))))
	if err != nil {
		return nil, classify(models.ProtocolJava, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() { _ = conn.SetDeadline(time.Now()) })
	defer stop()

	status, latency, err := javaExchange(conn, host, port)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, classify(models.ProtocolJava, ctxErr)
		}
		return nil, classify(models.ProtocolJava, err)
	}
	return status.toServerInfo(latency), nil
}

func javaExchange(conn net.Conn, host string, port uint16) (*javaStatus, uint64, error) {
	var handshake []byte
	handshake = appendVarInt(handshake, handshakeProtocol)
	handshake = appendString(handshake, host)
	handshake = appendUint16(handshake, port)
	handshake = appendVarInt(handshake, nextStateStatus)

	request := framePacket(0x00, handshake)
	request = append(request, framePacket(0x00, nil)...)
	if _, err := conn.Write(request); err != nil {
		return nil, 0, err
	}

	r := bufio.NewReader(conn)
	id, body, err := readPacket(r)
	if err != nil {
		return nil, 0, unexpected(err)
	}
	if id != 0x00 {
		return nil, 0, malformed(models.ProtocolJava, "unexpected packet id %#x", id)
	}

	br := &sliceReader{b: body}
	n, err := readVarInt(br)
	if err != nil || n < 0 || int(n) > len(body)-br.off {
		return nil, 0, malformed(models.ProtocolJava, "bad status string length")
	}
	raw := body[br.off : br.off+int(n)]

	var status javaStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		return nil, 0, malformed(models.ProtocolJava, "decoding status json: %s", err)
	}

	payload := time.Now().UnixMilli()
	start := time.Now()
	if _, err := conn.Write(framePacket(0x01, appendInt64(nil, payload))); err != nil {
		return nil, 0, err
	}
	id, body, err = readPacket(r)
	if err != nil {
		return nil, 0, unexpected(err)
	}
	if id != 0x01 || len(body) < 8 || int64(binary.BigEndian.Uint64(body)) != payload {
		return nil, 0, malformed(models.ProtocolJava, "bad pong")
	}

	return &status, uint64(time.Since(start).Milliseconds()), nil
}

// unexpected maps a short read to a malformed response; other errors pass through.
func unexpected(err error) error {
	switch {
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, errVarIntTooBig), errors.Is(err, errInvalidPacketLength):
		return malformed(models.ProtocolJava, "%s", err)
	default:
		return err
	}
}

func (s *javaStatus) toServerInfo(latency uint64) *models.ServerInfo {
	protocol := s.Version.Protocol
	info := &models.ServerInfo{
		Protocol: models.ProtocolJava,
		Latency:  latency,
		Version: models.Version{
			Name:     s.Version.Name,
			Protocol: &protocol,
		},
		Players: models.Players{
			Online: s.Players.Online,
			Max:    s.Players.Max,
		},
		Description: s.Description.Text(),
		Favicon:     s.Favicon,
	}
	for _, p := range s.Players.Sample {
		info.Players.Sample = append(info.Players.Sample, models.Player{Name: p.Name, ID: p.ID})
	}
	return info
}

// chatComponent is a description that is either a plain string or a chat
// object with nested extra components.
type chatComponent struct {
	Value string
	Extra []chatComponent
}

func (c *chatComponent) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		c.Value = s
		return nil
	}
	var list []chatComponent
	if err := json.Unmarshal(data, &list); err == nil {
		c.Extra = list
		return nil
	}
	var obj struct {
		Text  string          `json:"text"`
		Extra []chatComponent `json:"extra"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	c.Value = obj.Text
	c.Extra = obj.Extra
	return nil
}

func (c chatComponent) Text() string {
	var sb strings.Builder
	sb.WriteString(c.Value)
	for _, e := range c.Extra {
		sb.WriteString(e.Text())
	}
	return sb.String()
}
