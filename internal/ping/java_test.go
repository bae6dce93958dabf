package ping

import (
	"bufio"
	"context"
	"mcstatus/internal/models"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveJava answers one Server List Ping with status on a loopback port.
func serveJava(t *testing.T, status string) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)

		// handshake, then status request
		for i := 0; i < 2; i++ {
			if _, _, err := readPacket(r); err != nil {
				return
			}
		}
		if _, err := conn.Write(framePacket(0x00, appendString(nil, status))); err != nil {
			return
		}
		id, body, err := readPacket(r)
		if err != nil || id != 0x01 {
			return
		}
		_, _ = conn.Write(framePacket(0x01, body))
	}()

	return ln.Addr().String()
}

type fakeSRV struct {
	target string
	port   uint16
	asked  []string
}

func (f *fakeSRV) LookupMinecraft(_ context.Context, host string) (string, uint16, bool) {
	f.asked = append(f.asked, host)
	if f.target == "" {
		return "", 0, false
	}
	return f.target, f.port, true
}

const javaStatusJSON = `{
	"version": {"name": "Paper 1.20.4", "protocol": 765},
	"players": {"max": 100, "online": 7, "sample": [{"name": "Notch", "id": "069a79f4-44e9-4726-a5be-fca90e38aaf5"}]},
	"description": {"text": "Hello ", "extra": [{"text": "world"}, "!"]},
	"favicon": "data:image/png;base64,iVBORw0KGgo="
}`

func TestJavaProbe_Status(t *testing.T) {
	addr := serveJava(t, javaStatusJSON)

	info, err := NewJavaProbe(nil).Probe(context.Background(), addr, 2*time.Second)

	require.NoError(t, err)
	assert.Equal(t, models.ProtocolJava, info.Protocol)
	assert.Equal(t, "Paper 1.20.4", info.Version.Name)
	require.NotNil(t, info.Version.Protocol)
	assert.Equal(t, int64(765), *info.Version.Protocol)
	assert.Equal(t, int64(7), info.Players.Online)
	assert.Equal(t, int64(100), info.Players.Max)
	assert.Equal(t, []models.Player{{Name: "Notch", ID: "069a79f4-44e9-4726-a5be-fca90e38aaf5"}}, info.Players.Sample)
	assert.Equal(t, "Hello world!", info.Description)
	require.NotNil(t, info.Favicon)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgo=", *info.Favicon)
}

func TestJavaProbe_PlainDescriptionWithoutFavicon(t *testing.T) {
	addr := serveJava(t, `{"version":{"name":"1.8","protocol":47},"players":{"max":20,"online":0},"description":"A Minecraft Server"}`)

	info, err := NewJavaProbe(nil).Probe(context.Background(), addr, 2*time.Second)

	require.NoError(t, err)
	assert.Equal(t, "A Minecraft Server", info.Description)
	assert.Nil(t, info.Favicon)
	assert.Empty(t, info.Players.Sample)
}

func TestJavaProbe_UsesSRVWithoutExplicitPort(t *testing.T) {
	addr := serveJava(t, `{"players":{"max":1,"online":1},"description":""}`)
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	srv := &fakeSRV{target: host, port: uint16(port)}

	info, err := NewJavaProbe(srv).Probe(context.Background(), "play.example.test", 2*time.Second)

	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Players.Online)
	assert.Equal(t, []string{"play.example.test"}, srv.asked)
}

func TestJavaProbe_ExplicitPortSkipsSRV(t *testing.T) {
	addr := serveJava(t, `{"players":{"max":1,"online":0},"description":""}`)
	srv := &fakeSRV{target: "unused.invalid", port: 1}

	_, err := NewJavaProbe(srv).Probe(context.Background(), addr, 2*time.Second)

	require.NoError(t, err)
	assert.Empty(t, srv.asked)
}

func TestJavaProbe_MalformedStatus(t *testing.T) {
	addr := serveJava(t, `this is not json`)

	_, err := NewJavaProbe(nil).Probe(context.Background(), addr, 2*time.Second)

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestJavaProbe_ServerClosesEarly(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		r := bufio.NewReader(conn)
		for i := 0; i < 2; i++ {
			if _, _, err := readPacket(r); err != nil {
				break
			}
		}
		conn.Close()
	}()

	_, err = NewJavaProbe(nil).Probe(context.Background(), ln.Addr().String(), 2*time.Second)

	assert.ErrorIs(t, err, ErrMalformed)
}

func TestJavaProbe_ConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	ln.Close()

	_, err = NewJavaProbe(nil).Probe(context.Background(), addr, 2*time.Second)

	assert.ErrorIs(t, err, ErrIO)
}

func TestJavaProbe_SilentServerTimesOut(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			defer conn.Close()
			time.Sleep(time.Second)
		}
	}()

	_, err = NewJavaProbe(nil).Probe(context.Background(), ln.Addr().String(), 100*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
}

func TestJavaProbe_InvalidAddress(t *testing.T) {
	_, err := NewJavaProbe(nil).Probe(context.Background(), "host:notaport", time.Second)

	assert.ErrorIs(t, err, ErrDNSLookup)
}

// silentJava accepts connections and never answers them.
func silentJava(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	done := make(chan struct{})
	t.Cleanup(func() {
		close(done)
		ln.Close()
	})
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func() {
				<-done
				conn.Close()
			}()
		}
	}()
	return ln.Addr().String()
}

func TestJavaProbe_CancelInterruptsExchange(t *testing.T) {
	addr := silentJava(t)
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err := NewJavaProbe(nil).Probe(ctx, addr, 5*time.Second)

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
}
