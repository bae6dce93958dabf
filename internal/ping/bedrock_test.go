package ping

import (
	"context"
	"mcstatus/internal/models"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serveBedrock answers every unconnected ping with serverID.
func serveBedrock(t *testing.T, serverID string) string {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { pc.Close() })

	go func() {
		buf := make([]byte, 1500)
		for {
			n, addr, err := pc.ReadFrom(buf)
			if err != nil {
				return
			}
			if n < 9 || buf[0] != idUnconnectedPing {
				continue
			}
			pong := []byte{idUnconnectedPong}
			pong = append(pong, buf[1:9]...)
			pong = appendInt64(pong, 0x1234)
			pong = append(pong, offlineMessageID...)
			pong = appendUint16(pong, uint16(len(serverID)))
			pong = append(pong, serverID...)
			_, _ = pc.WriteTo(pong, addr)
		}
	}()

	return pc.LocalAddr().String()
}

func TestBedrockProbe_Status(t *testing.T) {
	addr := serveBedrock(t, "MCPE;Dedicated Server;589;1.20.0;3;10;13253860892328930865;Bedrock level;Survival;1;19132;19133;")

	info, err := NewBedrockProbe().Probe(context.Background(), addr, 2*time.Second)

	require.NoError(t, err)
	assert.Equal(t, models.ProtocolBedrock, info.Protocol)
	assert.Equal(t, "1.20.0", info.Version.Name)
	require.NotNil(t, info.Version.Protocol)
	assert.Equal(t, int64(589), *info.Version.Protocol)
	assert.Equal(t, int64(3), info.Players.Online)
	assert.Equal(t, int64(10), info.Players.Max)
	assert.Equal(t, "motd1: Dedicated Server motd2: Bedrock level", info.Description)
	assert.Nil(t, info.Favicon)
}

func TestBedrockProbe_SilentServerTimesOut(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()

	start := time.Now()
	_, err = NewBedrockProbe().Probe(context.Background(), pc.LocalAddr().String(), 150*time.Millisecond)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestParseServerID(t *testing.T) {
	info, err := parseServerID("MCPE;Lobby;abc;1.19;x;40", 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), info.Latency)
	assert.Nil(t, info.Version.Protocol)
	assert.Zero(t, info.Players.Online)
	assert.Equal(t, int64(40), info.Players.Max)
	assert.Equal(t, "motd1: Lobby motd2: ", info.Description)

	_, err = parseServerID("MCPE;too;short", 0)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestParseUnconnectedPong_Rejects(t *testing.T) {
	_, err := parseUnconnectedPong([]byte{idUnconnectedPong, 0x00}, 0)
	assert.ErrorIs(t, err, ErrMalformed)

	pong := []byte{idUnconnectedPong}
	pong = appendInt64(pong, 1)
	pong = appendInt64(pong, 2)
	pong = append(pong, make([]byte, len(offlineMessageID))...)
	pong = appendUint16(pong, 0)
	_, err = parseUnconnectedPong(pong, 0)
	assert.ErrorIs(t, err, ErrMalformed)

	good := []byte{idUnconnectedPong}
	good = appendInt64(good, 1)
	good = appendInt64(good, 2)
	good = append(good, offlineMessageID...)
	good = appendUint16(good, 100)
	good = append(good, "MCPE;a;1;1;1;1"...)
	_, err = parseUnconnectedPong(good, 0)
	assert.ErrorIs(t, err, ErrMalformed, "declared length longer than payload")
}

func TestBedrockProbe_CancelInterruptsRead(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer pc.Close()
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	start := time.Now()
	_, err = NewBedrockProbe().Probe(ctx, pc.LocalAddr().String(), 5*time.Second)

	assert.Less(t, time.Since(start), time.Second)
	assert.ErrorIs(t, err, context.Canceled)
}
