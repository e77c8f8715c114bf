package network

import (
	"context"
	"encoding/binary"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatefield/gatefield/internal/dispatch"
	"github.com/gatefield/gatefield/internal/protocol"
)

// acceptOne listens on a loopback port and hands the first accepted
// connection to the returned channel.
func acceptOne(t *testing.T) (uint16, <-chan net.Conn) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	ch := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		ch <- conn
	}()
	return uint16(ln.Addr().(*net.TCPAddr).Port), ch
}

func connectTransport(t *testing.T, opts Options) (*Transport, net.Conn) {
	t.Helper()

	port, accepted := acceptOne(t)
	tr := NewTransport(opts)
	t.Cleanup(tr.Dispose)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, tr.Connect(ctx, "127.0.0.1", port))

	select {
	case conn := <-accepted:
		t.Cleanup(func() { conn.Close() })
		return tr, conn
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
		return nil, nil
	}
}

func waitDone(t *testing.T, tr *Transport) {
	t.Helper()
	select {
	case <-tr.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("read loop did not exit")
	}
}

func TestTransportReceivesFramesInOrder(t *testing.T) {
	tr, server := connectTransport(t, Options{Role: "field"})

	_, err := server.Write(protocol.Encode(&protocol.Appear{EntityID: 1}))
	require.NoError(t, err)
	_, err = server.Write(protocol.Encode(&protocol.Disappear{EntityID: 1}))
	require.NoError(t, err)

	var got []dispatch.Message
	require.Eventually(t, func() bool {
		tr.DequeueAll(func(m dispatch.Message) { got = append(got, m) })
		return len(got) >= 2
	}, 2*time.Second, 10*time.Millisecond)

	require.Len(t, got, 2)
	assert.Equal(t, protocol.KindAppear, got[0].Kind)
	assert.Equal(t, protocol.KindDisappear, got[1].Kind)
	assert.False(t, got[0].Disconnect)
}

func TestTransportSend(t *testing.T) {
	tr, server := connectTransport(t, Options{Role: "field"})

	require.NoError(t, tr.Send(protocol.Encode(&protocol.Login{Username: "abc", Password: "p1"})))

	server.SetReadDeadline(time.Now().Add(2 * time.Second))
	frame, err := protocol.ReadFrame(server, protocol.MaxFrameSize)
	require.NoError(t, err)
	assert.Equal(t, protocol.KindLogin, frame.Kind)
	assert.Equal(t, []byte{3, 'a', 'b', 'c', 2, 'p', '1'}, frame.Payload)
}

func TestServerCloseQueuesOneDisconnect(t *testing.T) {
	tr, server := connectTransport(t, Options{Role: "field"})

	_, err := server.Write(protocol.Encode(&protocol.ServerTime{UnixMs: 5}))
	require.NoError(t, err)
	server.Close()
	waitDone(t, tr)

	var markers, data int
	tr.DequeueAll(func(m dispatch.Message) {
		if m.Disconnect {
			markers++
		} else {
			data++
		}
	})
	assert.Equal(t, 1, data)
	assert.Equal(t, 1, markers)
}

func TestDisposeIsIdempotentAndSilent(t *testing.T) {
	tr, _ := connectTransport(t, Options{Role: "gate"})

	tr.Dispose()
	tr.Dispose()
	waitDone(t, tr)

	assert.ErrorIs(t, tr.Send(protocol.Build(protocol.KindGateRouteReq, nil)), ErrDisposed)
	assert.Equal(t, 0, tr.DequeueAll(func(dispatch.Message) {}))
}

func TestConnectFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	ln.Close()

	tr := NewTransport(Options{Role: "gate", DialTimeout: time.Second})
	err = tr.Connect(context.Background(), "127.0.0.1", port)
	require.Error(t, err)
	assert.ErrorIs(t, tr.Send([]byte{}), ErrNotConnected)
}

func TestOversizedFrameDropsConnection(t *testing.T) {
	tr, server := connectTransport(t, Options{Role: "field", MaxFrameSize: 64})

	header := make([]byte, protocol.HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], 9000)
	binary.LittleEndian.PutUint16(header[4:6], uint16(protocol.KindChatBroadcast))
	_, err := server.Write(header)
	require.NoError(t, err)
	waitDone(t, tr)

	var marker dispatch.Message
	tr.DequeueAll(func(m dispatch.Message) { marker = m })
	require.True(t, marker.Disconnect)
	assert.ErrorIs(t, marker.Err, protocol.ErrFrameTooLarge)
}

func TestQueueOverflowDropsConnection(t *testing.T) {
	tr, server := connectTransport(t, Options{Role: "field", QueueCapacity: 2})

	for i := 0; i < 5; i++ {
		_, err := server.Write(protocol.Encode(&protocol.Jump{}))
		if err != nil {
			break
		}
	}
	waitDone(t, tr)

	var got []dispatch.Message
	tr.DequeueAll(func(m dispatch.Message) { got = append(got, m) })
	require.Len(t, got, 3)
	assert.True(t, got[2].Disconnect)
	assert.ErrorIs(t, got[2].Err, dispatch.ErrQueueFull)
}
