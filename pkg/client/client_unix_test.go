//go:build unix

package client

import (
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/lowkeylabs/presencectl/internal/protocol"
	"github.com/lowkeylabs/presencectl/internal/protocol/frame"
	"github.com/lowkeylabs/presencectl/internal/testutil/testlog"
	"github.com/lowkeylabs/presencectl/pkg/activity"
)

// fakePeer is a minimal stand-in for the Discord client: it accepts one
// connection on a candidate socket, answers the handshake, and records every
// frame received afterward.
type fakePeer struct {
	frames chan frame.Frame
}

func startFakePeer(t *testing.T, dir string, handshakeResponse []byte) *fakePeer {
	t.Helper()
	ln, err := net.Listen("unix", filepath.Join(dir, "discord-ipc-0"))
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })

	p := &fakePeer{frames: make(chan frame.Frame, 16)}
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		hs, err := frame.Read(conn)
		if err != nil || hs.Op != frame.OpHandshake {
			return
		}
		if err := frame.Write(conn, frame.Frame{Op: frame.OpHandshake, Payload: handshakeResponse}); err != nil {
			return
		}
		for {
			f, err := frame.Read(conn)
			if err != nil {
				close(p.frames)
				return
			}
			p.frames <- f
		}
	}()
	return p
}

func (p *fakePeer) next(t *testing.T) frame.Frame {
	t.Helper()
	select {
	case f, ok := <-p.frames:
		if !ok {
			t.Fatalf("peer connection closed early")
		}
		return f
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for frame")
	}
	return frame.Frame{}
}

func TestSessionEndToEnd(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	peer := startFakePeer(t, dir, []byte(`{"cmd":"DISPATCH","evt":"READY","data":{}}`))

	s, err := New("end-to-end-app")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.State() != StateReady {
		t.Fatalf("state after handshake: %s", s.State())
	}

	a := activity.New().
		SetDetails("integration").
		SetTimestamps(activity.Timestamps{Start: 1700000000})
	if err := s.SetActivity(a); err != nil {
		t.Fatalf("set activity: %v", err)
	}

	update := peer.next(t)
	if update.Op != frame.OpMessage {
		t.Fatalf("update opcode: %d", update.Op)
	}
	var cmd protocol.Command
	if err := json.Unmarshal(update.Payload, &cmd); err != nil {
		t.Fatalf("unmarshal update: %v", err)
	}
	if cmd.Cmd != protocol.CmdSetActivity || cmd.Nonce == "" {
		t.Fatalf("unexpected command: %+v", cmd)
	}

	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	closeFrame := peer.next(t)
	if closeFrame.Op != frame.OpClose || len(closeFrame.Payload) != 0 {
		t.Fatalf("unexpected close frame: %+v", closeFrame)
	}
}

func TestNewHandshakeRejectedEndToEnd(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", dir)
	startFakePeer(t, dir, []byte(`{"cmd":"DISPATCH","evt":"ERROR"}`))

	_, err := NewWithConfig(Config{ClientID: "end-to-end-app", HandshakeTimeout: 5 * time.Second})
	if !errors.Is(err, ErrHandshakeFailed) {
		t.Fatalf("expected ErrHandshakeFailed, got %v", err)
	}
}

func TestNewNoEndpoint(t *testing.T) {
	testlog.Start(t)
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	_, err := New("end-to-end-app")
	if !errors.Is(err, ErrConnectionNotFound) {
		t.Fatalf("expected ErrConnectionNotFound, got %v", err)
	}
}
