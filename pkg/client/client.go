// Package client owns one connection to the local Discord client: it
// locates the IPC endpoint, performs the version handshake, and exposes the
// presence update and close commands. A Session is built once per
// connection and is not reusable after Close or after any I/O failure.
package client

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lowkeylabs/presencectl/internal/protocol"
	"github.com/lowkeylabs/presencectl/internal/protocol/frame"
	"github.com/lowkeylabs/presencectl/internal/transport"
	"github.com/lowkeylabs/presencectl/pkg/activity"
)

var (
	ErrConnectionNotFound = transport.ErrConnectionNotFound
	ErrHandshakeFailed    = errors.New("client: handshake failed")
	ErrSessionClosed      = errors.New("client: session closed")
)

// State is the session lifecycle position. Errored and Closed are terminal.
type State int

const (
	StateDisconnected State = iota
	StateLocating
	StateConnected
	StateHandshaking
	StateReady
	StateClosed
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateLocating:
		return "locating"
	case StateConnected:
		return "connected"
	case StateHandshaking:
		return "handshaking"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	case StateErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// Config carries the programmatic session settings.
type Config struct {
	// ClientID is the Discord application id presented in the handshake.
	ClientID string

	// HandshakeTimeout bounds the handshake round trip on transports that
	// support deadlines (unix sockets do, the Windows pipe does not). Zero
	// means block until the peer responds, matching the wire protocol's
	// lack of any timeout semantics.
	HandshakeTimeout time.Duration
}

// Session owns exactly one transport. Operations serialize on an internal
// mutex; each call still blocks its caller for the duration of its I/O.
type Session struct {
	mu       sync.Mutex
	conn     transport.Transport
	state    State
	clientID string
}

// New locates the IPC endpoint and performs the handshake for clientID.
func New(clientID string) (*Session, error) {
	return NewWithConfig(Config{ClientID: clientID})
}

// NewWithConfig is New with explicit settings. On any failure the session
// is discarded; there is no partial-success state.
func NewWithConfig(cfg Config) (*Session, error) {
	s := &Session{state: StateLocating, clientID: cfg.ClientID}
	conn, err := transport.Connect()
	if err != nil {
		s.state = StateErrored
		return nil, err
	}
	s.conn = conn
	s.state = StateHandshaking
	if err := s.handshake(cfg); err != nil {
		_ = conn.Close()
		s.state = StateErrored
		return nil, err
	}
	s.state = StateReady
	log.Debug().Str("client_id", cfg.ClientID).Msg("discord ipc session ready")
	return s, nil
}

func (s *Session) handshake(cfg Config) error {
	payload, err := protocol.EncodeHandshake(s.clientID)
	if err != nil {
		return err
	}

	if cfg.HandshakeTimeout > 0 {
		if d, ok := s.conn.(interface{ SetDeadline(time.Time) error }); ok {
			_ = d.SetDeadline(time.Now().Add(cfg.HandshakeTimeout))
			defer d.SetDeadline(time.Time{})
		}
	}

	if err := frame.Write(s.conn, frame.Frame{Op: frame.OpHandshake, Payload: payload}); err != nil {
		return err
	}
	resp, err := frame.Read(s.conn)
	if err != nil {
		return err
	}
	ack, err := protocol.DecodeHandshakeAck(resp.Payload)
	if err != nil {
		return err
	}
	if !ack.Ready() {
		return fmt.Errorf("%w: cmd=%q evt=%q", ErrHandshakeFailed, ack.Cmd, ack.Evt)
	}
	return nil
}

// SetActivity publishes a presence update for the current process. The call
// is fire-and-forget: the peer's acknowledgement frame is not consumed and
// accumulates in the receive buffer over the session's lifetime.
func (s *Session) SetActivity(a activity.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return fmt.Errorf("%w: state=%s", ErrSessionClosed, s.state)
	}
	payload, err := protocol.EncodeSetActivity(os.Getpid(), a)
	if err != nil {
		return err
	}
	if err := frame.Write(s.conn, frame.Frame{Op: frame.OpMessage, Payload: payload}); err != nil {
		s.terminate(StateErrored)
		return err
	}
	log.Debug().Int("bytes", len(payload)).Msg("presence update written")
	return nil
}

// Close writes the close frame and releases the transport. A write failure
// is reported but the session terminates either way; every later operation
// fails with ErrSessionClosed.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateReady {
		return fmt.Errorf("%w: state=%s", ErrSessionClosed, s.state)
	}
	writeErr := frame.Write(s.conn, frame.Frame{Op: frame.OpClose})
	closeErr := s.conn.Close()
	s.state = StateClosed
	s.conn = nil
	if writeErr != nil {
		return writeErr
	}
	return closeErr
}

// State reports the current lifecycle position.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// terminate moves to a terminal state and drops the transport. Caller holds
// the mutex.
func (s *Session) terminate(state State) {
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
	s.state = state
}
