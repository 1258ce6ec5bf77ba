package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Version is the IPC protocol version sent in the handshake.
const Version = 1

const (
	CmdDispatch = "DISPATCH"
	EvtReady    = "READY"
)

var ErrClientIDRequired = errors.New("protocol: client_id required")

// Handshake is the session-opening payload.
type Handshake struct {
	V        int    `json:"v"`
	ClientID string `json:"client_id"`
}

func (h Handshake) Validate() error {
	if strings.TrimSpace(h.ClientID) == "" {
		return ErrClientIDRequired
	}
	return nil
}

// EncodeHandshake builds the handshake payload for clientID.
func EncodeHandshake(clientID string) ([]byte, error) {
	h := Handshake{V: Version, ClientID: clientID}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode handshake: %w", err)
	}
	return payload, nil
}

// HandshakeAck is the peer's response to a handshake. The peer sends a
// larger DISPATCH event; only the fields that decide acceptance are decoded.
type HandshakeAck struct {
	Cmd string `json:"cmd"`
	Evt string `json:"evt"`
}

// Ready reports whether the ack is the READY dispatch that opens a session.
func (a HandshakeAck) Ready() bool {
	return a.Cmd == CmdDispatch && a.Evt == EvtReady
}

// DecodeHandshakeAck parses a handshake response payload.
func DecodeHandshakeAck(payload []byte) (HandshakeAck, error) {
	var ack HandshakeAck
	if err := json.Unmarshal(payload, &ack); err != nil {
		return HandshakeAck{}, fmt.Errorf("protocol: decode handshake ack: %w", err)
	}
	return ack, nil
}
