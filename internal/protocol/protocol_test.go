package protocol

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/lowkeylabs/presencectl/internal/testutil/testlog"
)

func TestEncodeHandshakeShape(t *testing.T) {
	testlog.Start(t)
	payload, err := EncodeHandshake("1192039170232383")
	if err != nil {
		t.Fatalf("encode handshake: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal handshake: %v", err)
	}
	if got["v"] != float64(1) {
		t.Fatalf("unexpected version: %v", got["v"])
	}
	if got["client_id"] != "1192039170232383" {
		t.Fatalf("unexpected client_id: %v", got["client_id"])
	}
}

func TestEncodeHandshakeRequiresClientID(t *testing.T) {
	testlog.Start(t)
	if _, err := EncodeHandshake("  "); !errors.Is(err, ErrClientIDRequired) {
		t.Fatalf("expected ErrClientIDRequired, got %v", err)
	}
}

func TestDecodeHandshakeAckReady(t *testing.T) {
	testlog.Start(t)
	ack, err := DecodeHandshakeAck([]byte(`{"cmd":"DISPATCH","evt":"READY","data":{"v":1}}`))
	if err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if !ack.Ready() {
		t.Fatalf("expected ready ack: %+v", ack)
	}
}

func TestDecodeHandshakeAckNotReady(t *testing.T) {
	testlog.Start(t)
	ack, err := DecodeHandshakeAck([]byte(`{"cmd":"DISPATCH","evt":"ERROR"}`))
	if err != nil {
		t.Fatalf("decode ack: %v", err)
	}
	if ack.Ready() {
		t.Fatalf("error dispatch must not be ready: %+v", ack)
	}
}

func TestDecodeHandshakeAckMalformed(t *testing.T) {
	testlog.Start(t)
	_, err := DecodeHandshakeAck([]byte(`{not json`))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	var syntaxErr *json.SyntaxError
	if !errors.As(err, &syntaxErr) {
		t.Fatalf("expected json syntax error, got %v", err)
	}
}

func TestEncodeSetActivityShape(t *testing.T) {
	testlog.Start(t)
	payload, err := EncodeSetActivity(4242, map[string]string{"details": "testing"})
	if err != nil {
		t.Fatalf("encode set activity: %v", err)
	}
	var got Command
	if err := json.Unmarshal(payload, &got); err != nil {
		t.Fatalf("unmarshal command: %v", err)
	}
	if got.Cmd != CmdSetActivity {
		t.Fatalf("unexpected cmd: %q", got.Cmd)
	}
	if got.Args.PID != 4242 {
		t.Fatalf("unexpected pid: %d", got.Args.PID)
	}
	if got.Nonce == "" {
		t.Fatalf("nonce must not be empty")
	}
}

func TestEncodeSetActivityFreshNonce(t *testing.T) {
	testlog.Start(t)
	first, err := EncodeSetActivity(1, nil)
	if err != nil {
		t.Fatalf("encode first: %v", err)
	}
	second, err := EncodeSetActivity(1, nil)
	if err != nil {
		t.Fatalf("encode second: %v", err)
	}
	var a, b Command
	if err := json.Unmarshal(first, &a); err != nil {
		t.Fatalf("unmarshal first: %v", err)
	}
	if err := json.Unmarshal(second, &b); err != nil {
		t.Fatalf("unmarshal second: %v", err)
	}
	if a.Nonce == b.Nonce {
		t.Fatalf("nonce reused across calls: %q", a.Nonce)
	}
}
