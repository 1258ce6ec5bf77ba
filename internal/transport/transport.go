// Package transport discovers and connects the local IPC endpoint the
// Discord client listens on. Unix targets use a socket under the runtime
// directory, Windows targets a named pipe; the variant is fixed at build
// time.
package transport

import (
	"errors"
	"io"
)

// maxCandidates is the number of well-known endpoint indices probed, in
// ascending order, before discovery gives up.
const maxCandidates = 10

// endpointPrefix is the shared name stem of every candidate endpoint.
const endpointPrefix = "discord-ipc-"

var ErrConnectionNotFound = errors.New("transport: no discord ipc endpoint found")

// Transport is an ordered, bidirectional byte channel to the peer process.
// Exactly one OS handle backs it, and the owner is responsible for Close.
type Transport interface {
	io.Reader
	io.Writer
	io.Closer
}
