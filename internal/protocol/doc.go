// Package protocol owns the JSON payload contract spoken over the IPC
// channel.
//
// Ownership boundary:
// - handshake request/response shapes
// - command envelopes and nonce generation
//
// Byte-level framing lives in the nested frame package.
package protocol
