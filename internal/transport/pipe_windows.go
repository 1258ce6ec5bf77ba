//go:build windows

package transport

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"golang.org/x/sys/windows"
)

// Connect probes `\\.\pipe\discord-ipc-{0..9}` in ascending order and
// returns the first pipe that opens. Existence is implicit in the open
// attempt; CreateFile acquires no handle on failure, so a failed candidate
// leaks nothing.
func Connect() (Transport, error) {
	for i := 0; i < maxCandidates; i++ {
		name := fmt.Sprintf(`\\.\pipe\%s%d`, endpointPrefix, i)
		handle, err := openPipe(name)
		if err != nil {
			log.Debug().Str("pipe", name).Err(err).Msg("candidate pipe failed")
			continue
		}
		log.Debug().Str("pipe", name).Msg("connected to discord ipc pipe")
		return &pipeConn{handle: handle}, nil
	}
	return nil, ErrConnectionNotFound
}

func openPipe(name string) (windows.Handle, error) {
	path, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return windows.InvalidHandle, err
	}
	return windows.CreateFile(
		path,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		0,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
}

// pipeConn adapts a duplex named-pipe handle to the Transport interface.
type pipeConn struct {
	handle windows.Handle
}

func (c *pipeConn) Read(p []byte) (int, error) {
	var done uint32
	if err := windows.ReadFile(c.handle, p, &done, nil); err != nil {
		return int(done), err
	}
	if done == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return int(done), nil
}

func (c *pipeConn) Write(p []byte) (int, error) {
	var done uint32
	if err := windows.WriteFile(c.handle, p, &done, nil); err != nil {
		return int(done), err
	}
	return int(done), nil
}

func (c *pipeConn) Close() error {
	return windows.CloseHandle(c.handle)
}
