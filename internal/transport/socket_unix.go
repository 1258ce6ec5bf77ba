//go:build unix

package transport

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Connect probes the candidate sockets in ascending order and returns the
// first that accepts a connection. A candidate is only dialed when its path
// exists; a candidate that exists but refuses the dial (stale socket file,
// permissions) is skipped the same as a missing one.
func Connect() (Transport, error) {
	base := baseDir()
	for i := 0; i < maxCandidates; i++ {
		path := filepath.Join(base, fmt.Sprintf("%s%d", endpointPrefix, i))
		if _, err := os.Stat(path); err != nil {
			continue
		}
		conn, err := net.Dial("unix", path)
		if err != nil {
			log.Debug().Str("path", path).Err(err).Msg("candidate socket failed")
			continue
		}
		log.Debug().Str("path", path).Msg("connected to discord ipc socket")
		return conn, nil
	}
	return nil, ErrConnectionNotFound
}

// baseDir resolves the directory the Discord client creates its sockets in.
// XDG_RUNTIME_DIR wins; os.TempDir covers the TMPDIR-then-/tmp fallback.
func baseDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir
	}
	return os.TempDir()
}
