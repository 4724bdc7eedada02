package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// fileSink implements Sink on the local file system.
type fileSink struct {
	dir    string
	logger zerolog.Logger
}

// NewFileSink creates a sink writing into dir, created on first use.
func NewFileSink(dir string, logger zerolog.Logger) Sink {
	return &fileSink{
		dir:    dir,
		logger: logger.With().Str("component", "file-snapshot-sink").Logger(),
	}
}

// Put writes body to dir/key.
func (s *fileSink) Put(ctx context.Context, key string, body []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error().Err(err).Str("dir", s.dir).Msg("failed to create snapshot directory")
		return "", fmt.Errorf("failed to create snapshot directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, filepath.Base(key))
	if err := os.WriteFile(path, body, 0o644); err != nil {
		s.logger.Error().Err(err).Str("file", path).Msg("failed to write snapshot file")
		return "", fmt.Errorf("failed to write snapshot file %s: %w", path, err)
	}

	s.logger.Info().
		Str("file", path).
		Int("bytes", len(body)).
		Msg("snapshot written to local file system")

	return path, nil
}
