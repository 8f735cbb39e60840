package obs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// SetupLogging routes the standard logger to stderr and, when path is set, to
// a size-rotated log file as well. The returned closer flushes the file.
func SetupLogging(path string) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.LUTC | log.Lmicroseconds)

	path = strings.TrimSpace(path)
	if path == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("setup logging: create log dir: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // MB
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, w))

	return w, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
