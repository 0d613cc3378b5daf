// Package logging builds the zap loggers used by the client and the
// collector.
package logging

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a logger writing to path. GO_ENV=production selects JSON
// output; anything else gets the development encoder. The client must not
// log to the terminal it draws on, so stdout is only added when console is
// set.
func New(path, level string, console bool) (*zap.Logger, error) {
	var config zap.Config
	switch os.Getenv("GO_ENV") {
	case "production":
		config = zap.NewProductionConfig()
	default:
		config = zap.NewDevelopmentConfig()
	}

	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	config.OutputPaths = nil
	config.ErrorOutputPaths = nil
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, err
		}
		config.OutputPaths = append(config.OutputPaths, path)
		config.ErrorOutputPaths = append(config.ErrorOutputPaths, path)
	}
	if console {
		config.OutputPaths = append(config.OutputPaths, "stdout")
		config.ErrorOutputPaths = append(config.ErrorOutputPaths, "stderr")
	}
	if len(config.OutputPaths) == 0 {
		return zap.NewNop(), nil
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// Archive compresses the log at path into logs-<stamp>.tar.gz next to it
// and returns the archive path. The source file is left in place.
func Archive(path string, now time.Time) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return "", err
	}

	target := filepath.Join(filepath.Dir(path), fmt.Sprintf("logs-%s.tar.gz", now.Format("20060102-150405")))
	out, err := os.Create(target)
	if err != nil {
		return "", err
	}
	defer out.Close()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	header, err := tar.FileInfoHeader(info, info.Name())
	if err != nil {
		return "", err
	}
	header.Name = filepath.Base(path)
	if err := tw.WriteHeader(header); err != nil {
		return "", err
	}
	if _, err := io.Copy(tw, file); err != nil {
		return "", err
	}
	if err := tw.Close(); err != nil {
		return "", err
	}
	if err := gw.Close(); err != nil {
		return "", err
	}
	return target, nil
}
