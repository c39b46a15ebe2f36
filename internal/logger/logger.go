// Package logger holds the process-wide zerolog logger shared by the API,
// the ingestion worker pool and the CLI modes.
package logger

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu   sync.RWMutex
	base *zerolog.Logger
)

// Init (re)builds the shared logger from the environment:
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//   - LOG_PRETTY: true for human-readable console output instead of JSON lines
//   - LOG_FILE: when set, every line is also written to this file, rotated at
//     100 MB with a week of compressed backups
//
// Timestamps are RFC3339 with nanoseconds so ingestion timings line up with
// request logs.
func Init() {
	level := parseLevel(getenv("LOG_LEVEL", "info"))

	zerolog.TimeFieldFormat = time.RFC3339Nano
	var w io.Writer = os.Stdout
	if strings.EqualFold(getenv("LOG_PRETTY", "false"), "true") {
		w = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	if path := getenv("LOG_FILE", ""); path != "" {
		w = zerolog.MultiLevelWriter(w, fileWriter(path))
	}

	l := zerolog.New(w).With().Timestamp().Logger().Level(level)
	mu.Lock()
	base = &l
	mu.Unlock()
}

func fileWriter(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    100,
		MaxBackups: 7,
		MaxAge:     7,
		Compress:   true,
	}
}

// L returns the shared logger, building it from the environment on first use
// when Init has not been called.
func L() *zerolog.Logger {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l != nil {
		return l
	}

	Init()
	mu.RLock()
	defer mu.RUnlock()
	return base
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error", "err":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
