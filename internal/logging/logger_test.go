//-------------------------------------------------------------------------
//
// pgEdge Security Data Store
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestInitLevel(t *testing.T) {
	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			Init(Config{Level: tt.level})
			if got := Logger.GetLevel(); got != tt.want {
				t.Errorf("Expected level %v, got %v", tt.want, got)
			}
		})
	}
	Init(DefaultConfig())
}

func TestInitWritesFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "secdata.log")

	Init(Config{Level: "info", Pretty: false, File: logFile})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Info().Str("geneva_id", "700 HK").Msg("Record added")

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("Failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "Record added") {
		t.Errorf("Log file missing message, got: %s", data)
	}
	if !strings.Contains(string(data), `"geneva_id":"700 HK"`) {
		t.Errorf("Log file missing structured field, got: %s", data)
	}
}
