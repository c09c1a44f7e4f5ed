package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestDefaultLoggerIsQuietBeforeInit(t *testing.T) {
	if got := log.Logger.GetLevel(); got != zerolog.WarnLevel {
		t.Fatalf("package default level = %s, want warn", got)
	}
}

func TestInitLevels(t *testing.T) {
	cases := []struct {
		level string
		want  zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{" INFO ", zerolog.InfoLevel},
		{"", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if got := Init(tc.level, &buf); got != tc.want {
			t.Errorf("Init(%q) = %s, want %s", tc.level, got, tc.want)
		}
	}
}

func TestInitUnknownLevelFallsBackToWarn(t *testing.T) {
	var buf bytes.Buffer
	if got := Init("chatty", &buf); got != zerolog.WarnLevel {
		t.Fatalf("level = %s, want warn", got)
	}
	if !strings.Contains(buf.String(), "unknown log level") {
		t.Fatalf("fallback not reported: %q", buf.String())
	}
}

func TestWithComponentWritesToConfiguredWriter(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", &buf)

	l := WithComponent("checker")
	l.Debug().Msg("hidden detail")
	l.Warn().Msg("visible warning")

	out := buf.String()
	if strings.Contains(out, "hidden detail") {
		t.Fatalf("debug event should be filtered at warn: %q", out)
	}
	if !strings.Contains(out, "visible warning") || !strings.Contains(out, "checker") {
		t.Fatalf("warning missing or untagged: %q", out)
	}
}
