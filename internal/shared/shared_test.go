package shared

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestHelpers(t *testing.T) {
	t.Run("NewLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello")

		if !strings.Contains(buf.String(), "hello") {
			t.Errorf("expected log output to contain message, got %q", buf.String())
		}
	})

	t.Run("NewLogger nil writer defaults to stderr", func(t *testing.T) {
		logger := NewLogger(nil)
		if logger == nil {
			t.Fatal("expected a logger")
		}
	})

	t.Run("WithLogger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		child := WithLogger(logger, "report", "segment-profile")
		child.Info("running")

		if !strings.Contains(buf.String(), "segment-profile") {
			t.Errorf("expected child logger fields in output, got %q", buf.String())
		}
	})

	t.Run("SetLogLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		SetLogLevel(logger, log.ErrorLevel)
		logger.Info("suppressed")

		if strings.Contains(buf.String(), "suppressed") {
			t.Errorf("info log should be suppressed at error level")
		}
	})

	t.Run("MarshalJSON", func(t *testing.T) {
		data := map[string]int{"rows": 3}

		compact, err := MarshalJSON(data, false)
		if err != nil {
			t.Fatalf("compact marshal failed: %v", err)
		}
		if string(compact) != `{"rows":3}` {
			t.Errorf("unexpected compact JSON: %s", compact)
		}

		indented, err := MarshalJSON(data, true)
		if err != nil {
			t.Fatalf("indented marshal failed: %v", err)
		}
		if !strings.Contains(string(indented), "\n  \"rows\": 3") {
			t.Errorf("unexpected indented JSON: %s", indented)
		}
	})

	t.Run("GenerateID", func(t *testing.T) {
		a := GenerateID()
		b := GenerateID()

		if a == b {
			t.Error("expected unique IDs")
		}
		if len(a) != 36 {
			t.Errorf("expected UUID string length 36, got %d", len(a))
		}
	})
}
