package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"prod", "dev", "local"} {
		l, err := NewLogger(env)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", env, err)
		}
		if l == nil {
			t.Fatalf("%s: expected logger", env)
		}
	}

	if _, err := NewLogger("staging"); err == nil {
		t.Error("Expected error for unknown environment")
	}
}

func TestNewLogger_LevelOverride(t *testing.T) {
	l, err := NewLogger("prod", "error")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if l.Core().Enabled(zapcore.WarnLevel) {
		t.Error("Expected warn to be disabled at error level")
	}

	if _, err := NewLogger("prod", "loud"); err == nil {
		t.Error("Expected error for invalid level")
	}
}

func TestContextLogger(t *testing.T) {
	if FromContext(context.Background()) == nil {
		t.Fatal("Expected nop logger for empty context")
	}

	l := zap.NewExample()
	ctx := ContextWithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Error("Expected stored logger")
	}
}
