package logging

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger := NewLogger("", true)
	if logger == nil {
		t.Fatal("expected logger to never be nil")
	}
}

func TestDefaultLogger(t *testing.T) {
	t.Parallel()

	logger1 := DefaultLogger()
	if logger1 == nil {
		t.Fatal("expected logger to never be nil")
	}

	logger2 := DefaultLogger()
	if logger2 == nil {
		t.Fatal("expected logger to never be nil")
	}

	if logger1 != logger2 {
		t.Errorf("expected %#v to be %#v", logger1, logger2)
	}
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger1 := FromContext(context.Background())
	if logger1 == nil {
		t.Fatal("expected logger to never be nil")
	}

	ctx := WithLogger(context.Background(), logger1)

	logger2 := FromContext(ctx)
	if logger1 != logger2 {
		t.Errorf("expected %#v to be %#v", logger1, logger2)
	}
}

func TestLevelToZapLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{input: "debug", expected: zapcore.DebugLevel},
		{input: " INFO ", expected: zapcore.InfoLevel},
		{input: "error", expected: zapcore.ErrorLevel},
		{input: "emergency", expected: zapcore.FatalLevel},
		{input: "", expected: zapcore.WarnLevel},
		{input: "bogus", expected: zapcore.WarnLevel},
	}
	for _, test := range tests {
		test := test
		t.Run(test.input, func(t *testing.T) {
			t.Parallel()
			if got := levelToZapLevel(test.input); got != test.expected {
				t.Errorf("level for %q, got: %v, expected: %v", test.input, got, test.expected)
			}
		})
	}
}
