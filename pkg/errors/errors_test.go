package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"without cause", New(ErrCodeInvalidFormat, "unknown format %q", "png"), `INVALID_FORMAT: unknown format "png"`},
		{"with cause", Wrap(ErrCodeRender, errors.New("boom"), "render svg"), "RENDER_ERROR: render svg: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	base := New(ErrCodeCache, "redis down")
	wrapped := fmt.Errorf("runner: %w", base)

	if !Is(wrapped, ErrCodeCache) {
		t.Error("Is() = false through fmt.Errorf wrapping")
	}
	if Is(wrapped, ErrCodeRender) {
		t.Error("Is() matched the wrong code")
	}
	if Is(errors.New("plain"), "") {
		t.Error("Is() matched empty code on plain error")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeCache, cause, "write entry")
	if !errors.Is(err, cause) {
		t.Error("errors.Is() did not find the cause")
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeInputTooLarge, "too big")
	if GetCode(err) != ErrCodeInputTooLarge {
		t.Errorf("GetCode() = %q", GetCode(err))
	}
	if UserMessage(err) != "too big" {
		t.Errorf("UserMessage() = %q", UserMessage(err))
	}
	if UserMessage(errors.New("plain")) != "plain" {
		t.Error("UserMessage() changed a plain error")
	}
	if GetCode(errors.New("plain")) != "" {
		t.Error("GetCode() on plain error")
	}
}
