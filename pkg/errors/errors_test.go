package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorString(t *testing.T) {
	cause := errors.New("connection refused")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidRange, "insert of %d items at %d", 2, 9), "INVALID_RANGE: insert of 2 items at 9"},
		{"wrapped", Wrap(ErrCodeStoreUnavailable, cause, "ping redis"), "STORE_UNAVAILABLE: ping redis: connection refused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeStoreUnavailable, cause, "write snapshot")
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if errors.Unwrap(err) != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestCodeInspection(t *testing.T) {
	coded := IndexOutOfRange(7, 5)
	tests := []struct {
		name     string
		err      error
		code     Code
		wantIs   bool
		wantCode Code
		wantMsg  string
	}{
		{"direct", coded, ErrCodeIndexOutOfRange, true, ErrCodeIndexOutOfRange, "index 7 outside [0, 5)"},
		{"fmt wrapped", fmt.Errorf("layout pass: %w", coded), ErrCodeIndexOutOfRange, true, ErrCodeIndexOutOfRange, "index 7 outside [0, 5)"},
		{"other code", coded, ErrCodeInvalidRange, false, ErrCodeIndexOutOfRange, "index 7 outside [0, 5)"},
		{"plain error", errors.New("boom"), ErrCodeInternal, false, "", "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.wantIs {
				t.Errorf("Is(%s) = %v, want %v", tt.code, got, tt.wantIs)
			}
			if got := GetCode(tt.err); got != tt.wantCode {
				t.Errorf("GetCode() = %q, want %q", got, tt.wantCode)
			}
			if got := UserMessage(tt.err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestIsNil(t *testing.T) {
	if Is(nil, ErrCodeInternal) {
		t.Error("Is(nil) should be false")
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}
