package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidView, "unknown view %q", "tree")

	if err.Code != ErrCodeInvalidView {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidView)
	}
	if err.Message != `unknown view "tree"` {
		t.Errorf("Message = %q", err.Message)
	}
	if want := `INVALID_VIEW: unknown view "tree"`; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "list content types")

	if want := "NETWORK_ERROR: list content types: connection refused"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeSessionNotFound, "s1"), ErrCodeSessionNotFound, true},
		{"other code", New(ErrCodeSessionNotFound, "s1"), ErrCodeNotFound, false},
		{"outermost code wins", Wrap(ErrCodeInvalidConfig, New(ErrCodeInvalidInput, "inner"), "outer"), ErrCodeInvalidConfig, true},
		{"behind fmt wrapping", fmt.Errorf("load model: %w", New(ErrCodeInvalidDocument, "missing")), ErrCodeInvalidDocument, true},
		{"plain error", errors.New("plain"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeSnapshotNotFound, "prod"), ErrCodeSnapshotNotFound},
		{"wrapped", fmt.Errorf("open: %w", New(ErrCodeRateLimited, "slow down")), ErrCodeRateLimited},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidFormat, "invalid format %q", "pdf"), `invalid format "pdf"`},
		{"wrapped coded", fmt.Errorf("render: %w", New(ErrCodeInvalidFormat, "bad")), "bad"},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func ExampleIs() {
	err := fmt.Errorf("open session: %w", New(ErrCodeSessionNotFound, "no session %q", "abc"))
	fmt.Println(Is(err, ErrCodeSessionNotFound))
	fmt.Println(UserMessage(err))
	// Output:
	// true
	// no session "abc"
}
