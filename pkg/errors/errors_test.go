package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidParams, "d_sep must be positive, got %g", -1.0)

	if err.Code != ErrCodeInvalidParams {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidParams)
	}
	if err.Message != "d_sep must be positive, got -1" {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("Cause should be nil, got %v", err.Cause)
	}
}

func TestErrorString(t *testing.T) {
	err := New(ErrCodeInvalidField, "axes must be strictly increasing")
	want := "INVALID_FIELD: axes must be strictly increasing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	cause := fmt.Errorf("underlying problem")
	wrapped := Wrap(ErrCodeInvalidScene, cause, "failed to load scene.toml")
	want = "INVALID_SCENE: failed to load scene.toml: underlying problem"
	if wrapped.Error() != want {
		t.Errorf("Error() = %q, want %q", wrapped.Error(), want)
	}
}

func TestWrapUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Wrap(ErrCodeInternal, cause, "something broke")

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestIs(t *testing.T) {
	err := New(ErrCodeInvalidParams, "bad params")

	if !Is(err, ErrCodeInvalidParams) {
		t.Error("Is should match the error's code")
	}
	if Is(err, ErrCodeInvalidField) {
		t.Error("Is should not match a different code")
	}
	if Is(fmt.Errorf("plain error"), ErrCodeInvalidParams) {
		t.Error("Is should not match plain errors")
	}

	// Code matching through wrapping layers
	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, ErrCodeInvalidParams) {
		t.Error("Is should unwrap to find the code")
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeNotFound, "missing")); got != ErrCodeNotFound {
		t.Errorf("GetCode = %v, want %v", got, ErrCodeNotFound)
	}
	if got := GetCode(fmt.Errorf("plain")); got != "" {
		t.Errorf("GetCode for plain error = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeInvalidStyle, "unknown style: neon")
	if got := UserMessage(err); got != "unknown style: neon" {
		t.Errorf("UserMessage = %q", got)
	}

	plain := fmt.Errorf("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage for plain error = %q", got)
	}
}

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"uniform", false},
		{"vortex", false},
		{"double-gyre", false},
		{"saddle2", false},
		{"", true},
		{"Vortex", true},      // uppercase
		{"vor tex", true},     // space
		{"vortex\x00", true},  // null byte
		{"../etc", true},      // traversal characters
		{string(make([]byte, 65)), true}, // too long
	}

	for _, tt := range tests {
		err := ValidateFieldName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFieldName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestValidateSceneFilename(t *testing.T) {
	tests := []struct {
		filename string
		wantErr  bool
	}{
		{"vortex.toml", false},
		{"my-scene.toml", false},
		{"", true},
		{"dir/scene.toml", true},
		{"..\\scene.toml", true},
		{".hidden.toml", true},
	}

	for _, tt := range tests {
		err := ValidateSceneFilename(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSceneFilename(%q) error = %v, wantErr %v", tt.filename, err, tt.wantErr)
		}
	}
}
