package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeMissingModule, "unknown module: %s", "app")

	if err.Code != ErrCodeMissingModule {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingModule)
	}

	if err.Message != "unknown module: app" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown module: app")
	}

	expected := "MISSING_MODULE: unknown module: app"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeMissingProvide, cause, "entry point main")

	if err.Code != ErrCodeMissingProvide {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeMissingProvide)
	}
	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}

	expected := "MISSING_PROVIDE: entry point main: underlying error"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDependencyOrder, "test"),
			code:     ErrCodeDependencyOrder,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDependencyOrder, "test"),
			code:     ErrCodeMissingModule,
			expected: false,
		},
		{
			name:     "outer code wins",
			err:      Wrap(ErrCodeMissingProvide, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeMissingProvide,
			expected: true,
		},
		{
			name:     "fmt wrapped",
			err:      fmt.Errorf("build: %w", New(ErrCodeMissingModule, "inner")),
			code:     ErrCodeMissingModule,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestHas(t *testing.T) {
	inner := New(ErrCodeMissingProvide, "no provider for x")
	err := Wrap(ErrCodeInternal, fmt.Errorf("ctx: %w", inner), "outer")

	if !Has(err, ErrCodeMissingProvide) {
		t.Error("Has(err, MISSING_PROVIDE) = false, want true")
	}
	if !Has(err, ErrCodeInternal) {
		t.Error("Has(err, INTERNAL_ERROR) = false, want true")
	}
	if Has(err, ErrCodeMissingModule) {
		t.Error("Has(err, MISSING_MODULE) = true, want false")
	}
	if Has(nil, ErrCodeInternal) {
		t.Error("Has(nil) = true, want false")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeDuplicateModule, "test"),
			expected: ErrCodeDuplicateModule,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidateModuleName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "app", false},
		{"dotted", "app.core", false},
		{"empty", "", true},
		{"colon", "app:main", true},
		{"control", "app\x01", true},
		{"too long", string(make([]byte, 300)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateModuleName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateModuleName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"relative", "project.toml", false},
		{"absolute", "/tmp/project.json", false},
		{"empty", "", true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
