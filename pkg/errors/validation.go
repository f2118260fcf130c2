package errors

import (
	"strings"
	"unicode"
)

// maxNameLength bounds module, input and symbol names.
const maxNameLength = 256

// ValidateModuleName validates a module name for use in manifests, entry
// points and graph descriptions.
//
// A module name must be non-empty, at most 256 characters, free of control
// characters and must not contain ':' (the entry point separator).
func ValidateModuleName(name string) error {
	if err := validateName("module", name); err != nil {
		return err
	}
	if strings.Contains(name, ":") {
		return New(ErrCodeInvalidInput, "module name cannot contain ':': %q", name)
	}
	return nil
}

// ValidateInputName validates a compilation unit name.
func ValidateInputName(name string) error {
	return validateName("input", name)
}

// ValidateSymbol validates a provided or required symbol.
func ValidateSymbol(symbol string) error {
	return validateName("symbol", symbol)
}

func validateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "%s name cannot be empty", kind)
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidInput, "%s name too long (max %d characters)", kind, maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "%s name contains invalid control characters", kind)
		}
	}
	return nil
}

// ValidatePath validates a project file path given on the command line or
// in a request.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
