package errors

import (
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "grid.svg", false},
		{"valid nested", "out/grids/grid.json", false},
		{"valid absolute", "/tmp/grid.svg", false},
		{"valid with dots", "v1.2.3/grid.svg", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"long lower", "#ff0000", false},
		{"long mixed", "#7F18ee", false},
		{"short", "#0f0", false},

		{"empty", "", true},
		{"no hash", "ff0000", true},
		{"named", "red", true},
		{"too long", "#ff00000", true},
		{"bad digit", "#gg0000", true},
		{"quote injection", `#fff" onload="x`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidColor) {
				t.Errorf("ValidateColor(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette([]string{"#fff", "#000000"}); err != nil {
		t.Errorf("ValidatePalette() unexpected error: %v", err)
	}
	if err := ValidatePalette([]string{"#fff", "blue"}); err == nil {
		t.Error("ValidatePalette() should reject named colors")
	}
	if err := ValidatePalette(nil); err != nil {
		t.Errorf("ValidatePalette(nil) unexpected error: %v", err)
	}
}

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantErr       bool
	}{
		{"positive", 800, 600, false},
		{"zero width", 0, 600, true},
		{"zero height", 800, 0, true},
		{"negative", -1, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.width, tt.height)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport(%v, %v) error = %v, wantErr %v", tt.width, tt.height, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidStyle,
		ErrCodeInvalidColor,
		ErrCodeInvalidTracks,
		ErrCodeInvalidViewport,
		ErrCodeInvalidPath,
		ErrCodeMissingViewport,
		ErrCodeEmptyTracks,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
