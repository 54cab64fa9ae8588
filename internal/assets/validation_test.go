package assets

import (
	"errors"
	"testing"
)

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input   string
		wantErr error
	}{
		{input: "document"},
		{input: "my-style"},
		{input: "style_2"},
		{input: "", wantErr: ErrInvalidAssetName},
		{input: "path/to/style", wantErr: ErrInvalidAssetName},
		{input: `path\to\style`, wantErr: ErrInvalidAssetName},
		{input: "..", wantErr: ErrInvalidAssetName},
		{input: "document.css", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if err := ValidateAssetName(tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAssetName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
