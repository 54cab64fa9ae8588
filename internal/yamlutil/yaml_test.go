package yamlutil_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-web2pdf/internal/yamlutil"
)

type testJob struct {
	Name string   `yaml:"name"`
	URLs []string `yaml:"urls"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Lenient decoding
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
	}{
		{
			name: "valid YAML",
			data: []byte("name: demo\nurls:\n  - https://a.test/x\n"),
			dest: &testJob{},
		},
		{
			name: "unknown fields ignored",
			data: []byte("name: demo\nfuture: true\n"),
			dest: &testJob{},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testJob{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: demo"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Unmarshal() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() unexpected error: %v", err)
			}
			if got := tt.dest.(*testJob).Name; got != "demo" {
				t.Errorf("Name = %q, want %q", got, "demo")
			}
		})
	}
}

func TestUnmarshal_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := []byte("name: " + strings.Repeat("x", yamlutil.MaxInputSize))
	err := yamlutil.Unmarshal(data, &testJob{})
	if !errors.Is(err, yamlutil.ErrInputTooLarge) {
		t.Errorf("Unmarshal() error = %v, want ErrInputTooLarge", err)
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict_UnknownField(t *testing.T) {
	t.Parallel()

	err := yamlutil.UnmarshalStrict([]byte("name: demo\nfuture: true\n"), &testJob{})
	if err == nil {
		t.Fatal("UnmarshalStrict() expected error for unknown field")
	}
	if !strings.HasPrefix(err.Error(), "yamlutil:") {
		t.Errorf("error = %q, want yamlutil prefix", err)
	}
}

// ---------------------------------------------------------------------------
// TestReadFile
// ---------------------------------------------------------------------------

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "job.yaml")
	if err := os.WriteFile(path, []byte("name: demo\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var job testJob
	if err := yamlutil.ReadFile(path, &job, true); err != nil {
		t.Fatalf("ReadFile() unexpected error: %v", err)
	}
	if job.Name != "demo" {
		t.Errorf("Name = %q, want %q", job.Name, "demo")
	}
}

func TestReadFile_Missing(t *testing.T) {
	t.Parallel()

	err := yamlutil.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"), &testJob{}, false)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}
