package local

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kbukum/groupchain/errors"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestUploadDownload(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if err := s.Upload(ctx, "out/result.json", strings.NewReader("first")); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if err := s.Upload(ctx, "out/result.json", strings.NewReader("second")); err != nil {
		t.Fatalf("Upload overwrite: %v", err)
	}

	rc, err := s.Download(ctx, "out/result.json")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "second" {
		t.Errorf("expected overwritten content, got %q", data)
	}

	entries, err := os.ReadDir(filepath.Join(s.basePath, "out"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no temporary files left behind, got %d entries", len(entries))
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestUpload_ReaderFailureLeavesNoFile(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	err := s.Upload(ctx, "broken.json", failingReader{})
	if !errors.HasCode(err, errors.ErrCodeIO) {
		t.Fatalf("expected IO_ERROR, got %v", err)
	}
	if ok, _ := s.Exists(ctx, "broken.json"); ok {
		t.Error("expected no file after a failed upload")
	}
}

func TestDownload_NotFound(t *testing.T) {
	s := newTestStorage(t)
	_, err := s.Download(context.Background(), "missing.csv")
	if !errors.HasCode(err, errors.ErrCodeIO) {
		t.Errorf("expected IO_ERROR, got %v", err)
	}
	if !stderrors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected the cause to be a not-exist error, got %v", err)
	}
}

func TestExists(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "x.json")
	if err != nil || ok {
		t.Errorf("Exists before upload = (%v, %v)", ok, err)
	}
	if err := s.Upload(ctx, "x.json", bytes.NewReader(nil)); err != nil {
		t.Fatal(err)
	}
	ok, err = s.Exists(ctx, "x.json")
	if err != nil || !ok {
		t.Errorf("Exists after upload = (%v, %v)", ok, err)
	}
}

func TestResolve_RejectsEscapes(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()
	for _, p := range []string{"../outside.json", "a/../../outside.json", ""} {
		if err := s.Upload(ctx, p, strings.NewReader("x")); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
			t.Errorf("Upload(%q): expected INVALID_INPUT, got %v", p, err)
		}
	}
	if _, err := s.Download(ctx, "../x"); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Download: expected INVALID_INPUT, got %v", err)
	}
}

func TestURL(t *testing.T) {
	s := newTestStorage(t)
	u, err := s.URL(context.Background(), "dir/file.json")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(u, "file://") || !strings.HasSuffix(u, "/dir/file.json") {
		t.Errorf("unexpected URL %q", u)
	}
}
