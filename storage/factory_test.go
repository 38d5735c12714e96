package storage_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/kbukum/groupchain/errors"
	"github.com/kbukum/groupchain/logger"
	"github.com/kbukum/groupchain/storage"
	_ "github.com/kbukum/groupchain/storage/local"
)

func TestConfigApplyDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   storage.Config
		want storage.Config
	}{
		{
			name: "empty selects local",
			in:   storage.Config{},
			want: storage.Config{Provider: storage.ProviderLocal, BasePath: storage.DefaultBasePath},
		},
		{
			name: "s3 gets a region",
			in:   storage.Config{Provider: storage.ProviderS3, Bucket: "b"},
			want: storage.Config{Provider: storage.ProviderS3, Bucket: "b", Region: storage.DefaultRegion},
		},
		{
			name: "explicit values kept",
			in:   storage.Config{Provider: storage.ProviderLocal, BasePath: "/data"},
			want: storage.Config{Provider: storage.ProviderLocal, BasePath: "/data"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in
			got.ApplyDefaults()
			if got != tc.want {
				t.Errorf("ApplyDefaults() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     storage.Config
		wantErr bool
	}{
		{"local", storage.Config{Provider: "local", BasePath: "/tmp"}, false},
		{"s3", storage.Config{Provider: "s3", Bucket: "b", Region: "eu-west-1"}, false},
		{"s3 without bucket", storage.Config{Provider: "s3", Region: "eu-west-1"}, true},
		{"unknown provider", storage.Config{Provider: "ftp"}, true},
		{"access key without secret", storage.Config{Provider: "s3", Bucket: "b", Region: "r", AccessKey: "k"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err != nil && !errors.HasCode(err, errors.ErrCodeInvalidInput) {
				t.Errorf("expected INVALID_INPUT, got %v", err)
			}
		})
	}
}

func TestNew_Local(t *testing.T) {
	ctx := context.Background()
	store, err := storage.New(storage.Config{Provider: "local", BasePath: t.TempDir()}, logger.Nop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := store.Upload(ctx, "a/b.json", bytes.NewBufferString(`{"data": []}`)); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	rc, err := store.Download(ctx, "a/b.json")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != `{"data": []}` {
		t.Errorf("round trip = %q", got)
	}
}

func TestNew_UnregisteredProvider(t *testing.T) {
	_, err := storage.New(storage.Config{Provider: "s3", Bucket: "b"}, nil)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT when s3 is not imported, got %v", err)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	_, err := storage.New(storage.Config{Provider: "ftp"}, nil)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
