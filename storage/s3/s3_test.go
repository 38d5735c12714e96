package s3

import (
	"context"
	"testing"

	"github.com/kbukum/groupchain/storage"
)

func newTestStorage(t *testing.T, cfg storage.Config) *Storage {
	t.Helper()
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	s, err := NewStorage(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewStorage: %v", err)
	}
	return s
}

func TestNewStorage_CustomEndpoint(t *testing.T) {
	s := newTestStorage(t, storage.Config{
		Provider:  storage.ProviderS3,
		Bucket:    "exports",
		Region:    "us-east-1",
		Endpoint:  "http://localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
	})
	if !s.client.Options().UsePathStyle {
		t.Error("expected path-style addressing with a custom endpoint")
	}
	u, err := s.URL(context.Background(), "run/result.json")
	if err != nil {
		t.Fatal(err)
	}
	if want := "http://localhost:9000/exports/run/result.json"; u != want {
		t.Errorf("URL = %q, want %q", u, want)
	}
}

func TestURL_AWS(t *testing.T) {
	tests := []struct {
		name      string
		pathStyle bool
		want      string
	}{
		{"virtual hosted", false, "https://exports.s3.eu-west-1.amazonaws.com/a.json"},
		{"path style", true, "https://s3.eu-west-1.amazonaws.com/exports/a.json"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStorage(t, storage.Config{
				Provider:       storage.ProviderS3,
				Bucket:         "exports",
				Region:         "eu-west-1",
				ForcePathStyle: tc.pathStyle,
			})
			u, err := s.URL(context.Background(), "a.json")
			if err != nil {
				t.Fatal(err)
			}
			if u != tc.want {
				t.Errorf("URL = %q, want %q", u, tc.want)
			}
		})
	}
}

func TestFactoryRegistered(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")
	s, err := storage.New(storage.Config{Provider: storage.ProviderS3, Bucket: "exports"}, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := s.(*Storage); !ok {
		t.Errorf("expected *s3.Storage, got %T", s)
	}
}
