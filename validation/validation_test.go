package validation

import (
	"strings"
	"testing"

	"github.com/kbukum/groupchain/errors"
)

func TestValidatorRequired(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"A", false},
		{"", true},
		{"   ", true},
	}
	for _, tc := range tests {
		v := New().Required("name", tc.value)
		if v.HasErrors() != tc.wantErr {
			t.Errorf("Required(%q): HasErrors = %v, want %v", tc.value, v.HasErrors(), tc.wantErr)
		}
	}
}

func TestValidatorOneOf(t *testing.T) {
	allowed := []string{"hierarchy", "join", "none"}

	if New().OneOf("naming", "join", allowed).HasErrors() {
		t.Error("expected no error for allowed value")
	}
	if New().OneOf("naming", "", allowed).HasErrors() {
		t.Error("expected empty value to be skipped")
	}
	v := New().OneOf("naming", "flat", allowed)
	if !v.HasErrors() {
		t.Fatal("expected error for disallowed value")
	}
	if !strings.Contains(v.Errors()[0].Message, "hierarchy, join, none") {
		t.Errorf("expected allowed values in message, got %q", v.Errors()[0].Message)
	}
}

func TestValidatorMin(t *testing.T) {
	if New().Min("reset_position", 0, 0).HasErrors() {
		t.Error("expected no error at the minimum")
	}
	if !New().Min("reset_position", -1, 0).HasErrors() {
		t.Error("expected error below the minimum")
	}
}

func TestValidatorCheck(t *testing.T) {
	v := New().
		Check(true, "a", "never").
		Check(false, "b", "only arithmetic ops take a column")
	if len(v.Errors()) != 1 || v.Errors()[0].Field != "b" {
		t.Errorf("unexpected errors %v", v.Errors())
	}
}

func TestValidatorErr(t *testing.T) {
	if err := New().Err(); err != nil {
		t.Errorf("expected nil without errors, got %v", err)
	}

	v := New().Required("path", "").Required("op", "")
	err := v.Err()
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	if !strings.Contains(err.Error(), "path: is required; op: is required") {
		t.Errorf("unexpected message %q", err.Error())
	}
	appErr, _ := errors.AsAppError(err)
	fields, ok := appErr.Details["fields"].([]FieldError)
	if !ok || len(fields) != 2 {
		t.Errorf("expected two field errors in details, got %v", appErr.Details)
	}
}

func TestValidatorMerge(t *testing.T) {
	inner := New().Required("op", "").Err()

	v := New().
		Merge("steps[1]", inner).
		Merge("output", errors.IO("write", nil)).
		Merge("ignored", nil)
	got := v.Errors()
	if len(got) != 2 {
		t.Fatalf("expected 2 errors, got %v", got)
	}
	if got[0].Field != "steps[1].op" {
		t.Errorf("expected prefixed field, got %q", got[0].Field)
	}
	if got[1].Field != "output" {
		t.Errorf("expected plain error under its prefix, got %q", got[1].Field)
	}
}

type storageSection struct {
	Provider string `mapstructure:"provider" validate:"oneof=local s3"`
	Bucket   string `mapstructure:"bucket" validate:"required_if=Provider s3"`
}

type appSection struct {
	Name       string         `mapstructure:"name" validate:"required"`
	SampleRate float64        `mapstructure:"sample_rate" validate:"gte=0,lte=1"`
	Storage    storageSection `mapstructure:"storage"`
	NoTag      string         `validate:"required"`
}

func TestStructValid(t *testing.T) {
	cfg := appSection{
		Name:       "groupchain",
		SampleRate: 0.5,
		Storage:    storageSection{Provider: "local"},
		NoTag:      "x",
	}
	if err := Struct(cfg); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestStructInvalid(t *testing.T) {
	cfg := appSection{
		SampleRate: 2,
		Storage:    storageSection{Provider: "s3"},
	}
	err := Struct(cfg)
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT, got %v", err)
	}
	msg := err.Error()
	for _, want := range []string{
		"name: is required",
		"sample_rate: must be less than or equal to 1",
		"storage.bucket: is required",
		"no_tag: is required",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestStructOneOf(t *testing.T) {
	cfg := appSection{Name: "x", NoTag: "x", Storage: storageSection{Provider: "ftp"}}
	err := Struct(cfg)
	if err == nil || !strings.Contains(err.Error(), "storage.provider: must be one of: local s3") {
		t.Errorf("unexpected error %v", err)
	}
}

func TestStructNotAStruct(t *testing.T) {
	if err := Struct(42); !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT for a non-struct, got %v", err)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := map[string]string{
		"NoTag":      "no_tag",
		"Name":       "name",
		"SampleRate": "sample_rate",
	}
	for in, want := range tests {
		if got := toSnakeCase(in); got != want {
			t.Errorf("toSnakeCase(%q) = %q, want %q", in, got, want)
		}
	}
}
