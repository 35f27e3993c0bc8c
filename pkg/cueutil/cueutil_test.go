// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"strings"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

func TestFormatErrorNil(t *testing.T) {
	if err := FormatError(nil, "config.cue"); err != nil {
		t.Fatalf("FormatError(nil) = %v, want nil", err)
	}
}

func TestFormatErrorIncludesFilePath(t *testing.T) {
	ctx := cuecontext.New()
	schema := ctx.CompileString(`#C: { name: string }`)
	user := ctx.CompileString(`name: 42`)

	unified := schema.LookupPath(cue.ParsePath("#C")).Unify(user)
	err := unified.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}

	formatted := FormatError(err, "config.cue")
	if formatted == nil {
		t.Fatalf("expected formatted error")
	}
	if !strings.Contains(formatted.Error(), "config.cue") {
		t.Fatalf("formatted error missing file path: %v", formatted)
	}
	if !strings.Contains(formatted.Error(), "name") {
		t.Fatalf("formatted error missing field path: %v", formatted)
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		name string
		path []string
		want string
	}{
		{name: "empty", path: nil, want: ""},
		{name: "single", path: []string{"docs"}, want: "docs"},
		{name: "nested", path: []string{"docs", "pages"}, want: "docs.pages"},
		{name: "array index", path: []string{"docs", "0", "path"}, want: "docs[0].path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatPath(tt.path); got != tt.want {
				t.Fatalf("formatPath(%v) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Run("under limit", func(t *testing.T) {
		if err := CheckFileSize(make([]byte, 50), 100, "test.cue"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("at limit", func(t *testing.T) {
		if err := CheckFileSize(make([]byte, 100), 100, "test.cue"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("over limit", func(t *testing.T) {
		err := CheckFileSize(make([]byte, 101), 100, "test.cue")
		if err == nil {
			t.Fatalf("expected error for oversized file")
		}
		if !strings.Contains(err.Error(), "test.cue") {
			t.Fatalf("error missing filename: %v", err)
		}
	})
}
