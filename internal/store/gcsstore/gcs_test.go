package gcsstore

import (
	"testing"

	"github.com/discochess/gsea/internal/codec"
)

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"prefix", "prefix/"},
		{"prefix/", "prefix/"},
		{"a/b/c/", "a/b/c/"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s := &Store{}
			WithPrefix(tt.input)(s)
			if s.prefix != tt.want {
				t.Errorf("prefix = %q, want %q", s.prefix, tt.want)
			}
		})
	}
}

func TestStore_reportKey(t *testing.T) {
	s := &Store{prefix: "nightly/", codec: codec.Gzip{}}
	if got, want := s.reportKey("bench.md"), "nightly/reports/bench.md.gz"; got != want {
		t.Errorf("reportKey() = %q, want %q", got, want)
	}
}
