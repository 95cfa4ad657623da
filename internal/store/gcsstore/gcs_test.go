package gcsstore

import (
	"testing"

	"github.com/discochess/repertoire/internal/codec/noopcodec"
	"github.com/discochess/repertoire/internal/codec/zstdcodec"
)

func TestWithPrefix(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/", ""},
		{"cache", "cache/"},
		{"cache/", "cache/"},
		{"/team/lichess/", "team/lichess/"},
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

func TestStore_objectName(t *testing.T) {
	tests := []struct {
		name  string
		store *Store
		key   string
		want  string
		ctype string
	}{
		{
			name:  "plain",
			store: &Store{codec: noopcodec.New()},
			key:   "user_alice_games_nb=0.json",
			want:  "user_alice_games_nb=0.json",
			ctype: "application/json",
		},
		{
			name:  "compressed with prefix",
			store: &Store{codec: zstdcodec.New(), prefix: "cache/"},
			key:   "user_alice_games_nb=0.json",
			want:  "cache/user_alice_games_nb=0.json.zst",
			ctype: "application/octet-stream",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.store.objectName(tt.key); got != tt.want {
				t.Errorf("objectName(%q) = %q, want %q", tt.key, got, tt.want)
			}
			if got := contentType(tt.store.codec); got != tt.ctype {
				t.Errorf("contentType() = %q, want %q", got, tt.ctype)
			}
		})
	}
}
