package utils

import (
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"~/.config/streaklit/streaklit.db", filepath.Join(home, ".config/streaklit/streaklit.db")},
		{"~", home},
		{"/var/lib/streaklit.db", "/var/lib/streaklit.db"},
		{":memory:", ":memory:"},
		{"~other/file", "~other/file"},
	}
	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
