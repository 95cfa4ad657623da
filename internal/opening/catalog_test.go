package opening

import "testing"

func TestStatic_Lookup(t *testing.T) {
	c := NewStatic(map[string]string{
		"e4 c5": "Sicilian Defense",
		"c4":    "English Opening",
	})

	tests := []struct {
		name   string
		path   []string
		want   string
		wantOK bool
	}{
		{"exact", []string{"e4", "c5"}, "Sicilian Defense", true},
		{"single ply", []string{"c4"}, "English Opening", true},
		{"one ply longer", []string{"e4", "c5", "Nf3"}, "", false},
		{"one move off", []string{"e4", "c6"}, "", false},
		{"ancestor only", []string{"e4"}, "", false},
		{"empty", nil, "", false},
		{"order sensitive", []string{"c5", "e4"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Lookup(tt.path)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Lookup(%v) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestBuiltin(t *testing.T) {
	c := Builtin()
	if c.Len() != len(builtinLines) {
		t.Errorf("Len() = %d, want %d", c.Len(), len(builtinLines))
	}
	if c != Builtin() {
		t.Error("Builtin() should return the same catalog")
	}

	name, ok := c.Lookup([]string{"e4", "c5", "Nf3", "d6", "d4", "cxd4", "Nxd4", "Nf6", "Nc3", "a6"})
	if !ok || name != "Sicilian Defense, Najdorf Variation" {
		t.Errorf("Najdorf lookup = %q, %v", name, ok)
	}
	if _, ok := c.Lookup([]string{"e4"}); ok {
		t.Error("e4 alone should not be cataloged")
	}
}
