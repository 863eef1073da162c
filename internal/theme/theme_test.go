package theme

import "testing"

func TestFor_Deterministic(t *testing.T) {
	p := DefaultPalette()
	names := []string{"", "dev", "work", "my-project", "日本語", "a b c"}
	for _, name := range names {
		first := p.For(name)
		for i := 0; i < 10; i++ {
			if got := p.For(name); got != first {
				t.Errorf("For(%q) not deterministic: %v vs %v", name, first, got)
			}
		}
	}
}

func TestFor_EmptyNameIsFirstEntry(t *testing.T) {
	p := DefaultPalette()
	if got := p.For(""); got != p[0] {
		t.Errorf("Empty name should map to palette[0], got %v", got)
	}
	if idx := p.IndexFor(""); idx != 0 {
		t.Errorf("Empty name should hash to index 0, got %d", idx)
	}
}

func TestIndexFor_InRange(t *testing.T) {
	p := DefaultPalette()
	names := []string{
		"", "a", "z", "dev", "scratch", "api-server",
		"a-very-long-session-name-that-overflows-the-hash-many-times-over",
		"emoji-💻-name", "trailing space ", "UPPER", "0123456789",
	}
	for _, name := range names {
		idx := p.IndexFor(name)
		if idx < 0 || idx >= len(p) {
			t.Errorf("IndexFor(%q) = %d, out of range [0,%d)", name, idx, len(p))
		}
	}
}

func TestIndexFor_KnownValues(t *testing.T) {
	p := DefaultPalette()
	// Hand-computed against the 31-multiplier rolling hash with 32-bit
	// signed wraparound.
	cases := []struct {
		name string
		want int
	}{
		{"", 0},
		{"a", 7},    // 97 mod 9
		{"j", 7},    // 106 mod 9
		{"abc", 0},  // 96354 mod 9
		{"main", 4}, // 3343801 mod 9
	}
	for _, tc := range cases {
		if got := p.IndexFor(tc.name); got != tc.want {
			t.Errorf("IndexFor(%q) = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestIndexFor_OverflowWraps(t *testing.T) {
	p := DefaultPalette()
	// "aaaaaaa" overflows int32 during the fifth multiply; its hash is
	// -1236860927, so abs mod 9 = 8. A 64-bit accumulator would give a
	// different index, which this pins down.
	if got := p.IndexFor("aaaaaaa"); got != 8 {
		t.Errorf("IndexFor(\"aaaaaaa\") = %d, want 8", got)
	}
}

func TestFor_CollisionsShareTheme(t *testing.T) {
	p := DefaultPalette()
	// "a" (97) and "j" (106) both land on index 7.
	if p.For("a") != p.For("j") {
		t.Error("Colliding names should receive the identical theme")
	}
}

func TestDefaultPalette_Size(t *testing.T) {
	if len(DefaultPalette()) != 9 {
		t.Errorf("Palette should have 9 entries, got %d", len(DefaultPalette()))
	}
}

func TestDefaultPalette_EntriesComplete(t *testing.T) {
	for i, th := range DefaultPalette() {
		if th.Name == "" || th.Background == "" || th.Foreground == "" || th.Accent == "" {
			t.Errorf("Palette entry %d has empty fields: %+v", i, th)
		}
	}
}

func TestByName(t *testing.T) {
	p := DefaultPalette()
	th, ok := p.ByName("dracula")
	if !ok {
		t.Fatal("dracula should exist in the palette")
	}
	if th.Background != "#282A36" {
		t.Errorf("Unexpected dracula background: %s", th.Background)
	}
	if _, ok := p.ByName("no-such-theme"); ok {
		t.Error("ByName should report missing themes")
	}
}
