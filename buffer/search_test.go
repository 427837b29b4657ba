package buffer

import "testing"

func TestSearchForward(t *testing.T) {
	b := fragmented(t, "abra", "cada", "bra")

	tests := []struct {
		pat    string
		from   int
		want   int
		wantOK bool
	}{
		{"abra", 0, 0, true},
		{"abra", 1, 7, true},
		{"cadab", 0, 4, true}, // spans the second and third pieces
		{"bra", 2, 8, true},
		{"zzz", 0, 0, false},
		{"abra", 8, 0, false},
		{"", 0, 0, false},
	}
	for _, tt := range tests {
		got, ok := b.SearchForward([]byte(tt.pat), tt.from)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("SearchForward(%q, %d) = %d, %v, want %d, %v", tt.pat, tt.from, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSearchForwardPartialMatchRewinds(t *testing.T) {
	b := fragmented(t, "aab", "aabc")
	got, ok := b.SearchForward([]byte("aabc"), 0)
	if !ok || got != 3 {
		t.Errorf("SearchForward = %d, %v, want 3, true", got, ok)
	}
}

func TestSearchBackward(t *testing.T) {
	b := fragmented(t, "abra", "cada", "bra")

	tests := []struct {
		pat    string
		from   int
		want   int
		wantOK bool
	}{
		{"abra", 11, 7, true},
		{"abra", 6, 0, true},
		{"a", 11, 10, true},
		{"zzz", 11, 0, false},
	}
	for _, tt := range tests {
		got, ok := b.SearchBackward([]byte(tt.pat), tt.from)
		if ok != tt.wantOK || (ok && got != tt.want) {
			t.Errorf("SearchBackward(%q, %d) = %d, %v, want %d, %v", tt.pat, tt.from, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSearchForwardWrap(t *testing.T) {
	b := fragmented(t, "xxabxx", "ab")

	// Plain hit after from.
	got, ok := b.SearchForwardWrap([]byte("ab"), 3)
	if !ok || got != 6 {
		t.Fatalf("SearchForwardWrap = %d, %v, want 6", got, ok)
	}

	// Wraps to the front.
	got, ok = b.SearchForwardWrap([]byte("ab"), 7)
	if !ok || got != 2 {
		t.Errorf("wrapped SearchForwardWrap = %d, %v, want 2", got, ok)
	}

	// A wrapped match may not re-cross the origin.
	if _, ok := b.SearchForwardWrap([]byte("xxabxxab"), 4); ok {
		t.Error("match crossing origin should be rejected")
	}
}

func TestSearchBackwardWrap(t *testing.T) {
	b := fragmented(t, "ab", "xxabxx")

	got, ok := b.SearchBackwardWrap([]byte("ab"), 5)
	if !ok || got != 4 {
		t.Fatalf("SearchBackwardWrap = %d, %v, want 4", got, ok)
	}

	// Nothing at or before from: wraps to the high end.
	got, ok = b.SearchBackwardWrap([]byte("xxab"), 1)
	if !ok || got != 2 {
		t.Errorf("wrapped SearchBackwardWrap = %d, %v, want 2", got, ok)
	}

	// A pattern absent from the buffer matches in neither pass.
	if _, ok := b.SearchBackwardWrap([]byte("zz"), 3); ok {
		t.Error("missing pattern should not match on wrap")
	}
}
