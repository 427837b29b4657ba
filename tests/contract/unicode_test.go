package contract_test

import (
	"testing"

	"github.com/dshills/goze/buffer"
	"github.com/dshills/goze/textseg"
)

// TestFamilyEmojiIsOneCluster: the ZWJ-joined family sequence reads as a
// single grapheme cluster.
func TestFamilyEmojiIsOneCluster(t *testing.T) {
	family := "\U0001F468‍\U0001F469‍\U0001F467"
	b := buffer.NewFromBytes([]byte(family))
	it := buffer.NewIterator(b)

	cl, ok, err := it.NextCluster()
	if err != nil || !ok {
		t.Fatalf("NextCluster() = %v, %v", ok, err)
	}
	if cl.ByteLen != len(family) {
		t.Errorf("cluster covers %d bytes, want %d", cl.ByteLen, len(family))
	}
	if _, ok, _ := it.NextCluster(); ok {
		t.Error("expected exactly one cluster")
	}
}

// TestDisplayWidthMixedScript: "Hi日本🌍" is 1+1+2+2+2 = 8 cells.
func TestDisplayWidthMixedScript(t *testing.T) {
	if got := textseg.StringWidth("Hi日本🌍"); got != 8 {
		t.Errorf("StringWidth = %d, want 8", got)
	}

	b := buffer.NewFromBytes([]byte("Hi日本🌍"))
	col, err := b.FindColumnByPos(b.Len())
	if err != nil {
		t.Fatalf("FindColumnByPos: %v", err)
	}
	if col != 8 {
		t.Errorf("FindColumnByPos(EOF) = %d, want 8", col)
	}
}

// TestBufferContentStaysUTF8: a stream of edits at cluster boundaries
// keeps the whole buffer decodable.
func TestBufferContentStaysUTF8(t *testing.T) {
	b := buffer.NewFromBytes([]byte("日本語テキスト"))
	if err := b.Insert(3, []byte("ASCII")); err != nil {
		t.Fatal(err)
	}
	b.Delete(8, 3) // removes 本
	if err := b.Insert(b.Len(), []byte("🌍")); err != nil {
		t.Fatal(err)
	}

	it := buffer.NewIterator(b)
	for {
		_, ok, err := it.NextRune()
		if err != nil {
			t.Fatalf("NextRune: %v", err)
		}
		if !ok {
			break
		}
	}
}
