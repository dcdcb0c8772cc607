package chess

import (
	"os"
	"path/filepath"
	"testing"

	"chesscore/internal/testutil"
)

func TestKeyIndexLayout(t *testing.T) {
	cases := []struct {
		p    Piece
		want int
	}{
		{Piece{Type: PiecePawn, Side: Black}, 0},
		{Piece{Type: PieceKing, Side: Black}, 5},
		{Piece{Type: PiecePawn, Side: White}, 6},
		{Piece{Type: PieceKing, Side: White}, 11},
	}
	for _, tc := range cases {
		if got := keyIndex(tc.p); got != tc.want {
			t.Fatalf("keyIndex(%v): got=%d want=%d", tc.p, got, tc.want)
		}
	}
}

func TestHashStableAcrossDecodeAndClone(t *testing.T) {
	keys := GenerateKeys()
	start := NewBoard(keys)
	decoded, _, err := DecodeFEN(StartFEN, keys)
	testutil.AssertNoError(t, err)
	if start.ZobristHash() != decoded.ZobristHash() {
		t.Fatalf("start hash mismatch: got=%d want=%d", decoded.ZobristHash(), start.ZobristHash())
	}
	if c := start.Clone(); c.ZobristHash() != start.ZobristHash() {
		t.Fatalf("clone hash mismatch")
	}
}

func TestHashIsSumOfSquareKeys(t *testing.T) {
	keys := GenerateKeys()
	b, _, err := DecodeFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 1", keys)
	testutil.AssertNoError(t, err)
	e1, e8 := Sq(7, 4), Sq(0, 4)
	want := keys[e1.Index()][11] ^ keys[e8.Index()][5]
	if got := b.ZobristHash(); got != want {
		t.Fatalf("hash: got=%d want=%d", got, want)
	}
}

func TestKeyFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "internal", "zobrist.bin")

	first, err := LoadOrCreateKeys(path)
	testutil.AssertNoError(t, err)
	info, err := os.Stat(path)
	testutil.AssertNoError(t, err)
	if info.Size() != keyFileSize {
		t.Fatalf("key file size: got=%d want=%d", info.Size(), keyFileSize)
	}

	second, err := LoadOrCreateKeys(path)
	testutil.AssertNoError(t, err)
	if *first != *second {
		t.Fatalf("reloaded keys differ from generated keys")
	}
}

func TestKeyFileLayout(t *testing.T) {
	var k Keys
	k[0][0] = 0x0102030405060708
	k[63][11] = 42
	data := EncodeKeys(&k)
	if len(data) != keyFileSize {
		t.Fatalf("encoded size: got=%d want=%d", len(data), keyFileSize)
	}
	if data[0] != 64 {
		t.Fatalf("record count prefix: got=%d want=64", data[0])
	}
	if data[8] != 0x08 || data[15] != 0x01 {
		t.Fatalf("first key not little endian: % x", data[8:16])
	}
	decoded, err := DecodeKeys(data)
	testutil.AssertNoError(t, err)
	if *decoded != k {
		t.Fatalf("decode(encode(k)) != k")
	}
}

func TestCorruptKeyFileIsRegenerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zobrist.bin")
	if err := os.WriteFile(path, []byte("not a key table"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := DecodeKeys([]byte("not a key table"))
	testutil.AssertErrorIs(t, err, ErrKeyFile)

	k, err := LoadOrCreateKeys(path)
	testutil.AssertNoError(t, err)
	data, err := os.ReadFile(path)
	testutil.AssertNoError(t, err)
	reread, err := DecodeKeys(data)
	testutil.AssertNoError(t, err)
	if *reread != *k {
		t.Fatalf("regenerated keys were not persisted")
	}
}

func TestDefaultKeysInitializedOnce(t *testing.T) {
	if DefaultKeys() != DefaultKeys() {
		t.Fatalf("default keys should be a single table")
	}
	if NewBoard(nil).Keys() != DefaultKeys() {
		t.Fatalf("nil keys should fall back to the default table")
	}
}
