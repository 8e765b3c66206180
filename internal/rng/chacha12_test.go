package rng

import "testing"

func TestBlock12Deterministic(t *testing.T) {
	var key [32]byte
	var nonce [12]byte
	key[0] = 1
	nonce[0] = 2

	a := block12(key, nonce, 0)
	b := block12(key, nonce, 0)
	if a != b {
		t.Fatalf("block12 is not deterministic for identical inputs")
	}
}

func TestBlock12VariesWithCounter(t *testing.T) {
	var key [32]byte
	var nonce [12]byte

	b0 := block12(key, nonce, 0)
	b1 := block12(key, nonce, 1)
	if b0 == b1 {
		t.Fatalf("block12 output must depend on the block counter")
	}
}

func TestBlock12VariesWithKey(t *testing.T) {
	var key1, key2 [32]byte
	var nonce [12]byte
	key2[0] = 0xFF

	b1 := block12(key1, nonce, 0)
	b2 := block12(key2, nonce, 0)
	if b1 == b2 {
		t.Fatalf("block12 output must depend on the key")
	}
}

func TestBlock12VariesWithNonce(t *testing.T) {
	var key [32]byte
	var nonce1, nonce2 [12]byte
	nonce2[0] = 0xFF

	b1 := block12(key, nonce1, 0)
	b2 := block12(key, nonce2, 0)
	if b1 == b2 {
		t.Fatalf("block12 output must depend on the nonce")
	}
}

func TestBlock12IsNotAllZero(t *testing.T) {
	// A degenerate implementation that forgot to add the input state
	// back (feed-forward) would leak an all-zero or low-entropy block
	// for an all-zero key/nonce/counter.
	var key [32]byte
	var nonce [12]byte
	out := block12(key, nonce, 0)

	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatalf("block12 must not produce an all-zero keystream block for an all-zero input")
	}
}
