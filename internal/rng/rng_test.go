package rng

import (
	"testing"

	"github.com/aerius-labs/koalabear-xmss/field"
)

func seed(b byte) [32]byte {
	var s [32]byte
	for i := range s {
		s[i] = b
	}
	return s
}

func TestNextBytesDeterministic(t *testing.T) {
	a := NewFromSeed(seed(0x42))
	b := NewFromSeed(seed(0x42))

	got := a.NextBytes(100)
	want := b.NextBytes(100)
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("byte %d differs: %x vs %x", i, got[i], want[i])
		}
	}
}

func TestPeekDoesNotAdvance(t *testing.T) {
	r := NewFromSeed(seed(0x01))

	peeked := r.PeekBytes(20)
	if r.Pos() != 0 {
		t.Fatalf("PeekBytes advanced position to %d, want 0", r.Pos())
	}

	consumed := r.NextBytes(20)
	if r.Pos() != 20 {
		t.Fatalf("NextBytes left position at %d, want 20", r.Pos())
	}

	for i := range peeked {
		if peeked[i] != consumed[i] {
			t.Fatalf("byte %d: peeked %x != consumed %x", i, peeked[i], consumed[i])
		}
	}
}

func TestPeekThenContinueMatchesStraightRead(t *testing.T) {
	withPeek := NewFromSeed(seed(0x99))
	withPeek.PeekBytes(64)
	afterPeek := withPeek.NextBytes(16)

	straight := NewFromSeed(seed(0x99))
	direct := straight.NextBytes(16)

	for i := range afterPeek {
		if afterPeek[i] != direct[i] {
			t.Fatalf("byte %d diverged after an intervening peek", i)
		}
	}
}

func TestNextFieldElementsBelowModulus(t *testing.T) {
	r := NewFromSeed(seed(0xAB))
	fes := r.NextFieldElements(32)
	if len(fes) != 32 {
		t.Fatalf("got %d elements, want 32", len(fes))
	}
	for i, fe := range fes {
		if v := field.ToBigInt(fe).Uint64(); v >= field.P {
			t.Fatalf("element %d = %d is not below the modulus %d", i, v, field.P)
		}
	}
}

func TestSkipMatchesConsumedPosition(t *testing.T) {
	a := NewFromSeed(seed(0x10))
	a.NextBytes(37)

	b := NewFromSeed(seed(0x10))
	b.Skip(37)

	wantA := a.NextBytes(5)
	wantB := b.NextBytes(5)
	for i := range wantA {
		if wantA[i] != wantB[i] {
			t.Fatalf("byte %d differs after skip vs consume", i)
		}
	}
}
