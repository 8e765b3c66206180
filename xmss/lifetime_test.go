package xmss

import (
	"errors"
	"testing"
)

func TestParseLifetimeTagAliases(t *testing.T) {
	cases := map[string]string{
		"2^8":           "lifetime_2_8",
		"256":           "lifetime_2_8",
		"LIFETIME_2_8":  "lifetime_2_8",
		"  lifetime_2_8 ": "lifetime_2_8",
		"2^18":          "lifetime_2_18",
		"262144":        "lifetime_2_18",
		"2^32":          "lifetime_2_32",
		"4294967296":    "lifetime_2_32",
	}
	for input, wantTag := range cases {
		lt, err := ParseLifetimeTag(input)
		if err != nil {
			t.Fatalf("ParseLifetimeTag(%q): %v", input, err)
		}
		if lt.Tag != wantTag {
			t.Fatalf("ParseLifetimeTag(%q).Tag = %q, want %q", input, lt.Tag, wantTag)
		}
	}
}

func TestParseLifetimeTagRejectsUnknown(t *testing.T) {
	if _, err := ParseLifetimeTag("lifetime_2_99"); !errors.Is(err, ErrInvalidLifetime) {
		t.Fatalf("got %v, want ErrInvalidLifetime", err)
	}
}

func TestLifetimePresetsHaveConsistentShape(t *testing.T) {
	for _, lt := range []Lifetime{Lifetime2_8(), Lifetime2_18(), Lifetime2_32()} {
		if lt.DepthTop+lt.DepthBottom != lt.L {
			t.Fatalf("%s: DepthTop(%d)+DepthBottom(%d) != L(%d)", lt.Tag, lt.DepthTop, lt.DepthBottom, lt.L)
		}
		if lt.LeavesPerBottomTree != 1<<lt.DepthBottom {
			t.Fatalf("%s: LeavesPerBottomTree(%d) != 2^DepthBottom(%d)", lt.Tag, lt.LeavesPerBottomTree, 1<<lt.DepthBottom)
		}
		if lt.NumChains <= winternitzNumChunksMsg {
			t.Fatalf("%s: NumChains(%d) must exceed the message digit count alone", lt.Tag, lt.NumChains)
		}
	}
}

func TestLifetimeDepthsDiffer(t *testing.T) {
	l8, l18, l32 := Lifetime2_8(), Lifetime2_18(), Lifetime2_32()
	if l8.L == l18.L || l18.L == l32.L {
		t.Fatalf("lifetime presets must have distinct L")
	}
}
