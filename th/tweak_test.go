package th

import (
	"testing"

	"github.com/aerius-labs/koalabear-xmss/field"
)

func TestDecomposeBasePRoundTrips(t *testing.T) {
	values := []uint64{0, 1, field.P - 1, field.P, field.P + 1, 1 << 40, ChainTweak(12345, 7, 9), TreeTweak(3, 999)}

	for _, v := range values {
		fes := DecomposeBaseP(v, 2)
		recomposed := field.ToBigInt(fes[1]).Uint64()*field.P + field.ToBigInt(fes[0]).Uint64()
		if recomposed != v {
			t.Fatalf("DecomposeBaseP(%d) round-trip gave %d", v, recomposed)
		}
	}
}

func TestTweaksAreDomainSeparated(t *testing.T) {
	chain := ChainTweak(1, 2, 3)
	tree := TreeTweak(1, 2)
	msg := MessageTweak(1)

	if chain == tree || chain == msg || tree == msg {
		t.Fatalf("chain/tree/message tweaks must never collide: %d %d %d", chain, tree, msg)
	}
}

func TestChainTweakVariesPerField(t *testing.T) {
	base := ChainTweak(1, 2, 3)
	if ChainTweak(2, 2, 3) == base {
		t.Fatalf("epoch must affect chain tweak")
	}
	if ChainTweak(1, 3, 3) == base {
		t.Fatalf("chain index must affect chain tweak")
	}
	if ChainTweak(1, 2, 4) == base {
		t.Fatalf("position in chain must affect chain tweak")
	}
}
