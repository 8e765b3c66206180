package winternitz

import (
	"testing"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
	"github.com/aerius-labs/koalabear-xmss/th/message_hash"
)

func TestComputeChecksumLengthMatchesTeacherShape(t *testing.T) {
	// W=16 (w=4), 62 message chunks -> checksum must fit Σ(W-1-d_i) <= 62*15.
	got := ComputeChecksumLength(62, 16)
	if got <= 0 {
		t.Fatalf("checksum length must be positive, got %d", got)
	}
	maxChecksum := 62 * 15
	capacity := 1
	for i := 0; i < got; i++ {
		capacity *= 16
	}
	if capacity <= maxChecksum {
		t.Fatalf("checksum length %d cannot represent max checksum %d (capacity %d)", got, maxChecksum, capacity)
	}
}

func TestComputeChecksumLengthZeroDimension(t *testing.T) {
	if got := ComputeChecksumLength(0, 16); got != 1 {
		t.Fatalf("zero-dimension checksum length must default to 1, got %d", got)
	}
}

func TestEncodeSatisfiesIncomparabilityInvariant(t *testing.T) {
	mh := message_hash.NewPoseidonMessageHash(4, 8, 62, 16)
	checksumLen := ComputeChecksumLength(62, 16)
	enc := NewWinternitzEncoding(mh, checksumLen)

	var params th.Params
	for i := range params {
		params[i] = field.NewElement(uint64(i) + 1)
	}
	rho := make([]field.Element, enc.RandLenFE())
	for i := range rho {
		rho[i] = field.NewElement(uint64(i) + 9)
	}

	var msg [32]byte
	copy(msg[:], []byte("test message"))

	codeword, err := enc.Encode(params, msg, rho, 42)
	if err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	if len(codeword) != enc.Dimension() {
		t.Fatalf("codeword length = %d, want %d", len(codeword), enc.Dimension())
	}

	numMessage := mh.Dimension()
	messageSum := uint64(0)
	for _, d := range codeword[:numMessage] {
		messageSum += uint64(d)
	}

	// Reconstruct the checksum value from its little-endian base-W
	// digit decomposition and check it matches the checksum identity
	// the incomparable encoding relies on (spec.md §4.4/§8 property 7):
	// checksum == Σ(W-1-d_i) over the message digits.
	checksumValue := uint64(0)
	base := uint64(enc.Base())
	for i := len(codeword) - 1; i >= numMessage; i-- {
		checksumValue = checksumValue*base + uint64(codeword[i])
	}

	want := uint64(numMessage) * uint64(enc.Base()-1)
	if messageSum+checksumValue != want {
		t.Fatalf("Σ message digits (%d) + checksum value (%d) = %d, want %d", messageSum, checksumValue, messageSum+checksumValue, want)
	}
}

func TestNewWinternitzEncodingPanicsOnMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on incorrect checksum chunk count")
		}
	}()
	mh := message_hash.NewPoseidonMessageHash(4, 8, 62, 16)
	NewWinternitzEncoding(mh, 1)
}
