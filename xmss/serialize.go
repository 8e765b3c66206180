package xmss

import "github.com/aerius-labs/koalabear-xmss/wire"

// PublicKeyToBytes encodes pk per spec.md §6 (52 bytes: P || R).
func PublicKeyToBytes(pk *PublicKey) []byte {
	return wire.PublicKeyToBytes(pk.P, pk.R)
}

// PublicKeyFromBytes decodes a PublicKey, rejecting non-canonical
// field values.
func PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	p, r, err := wire.PublicKeyFromBytes(data)
	if err != nil {
		return nil, err
	}
	return &PublicKey{P: p, R: r}, nil
}

// SignatureToBytes encodes sig per spec.md §6's bincode-like layout.
func SignatureToBytes(sig *Signature) []byte {
	return wire.SignatureToBytes(sig.AuthPath, sig.Rho, sig.Hashes)
}

// SignatureFromBytes decodes a Signature for this scheme's lifetime,
// validating path_len == final_layer and hashes_len == num_chains.
func (s *Scheme) SignatureFromBytes(data []byte) (*Signature, error) {
	path, rho, hashes, err := wire.SignatureFromBytes(data, s.Lifetime.L, s.Lifetime.RandLenFE, s.encoding.Dimension())
	if err != nil {
		return nil, err
	}
	return &Signature{AuthPath: path, Rho: rho, Hashes: hashes}, nil
}
