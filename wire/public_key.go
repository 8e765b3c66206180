package wire

import "github.com/aerius-labs/koalabear-xmss/th"

// PublicKeySize is the fixed PublicKey wire size: P (5×4 bytes) || R
// (8×4 bytes) (spec.md §6).
const PublicKeySize = th.ParameterLenFE*feBytes + th.HashLenFE*feBytes

// PublicKeyToBytes encodes (P, R) as 52 little-endian bytes.
func PublicKeyToBytes(params th.Params, root th.Domain) []byte {
	out := make([]byte, PublicKeySize)
	putParams(out, params)
	putDomain(out[th.ParameterLenFE*feBytes:], root)
	return out
}

// PublicKeyFromBytes decodes a PublicKey, rejecting non-canonical
// field values and wrong lengths.
func PublicKeyFromBytes(data []byte) (th.Params, th.Domain, error) {
	if len(data) != PublicKeySize {
		return th.Params{}, th.Domain{}, ErrInvalidEncoding
	}
	params, err := getParams(data[:th.ParameterLenFE*feBytes])
	if err != nil {
		return th.Params{}, th.Domain{}, err
	}
	root, err := getDomain(data[th.ParameterLenFE*feBytes:])
	if err != nil {
		return th.Params{}, th.Domain{}, err
	}
	return params, root, nil
}
