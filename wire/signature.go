package wire

import (
	"encoding/binary"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
)

const domainBytes = th.HashLenFE * feBytes

// SignatureToBytes encodes a Signature as the bincode-like layout of
// spec.md §6: u64 path_len, path, ρ (fixed randLenFE lanes, no length
// prefix), u64 hashes_len, hashes.
func SignatureToBytes(path []th.Domain, rho []field.Element, hashes []th.Domain) []byte {
	size := 8 + len(path)*domainBytes + len(rho)*feBytes + 8 + len(hashes)*domainBytes
	out := make([]byte, size)

	off := 0
	binary.LittleEndian.PutUint64(out[off:], uint64(len(path)))
	off += 8
	for _, d := range path {
		putDomain(out[off:], d)
		off += domainBytes
	}
	for _, fe := range rho {
		putFieldElement(out[off:], fe)
		off += feBytes
	}
	binary.LittleEndian.PutUint64(out[off:], uint64(len(hashes)))
	off += 8
	for _, d := range hashes {
		putDomain(out[off:], d)
		off += domainBytes
	}
	return out
}

// SignatureFromBytes decodes a Signature, validating that path_len
// equals expectedPathLen and hashes_len equals expectedNumChains
// (spec.md §6's invariants) and that any trailing bytes beyond the
// decoded fields are all zero.
func SignatureFromBytes(data []byte, expectedPathLen, randLenFE, expectedNumChains int) (path []th.Domain, rho []field.Element, hashes []th.Domain, err error) {
	if err := needBytes(data, 8); err != nil {
		return nil, nil, nil, err
	}
	pathLen := binary.LittleEndian.Uint64(data[:8])
	if pathLen != uint64(expectedPathLen) {
		return nil, nil, nil, ErrInvalidEncoding
	}
	off := 8

	path = make([]th.Domain, pathLen)
	for i := range path {
		if err := needBytes(data[off:], domainBytes); err != nil {
			return nil, nil, nil, err
		}
		d, err := getDomain(data[off : off+domainBytes])
		if err != nil {
			return nil, nil, nil, err
		}
		path[i] = d
		off += domainBytes
	}

	rho = make([]field.Element, randLenFE)
	for i := range rho {
		if err := needBytes(data[off:], feBytes); err != nil {
			return nil, nil, nil, err
		}
		fe, err := getFieldElement(data[off : off+feBytes])
		if err != nil {
			return nil, nil, nil, err
		}
		rho[i] = fe
		off += feBytes
	}

	if err := needBytes(data[off:], 8); err != nil {
		return nil, nil, nil, err
	}
	hashesLen := binary.LittleEndian.Uint64(data[off : off+8])
	if hashesLen != uint64(expectedNumChains) {
		return nil, nil, nil, ErrInvalidEncoding
	}
	off += 8

	hashes = make([]th.Domain, hashesLen)
	for i := range hashes {
		if err := needBytes(data[off:], domainBytes); err != nil {
			return nil, nil, nil, err
		}
		d, err := getDomain(data[off : off+domainBytes])
		if err != nil {
			return nil, nil, nil, err
		}
		hashes[i] = d
		off += domainBytes
	}

	for _, b := range data[off:] {
		if b != 0 {
			return nil, nil, nil, ErrInvalidEncoding
		}
	}

	return path, rho, hashes, nil
}
