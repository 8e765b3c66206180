// Package wire implements the byte-exact encoders/decoders of
// spec.md §6: canonical little-endian field elements, the fixed
// PublicKey layout, and the bincode-like Signature layout.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/th"
)

// ErrInvalidFieldElement is returned when a wire value is >= p.
var ErrInvalidFieldElement = errors.New("wire: field element value is not canonical (>= p)")

// ErrInvalidEncoding is returned on truncation, length mismatch, or
// non-zero trailing padding.
var ErrInvalidEncoding = errors.New("wire: malformed encoding")

const feBytes = 4

func putFieldElement(dst []byte, fe field.Element) {
	v := field.ToBigInt(fe).Uint64()
	binary.LittleEndian.PutUint32(dst, uint32(v))
}

func getFieldElement(src []byte) (field.Element, error) {
	v := binary.LittleEndian.Uint32(src)
	if uint64(v) >= field.P {
		return field.Element{}, ErrInvalidFieldElement
	}
	return field.FromCanonicalU32(v), nil
}

func putDomain(dst []byte, d th.Domain) {
	for i, fe := range d {
		putFieldElement(dst[i*feBytes:], fe)
	}
}

func getDomain(src []byte) (th.Domain, error) {
	var d th.Domain
	for i := 0; i < th.HashLenFE; i++ {
		fe, err := getFieldElement(src[i*feBytes : i*feBytes+feBytes])
		if err != nil {
			return th.Domain{}, err
		}
		d[i] = fe
	}
	return d, nil
}

func putParams(dst []byte, p th.Params) {
	for i, fe := range p {
		putFieldElement(dst[i*feBytes:], fe)
	}
}

func getParams(src []byte) (th.Params, error) {
	var p th.Params
	for i := 0; i < th.ParameterLenFE; i++ {
		fe, err := getFieldElement(src[i*feBytes : i*feBytes+feBytes])
		if err != nil {
			return th.Params{}, err
		}
		p[i] = fe
	}
	return p, nil
}

func needBytes(buf []byte, n int) error {
	if len(buf) < n {
		return fmt.Errorf("%w: need %d bytes, have %d", ErrInvalidEncoding, n, len(buf))
	}
	return nil
}
