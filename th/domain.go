// Package th implements the tweakable-hash construction (spec.md §4.3):
// domain-separated Poseidon2 sponges for chain hashing, tree hashing
// and the shared hash-chain walk.
package th

import "github.com/aerius-labs/koalabear-xmss/field"

// HashLenFE is the fixed width of a domain element, in field elements
// (spec.md §3: "hash_len_fe (= 8)").
const HashLenFE = 8

// ParameterLenFE is the fixed width of the public parameter P, in
// field elements (spec.md §3: "parameter_len_fe (= 5)").
const ParameterLenFE = 5

// TweakLenFE is the fixed width a packed tweak decomposes into
// (spec.md §4.3).
const TweakLenFE = 2

// Domain is a single hash/node value: an ordered sequence of 8
// KoalaBear field elements (spec.md §3's "domain8").
type Domain [HashLenFE]field.Element

// Params is the public parameter P: 5 field elements, fixed at
// key-gen and shared read-only afterwards.
type Params [ParameterLenFE]field.Element

// Byte encoding and decoding of Domain/Params live in the wire package
// (putDomain/getDomain, putParams/getParams), which owns canonical <-> field-element conversion and the
// InvalidFieldElement rejection spec.md §7 requires at trust
// boundaries. This package only ever produces Domain/Params values
// from arithmetic, never from untrusted bytes.
