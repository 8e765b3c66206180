package xmss

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"

	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/internal/prf"
	"github.com/aerius-labs/koalabear-xmss/merkle"
	"github.com/aerius-labs/koalabear-xmss/th"
	"github.com/aerius-labs/koalabear-xmss/th/tweak_hash"
)

// secretKeyJSON is the persisted form of a SecretKey: the fields
// spec.md §6 requires (P, K, activation_epoch, num_active_epochs) plus
// the cached hyper-tree and RNG offset, so reload needs no RNG replay.
type secretKeyJSON struct {
	Parameter         string         `json:"parameter"`
	PRFKey            string         `json:"prf_key"`
	ActivationEpoch   uint32         `json:"activation_epoch"`
	NumActiveEpochs   uint32         `json:"num_active_epochs"`
	RngPosAfterKeyGen uint64         `json:"rng_pos_after_keygen"`
	DepthBottom       int            `json:"depth_bottom"`
	DepthTop          int            `json:"depth_top"`
	FirstTile         int            `json:"first_tile"`
	Bottoms           []subTreeJSON  `json:"bottoms"`
	Top               subTreeJSON    `json:"top"`
}

type subTreeJSON struct {
	LevelOffset int         `json:"level_offset"`
	Depth       int         `json:"depth"`
	Layers      []layerJSON `json:"layers"`
}

type layerJSON struct {
	StartIndex int      `json:"start_index"`
	Nodes      []string `json:"nodes"`
}

func encodeDomain(d th.Domain) string {
	buf := make([]byte, th.HashLenFE*4)
	for i, fe := range d {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(field.ToBigInt(fe).Uint64()))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func decodeDomain(s string) (th.Domain, error) {
	var d th.Domain
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return d, err
	}
	if len(buf) != th.HashLenFE*4 {
		return d, ErrInvalidEncoding
	}
	for i := 0; i < th.HashLenFE; i++ {
		v := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
		if uint64(v) >= field.P {
			return d, ErrInvalidFieldElement
		}
		d[i] = field.FromCanonicalU32(v)
	}
	return d, nil
}

func subTreeToJSON(t *merkle.SubTree) subTreeJSON {
	out := subTreeJSON{LevelOffset: t.LevelOffset(), Depth: t.Depth()}
	for _, layer := range t.Layers() {
		lj := layerJSON{StartIndex: layer.StartIndex}
		for _, n := range layer.Nodes {
			lj.Nodes = append(lj.Nodes, encodeDomain(n))
		}
		out.Layers = append(out.Layers, lj)
	}
	return out
}

func subTreeFromJSON(hash th.TweakableHash, params th.Params, sj subTreeJSON) (*merkle.SubTree, error) {
	layers := make([]merkle.Layer, 0, len(sj.Layers))
	for _, lj := range sj.Layers {
		nodes := make([]th.Domain, 0, len(lj.Nodes))
		for _, ns := range lj.Nodes {
			d, err := decodeDomain(ns)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, d)
		}
		layers = append(layers, merkle.Layer{StartIndex: lj.StartIndex, Nodes: nodes})
	}
	return merkle.NewSubTreeFromLayers(hash, params, sj.LevelOffset, sj.Depth, layers), nil
}

// MarshalJSON persists a SecretKey without touching the RNG: every
// field is read straight off the cached hyper-tree.
func (sk *SecretKey) MarshalJSON() ([]byte, error) {
	j := secretKeyJSON{
		Parameter:         encodeDomainSlice(sk.P[:]),
		PRFKey:            base64.StdEncoding.EncodeToString(sk.K[:]),
		ActivationEpoch:   sk.ActivationEpoch,
		NumActiveEpochs:   sk.NumActiveEpochs,
		RngPosAfterKeyGen: sk.RngPosAfterKeyGen,
		DepthBottom:       sk.Tree.DepthBottom(),
		DepthTop:          sk.Tree.DepthTop(),
		FirstTile:         sk.Tree.FirstTile(),
		Top:               subTreeToJSON(sk.Tree.Top()),
	}
	for _, b := range sk.Tree.Bottoms() {
		j.Bottoms = append(j.Bottoms, subTreeToJSON(b))
	}
	return json.Marshal(j)
}

// UnmarshalJSON reconstructs a SecretKey, including its cached
// hyper-tree, using the Poseidon2 tweakable hash directly — it needs
// no Scheme, since the tweakable hash has no per-lifetime state.
func (sk *SecretKey) UnmarshalJSON(data []byte) error {
	var j secretKeyJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}

	params, err := decodeDomainSliceParams(j.Parameter)
	if err != nil {
		return err
	}
	prfKey, err := base64.StdEncoding.DecodeString(j.PRFKey)
	if err != nil {
		return err
	}
	if len(prfKey) != prf.KeyLen {
		return ErrInvalidEncoding
	}

	hash := tweak_hash.NewPoseidonTweakHash()

	bottoms := make([]*merkle.SubTree, 0, len(j.Bottoms))
	for _, bj := range j.Bottoms {
		b, err := subTreeFromJSON(hash, params, bj)
		if err != nil {
			return err
		}
		bottoms = append(bottoms, b)
	}
	top, err := subTreeFromJSON(hash, params, j.Top)
	if err != nil {
		return err
	}

	sk.P = params
	copy(sk.K[:], prfKey)
	sk.ActivationEpoch = j.ActivationEpoch
	sk.NumActiveEpochs = j.NumActiveEpochs
	sk.RngPosAfterKeyGen = j.RngPosAfterKeyGen
	sk.Tree = merkle.NewHyperTreeFromParts(j.DepthBottom, j.DepthTop, j.FirstTile, bottoms, top)
	return nil
}

// LoadSecretKey unmarshals a persisted SecretKey and checks it against
// an independently-obtained PublicKey before returning it, so a
// mismatched reload (wrong file, wrong key pair) surfaces as
// ErrParameterMismatch instead of a silently broken Sign/Verify pair.
func LoadSecretKey(pk *PublicKey, data []byte) (*SecretKey, error) {
	sk := new(SecretKey)
	if err := json.Unmarshal(data, sk); err != nil {
		return nil, err
	}
	if err := ValidateKeyPair(pk, sk); err != nil {
		return nil, err
	}
	return sk, nil
}

func encodeDomainSlice(fes []field.Element) string {
	buf := make([]byte, len(fes)*4)
	for i, fe := range fes {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(field.ToBigInt(fe).Uint64()))
	}
	return base64.StdEncoding.EncodeToString(buf)
}

func decodeDomainSliceParams(s string) (th.Params, error) {
	var p th.Params
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return p, err
	}
	if len(buf) != th.ParameterLenFE*4 {
		return p, ErrInvalidEncoding
	}
	for i := 0; i < th.ParameterLenFE; i++ {
		v := binary.LittleEndian.Uint32(buf[i*4 : i*4+4])
		if uint64(v) >= field.P {
			return p, ErrInvalidFieldElement
		}
		p[i] = field.FromCanonicalU32(v)
	}
	return p, nil
}
