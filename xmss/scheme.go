// Package xmss composes the field, Poseidon2, tweakable-hash,
// encoding, PRF and Merkle layers into the generalized XMSS scheme of
// spec.md §4.7: key generation, signing and verification.
package xmss

import (
	"sync"

	"github.com/aerius-labs/koalabear-xmss/encoding"
	"github.com/aerius-labs/koalabear-xmss/encoding/winternitz"
	"github.com/aerius-labs/koalabear-xmss/field"
	"github.com/aerius-labs/koalabear-xmss/internal/prf"
	"github.com/aerius-labs/koalabear-xmss/internal/rng"
	"github.com/aerius-labs/koalabear-xmss/merkle"
	"github.com/aerius-labs/koalabear-xmss/th"
	"github.com/aerius-labs/koalabear-xmss/th/tweak_hash"
)

// maxSignAttempts bounds the randomness search (spec.md §4.7's
// "implementation-defined bound").
const maxSignAttempts = 1 << 20

// PublicKey is (P, R): the shared parameter and the hyper-tree root
// (spec.md §3).
type PublicKey struct {
	P th.Params
	R th.Domain
}

// SecretKey is (P, K, activation range, cached hyper-tree) (spec.md
// §3). RngPosAfterKeyGen records where key generation left the ChaCha12
// stream, so Sign can reconstruct identical state from the seed alone
// (spec.md §9's "canonical path is seed-reconstruction") without
// replaying the whole tree build on every signature.
type SecretKey struct {
	P                  th.Params
	K                  [prf.KeyLen]byte
	ActivationEpoch    uint32
	NumActiveEpochs    uint32
	RngPosAfterKeyGen  uint64
	Tree               *merkle.HyperTree
}

// Signature is (AuthPath, ρ, Hashes) (spec.md §3).
type Signature struct {
	AuthPath []th.Domain
	Rho      []field.Element
	Hashes   []th.Domain
}

// Scheme binds one lifetime preset to its Winternitz shape, tweakable
// hash, and seed. Created once via InitWithSeed and reused across
// KeyGen/Sign/Verify calls (spec.md §6's initWithSeed entry point).
type Scheme struct {
	Lifetime Lifetime
	seed     [32]byte
	hash     th.TweakableHash
	encoding encoding.IncomparableEncoding
}

// ValidateKeyPair checks that pk and sk agree on the shared parameter P
// (spec.md §7's ParameterMismatch). Sign and Verify each see only one
// half of the pair, so nothing enforces this automatically; callers
// that reload a SecretKey from persistence and pair it with a PublicKey
// obtained separately should call this first. LoadSecretKey does so for
// the JSON persistence path.
func ValidateKeyPair(pk *PublicKey, sk *SecretKey) error {
	if pk.P != sk.P {
		return ErrParameterMismatch
	}
	return nil
}

// InitWithSeed builds a Scheme for lifetime, seeded deterministically
// from seed.
func InitWithSeed(lifetime Lifetime, seed [32]byte) *Scheme {
	messageHash := lifetime.newMessageHash()
	numChunksChecksum := winternitz.ComputeChecksumLength(winternitzNumChunksMsg, lifetime.Base)
	return &Scheme{
		Lifetime: lifetime,
		seed:     seed,
		hash:     tweak_hash.NewPoseidonTweakHash(),
		encoding: winternitz.NewWinternitzEncoding(messageHash, numChunksChecksum),
	}
}

// KeyGen runs spec.md §4.7 key generation for the given active range.
func (s *Scheme) KeyGen(activationEpoch, numActiveEpochs uint32) (*PublicKey, *SecretKey, error) {
	if uint64(activationEpoch)+uint64(numActiveEpochs) > uint64(1)<<uint(s.Lifetime.L) {
		return nil, nil, ErrEpochTooLarge
	}

	r := rng.NewFromSeed(s.seed)

	paramsFE := r.PeekFieldElements(th.ParameterLenFE)
	var params th.Params
	copy(params[:], paramsFE)

	prfKey := prf.KeyGen(r.NextBytes)

	numChains := s.encoding.Dimension()
	chainLength := s.encoding.Base()

	leaves := make([]th.Domain, numActiveEpochs)
	computeLeaf := func(offset uint32) {
		epoch := activationEpoch + offset
		chainEnds := make([]th.Domain, numChains)
		for c := 0; c < numChains; c++ {
			start := prf.Apply(prfKey, uint64(epoch), uint64(c))
			chainEnds[c] = th.Chain(s.hash, params, uint64(epoch), uint8(c), 0, chainLength-1, start)
		}
		leafTweak := th.TreeTweak(0, epoch)
		leaves[offset] = s.hash.Apply(params, leafTweak, chainEnds)
	}

	if numActiveEpochs > 10 {
		var wg sync.WaitGroup
		wg.Add(int(numActiveEpochs))
		for i := uint32(0); i < numActiveEpochs; i++ {
			go func(offset uint32) {
				defer wg.Done()
				computeLeaf(offset)
			}(i)
		}
		wg.Wait()
	} else {
		for i := uint32(0); i < numActiveEpochs; i++ {
			computeLeaf(i)
		}
	}

	tree := merkle.BuildHyperTree(r, s.hash, params, s.Lifetime.DepthBottom, s.Lifetime.DepthTop, activationEpoch, leaves)

	pk := &PublicKey{P: params, R: tree.Root()}
	sk := &SecretKey{
		P:                 params,
		K:                 prfKey,
		ActivationEpoch:   activationEpoch,
		NumActiveEpochs:   numActiveEpochs,
		RngPosAfterKeyGen: r.Pos(),
		Tree:              tree,
	}
	return pk, sk, nil
}

// Sign implements spec.md §4.7's sign(sk, epoch, msg).
func (s *Scheme) Sign(sk *SecretKey, epoch uint32, message [32]byte) (*Signature, error) {
	if epoch < sk.ActivationEpoch || epoch >= sk.ActivationEpoch+sk.NumActiveEpochs {
		return nil, ErrKeyNotActive
	}

	r := rng.NewFromSeed(s.seed)
	r.Skip(int(sk.RngPosAfterKeyGen))

	maxTries := s.encoding.MaxTries()
	if maxTries > maxSignAttempts {
		maxTries = maxSignAttempts
	}

	var codeword encoding.Codeword
	var rho []field.Element
	var err error
	attempts := 0
	for ; attempts < maxTries; attempts++ {
		rho = r.NextFieldElements(s.encoding.RandLenFE())
		codeword, err = s.encoding.Encode(sk.P, message, rho, uint64(epoch))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, &SigningError{Err: ErrRandomnessExhausted, Attempts: attempts}
	}

	numChains := s.encoding.Dimension()
	hashes := make([]th.Domain, numChains)
	computeHash := func(c int) {
		start := prf.Apply(sk.K, uint64(epoch), uint64(c))
		steps := int(codeword[c])
		hashes[c] = th.Chain(s.hash, sk.P, uint64(epoch), uint8(c), 0, steps, start)
	}

	if numChains > 20 {
		var wg sync.WaitGroup
		wg.Add(numChains)
		for c := 0; c < numChains; c++ {
			go func(chainIndex int) {
				defer wg.Done()
				computeHash(chainIndex)
			}(c)
		}
		wg.Wait()
	} else {
		for c := 0; c < numChains; c++ {
			computeHash(c)
		}
	}

	return &Signature{
		AuthPath: sk.Tree.Path(epoch),
		Rho:      rho,
		Hashes:   hashes,
	}, nil
}

// Verify implements spec.md §4.7's verify(pk, epoch, msg, signature).
func (s *Scheme) Verify(pk *PublicKey, epoch uint32, message [32]byte, sig *Signature) bool {
	if uint64(epoch) >= uint64(1)<<uint(s.Lifetime.L) {
		return false
	}
	if len(sig.AuthPath) != s.Lifetime.L {
		return false
	}
	numChains := s.encoding.Dimension()
	if len(sig.Hashes) != numChains {
		return false
	}

	codeword, err := s.encoding.Encode(pk.P, message, sig.Rho, uint64(epoch))
	if err != nil {
		return false
	}

	base := s.encoding.Base()
	chainEnds := make([]th.Domain, numChains)
	for c, digit := range codeword {
		steps := base - 1 - int(digit)
		chainEnds[c] = th.Chain(s.hash, pk.P, uint64(epoch), uint8(c), uint8(digit), steps, sig.Hashes[c])
	}

	leafTweak := th.TreeTweak(0, epoch)
	leaf := s.hash.Apply(pk.P, leafTweak, chainEnds)

	return merkle.VerifyHyperPath(s.hash, pk.P, pk.R, epoch, leaf, sig.AuthPath, s.Lifetime.DepthBottom, s.Lifetime.DepthTop)
}
