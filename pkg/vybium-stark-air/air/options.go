package air

import (
	"crypto/sha256"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"

	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

const (
	// MinBlowupFactor is the smallest supported low-degree-extension blowup
	MinBlowupFactor = 2

	// MaxBlowupFactor is the largest supported low-degree-extension blowup
	MaxBlowupFactor = 128

	// MaxQueries is the largest supported number of queries
	MaxQueries = 128

	// MaxGrindingBits is the largest supported proof-of-work requirement
	MaxGrindingBits = 32
)

// FieldExtension represents the degree of the field extension used for
// drawing composition randomness; extensions trade prover time for
// soundness when the base field is small
type FieldExtension int

const (
	// ExtensionNone draws randomness directly from the base field
	ExtensionNone FieldExtension = 1

	// ExtensionQuadratic draws randomness from a degree-2 extension
	ExtensionQuadratic FieldExtension = 2

	// ExtensionCubic draws randomness from a degree-3 extension
	ExtensionCubic FieldExtension = 3
)

// HashChoice selects the hash function backing the public-coin transcript
type HashChoice int

const (
	// HashBlake2b256 selects BLAKE2b with a 256-bit digest
	HashBlake2b256 HashChoice = iota

	// HashSha3_256 selects SHA3-256
	HashSha3_256

	// HashSha2_256 selects SHA-256
	HashSha2_256
)

// New returns a fresh instance of the selected hash function
func (h HashChoice) New() (hash.Hash, error) {
	switch h {
	case HashBlake2b256:
		return blake2b.New256(nil)
	case HashSha3_256:
		return sha3.New256(), nil
	case HashSha2_256:
		return sha256.New(), nil
	default:
		return nil, newError(ErrInvalidProofOptions, "unsupported hash choice %d", int(h))
	}
}

// String returns the canonical name of the hash function
func (h HashChoice) String() string {
	switch h {
	case HashBlake2b256:
		return "blake2b-256"
	case HashSha3_256:
		return "sha3-256"
	case HashSha2_256:
		return "sha2-256"
	default:
		return "unknown"
	}
}

// ProofOptions holds the soundness and performance knobs for STARK proof
// generation. The options are consumed, never computed, by this layer:
// whether a blowup factor is large enough for a particular computation is
// checked when the AirContext is built.
type ProofOptions struct {
	blowupFactor   int
	numQueries     int
	grindingBits   int
	fieldExtension FieldExtension
	hash           HashChoice
}

// NewProofOptions creates a validated set of proof options
func NewProofOptions(blowupFactor, numQueries, grindingBits int,
	extension FieldExtension, hash HashChoice,
) (ProofOptions, error) {
	if blowupFactor < MinBlowupFactor || blowupFactor > MaxBlowupFactor {
		return ProofOptions{}, newError(ErrInvalidProofOptions,
			"blowup factor must be between %d and %d, got %d", MinBlowupFactor, MaxBlowupFactor, blowupFactor)
	}
	if !utils.IsPowerOfTwo(blowupFactor) {
		return ProofOptions{}, newError(ErrInvalidProofOptions,
			"blowup factor must be a power of 2, got %d", blowupFactor)
	}
	if numQueries < 1 || numQueries > MaxQueries {
		return ProofOptions{}, newError(ErrInvalidProofOptions,
			"number of queries must be between 1 and %d, got %d", MaxQueries, numQueries)
	}
	if grindingBits < 0 || grindingBits > MaxGrindingBits {
		return ProofOptions{}, newError(ErrInvalidProofOptions,
			"grinding bits must be between 0 and %d, got %d", MaxGrindingBits, grindingBits)
	}
	switch extension {
	case ExtensionNone, ExtensionQuadratic, ExtensionCubic:
	default:
		return ProofOptions{}, newError(ErrInvalidProofOptions,
			"field extension degree must be 1, 2 or 3, got %d", int(extension))
	}
	if _, err := hash.New(); err != nil {
		return ProofOptions{}, err
	}

	return ProofOptions{
		blowupFactor:   blowupFactor,
		numQueries:     numQueries,
		grindingBits:   grindingBits,
		fieldExtension: extension,
		hash:           hash,
	}, nil
}

// DefaultProofOptions returns options targeting roughly 100-bit security
// for typical computations
func DefaultProofOptions() ProofOptions {
	return ProofOptions{
		blowupFactor:   8,
		numQueries:     28,
		grindingBits:   16,
		fieldExtension: ExtensionNone,
		hash:           HashBlake2b256,
	}
}

// BlowupFactor returns the ratio between the low-degree-extension domain
// size and the trace length
func (o ProofOptions) BlowupFactor() int {
	return o.blowupFactor
}

// NumQueries returns the number of queries made against the extended domain
func (o ProofOptions) NumQueries() int {
	return o.numQueries
}

// GrindingBits returns the proof-of-work requirement on the query seed
func (o ProofOptions) GrindingBits() int {
	return o.grindingBits
}

// FieldExtension returns the field extension degree used for randomness
func (o ProofOptions) FieldExtension() FieldExtension {
	return o.fieldExtension
}

// Hash returns the hash function backing the transcript
func (o ProofOptions) Hash() HashChoice {
	return o.hash
}

// SecurityLevel returns a conservative estimate of the proof soundness in
// bits: one bit per query per log2(blowup), plus the grinding requirement
func (o ProofOptions) SecurityLevel() int {
	return o.numQueries*utils.Log2(o.blowupFactor) + o.grindingBits
}

// WithBlowupFactor returns a copy of the options with the given blowup factor
func (o ProofOptions) WithBlowupFactor(blowupFactor int) (ProofOptions, error) {
	return NewProofOptions(blowupFactor, o.numQueries, o.grindingBits, o.fieldExtension, o.hash)
}

// WithNumQueries returns a copy of the options with the given query count
func (o ProofOptions) WithNumQueries(numQueries int) (ProofOptions, error) {
	return NewProofOptions(o.blowupFactor, numQueries, o.grindingBits, o.fieldExtension, o.hash)
}

// WithGrindingBits returns a copy of the options with the given grinding requirement
func (o ProofOptions) WithGrindingBits(grindingBits int) (ProofOptions, error) {
	return NewProofOptions(o.blowupFactor, o.numQueries, grindingBits, o.fieldExtension, o.hash)
}

// WithHash returns a copy of the options with the given hash choice
func (o ProofOptions) WithHash(hash HashChoice) (ProofOptions, error) {
	return NewProofOptions(o.blowupFactor, o.numQueries, o.grindingBits, o.fieldExtension, hash)
}
