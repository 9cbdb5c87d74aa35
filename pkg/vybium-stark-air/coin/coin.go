// Package coin derives pseudo-random field elements from a public
// transcript. Prover and verifier each build a RandomCoin over the same
// seed and draw the same element stream, which stands in for verifier
// randomness in the non-interactive protocol.
package coin

import (
	"encoding/binary"
	"fmt"
	"hash"
	"math/big"

	fiatshamir "github.com/consensys/gnark-crypto/fiat-shamir"

	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// RandomCoin draws a bounded stream of field elements from a Fiat-Shamir
// transcript. The number of draws is fixed at construction because the
// transcript pre-registers one challenge name per draw; challenges are
// chained, so element i depends on the seed and on all elements before it.
// The draw total is bound into the transcript with the seed, so two coins
// differing only in their totals produce unrelated streams rather than one
// being a prefix of the other.
//
// A coin is not safe for concurrent use; each party holds its own.
type RandomCoin struct {
	transcript *fiatshamir.Transcript
	next       int
	total      int
	modulus    *big.Int
}

// New creates a coin over the given hash and seed, able to produce exactly
// numDraws field elements
func New(h hash.Hash, seed []byte, numDraws int) (*RandomCoin, error) {
	if numDraws <= 0 {
		return nil, fmt.Errorf("random coin must allow at least one draw, got %d", numDraws)
	}
	if len(seed) == 0 {
		return nil, fmt.Errorf("random coin seed must not be empty")
	}

	names := make([]string, numDraws)
	for i := range names {
		names[i] = fmt.Sprintf("c.%d", i)
	}

	transcript := fiatshamir.NewTranscript(h, names...)
	if err := transcript.Bind(names[0], seed); err != nil {
		return nil, fmt.Errorf("failed to bind seed to transcript: %w", err)
	}

	var total [8]byte
	binary.BigEndian.PutUint64(total[:], uint64(numDraws))
	if err := transcript.Bind(names[0], total[:]); err != nil {
		return nil, fmt.Errorf("failed to bind draw count to transcript: %w", err)
	}

	return &RandomCoin{
		transcript: transcript,
		total:      numDraws,
		modulus:    new(big.Int).SetUint64(field.P),
	}, nil
}

// Draw produces the next field element of the stream; it fails once the
// coin is exhausted
func (c *RandomCoin) Draw() (field.Element, error) {
	if c.next >= c.total {
		return field.Zero, fmt.Errorf("random coin exhausted after %d draws", c.total)
	}

	challenge, err := c.transcript.ComputeChallenge(fmt.Sprintf("c.%d", c.next))
	if err != nil {
		return field.Zero, fmt.Errorf("failed to compute challenge %d: %w", c.next, err)
	}
	c.next++

	value := new(big.Int).SetBytes(challenge)
	value.Mod(value, c.modulus)
	return field.New(value.Uint64()), nil
}

// DrawPair produces the next two elements of the stream as an (alpha, beta)
// coefficient pair
func (c *RandomCoin) DrawPair() ([2]field.Element, error) {
	alpha, err := c.Draw()
	if err != nil {
		return [2]field.Element{}, err
	}
	beta, err := c.Draw()
	if err != nil {
		return [2]field.Element{}, err
	}
	return [2]field.Element{alpha, beta}, nil
}

// Remaining returns how many elements the coin can still produce
func (c *RandomCoin) Remaining() int {
	return c.total - c.next
}
