package vcrypt

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"go.afab.re/vcrypt/bitmatrix"
)

var ErrRole = errors.New("wrong share role")

type Role int

const (
	// Key is the random share.
	Key Role = iota
	// Data is the source XOR the key.
	Data
)

func (r Role) String() string {
	switch r {
	case Key:
		return "key"
	case Data:
		return "data"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Share is one half of a split image.
type Share struct {
	Role Role
	bitmatrix.Matrix
}

// Split splits source into a random key share drawn from rng, and the matching data share.
func Split(source bitmatrix.Matrix, rng rand.Source) (key, data Share, err error) {
	k, err := bitmatrix.Random(source.Rows(), source.Cols(), rng)
	if err != nil {
		return Share{}, Share{}, fmt.Errorf("key: %w", err)
	}

	d, err := bitmatrix.Xor(source, k)
	if err != nil {
		return Share{}, Share{}, fmt.Errorf("data: %w", err)
	}

	return Share{Key, k}, Share{Data, d}, nil
}

// Reveal recombines a key and data share into the source.
func Reveal(key, data Share) (bitmatrix.Matrix, error) {
	if key.Role != Key || data.Role != Data {
		return bitmatrix.Matrix{}, fmt.Errorf("expected key and data, got %v and %v: %w", key.Role, data.Role, ErrRole)
	}
	return bitmatrix.Xor(data.Matrix, key.Matrix)
}
