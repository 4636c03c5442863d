// Package cipher implements two classical ciphers built on alphabet permutations:
// monoalphabetic substitution and the Jefferson wheel.
//
// They offer no security, randomness is passed in explicitly so runs can be replayed.
package cipher

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
)

var (
	ErrUnknownSymbol = errors.New("symbol not in alphabet")
	ErrBlockTooLong  = errors.New("message longer than the number of wheels")
	ErrInvalidKey    = errors.New("key isn't a permutation of the alphabet")
	ErrNoWheels      = errors.New("need at least one wheel")
)

// DefaultAlphabet is the uppercase English letters.
var DefaultAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

// GenerateKey returns a random permutation of alphabet.
func GenerateKey(alphabet []rune, rng *rand.Rand) []rune {
	key := slices.Clone(alphabet)
	rng.Shuffle(len(key), func(i, j int) {
		key[i], key[j] = key[j], key[i]
	})
	return key
}

// Substitution is a monoalphabetic substitution cipher: Alphabet[i] encrypts to Key[i].
type Substitution struct {
	Alphabet []rune
	Key      []rune
}

func NewSubstitution(alphabet, key []rune) (Substitution, error) {
	sorted := func(r []rune) []rune {
		s := slices.Clone(r)
		slices.Sort(s)
		return s
	}
	if !slices.Equal(sorted(alphabet), sorted(key)) {
		return Substitution{}, ErrInvalidKey
	}
	return Substitution{Alphabet: alphabet, Key: key}, nil
}

// Encrypt substitutes every rune of msg in the alphabet, others are left as is.
func (s Substitution) Encrypt(msg string) string {
	return permute(msg, s.Alphabet, s.Key)
}

func (s Substitution) Decrypt(ctx string) string {
	return permute(ctx, s.Key, s.Alphabet)
}

func permute(msg string, from, to []rune) string {
	var sb strings.Builder
	for _, r := range msg {
		if i := slices.Index(from, r); i >= 0 {
			sb.WriteRune(to[i])
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// Wheels are the discs of a Jefferson wheel cipher, each a permutation of the same alphabet.
// Symbol i of a message is enciphered with wheel i.
type Wheels [][]rune

func GenerateWheels(n int, alphabet []rune, rng *rand.Rand) (Wheels, error) {
	if n < 1 {
		return nil, fmt.Errorf("%d wheels: %w", n, ErrNoWheels)
	}

	wheels := make(Wheels, n)
	for i := range wheels {
		wheels[i] = GenerateKey(alphabet, rng)
	}
	return wheels, nil
}

// Encrypt enciphers one block: each symbol is replaced by the one offset positions further
// along its wheel. Negative offsets go backwards, so Encrypt(Encrypt(m, k), -k) is m.
func (w Wheels) Encrypt(msg string, offset int) (string, error) {
	runes := []rune(msg)
	if len(runes) > len(w) {
		return "", fmt.Errorf("%d symbols, %d wheels: %w", len(runes), len(w), ErrBlockTooLong)
	}

	out := make([]rune, len(runes))
	for i, r := range runes {
		wheel := w[i]
		pos := slices.Index(wheel, r)
		if pos < 0 {
			return "", fmt.Errorf("%q at %d: %w", r, i, ErrUnknownSymbol)
		}
		out[i] = wheel[mod(pos+offset, len(wheel))]
	}

	return string(out), nil
}

// Decrypt returns every possible decryption of one block, one per non zero offset.
func (w Wheels) Decrypt(ctx string) ([]string, error) {
	if len(w) == 0 {
		return nil, nil
	}

	var msgs []string
	for offset := 1; offset < len(w[0]); offset++ {
		msg, err := w.Encrypt(ctx, -offset)
		if err != nil {
			return nil, err
		}
		msgs = append(msgs, msg)
	}

	return msgs, nil
}

// RandomOffset picks a non zero offset, so the ciphertext differs from the message.
func (w Wheels) RandomOffset(rng *rand.Rand) int {
	if len(w) == 0 || len(w[0]) < 2 {
		return 0
	}
	return 1 + rng.IntN(len(w[0])-1)
}

func mod(a, n int) int {
	return ((a % n) + n) % n
}
