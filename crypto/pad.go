// Package crypto implements the pad-encryption capability: a one-time-pad
// store with the XOR encrypt/decrypt transform.
//
// Pads are derived per slot from a master seed with HKDF-SHA3, so a store
// re-created from the same seed yields identical pads on every party. The
// store performs the transform only; the allocation core's burn check is
// what guarantees a slot is never encrypted with twice.
package crypto

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/sha3"
)

// DefaultPadLength is the pad size in bytes, matching the reference
// implementation's 1024-byte pads.
const DefaultPadLength = 1024

var (
	// ErrEmptySeed is returned when a store is created without key material.
	ErrEmptySeed = errors.New("pad store seed must not be empty")

	// ErrMessageTooLong is returned when a plaintext or ciphertext exceeds
	// the pad length. Reusing pad bytes within a slot would break perfect
	// secrecy just like reusing the slot.
	ErrMessageTooLong = errors.New("message longer than pad")
)

// PadStore derives and caches per-slot one-time pads.
type PadStore struct {
	mu     sync.Mutex
	seed   []byte
	padLen int
	pads   map[int][]byte
}

// NewPadStore creates a store deriving pads of padLen bytes from seed.
// A non-positive padLen selects DefaultPadLength.
func NewPadStore(seed []byte, padLen int) (*PadStore, error) {
	if len(seed) == 0 {
		return nil, ErrEmptySeed
	}
	if padLen <= 0 {
		padLen = DefaultPadLength
	}
	s := &PadStore{
		seed:   append([]byte(nil), seed...),
		padLen: padLen,
		pads:   make(map[int][]byte),
	}
	return s, nil
}

// PadLength returns the per-slot pad size in bytes.
func (s *PadStore) PadLength() int {
	return s.padLen
}

func (s *PadStore) pad(slot int) ([]byte, error) {
	if slot < 0 {
		return nil, fmt.Errorf("negative pad slot %d", slot)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pads[slot]; ok {
		return p, nil
	}

	info := make([]byte, 8+8)
	copy(info, "otp-slot")
	binary.BigEndian.PutUint64(info[8:], uint64(slot))

	r := hkdf.New(sha3.New256, s.seed, nil, info)
	p := make([]byte, s.padLen)
	if _, err := io.ReadFull(r, p); err != nil {
		return nil, fmt.Errorf("derive pad for slot %d: %w", slot, err)
	}
	s.pads[slot] = p
	return p, nil
}

// Encrypt XORs plaintext with the slot's pad.
func (s *PadStore) Encrypt(slot int, plaintext []byte) ([]byte, error) {
	return s.xor(slot, plaintext)
}

// Decrypt XORs ciphertext with the slot's pad; the transform is its own
// inverse.
func (s *PadStore) Decrypt(slot int, ciphertext []byte) ([]byte, error) {
	return s.xor(slot, ciphertext)
}

func (s *PadStore) xor(slot int, in []byte) ([]byte, error) {
	p, err := s.pad(slot)
	if err != nil {
		return nil, err
	}
	if len(in) > len(p) {
		return nil, ErrMessageTooLong
	}
	out := make([]byte, len(in))
	for i := range in {
		out[i] = in[i] ^ p[i]
	}
	return out, nil
}

// NopCipher satisfies the pad-cipher contract without transforming anything.
// Allocation-only runs use it when no key material is involved.
type NopCipher struct{}

func (NopCipher) Encrypt(slot int, plaintext []byte) ([]byte, error) {
	return append([]byte(nil), plaintext...), nil
}

func (NopCipher) Decrypt(slot int, ciphertext []byte) ([]byte, error) {
	return append([]byte(nil), ciphertext...), nil
}
