package lodb

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strconv"
	"time"
)

// ID is an opaque 64-bit identifier naming a record within a table. Its
// numeric value carries no ordering semantics; it is used only as a
// file-naming key.
type ID uint64

// Hooks for the seedless derivation path. Overridden in tests for
// deterministic identifiers.
var (
	timeNow    = time.Now
	randUint32 = rand.Uint32
)

// Derive computes an ID by hashing seed bytes together with an 8-byte salt.
//
// If seed is nil, the input is synthesized as "timestamp:random" from the
// current wall clock (epoch seconds) and a random 32-bit value. The first 8
// bytes of the SHA-256 digest, in little-endian order, become the ID.
//
// Derive is deterministic for a given (seed, salt) pair. No collision
// handling is performed; callers relying on uniqueness across retries must
// vary the salt or the seed.
func Derive(seed []byte, salt uint64) ID {
	input := seed
	if input == nil {
		input = []byte(fmt.Sprintf("%d:%d", uint32(timeNow().Unix()), randUint32()))
	}

	h := sha256.New()
	h.Write(input)

	var saltBytes [8]byte
	binary.LittleEndian.PutUint64(saltBytes[:], salt)
	h.Write(saltBytes[:])

	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum[:8]))
}

// Hex renders the ID as a fixed 16-character lowercase hex string: the high
// 32 bits then the low 32 bits, each zero-padded to 8 digits. This is the
// record's file name stem.
func (id ID) Hex() string {
	return fmt.Sprintf("%08x%08x", uint32(id>>32), uint32(id))
}

// String implements fmt.Stringer using the Hex rendering.
func (id ID) String() string { return id.Hex() }

// ParseID is the inverse of Hex: exactly two 8-hex-digit groups. Any other
// format is rejected. Used to reconstruct identifiers from file names
// during a scan.
func ParseID(s string) (ID, error) {
	if len(s) != 16 {
		return 0, fmt.Errorf("parse id %q: want 16 hex digits: %w", s, ErrInvalid)
	}
	high, err := strconv.ParseUint(s[:8], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, ErrInvalid)
	}
	low, err := strconv.ParseUint(s[8:], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("parse id %q: %w", s, ErrInvalid)
	}
	return ID(high<<32 | low), nil
}
