package game

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"

	"rpsduel/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrInvalidMove   = errors.New("invalid move")
	ErrInvalidSender = errors.New("invalid sender address")
)

// CommitID derives the commitment identifier for a hidden move.
//
// The hash covers the engine instance tag, the sender address, the move and
// the caller-supplied secret, with length prefixes so distinct tuples cannot
// collide by concatenation. The instance tag keeps a commitment from being
// replayed against another engine instance.
//
// The move space is only three values, so the secret carries all the
// entropy: without a high-entropy secret an opponent can brute-force the
// hidden move from the commitment alone. Use NewSecret unless the caller
// brings its own entropy.
func CommitID(instance, sender string, move domain.Move, secret string) (string, error) {
	if !move.Valid() {
		return "", ErrInvalidMove
	}
	if sender == "" {
		return "", ErrInvalidSender
	}

	h := sha256.New()
	writeField(h, []byte(instance))
	writeField(h, []byte(sender))

	var mv [4]byte
	binary.BigEndian.PutUint32(mv[:], uint32(move))
	writeField(h, mv[:])

	writeField(h, []byte(secret))
	return hex.EncodeToString(h.Sum(nil)), nil
}

func writeField(h interface{ Write(p []byte) (int, error) }, b []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(b)))
	h.Write(n[:])
	h.Write(b)
}

// NewSecret returns a fresh random secret suitable for a commitment.
func NewSecret() string {
	return uuid.NewString()
}
