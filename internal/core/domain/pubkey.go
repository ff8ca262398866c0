package domain

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// PubkeySize is the byte length of identities and derived addresses.
const PubkeySize = 32

// ErrInvalidPubkey is returned when text or bytes do not encode a 32-byte key.
var ErrInvalidPubkey = errors.New("invalid pubkey")

// Pubkey is a 32-byte identity or account address. Its text form is base58.
type Pubkey [PubkeySize]byte

// ParsePubkey decodes a base58 string into a Pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	raw := base58.Decode(s)
	if len(raw) != PubkeySize {
		return Pubkey{}, fmt.Errorf("%w: %q decodes to %d bytes", ErrInvalidPubkey, s, len(raw))
	}
	var p Pubkey
	copy(p[:], raw)
	return p, nil
}

// MustParsePubkey is ParsePubkey for constants; it panics on bad input.
func MustParsePubkey(s string) Pubkey {
	p, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return p
}

// PubkeyFromBytes copies a 32-byte slice into a Pubkey.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	if len(b) != PubkeySize {
		return Pubkey{}, fmt.Errorf("%w: got %d bytes", ErrInvalidPubkey, len(b))
	}
	var p Pubkey
	copy(p[:], b)
	return p, nil
}

func (p Pubkey) String() string {
	return base58.Encode(p[:])
}

// Bytes returns a copy of the key bytes.
func (p Pubkey) Bytes() []byte {
	b := make([]byte, PubkeySize)
	copy(b, p[:])
	return b
}

func (p Pubkey) IsZero() bool {
	return p == Pubkey{}
}

// Compare orders keys bytewise; used to lock balances in a stable order.
func (p Pubkey) Compare(other Pubkey) int {
	return bytes.Compare(p[:], other[:])
}

func (p Pubkey) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Pubkey) UnmarshalText(text []byte) error {
	parsed, err := ParsePubkey(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
