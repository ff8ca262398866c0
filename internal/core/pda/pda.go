// Package pda derives deterministic record addresses from a tag, an identity
// and the program id. A derived address is never a valid ed25519 public key,
// so no private key can ever sign for it.
package pda

import (
	"errors"
	"fmt"

	"donation-ledger/internal/core/domain"

	"filippo.io/edwards25519"
	"lukechampine.com/blake3"
)

// MaxSeedLen bounds each seed, matching the identity size.
const MaxSeedLen = 32

const domainMarker = "ProgramDerivedAddress"

var (
	ErrSeedTooLong  = errors.New("pda: seed exceeds 32 bytes")
	ErrOnCurve      = errors.New("pda: address lies on the ed25519 curve")
	ErrNoViableBump = errors.New("pda: no viable bump seed")
)

// Deriver binds derivation to one program id.
type Deriver struct {
	programID domain.Pubkey
}

func NewDeriver(programID domain.Pubkey) *Deriver {
	return &Deriver{programID: programID}
}

func (d *Deriver) ProgramID() domain.Pubkey { return d.programID }

// Find searches bumps from 255 down and returns the first off-curve address.
// The result depends only on the inputs.
func (d *Deriver) Find(tag string, identity domain.Pubkey) (domain.Pubkey, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := d.Create(tag, identity, uint8(bump))
		if errors.Is(err, ErrOnCurve) {
			continue
		}
		if err != nil {
			return domain.Pubkey{}, 0, err
		}
		return addr, uint8(bump), nil
	}
	return domain.Pubkey{}, 0, ErrNoViableBump
}

// Create hashes the seeds with an explicit bump. Used to re-derive a stored
// record's address from its persisted bump.
func (d *Deriver) Create(tag string, identity domain.Pubkey, bump uint8) (domain.Pubkey, error) {
	if len(tag) > MaxSeedLen {
		return domain.Pubkey{}, fmt.Errorf("%w: %q", ErrSeedTooLong, tag)
	}

	h := blake3.New(32, nil)
	h.Write([]byte(tag))
	h.Write(identity[:])
	h.Write([]byte{bump})
	h.Write(d.programID[:])
	h.Write([]byte(domainMarker))

	var addr domain.Pubkey
	copy(addr[:], h.Sum(nil))
	if OnCurve(addr) {
		return domain.Pubkey{}, ErrOnCurve
	}
	return addr, nil
}

// Verify reports whether addr is the address derived for (tag, identity)
// under the given bump.
func (d *Deriver) Verify(tag string, identity domain.Pubkey, bump uint8, addr domain.Pubkey) bool {
	want, err := d.Create(tag, identity, bump)
	return err == nil && want == addr
}

// Store returns the address of owner's Store.
func (d *Deriver) Store(owner domain.Pubkey) (domain.Pubkey, uint8, error) {
	return d.Find(domain.SeedStore, owner)
}

// UserStore returns the address of user's UserLedger.
func (d *Deriver) UserStore(user domain.Pubkey) (domain.Pubkey, uint8, error) {
	return d.Find(domain.SeedUserStore, user)
}

// OnCurve reports whether b decodes to a point on edwards25519.
func OnCurve(b domain.Pubkey) bool {
	_, err := new(edwards25519.Point).SetBytes(b[:])
	return err == nil
}
