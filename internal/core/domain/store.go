package domain

import (
	"math"
	"math/bits"
)

// Derivation tags for program-owned records.
const (
	SeedStore     = "store"
	SeedUserStore = "user_store"
)

// Store binds an owner, the custodian bank and the donors seen so far.
// One Store exists per owner at derive(SeedStore, owner); Owner and Bank
// never change after initialize.
type Store struct {
	Owner Pubkey   `json:"owner"`
	Bank  Pubkey   `json:"bank"`
	Users []Pubkey `json:"users"`
	Bump  uint8    `json:"bump"`
}

// RecordDonor appends the donor unless it is already the most recent entry.
// Non-consecutive repeats are kept, so Users is a donation-order log rather
// than a set. Returns whether an entry was appended.
func (s *Store) RecordDonor(donor Pubkey) bool {
	if n := len(s.Users); n > 0 && s.Users[n-1] == donor {
		return false
	}
	s.Users = append(s.Users, donor)
	return true
}

// Donors returns the distinct donors in order of first appearance.
func (s *Store) Donors() []Pubkey {
	seen := make(map[Pubkey]struct{}, len(s.Users))
	out := make([]Pubkey, 0, len(s.Users))
	for _, u := range s.Users {
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}

// UserLedger is the append-only donation history of one donor, bound to the
// bank it was registered against. Lives at derive(SeedUserStore, user).
type UserLedger struct {
	User      Pubkey   `json:"user"`
	Bank      Pubkey   `json:"bank"`
	Donations []uint64 `json:"donations"`
	Bump      uint8    `json:"bump"`
}

// RecordDonation appends one accepted donation.
func (l *UserLedger) RecordDonation(amount uint64) {
	l.Donations = append(l.Donations, amount)
}

// Total sums the recorded donations, saturating at math.MaxUint64.
func (l *UserLedger) Total() uint64 {
	var sum uint64
	for _, d := range l.Donations {
		next, carry := bits.Add64(sum, d, 0)
		if carry != 0 {
			return math.MaxUint64
		}
		sum = next
	}
	return sum
}
