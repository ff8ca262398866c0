package domain

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Binary layout of persisted records. Integers are little endian and
// sequences carry a u32 element count:
//
//	Store:      owner(32) bank(32) users(u32 n, n*32) bump(1)
//	UserLedger: user(32) donations(u32 n, n*8) bank(32) bump(1)
//
// Field order differs between the two records and must not be changed.

var (
	ErrShortBuffer   = errors.New("record: buffer too short")
	ErrTrailingBytes = errors.New("record: trailing bytes")
)

const amountSize = 8

// EncodedSize is the exact length MarshalBinary produces.
func (s *Store) EncodedSize() int {
	return PubkeySize*2 + 4 + len(s.Users)*PubkeySize + 1
}

func (s *Store) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, s.EncodedSize())
	buf = append(buf, s.Owner[:]...)
	buf = append(buf, s.Bank[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(s.Users)))
	for _, u := range s.Users {
		buf = append(buf, u[:]...)
	}
	buf = append(buf, s.Bump)
	return buf, nil
}

func (s *Store) UnmarshalBinary(data []byte) error {
	r := reader{buf: data}
	owner := r.pubkey()
	bank := r.pubkey()
	n := r.length(PubkeySize)
	users := make([]Pubkey, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, r.pubkey())
	}
	bump := r.byte()
	if err := r.finish(); err != nil {
		return fmt.Errorf("decode store: %w", err)
	}
	*s = Store{Owner: owner, Bank: bank, Users: users, Bump: bump}
	return nil
}

// EncodedSize is the exact length MarshalBinary produces.
func (l *UserLedger) EncodedSize() int {
	return PubkeySize + 4 + len(l.Donations)*amountSize + PubkeySize + 1
}

func (l *UserLedger) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, l.EncodedSize())
	buf = append(buf, l.User[:]...)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(l.Donations)))
	for _, d := range l.Donations {
		buf = binary.LittleEndian.AppendUint64(buf, d)
	}
	buf = append(buf, l.Bank[:]...)
	buf = append(buf, l.Bump)
	return buf, nil
}

func (l *UserLedger) UnmarshalBinary(data []byte) error {
	r := reader{buf: data}
	user := r.pubkey()
	n := r.length(amountSize)
	donations := make([]uint64, 0, n)
	for i := 0; i < n; i++ {
		donations = append(donations, r.uint64())
	}
	bank := r.pubkey()
	bump := r.byte()
	if err := r.finish(); err != nil {
		return fmt.Errorf("decode user ledger: %w", err)
	}
	*l = UserLedger{User: user, Bank: bank, Donations: donations, Bump: bump}
	return nil
}

// reader is a cursor that records the first failure and turns every later
// read into a no-op, so decoders can be written without per-field checks.
type reader struct {
	buf []byte
	off int
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.err = ErrShortBuffer
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) pubkey() Pubkey {
	var p Pubkey
	copy(p[:], r.take(PubkeySize))
	return p
}

func (r *reader) uint64() uint64 {
	b := r.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (r *reader) byte() byte {
	b := r.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// length reads a u32 count and rejects counts the remaining buffer cannot hold.
func (r *reader) length(elemSize int) int {
	b := r.take(4)
	if b == nil {
		return 0
	}
	n := int(binary.LittleEndian.Uint32(b))
	if n > (len(r.buf)-r.off)/elemSize {
		r.err = ErrShortBuffer
		return 0
	}
	return n
}

func (r *reader) finish() error {
	if r.err != nil {
		return r.err
	}
	if r.off != len(r.buf) {
		return ErrTrailingBytes
	}
	return nil
}
