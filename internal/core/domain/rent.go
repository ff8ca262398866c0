package domain

// AccountStorageOverhead is the per-record metadata charged on top of its space.
const AccountStorageOverhead = 128

// RentSchedule prices the deposit a payer moves into a record address when
// the record is allocated. The deposit is never returned since records are
// never closed.
type RentSchedule struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  uint64
}

// MinimumBalance is the deposit for a record allocated with space bytes.
func (r RentSchedule) MinimumBalance(space int) uint64 {
	if space < 0 {
		space = 0
	}
	return (AccountStorageOverhead + uint64(space)) * r.LamportsPerByteYear * r.ExemptionThreshold
}
