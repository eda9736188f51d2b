package edm

// Slot count: the decoder tracks 128 single-byte logical slots per flight.
const slotCount = 128

// defaultSlotValue is the byte every slot assumes the first time a delta is
// applied to it, except for hpSlot and the highByteSlots (see
// defaultForSlot).
const defaultSlotValue = 0xF0

// Two-byte field pairs: low byte slot -> high byte slot. The high byte
// inherits the low byte's sign flag and defaults to zero rather than
// defaultSlotValue.
var twoBytePairs = map[int]int{
	// EGT1..EGT6: low slots 0..5, high slots 48..53
	0: 48, 1: 49, 2: 50, 3: 51, 4: 52, 5: 53,
	41: 42, // RPM
	78: 79, // Hobbs hours
	86: 81, // GPS longitude (lo -> hi)
	87: 82, // GPS latitude (lo -> hi)
}

// highByteSlots is the set of slots that are a pair's high byte and
// therefore default to 0 instead of defaultSlotValue.
var highByteSlots = func() map[int]bool {
	m := make(map[int]bool, len(twoBytePairs))
	for _, hi := range twoBytePairs {
		m[hi] = true
	}
	return m
}()

// hpSlot is the one single-byte slot that also defaults to 0.
const hpSlot = 30

// GPS-related raw slots, read directly from record bytes for the
// stabilization filter.
const (
	slotLonHi = 81
	slotLatHi = 82
	slotLonLo = 86
	slotLatLo = 87
)

func defaultForSlot(slot int) byte {
	if slot == hpSlot || highByteSlots[slot] {
		return 0
	}
	return defaultSlotValue
}
