package edm

import "encoding/binary"

// locateResult is the outcome of locating one flight-index entry's
// preamble within the binary stream.
type locateResult struct {
	start int // byte offset of the preamble, -1 if not found
	found bool
}

// locateFlights walks the flight index in order, advancing a running
// cursor by each entry's data_bytes, and probing the cursor and
// cursor-1 for a validating preamble. This handles files with one or
// more odd-length flights, where data_words*2 overshoots the true byte
// length by one: the cursor is advanced from the position a flight was
// actually found at, not from the nominal probe center, so an earlier
// odd-length flight's one-byte correction doesn't drift the probe for
// every flight after it.
func locateFlights(data []byte, binaryOffset int, index []FlightIndexEntry) []locateResult {
	results := make([]locateResult, len(index))
	cursor := binaryOffset

	for i, entry := range index {
		r := probeFlightStart(data, cursor, entry.FlightNumber)
		results[i] = r
		if r.found {
			cursor = r.start + entry.DataBytes()
		} else {
			cursor += entry.DataBytes()
		}
	}

	return results
}

// probeFlightStart searches for one flight's preamble near cursor,
// preferring the exact cursor position and falling back to cursor-1.
func probeFlightStart(data []byte, cursor int, flightNumber uint16) locateResult {
	for _, candidate := range []int{cursor, cursor - 1} {
		if candidate < 0 || candidate+preambleSize > len(data) {
			continue
		}
		if binary.BigEndian.Uint16(data[candidate:candidate+2]) != flightNumber {
			continue
		}
		if validPreamble(data[candidate : candidate+preambleSize]) {
			return locateResult{start: candidate, found: true}
		}
	}

	return locateResult{start: -1, found: false}
}
