package edm

import (
	"fmt"
	"time"

	"edmdecode/internal/gpsfilter"
)

// decodeOneFlight decodes a single flight given its located preamble
// start (or a failed locate), producing a Flight with whatever samples
// could be recovered and any warnings accumulated along the way. No
// error ever escapes this function.
func decodeOneFlight(data []byte, entry FlightIndexEntry, loc locateResult, unit TempUnit) *Flight {
	f := &Flight{Number: entry.FlightNumber}
	dataBytes := entry.DataBytes()

	if !loc.found {
		f.ParseWarnings = append(f.ParseWarnings, "Could not locate flight data start marker")
		return f
	}
	start := loc.start

	if dataBytes < preambleSize {
		f.ParseWarnings = append(f.ParseWarnings, fmt.Sprintf("Flight data too short (%d bytes)", dataBytes))
		return f
	}

	if start+dataBytes > len(data) {
		f.ParseWarnings = append(f.ParseWarnings, fmt.Sprintf("Flight data extends beyond file (need %d bytes, have %d)", start+dataBytes, len(data)-start))
		dataBytes = len(data) - start
		if dataBytes < preambleSize {
			return f
		}
	}

	pre := decodePreamble(data[start : start+preambleSize])

	interval := pre.intervalSecs
	if interval <= 0 {
		f.ParseWarnings = append(f.ParseWarnings, fmt.Sprintf("Invalid recording interval (%d), using default of 6 seconds", interval))
		interval = 6
	}
	f.Interval = interval

	if pre.timeValid {
		f.StartTime = pre.startTime
	} else {
		f.ParseWarnings = append(f.ParseWarnings, "Invalid date/time in flight header")
	}

	f.FahrenheitInput = pre.flags&(1<<28) != 0

	var gps *gpsfilter.Filter
	if pre.hasGPS {
		initLat := float64(pre.initialLat) / 6000.0
		initLong := float64(pre.initialLong) / 6000.0
		f.InitialLat = &initLat
		f.InitialLong = &initLong
		gps = gpsfilter.New(true, initLat, initLong)
	} else {
		gps = gpsfilter.New(false, 0, 0)
	}

	recordsStart := start + preambleSize
	hardEnd := start + dataBytes
	if hardEnd > len(data) {
		hardEnd = len(data)
	}

	if recordsStart > hardEnd-5 {
		f.ParseWarnings = append(f.ParseWarnings, "No data records present after flight header")
		return f
	}

	samples, warnings := runDeltaDecoder(data, recordsStart, hardEnd, interval, f.StartTime, f.FahrenheitInput, unit, gps)
	f.Samples = samples
	f.ParseWarnings = append(f.ParseWarnings, warnings...)
	return f
}

// reader is a bounds-checked cursor over one flight's record stream.
type reader struct {
	data   []byte
	offset int
	end    int
}

func (r *reader) canRead(n int) bool {
	return r.offset+n <= r.end
}

func (r *reader) byte() byte {
	b := r.data[r.offset]
	r.offset++
	return b
}

func (r *reader) uint16BE() uint16 {
	v := uint16(r.data[r.offset])<<8 | uint16(r.data[r.offset+1])
	r.offset += 2
	return v
}

// runDeltaDecoder is the central state machine: it consumes the
// compressed record stream from start to end, maintaining 128 nullable
// slot values, and emits one finalized sample per compressed record.
func runDeltaDecoder(data []byte, start, end, interval int, startTime time.Time, sourceIsFahrenheit bool, unit TempUnit, gps *gpsfilter.Filter) ([]Sample, []string) {
	r := &reader{data: data, offset: start, end: end}
	prev := make([]*int, slotCount)
	fin := newFinalizeState()
	step := time.Duration(interval) * time.Second

	var samples []Sample
	var warnings []string
	clock := startTime

	for r.offset <= r.end-5 {
		if !decodeOneRecord(r, prev, &clock, step, &samples, &warnings, sourceIsFahrenheit, unit, fin, gps) {
			break
		}
	}

	return samples, warnings
}

// decodeOneRecord decodes and emits a single compressed record, first
// advancing the clock by the record's repeat count. It returns false if
// the stream should terminate (mismatched decode flags or a truncated
// read).
func decodeOneRecord(r *reader, prev []*int, clock *time.Time, step time.Duration, samples *[]Sample, warnings *[]string, sourceIsFahrenheit bool, unit TempUnit, fin *finalizeState, gps *gpsfilter.Filter) bool {
	if !r.canRead(1) {
		return false
	}
	r.byte() // skip byte, purpose undocumented

	if !r.canRead(4) {
		return false
	}
	flagsA := r.uint16BE()
	flagsB := r.uint16BE()
	if flagsA != flagsB {
		if len(*samples) == 0 {
			*warnings = append(*warnings, fmt.Sprintf("Decode flags mismatch at start of data (0x%04X vs 0x%04X)", flagsA, flagsB))
		}
		return false
	}
	decodeFlags := flagsA

	if !r.canRead(1) {
		return false
	}
	repeatCount := r.byte()
	*clock = clock.Add(time.Duration(repeatCount) * step)

	var fieldFlags, signFlags [16]byte
	for i := 0; i < 16; i++ {
		if decodeFlags&(1<<uint(i)) == 0 {
			continue
		}
		if !r.canRead(1) {
			return false
		}
		fieldFlags[i] = r.byte()
	}
	for i := 0; i < 16; i++ {
		if decodeFlags&(1<<uint(i)) == 0 || i == 6 || i == 7 {
			continue
		}
		if !r.canRead(1) {
			return false
		}
		signFlags[i] = r.byte()
	}

	present := make([]bool, slotCount)
	sign := make([]bool, slotCount)
	for i := 0; i < 16; i++ {
		if decodeFlags&(1<<uint(i)) == 0 {
			continue
		}
		ff := fieldFlags[i]
		sf := signFlags[i]
		for b := 0; b < 8; b++ {
			slot := i*8 + b
			if ff&(1<<uint(b)) != 0 {
				present[slot] = true
			}
			if i != 6 && i != 7 && sf&(1<<uint(b)) != 0 {
				sign[slot] = true
			}
		}
	}
	for low, high := range twoBytePairs {
		sign[high] = sign[low]
	}

	raw := make([]byte, slotCount)
	for s := 0; s < slotCount; s++ {
		if !present[s] {
			continue
		}
		if !r.canRead(1) {
			return false
		}
		raw[s] = r.byte()
		delta := int(raw[s])
		if sign[s] {
			delta = -delta
		}
		applyDelta(prev, s, delta)
	}

	fields := make(map[string]float64, len(fieldSchema))
	for _, d := range fieldSchema {
		fields[d.name] = fieldValue(d, prev)
	}
	fin.finalize(fields, sourceIsFahrenheit, unit)

	lat, long := gps.Update(
		gpsfilter.AxisDelta{
			LowPresent: present[slotLonLo], LowRaw: raw[slotLonLo],
			HighPresent: present[slotLonHi], HighRaw: raw[slotLonHi],
			LowSign: sign[slotLonLo],
		},
		gpsfilter.AxisDelta{
			LowPresent: present[slotLatLo], LowRaw: raw[slotLatLo],
			HighPresent: present[slotLatHi], HighRaw: raw[slotLatHi],
			LowSign: sign[slotLatLo],
		},
	)

	*samples = append(*samples, Sample{Time: *clock, Fields: fields, Lat: lat, Long: long})
	*clock = clock.Add(step)

	return true
}

// applyDelta implements the null-vs-zero accumulation rule: a zero
// delta against a never-seen slot does not mark it seen.
func applyDelta(prev []*int, slot, delta int) {
	if prev[slot] == nil {
		if delta == 0 {
			return
		}
		v := int(defaultForSlot(slot)) + delta
		prev[slot] = &v
		return
	}
	v := *prev[slot] + delta
	prev[slot] = &v
}
