// Package gpsfilter implements the multi-stage GPS stabilization filter
// that turns a flight's raw accumulated GPS deltas into a reliable
// sequence of positions, rejecting satellite-acquisition noise and the
// "Kansas" firmware placeholder some EDM units write before GPS lock.
package gpsfilter

import "math"

// Tuning constants, kept as named values for future tuning rather than
// inlined at call sites.
const (
	// MaxJump is the largest lat/long delta, in degrees, accepted
	// between consecutive stabilized positions once the receiver has
	// left the Kansas acquisition window.
	MaxJump = 0.02

	// KansasThreshold is the number of non-Kansas outputs a flight is
	// allowed before large jumps are no longer tolerated.
	KansasThreshold = 50

	// StabilityWindow is the number of consecutive close reads
	// required before a candidate position is accepted.
	StabilityWindow = 2
)

// kansasLat/kansasLong are the approximate coordinates (39.05N, 94.88W)
// a firmware quirk writes before satellite lock.
const (
	kansasLat  = 39.05
	kansasLong = -94.88
)

// AxisDelta is one axis's raw delta bytes for a single compressed
// record, captured before sign is applied.
type AxisDelta struct {
	LowPresent  bool
	LowRaw      byte
	HighPresent bool
	HighRaw     byte
	LowSign     bool // sign flag of the low-byte slot; governs the whole axis
}

// Filter holds one flight's GPS stabilization state. Construct one per
// flight with New and discard it when the flight is fully decoded.
type Filter struct {
	hasInitial      bool
	initialLat      float64
	initialLong     float64
	longAcc         int32
	latAcc          int32
	kansas          bool
	stableCount     int
	candidateLat    *float64
	candidateLong   *float64
	lastGoodLat     *float64
	lastGoodLong    *float64
	outputCount     int
	nonKansasCount  int
}

// New creates a GPS filter for one flight. initialLat/initialLong are
// the preamble's starting position; pass hasInitial=false when the
// preamble carried no valid GPS fix, in which case every sample is
// null regardless of subsequent deltas.
func New(hasInitial bool, initialLat, initialLong float64) *Filter {
	f := &Filter{
		hasInitial:  hasInitial,
		initialLat:  initialLat,
		initialLong: initialLong,
		longAcc:     240,
		latAcc:      240,
	}
	if hasInitial {
		f.kansas = math.Abs(initialLat-kansasLat) < 0.1 && math.Abs(initialLong-kansasLong) < 0.1
	}
	return f
}

// axisValue composes one axis's effective signed delta for this record:
// no update if the low byte is absent, otherwise low-only or
// high<<8|low depending on whether the high byte is present.
func axisValue(d AxisDelta) (value int32, updated bool) {
	if !d.LowPresent {
		return 0, false
	}
	var v int32
	if d.HighPresent {
		v = int32(d.HighRaw)<<8 | int32(d.LowRaw)
	} else {
		v = int32(d.LowRaw)
	}
	if d.LowSign {
		v = -v
	}
	return v, true
}

// Update accumulates one record's raw longitude/latitude deltas and
// returns the stabilized position for this sample, or nil, nil if the
// filter is not yet ready to emit (acquiring, unstable, or no GPS).
func (f *Filter) Update(longDelta, latDelta AxisDelta) (lat, long *float64) {
	if !f.hasInitial {
		return nil, nil
	}

	if v, ok := axisValue(longDelta); ok {
		f.longAcc += v
	}
	if v, ok := axisValue(latDelta); ok {
		f.latAcc += v
	}

	if f.longAcc == 0 && f.latAcc == 0 {
		f.stableCount = 0
		f.candidateLat, f.candidateLong = nil, nil
		f.lastGoodLat, f.lastGoodLong = nil, nil
		return nil, nil
	}

	curLat := f.initialLat + float64(f.latAcc-240)/6000.0
	curLong := f.initialLong + float64(f.longAcc-240)/6000.0

	isKansasPos := f.kansas && math.Abs(curLat-kansasLat) < 5 && math.Abs(curLong-kansasLong) < 5
	allowLargeJump := f.kansas && f.nonKansasCount < KansasThreshold

	if f.candidateLat == nil {
		f.candidateLat, f.candidateLong = ptr(curLat), ptr(curLong)
		f.stableCount = 1
		return nil, nil
	}

	jump := maxAbs(curLat-*f.candidateLat, curLong-*f.candidateLong)
	if !allowLargeJump && jump > MaxJump {
		f.candidateLat, f.candidateLong = ptr(curLat), ptr(curLong)
		f.stableCount = 1
		return nil, nil
	}
	f.stableCount++

	if f.stableCount < StabilityWindow {
		f.candidateLat, f.candidateLong = ptr(curLat), ptr(curLong)
		return nil, nil
	}

	if !allowLargeJump && f.nonKansasCount >= KansasThreshold && f.lastGoodLat != nil {
		lastJump := maxAbs(curLat-*f.lastGoodLat, curLong-*f.lastGoodLong)
		if lastJump > MaxJump {
			f.candidateLat, f.candidateLong = ptr(curLat), ptr(curLong)
			f.stableCount = 1
			return nil, nil
		}
	}

	f.outputCount++
	if !isKansasPos {
		f.nonKansasCount++
	}
	f.lastGoodLat, f.lastGoodLong = ptr(curLat), ptr(curLong)
	f.candidateLat, f.candidateLong = ptr(curLat), ptr(curLong)

	rLat := round6(curLat)
	rLong := round6(curLong)
	return &rLat, &rLong
}

func ptr(v float64) *float64 {
	return &v
}

func maxAbs(a, b float64) float64 {
	a, b = math.Abs(a), math.Abs(b)
	if a > b {
		return a
	}
	return b
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
