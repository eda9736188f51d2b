// Package edm decodes JPI Engine Data Management flight-data files: an
// ASCII metadata header followed by a binary, delta-compressed stream of
// per-flight engine samples.
package edm

import (
	"strconv"
	"time"
)

// TempUnit selects the temperature unit samples are finalized in.
type TempUnit int

const (
	// TempOriginal bypasses conversion: values stay in the unit the
	// instrument actually recorded (per Flight.FahrenheitInput, taken
	// from the flight preamble's flags).
	TempOriginal TempUnit = iota
	TempCelsius
	TempFahrenheit
)

// AlarmLimits is the parsed body of an "$A" header record.
type AlarmLimits struct {
	VoltsHighTenths int
	VoltsLowTenths  int
	DIF             int
	CHT             int
	CLD             int
	TIT             int
	OilHigh         int
	OilLow          int
}

// FuelConfig is the parsed body of an "$F" header record.
type FuelConfig struct {
	Empty     int
	Full      int
	WarmUp    int
	KFactor1  int
	KFactor2  int
}

// FlightIndexEntry is one "$D" header record: a flight's identity and the
// size of its binary data, in 16-bit words.
type FlightIndexEntry struct {
	FlightNumber uint16
	DataWords    uint16
}

// DataBytes is data_words*2, the word-rounded byte length of the
// flight's binary record stream. The flight's true byte length may be
// one less, since the header always rounds up to a whole word.
func (e FlightIndexEntry) DataBytes() int {
	return int(e.DataWords) * 2
}

// Metadata is the immutable, file-wide information parsed from the
// ASCII header.
type Metadata struct {
	TailNumber    string
	ModelNumber   int
	DownloadTime  time.Time
	Alarms        AlarmLimits
	Fuel          FuelConfig
	Flags         uint32
	FlightIndex   []FlightIndexEntry
	BinaryOffset  int
}

// ModelString renders the EDM model number the way the reference tools
// display it, or "Unknown" if no "$C" record was parsed.
func (m *Metadata) ModelString() string {
	if m.ModelNumber == 0 {
		return "Unknown"
	}
	return "EDM-" + strconv.Itoa(m.ModelNumber)
}

// FahrenheitSource reports whether the instrument recorded temperatures
// in Fahrenheit (flags bit 28).
func (m *Metadata) FahrenheitSource() bool {
	return m.Flags&(1<<28) != 0
}

// Sample is one decoded, finalized engine-data record.
type Sample struct {
	Time   time.Time
	Fields map[string]float64
	Lat    *float64
	Long   *float64
}

// Flight is a fully decoded flight: its preamble, finalized samples, and
// any recoverable decode warnings.
type Flight struct {
	Number          uint16
	Interval        int
	StartTime       time.Time
	InitialLat      *float64
	InitialLong     *float64
	FahrenheitInput bool
	Samples         []Sample
	ParseWarnings   []string
}

// Valid reports whether the flight has a usable start date and at
// least one sample.
func (f *Flight) Valid() bool {
	return !f.StartTime.IsZero() && len(f.Samples) > 0
}

// Empty reports whether decoding produced no samples at all.
func (f *Flight) Empty() bool {
	return len(f.Samples) == 0
}

// HasGPS reports whether any sample carries a non-null position.
func (f *Flight) HasGPS() bool {
	for _, s := range f.Samples {
		if s.Lat != nil && s.Long != nil {
			return true
		}
	}
	return false
}

// DurationHours returns the elapsed time between the first and last
// sample, 0 if there are fewer than two samples.
func (f *Flight) DurationHours() float64 {
	if len(f.Samples) < 2 {
		return 0
	}
	return f.Samples[len(f.Samples)-1].Time.Sub(f.Samples[0].Time).Hours()
}

// FieldRange scans a decoded flight's samples for one field and returns
// its minimum and maximum value. ok is false if the field was never
// present in any sample.
func (f *Flight) FieldRange(field string) (min, max float64, ok bool) {
	for _, s := range f.Samples {
		v, present := s.Fields[field]
		if !present {
			continue
		}
		if !ok {
			min, max, ok = v, v, true
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, ok
}
