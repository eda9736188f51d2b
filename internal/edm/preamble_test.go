package edm

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildPreamble encodes a 28-byte preamble with the given flight number,
// flags, initial lat/long (in 1/6000ths of a degree), interval, and a
// packed date/time (DOS-style) for year/month/day/hour/minute/second.
func buildPreamble(flightNum uint16, flags uint32, lat, long int32, interval int, y, mo, d, h, mi, s int) []byte {
	buf := make([]byte, preambleSize)
	putWord := func(i int, v uint16) { binary.BigEndian.PutUint16(buf[i*2:i*2+2], v) }
	putLong := func(i int, v int32) {
		putWord(i, uint16(uint32(v)>>16))
		putWord(i+1, uint16(uint32(v)))
	}

	putWord(0, flightNum)
	putWord(1, uint16(flags))
	putWord(2, uint16(flags>>16))
	putLong(6, lat)
	putLong(8, long)
	putWord(11, uint16(interval))

	dateWord := uint16((y-1980)<<9 | mo<<5 | d)
	timeWord := uint16(h<<11 | mi<<5 | s/2)
	putWord(12, dateWord)
	putWord(13, timeWord)

	return buf
}

func TestDecodePreamble_RoundTrip(t *testing.T) {
	buf := buildPreamble(7, 1<<28, 234000, -570000, 6, 2024, 6, 15, 14, 30, 0)
	p := decodePreamble(buf)

	assert.Equal(t, uint16(7), p.flightNumber)
	assert.Equal(t, uint32(1<<28), p.flags)
	assert.Equal(t, int32(234000), p.initialLat)
	assert.Equal(t, int32(-570000), p.initialLong)
	assert.True(t, p.hasGPS)
	assert.Equal(t, 6, p.intervalSecs)
	require.True(t, p.timeValid)
	assert.Equal(t, 2024, p.startTime.Year())
	assert.Equal(t, 6, int(p.startTime.Month()))
	assert.Equal(t, 15, p.startTime.Day())
	assert.Equal(t, 14, p.startTime.Hour())
	assert.Equal(t, 30, p.startTime.Minute())
}

func TestDecodePreamble_NoGPS(t *testing.T) {
	buf := buildPreamble(1, 0, 0, 0, 6, 2024, 1, 1, 0, 0, 0)
	p := decodePreamble(buf)
	assert.False(t, p.hasGPS)
}

func TestValidPreamble_RejectsBadInterval(t *testing.T) {
	buf := buildPreamble(1, 0, 0, 0, 0, 2024, 1, 1, 0, 0, 0)
	assert.False(t, validPreamble(buf))

	buf = buildPreamble(1, 0, 0, 0, 61, 2024, 1, 1, 0, 0, 0)
	assert.False(t, validPreamble(buf))
}

func TestValidPreamble_RejectsOutOfRangeYear(t *testing.T) {
	buf := buildPreamble(1, 0, 0, 0, 6, 1999, 1, 1, 0, 0, 0)
	assert.False(t, validPreamble(buf))
}

func TestValidPreamble_AcceptsWellFormed(t *testing.T) {
	buf := buildPreamble(1, 0, 0, 0, 6, 2024, 1, 1, 0, 0, 0)
	assert.True(t, validPreamble(buf))
}

func TestValidPreamble_TooShort(t *testing.T) {
	assert.False(t, validPreamble(make([]byte, 10)))
}
