package edm

import (
	"encoding/binary"
	"time"
)

const preambleSize = 28 // 14 big-endian 16-bit words

// preamble is the decoded 28-byte per-flight preamble.
type preamble struct {
	flightNumber uint16
	flags        uint32
	initialLat   int32
	initialLong  int32
	hasGPS       bool
	intervalSecs int
	startTime    time.Time
	timeValid    bool
}

func word(data []byte, i int) uint16 {
	return binary.BigEndian.Uint16(data[i*2 : i*2+2])
}

func long32(data []byte, wordIdx int) int32 {
	hi := word(data, wordIdx)
	lo := word(data, wordIdx+1)
	return int32(uint32(hi)<<16 | uint32(lo))
}

// decodePreamble decodes the 28-byte flight preamble starting at
// data[0:28].
func decodePreamble(data []byte) preamble {
	p := preamble{}
	p.flightNumber = word(data, 0)
	p.flags = uint32(word(data, 1)) | uint32(word(data, 2))<<16
	p.initialLat = long32(data, 6)
	p.initialLong = long32(data, 8)
	p.hasGPS = p.initialLat != 0 || p.initialLong != 0
	p.intervalSecs = int(word(data, 11))

	dateWord := word(data, 12)
	timeWord := word(data, 13)
	year := int(dateWord>>9&0x7F) + 1980
	month := int(dateWord >> 5 & 0x0F)
	day := int(dateWord & 0x1F)
	hour := int(timeWord >> 11 & 0x1F)
	minute := int(timeWord >> 5 & 0x3F)
	second := int(timeWord&0x1F) * 2

	if month >= 1 && month <= 12 && day >= 1 && day <= 31 && hour <= 23 && minute <= 59 && second <= 59 {
		p.startTime = time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
		p.timeValid = true
	}

	return p
}

// validPreamble applies the flight-locator candidate validation rule:
// interval in [1,60], day in [1,31], month in [1,12], year in
// [2000,2050], hours<=23, minutes<=59, seconds<=59.
func validPreamble(data []byte) bool {
	if len(data) < preambleSize {
		return false
	}
	p := decodePreamble(data)
	if p.intervalSecs < 1 || p.intervalSecs > 60 {
		return false
	}
	if !p.timeValid {
		return false
	}
	year := p.startTime.Year()
	if year < 2000 || year > 2050 {
		return false
	}
	return true
}
