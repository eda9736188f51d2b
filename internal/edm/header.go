package edm

import (
	"strconv"
	"strings"
	"time"
)

// parseHeader scans the ASCII metadata/index header starting at offset 0
// of data and returns the parsed Metadata. It stops immediately after
// the "$L" line; Metadata.BinaryOffset is the byte position right after
// that line's terminating CR-LF.
func parseHeader(data []byte, mode ChecksumMode) (*Metadata, error) {
	if len(data) < 2 || data[0] != '$' || data[1] != 'U' {
		return nil, &HeaderParseError{Reason: "Not a valid JPI file"}
	}

	md := &Metadata{}
	sawL := false

	pos := 0
	for pos < len(data) {
		if data[pos] != '$' {
			break
		}
		lineEnd := indexCRLF(data, pos)
		if lineEnd < 0 {
			break
		}
		line := string(data[pos:lineEnd])
		nextPos := lineEnd + 2 // skip CR LF

		body, err := verifyChecksum(line, mode)
		if err != nil {
			return nil, err
		}

		fields := strings.Split(body, ",")
		tag := fields[0]
		rest := fields[1:]

		switch tag {
		case "U":
			md.TailNumber = strings.TrimSpace(strings.Join(rest, ","))
		case "A":
			md.Alarms = parseAlarmLimits(rest)
		case "C":
			parseConfig(rest, md)
		case "D":
			md.FlightIndex = append(md.FlightIndex, parseFlightIndexEntry(rest))
		case "F":
			md.Fuel = parseFuelConfig(rest)
		case "T":
			md.DownloadTime = parseHeaderTimestamp(rest)
		case "P", "H", "L":
			// recognized, body unused except $L which terminates the header.
		}

		pos = nextPos
		if tag == "L" {
			sawL = true
			md.BinaryOffset = nextPos
			break
		}
	}

	if !sawL {
		return nil, &HeaderParseError{Reason: "No $L record found"}
	}

	return md, nil
}

// indexCRLF returns the index of the next CR within data starting at
// from, provided it is immediately followed by LF; -1 if none is found.
func indexCRLF(data []byte, from int) int {
	for i := from; i < len(data)-1; i++ {
		if data[i] == '\r' && data[i+1] == '\n' {
			return i
		}
	}
	return -1
}

// intField parses a trimmed integer field, defaulting to 0 for missing
// or unparseable values (observed files pad short records with blanks).
func intField(fields []string, i int) int {
	if i >= len(fields) {
		return 0
	}
	v, err := strconv.Atoi(strings.TrimSpace(fields[i]))
	if err != nil {
		return 0
	}
	return v
}

func parseAlarmLimits(fields []string) AlarmLimits {
	return AlarmLimits{
		VoltsHighTenths: intField(fields, 0),
		VoltsLowTenths:  intField(fields, 1),
		DIF:             intField(fields, 2),
		CHT:             intField(fields, 3),
		CLD:             intField(fields, 4),
		TIT:             intField(fields, 5),
		OilHigh:         intField(fields, 6),
		OilLow:          intField(fields, 7),
	}
}

func parseFuelConfig(fields []string) FuelConfig {
	return FuelConfig{
		Empty:    intField(fields, 0),
		Full:     intField(fields, 1),
		WarmUp:   intField(fields, 2),
		KFactor1: intField(fields, 3),
		KFactor2: intField(fields, 4),
	}
}

func parseFlightIndexEntry(fields []string) FlightIndexEntry {
	return FlightIndexEntry{
		FlightNumber: uint16(intField(fields, 0)),
		DataWords:    uint16(intField(fields, 1)),
	}
}

// parseConfig fills in the model number and flags word from a "$C"
// record: model, flags_low, flags_high, then up to 6 optional ints which
// are ignored here (reference-only limits not needed by the decoder).
func parseConfig(fields []string, md *Metadata) {
	md.ModelNumber = intField(fields, 0)
	low := uint32(intField(fields, 1)) & 0xFFFF
	high := uint32(intField(fields, 2)) & 0xFFFF
	md.Flags = low | (high << 16)
}

// parseHeaderTimestamp parses a "$T" record: month, day, year, hour,
// minute, optional seconds. Two-digit years pivot at 50: >=50 -> 19xx,
// <50 -> 20xx.
func parseHeaderTimestamp(fields []string) time.Time {
	month := intField(fields, 0)
	day := intField(fields, 1)
	year := intField(fields, 2)
	hour := intField(fields, 3)
	minute := intField(fields, 4)
	second := intField(fields, 5)

	if year < 100 {
		if year >= 50 {
			year += 1900
		} else {
			year += 2000
		}
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}
	}

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
}
