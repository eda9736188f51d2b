package edm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildHeader assembles a minimal, checksummed ASCII header followed by
// n bytes of placeholder binary data.
func buildHeader(lines []string, binaryTail []byte) []byte {
	var b strings.Builder
	for _, body := range lines {
		b.WriteString(xorChecksumLine(body))
		b.WriteString("\r\n")
	}
	return append([]byte(b.String()), binaryTail...)
}

func TestParseHeader_Minimal(t *testing.T) {
	data := buildHeader([]string{
		"U,N12345",
		"A,0,0,0,0,0,0,0,0",
		"C,830,1,0",
		"F,0,0,0,0,0",
		"D,1,20",
		"T,6,15,24,14,30,0",
		"L",
	}, nil)

	md, err := parseHeader(data, ChecksumModeXOR)
	require.NoError(t, err)
	assert.Equal(t, "N12345", md.TailNumber)
	assert.Equal(t, 830, md.ModelNumber)
	require.Len(t, md.FlightIndex, 1)
	assert.Equal(t, uint16(1), md.FlightIndex[0].FlightNumber)
	assert.Equal(t, uint16(20), md.FlightIndex[0].DataWords)
	assert.Equal(t, 2024, md.DownloadTime.Year())
	assert.Equal(t, len(data), md.BinaryOffset)
}

func TestParseHeader_MissingU(t *testing.T) {
	_, err := parseHeader([]byte("garbage"), ChecksumModeXOR)
	require.Error(t, err)
}

func TestParseHeader_MissingL(t *testing.T) {
	data := buildHeader([]string{"U,N12345"}, nil)
	_, err := parseHeader(data, ChecksumModeXOR)
	require.Error(t, err)
}

func TestParseHeader_ChecksumMismatch(t *testing.T) {
	data := []byte("$U,N12345*00\r\n$L*4C\r\n")
	_, err := parseHeader(data, ChecksumModeXOR)
	require.Error(t, err)
	var csErr *ChecksumError
	assert.ErrorAs(t, err, &csErr)
}

func TestParseHeader_MultipleFlightIndexEntries(t *testing.T) {
	data := buildHeader([]string{
		"U,N54321",
		"D,1,100",
		"D,2,200",
		"D,3,50",
		"L",
	}, nil)

	md, err := parseHeader(data, ChecksumModeXOR)
	require.NoError(t, err)
	require.Len(t, md.FlightIndex, 3)
	assert.Equal(t, uint16(3), md.FlightIndex[2].FlightNumber)
	assert.Equal(t, 100, md.FlightIndex[2].DataBytes())
}

func TestParseHeaderTimestamp_TwoDigitYearPivot(t *testing.T) {
	tm := parseHeaderTimestamp([]string{"1", "1", "99", "0", "0", "0"})
	assert.Equal(t, 1999, tm.Year())

	tm = parseHeaderTimestamp([]string{"1", "1", "24", "0", "0", "0"})
	assert.Equal(t, 2024, tm.Year())
}

func TestParseHeaderTimestamp_InvalidMonth(t *testing.T) {
	tm := parseHeaderTimestamp([]string{"13", "1", "24", "0", "0", "0"})
	assert.True(t, tm.IsZero())
}

func TestIntField_MissingDefaultsToZero(t *testing.T) {
	assert.Equal(t, 0, intField([]string{"1", "2"}, 5))
}

func TestIntField_Blank(t *testing.T) {
	assert.Equal(t, 0, intField([]string{" "}, 0))
}

func TestParseConfig_FlagsWord(t *testing.T) {
	md := &Metadata{}
	parseConfig([]string{"830", "65535", "1"}, md)
	assert.Equal(t, 830, md.ModelNumber)
	assert.Equal(t, uint32(0x1FFFF), md.Flags)
}
