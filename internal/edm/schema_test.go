package edm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedSlot_NeverSeenIsZero(t *testing.T) {
	prev := make([]*int, slotCount)
	assert.Equal(t, 0, signedSlot(prev, 10))
}

func TestSignedSlot_SeenValue(t *testing.T) {
	prev := make([]*int, slotCount)
	v := 42
	prev[10] = &v
	assert.Equal(t, 42, signedSlot(prev, 10))
}

func TestFieldValue_SingleSlot(t *testing.T) {
	prev := make([]*int, slotCount)
	v := 300
	prev[8] = &v
	got := fieldValue(fieldDef{"cht1", 8, -1}, prev)
	assert.Equal(t, 300.0, got)
}

func TestFieldValue_LowHighPair(t *testing.T) {
	prev := make([]*int, slotCount)
	lo, hi := 10, 2
	prev[0] = &lo
	prev[48] = &hi
	got := fieldValue(fieldDef{"egt1", 0, 48}, prev)
	assert.Equal(t, float64(10+2<<8), got)
}

func TestFieldValue_UnseenPairIsZero(t *testing.T) {
	prev := make([]*int, slotCount)
	got := fieldValue(fieldDef{"rpm", 41, 42}, prev)
	assert.Equal(t, 0.0, got)
}

func TestFieldSchema_CoversAllDeclaredNames(t *testing.T) {
	names := make(map[string]bool)
	for _, d := range fieldSchema {
		assert.False(t, names[d.name], "duplicate field name %s", d.name)
		names[d.name] = true
	}
	assert.Len(t, names, 27)
}
