package edm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinalize_GSPDBugLatchedUntilPositiveReading(t *testing.T) {
	fs := newFinalizeState()

	fields := map[string]float64{"gspd": 150}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 0.0, fields["gspd"])

	// Still stuck: a second 150 before any positive reading is still
	// treated as the firmware bug.
	fields = map[string]float64{"gspd": 150}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 0.0, fields["gspd"])

	// A genuine positive reading clears the latch.
	fields = map[string]float64{"gspd": 80}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 80.0, fields["gspd"])

	// 150 is no longer treated as the stuck-value bug.
	fields = map[string]float64{"gspd": 150}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 150.0, fields["gspd"])
}

func TestFinalize_NegativeGSPDClamped(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"gspd": -5}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 0.0, fields["gspd"])
}

func TestFinalize_TemperatureConversion_CelsiusToFahrenheit(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"oat": 0}
	fs.finalize(fields, false, TempFahrenheit)
	assert.Equal(t, 0.0, fields["oat"]) // zero values are never converted

	fields = map[string]float64{"oat": 100}
	fs.finalize(fields, false, TempFahrenheit)
	assert.Equal(t, 212.0, fields["oat"])
}

func TestFinalize_TemperatureConversion_FahrenheitToCelsius(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"cht1": 212}
	fs.finalize(fields, true, TempCelsius)
	assert.Equal(t, 100.0, fields["cht1"])
}

func TestFinalize_TemperatureConversion_OriginalUnitNoOp(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"egt1": 1400}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 1400.0, fields["egt1"])
}

func TestFinalize_TemperatureConversion_AlreadyInRequestedUnit(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"oat": 100}
	fs.finalize(fields, true, TempFahrenheit) // source is already Fahrenheit
	assert.Equal(t, 100.0, fields["oat"])
}

func TestFinalize_FuelFlowAndVoltTenthsScaling(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"ff": 125, "volt": 287}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 12.5, fields["ff"])
	assert.Equal(t, 28.7, fields["volt"])
}

func TestFinalize_ZeroFuelFlowUnscaled(t *testing.T) {
	fs := newFinalizeState()
	fields := map[string]float64{"ff": 0}
	fs.finalize(fields, false, TempOriginal)
	assert.Equal(t, 0.0, fields["ff"])
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 1.2, roundTo(1.24, 1))
	assert.Equal(t, 1.3, roundTo(1.25, 1))
}
