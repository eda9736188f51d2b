package edm

import "math"

// finalizeState carries the one piece of finalizer state that persists
// across a flight's samples: the GSPD=150 stuck-value bug latch,
// initially true and cleared once any positive ground speed is observed.
type finalizeState struct {
	gspdBug bool
}

func newFinalizeState() *finalizeState {
	return &finalizeState{gspdBug: true}
}

// finalize applies the record finalizer to one sample's fields in
// place: the GSPD bug workaround, negative-value clamping, temperature
// unit conversion, and fuel-flow/voltage tenths scaling.
func (fs *finalizeState) finalize(fields map[string]float64, sourceIsFahrenheit bool, outUnit TempUnit) {
	if gspd, ok := fields["gspd"]; ok {
		if gspd == 150 && fs.gspdBug {
			gspd = 0
		}
		if gspd < 0 {
			gspd = 0
		}
		if gspd > 0 {
			fs.gspdBug = false
		}
		fields["gspd"] = gspd
	}

	convertTemperatures(fields, sourceIsFahrenheit, outUnit)

	if ff, ok := fields["ff"]; ok && ff > 0 {
		fields["ff"] = roundTo(ff/10, 1)
	}
	if volt, ok := fields["volt"]; ok && volt > 0 {
		fields["volt"] = roundTo(volt/10, 1)
	}
}

func convertTemperatures(fields map[string]float64, sourceIsFahrenheit bool, outUnit TempUnit) {
	if outUnit == TempOriginal {
		return
	}
	sourceIsCelsius := !sourceIsFahrenheit
	wantCelsius := outUnit == TempCelsius
	if wantCelsius == sourceIsCelsius {
		return // already in the requested unit
	}

	for name := range temperatureFields {
		v, ok := fields[name]
		if !ok || v == 0 {
			continue
		}
		if wantCelsius {
			fields[name] = roundTo((v-32)*5/9, 1)
		} else {
			fields[name] = roundTo(v*9/5+32, 1)
		}
	}
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
