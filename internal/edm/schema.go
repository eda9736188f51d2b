package edm

// fieldDef describes one logical field of the sample schema: either a
// single slot or a (low, high) slot pair whose value is low+(high<<8).
type fieldDef struct {
	name string
	low  int
	high int // -1 for single-slot fields
}

// fieldSchema is the canonical field list and CSV column order,
// excluding lat/long which are carried as Sample.Lat and Sample.Long
// rather than as Fields entries.
var fieldSchema = []fieldDef{
	{"egt1", 0, 48},
	{"egt2", 1, 49},
	{"egt3", 2, 50},
	{"egt4", 3, 51},
	{"egt5", 4, 52},
	{"egt6", 5, 53},
	{"cht1", 8, -1},
	{"cht2", 9, -1},
	{"cht3", 10, -1},
	{"cht4", 11, -1},
	{"cht5", 12, -1},
	{"cht6", 13, -1},
	{"cld", 14, -1},
	{"oil_t", 15, -1},
	{"mark", 16, -1},
	{"oil_p", 17, -1},
	{"crb", 18, -1},
	{"volt", 20, -1},
	{"oat", 21, -1},
	{"usd", 22, -1},
	{"ff", 23, -1},
	{"hp", 30, -1},
	{"map", 40, -1},
	{"rpm", 41, 42},
	{"hours", 78, 79},
	{"alt", 83, -1},
	{"gspd", 85, -1},
}

// temperatureFields lists the EGT, CHT and other temperature fields
// that undergo unit conversion.
var temperatureFields = map[string]bool{
	"egt1": true, "egt2": true, "egt3": true, "egt4": true, "egt5": true, "egt6": true,
	"cht1": true, "cht2": true, "cht3": true, "cht4": true, "cht5": true, "cht6": true,
	"crb": true, "cld": true, "oil_t": true, "oat": true,
}

func fieldValue(d fieldDef, prev []*int) float64 {
	lo := signedSlot(prev, d.low)
	if d.high < 0 {
		return float64(lo)
	}
	hi := signedSlot(prev, d.high)
	return float64(lo + hi<<8)
}

// signedSlot returns the current value of a slot, treating an
// unwritten (never-seen) slot as 0.
func signedSlot(prev []*int, slot int) int {
	if prev[slot] == nil {
		return 0
	}
	return *prev[slot]
}
