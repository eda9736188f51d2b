package edm

import (
	"time"

	"edmdecode/internal/gpsfilter"
)

func gpsFilterForTest(hasInitial bool, lat, long float64) *gpsfilter.Filter {
	return gpsfilter.New(hasInitial, lat, long)
}

func fixedTime() time.Time {
	return time.Date(2024, time.June, 15, 14, 30, 0, 0, time.UTC)
}

func secondsUnit() time.Duration {
	return time.Second
}
