package sim

import "fmt"

// VTimeInSec defines the time in the simulated space in the unit of second
type VTimeInSec float64

// Units of simulated time.
const (
	Second VTimeInSec = 1
	Minute            = 60 * Second
	Hour              = 60 * Minute
	Day               = 24 * Hour
)

// Days returns the time expressed in simulated days.
func (t VTimeInSec) Days() float64 {
	return float64(t / Day)
}

// Hours returns the time expressed in simulated hours.
func (t VTimeInSec) Hours() float64 {
	return float64(t / Hour)
}

// DayNumber returns the index of the simulated day that contains the time.
func (t VTimeInSec) DayNumber() int {
	return int(t / Day)
}

// String formats the time as days and hours, which is how the model reads.
func (t VTimeInSec) String() string {
	day := t.DayNumber()
	return fmt.Sprintf("d%d+%.4fh", day, (t - VTimeInSec(day)*Day).Hours())
}
