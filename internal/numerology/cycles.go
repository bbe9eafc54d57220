package numerology

import "time"

const dateLayout = "2006-01-02"

// CalculateLifePath reduces year, month and day separately, then reduces
// their total. Sum is the total of the three reduced parts.
func CalculateLifePath(birth time.Time) Result {
	y, _ := Reduce(birth.Year())
	m, _ := Reduce(int(birth.Month()))
	d, _ := Reduce(birth.Day())
	return newResult(y+m+d, birth.Format(dateLayout))
}

// CalculatePersonalYear combines the reduced birth day and month with the
// reduced target year. Master numbers can surface.
func CalculatePersonalYear(birth, target time.Time) int {
	d, _ := Reduce(birth.Day())
	m, _ := Reduce(int(birth.Month()))
	y, _ := Reduce(target.Year())
	core, _ := Reduce(d + m + y)
	return core
}

// CalculatePersonalMonth adds the target calendar month to a personal year.
func CalculatePersonalMonth(personalYear int, target time.Time) int {
	core, _ := Reduce(personalYear + int(target.Month()))
	return core
}

// CalculatePersonalDay adds the target month and day of month to the
// personal year derived from birth and target.
func CalculatePersonalDay(birth, target time.Time) int {
	py := CalculatePersonalYear(birth, target)
	core, _ := Reduce(py + int(target.Month()) + target.Day())
	return core
}

// Cycles bundles the personal cycle numbers for one target date.
type Cycles struct {
	Year  int `json:"personal_year"`
	Month int `json:"personal_month"`
	Day   int `json:"personal_day"`
}

// CalculateCycles computes personal year, month and day together.
func CalculateCycles(birth, target time.Time) Cycles {
	py := CalculatePersonalYear(birth, target)
	return Cycles{
		Year:  py,
		Month: CalculatePersonalMonth(py, target),
		Day:   CalculatePersonalDay(birth, target),
	}
}
