// Package numerology implements digit-sum reduction and the readings built
// on it: life path, name numbers, personal cycles and compatibility.
package numerology

// Result is the outcome of one numerology calculation.
type Result struct {
	Sum       int    `json:"sum"`  // pre-reduction total
	Core      int    `json:"core"` // 1-9, 11, 22 or 33
	IsMaster  bool   `json:"is_master"`
	Archetype string `json:"archetype"`
	Source    string `json:"source,omitempty"`
}

// IsMaster reports whether n is one of the master numbers 11, 22, 33.
func IsMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// DigitSum returns the sum of the decimal digits of n. The sign is ignored.
func DigitSum(n int) int {
	if n < 0 {
		n = -n
	}
	sum := 0
	for n > 0 {
		sum += n % 10
		n /= 10
	}
	return sum
}

// Reduce repeatedly digit-sums n until it is a single digit or a master
// number. The master check runs before every step, so 29 stops at 11
// instead of continuing to 2. Values below 10 (including zero and
// negatives) are returned unchanged.
func Reduce(n int) (core int, master bool) {
	for {
		if IsMaster(n) {
			return n, true
		}
		if n < 10 {
			return n, false
		}
		n = DigitSum(n)
	}
}

// newResult reduces sum and fills in the archetype.
func newResult(sum int, source string) Result {
	core, master := Reduce(sum)
	return Result{
		Sum:       sum,
		Core:      core,
		IsMaster:  master,
		Archetype: Archetype(core),
		Source:    source,
	}
}
