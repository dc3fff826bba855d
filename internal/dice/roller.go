package dice

// RollResult is the outcome of one Roll call
type RollResult struct {
	Total    int
	Rolls    []int
	Bonus    int
	Count    int
	Sides    int
	RawTotal int
}

// Roller provides an interface for rolling dice
// This allows us to inject deterministic results in tests
type Roller interface {
	// Roll rolls a number of dice with the given sides and adds a bonus
	Roll(count, sides, bonus int) (*RollResult, error)
}

// Percent rolls a single d100.
func Percent(r Roller) (int, error) {
	result, err := r.Roll(1, 100, 0)
	if err != nil {
		return 0, err
	}
	return result.Total, nil
}

// Pick returns a uniformly chosen index in [0, n).
func Pick(r Roller, n int) (int, error) {
	result, err := r.Roll(1, n, 0)
	if err != nil {
		return 0, err
	}
	return result.Total - 1, nil
}
