// Package bracket classifies prices into Budget, Mid-range and Luxury tiers.
//
// Record and chat thresholds differ. Anything persisted must use ForRecord.
package bracket

type Bracket string

const (
	Budget   Bracket = "Budget"
	MidRange Bracket = "Mid-range"
	Luxury   Bracket = "Luxury"
)

const (
	recordBudgetBelow = 1000
	recordMidBelow    = 4000

	chatBudgetBelow = 1500
	chatMidBelow    = 4500
)

// ForRecord returns the bracket stored on an interaction record.
func ForRecord(price int) Bracket {
	switch {
	case price < recordBudgetBelow:
		return Budget
	case price < recordMidBelow:
		return MidRange
	default:
		return Luxury
	}
}

// ForChat returns the bracket the chatbot derives from the upper price filter.
func ForChat(priceMax int) Bracket {
	switch {
	case priceMax < chatBudgetBelow:
		return Budget
	case priceMax < chatMidBelow:
		return MidRange
	default:
		return Luxury
	}
}

// Parse accepts the canonical bracket names.
func Parse(s string) (Bracket, bool) {
	switch Bracket(s) {
	case Budget, MidRange, Luxury:
		return Bracket(s), true
	}
	return "", false
}

func (b Bracket) String() string { return string(b) }
