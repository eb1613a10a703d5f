package logic

import (
	"strconv"
	"strings"
)

// SanitizeBudget extracts the base dollar amount from a free-form budget
// string and returns it in cents. The first numeric run wins, commas are
// thousands separators: "$5,000 - $10,000" yields 500000 cents ($5000).
// Returns 0 when no numeric run exists.
func SanitizeBudget(raw string) int64 {
	start := -1
	end := len(raw)
	for i, r := range raw {
		isNumeric := (r >= '0' && r <= '9') || r == ',' || r == '.'
		if start == -1 {
			if r >= '0' && r <= '9' {
				start = i
			}
			continue
		}
		if !isNumeric {
			end = i
			break
		}
	}
	if start == -1 {
		return 0
	}

	run := strings.ReplaceAll(raw[start:end], ",", "")
	dollars, err := strconv.ParseFloat(strings.TrimRight(run, "."), 64)
	if err != nil || dollars < 0 {
		return 0
	}
	return int64(dollars*100 + 0.5)
}

// SplitAmount splits total cents across the given percentages. Rounding
// remainders fold into the last tranche so the parts always sum to total
// exactly. Percentages must sum to 100; callers validate that up front.
func SplitAmount(total int64, percentages []int) []int64 {
	parts := make([]int64, len(percentages))
	var allocated int64
	for i, p := range percentages {
		if i == len(percentages)-1 {
			parts[i] = total - allocated
			break
		}
		parts[i] = total * int64(p) / 100
		allocated += parts[i]
	}
	return parts
}

// ValidateSplit rejects percentage sets that do not sum to 100.
func ValidateSplit(percentages []int) error {
	if len(percentages) == 0 {
		return validationError("milestone split must not be empty")
	}
	sum := 0
	for _, p := range percentages {
		if p <= 0 {
			return validationError("milestone split percentages must be positive")
		}
		sum += p
	}
	if sum != 100 {
		return validationError("milestone split percentages must sum to 100")
	}
	return nil
}
