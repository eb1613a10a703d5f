package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeBudget(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"plain number", "5000", 500000},
		{"dollar sign", "$5000", 500000},
		{"commas", "5,000", 500000},
		{"range takes lower bound", "$5,000 - $10,000", 500000},
		{"surrounding text", "around 1200 total", 120000},
		{"empty", "", 0},
		{"no digits", "to be discussed", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeBudget(tt.in))
		})
	}
}

func TestSplitAmountSumsExactly(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		split []int
	}{
		{"even split", 100000, []int{30, 40, 30}},
		{"indivisible total", 100001, []int{30, 40, 30}},
		{"prime total", 99991, []int{30, 40, 30}},
		{"one cent", 1, []int{30, 40, 30}},
		{"two tranches", 777, []int{50, 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amounts := SplitAmount(tt.total, tt.split)
			require.Len(t, amounts, len(tt.split))

			var sum int64
			for _, a := range amounts {
				sum += a
			}
			assert.Equal(t, tt.total, sum, "tranches must sum to the exact total")
		})
	}
}

func TestSplitAmountRemainderGoesLast(t *testing.T) {
	amounts := SplitAmount(100, []int{33, 33, 34})
	assert.Equal(t, int64(33), amounts[0])
	assert.Equal(t, int64(33), amounts[1])
	assert.Equal(t, int64(34), amounts[2])
}

func TestValidateSplit(t *testing.T) {
	assert.NoError(t, ValidateSplit([]int{30, 40, 30}))
	assert.NoError(t, ValidateSplit([]int{100}))
	assert.Error(t, ValidateSplit([]int{30, 40}))
	assert.Error(t, ValidateSplit([]int{50, 60}))
	assert.Error(t, ValidateSplit([]int{0, 100}))
	assert.Error(t, ValidateSplit(nil))
}
