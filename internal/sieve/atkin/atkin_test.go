package atkin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePrimes_SmallLimits(t *testing.T) {
	tests := []struct {
		limit int
		want  []int
	}{
		{limit: 0, want: []int{}},
		{limit: 1, want: []int{}},
		{limit: 2, want: []int{2}},
		{limit: 3, want: []int{2, 3}},
		{limit: 4, want: []int{2, 3}},
		{limit: 5, want: []int{2, 3, 5}},
		{limit: 10, want: []int{2, 3, 5, 7}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GeneratePrimes(tt.limit), "limit %d", tt.limit)
	}
}

func TestGeneratePrimes_35(t *testing.T) {
	want := []int{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31}

	got := GeneratePrimes(35)

	require.Len(t, got, 11)
	assert.Equal(t, want, got)
}

func TestGeneratePrimes_Ascending_NoDuplicates(t *testing.T) {
	primes := GeneratePrimes(10000)

	for i := 1; i < len(primes); i++ {
		require.Greater(t, primes[i], primes[i-1], "output must be strictly ascending")
	}
}

func TestGeneratePrimes_MatchesTrialDivision(t *testing.T) {
	primes := GeneratePrimes(1000)

	want := []int{}
	for n := 2; n <= 1000; n++ {
		if isPrime(n) {
			want = append(want, n)
		}
	}

	assert.Equal(t, want, primes)
}

func TestGeneratePrimes_SquareFreeElimination(t *testing.T) {
	primes := GeneratePrimes(200)

	// Squares and square multiples of candidates must be cleared.
	assert.NotContains(t, primes, 25)
	assert.NotContains(t, primes, 49)
	assert.NotContains(t, primes, 169)
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
