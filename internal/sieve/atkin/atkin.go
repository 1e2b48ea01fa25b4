// Package atkin implements the Sieve of Atkin. It is a pure function of
// the limit with no service dependencies, safe to call concurrently.
package atkin

// GeneratePrimes returns all primes <= limit in ascending order.
//
// The algorithm toggles candidacy of n for every (x, y) solution of
// three quadratic forms, then clears multiples of squares of surviving
// candidates. A number toggled an odd number of times and not hit by
// the square pass is prime. 2 and 3 are seeded directly since the forms
// only cover residues of larger primes.
func GeneratePrimes(limit int) []int {
	primes := []int{}

	if limit >= 2 {
		primes = append(primes, 2)
	}
	if limit >= 3 {
		primes = append(primes, 3)
	}
	if limit < 5 {
		return primes
	}

	sieve := make([]bool, limit+1)
	root := isqrt(limit)

	for x := 1; x <= root; x++ {
		for y := 1; y <= root; y++ {
			n := 4*x*x + y*y
			if n <= limit && (n%12 == 1 || n%12 == 5) {
				sieve[n] = !sieve[n]
			}

			n = 3*x*x + y*y
			if n <= limit && n%12 == 7 {
				sieve[n] = !sieve[n]
			}

			n = 3*x*x - y*y
			if x > y && n <= limit && n%12 == 11 {
				sieve[n] = !sieve[n]
			}
		}
	}

	for p := 5; p <= root; p++ {
		if sieve[p] {
			for k := p * p; k <= limit; k += p * p {
				sieve[k] = false
			}
		}
	}

	for p := 5; p <= limit; p++ {
		if sieve[p] {
			primes = append(primes, p)
		}
	}

	return primes
}

// isqrt is the integer square root; floating point sqrt can land one
// off for large limits, which would shrink the (x, y) search space.
func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
