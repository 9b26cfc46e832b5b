package pricing

import (
	"slices"
	"strconv"
	"strings"
)

// maxVampireDigits bounds identifiers so the number still fits in a
// uint64.
const maxVampireDigits = 18

// IsVampire reports whether the decimal digit string is a vampire
// number: it has an even length 2n and factors into two n-digit fangs
// whose digits, taken together, are a permutation of its own digits.
// Fang pairs that both end in zero do not count.
func IsVampire(id string) bool {
	if id == "" || len(id)%2 != 0 || len(id) > maxVampireDigits || !allDigits(id) {
		return false
	}
	num, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return false
	}
	half := len(id) / 2
	lo := pow10(half - 1)
	hi := pow10(half)
	want := sortedDigits(id)

	for f1 := lo; f1 < hi && f1*f1 <= num; f1++ {
		if num%f1 != 0 {
			continue
		}
		f2 := num / f1
		if f2 < lo || f2 >= hi {
			continue
		}
		if f1%10 == 0 && f2%10 == 0 {
			continue
		}
		fangs := strconv.FormatUint(f1, 10) + strconv.FormatUint(f2, 10)
		if sortedDigits(fangs) == want {
			return true
		}
	}
	return false
}

// IsPerfect reports whether n equals the sum of its proper divisors.
// Zero and negative numbers are never perfect.
func IsPerfect(n int64) bool {
	if n < 2 {
		return false
	}
	sum := int64(1)
	for i := int64(2); i*i <= n; i++ {
		if n%i != 0 {
			continue
		}
		sum += i
		if j := n / i; j != i {
			sum += j
		}
		if sum > n {
			return false
		}
	}
	return sum == n
}

// IsPerfectID applies IsPerfect to a customer identifier. Identifiers
// that are not plain digit strings are not perfect.
func IsPerfectID(id string) bool {
	s := strings.TrimSpace(id)
	if s == "" || !allDigits(s) {
		return false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return false
	}
	return IsPerfect(n)
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func sortedDigits(s string) string {
	b := []byte(s)
	slices.Sort(b)
	return string(b)
}

func pow10(n int) uint64 {
	p := uint64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
