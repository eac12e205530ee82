package person

import "unicode"

const cpfLen = 11

// NormalizeCPF strips everything that is not a digit.
func NormalizeCPF(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// IsValidCPF accepts "NNN.NNN.NNN-NN" or 11 bare digits and checks both
// mod-11 check digits. Sequences of a single repeated digit are rejected.
func IsValidCPF(s string) bool {
	if !cpfShapeOK(s) {
		return false
	}
	d := NormalizeCPF(s)
	if len(d) != cpfLen {
		return false
	}

	allEq := true
	for i := 1; i < cpfLen; i++ {
		if d[i] != d[0] {
			allEq = false
			break
		}
	}
	if allEq {
		return false
	}

	digits := make([]int, cpfLen)
	for i := range d {
		digits[i] = int(d[i] - '0')
	}

	return checkDigit(digits[:9]) == digits[9] && checkDigit(digits[:10]) == digits[10]
}

// checkDigit computes the next CPF verifier digit for the given prefix:
// weights run from len(prefix)+1 down to 2.
func checkDigit(prefix []int) int {
	sum := 0
	weight := len(prefix) + 1
	for _, v := range prefix {
		sum += v * weight
		weight--
	}
	rest := sum % 11
	if rest < 2 {
		return 0
	}
	return 11 - rest
}

func cpfShapeOK(s string) bool {
	switch len(s) {
	case cpfLen:
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	case 14:
		for i, r := range s {
			switch i {
			case 3, 7:
				if r != '.' {
					return false
				}
			case 11:
				if r != '-' {
					return false
				}
			default:
				if r < '0' || r > '9' {
					return false
				}
			}
		}
		return true
	}

	return false
}

// SameCPF reports whether a and b denote the same identifier regardless of punctuation.
func SameCPF(a, b string) bool {
	return NormalizeCPF(a) == NormalizeCPF(b)
}
