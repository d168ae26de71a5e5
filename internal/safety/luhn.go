package safety

import "regexp"

// digitRunPattern matches a contiguous run of 13-19 digits, the length
// range of real payment card numbers.
var digitRunPattern = regexp.MustCompile(`\d{13,19}`)

// luhnValid reports whether digits passes the Luhn checksum. digits must
// contain only ASCII digits.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// containsPaymentNumber reports whether text carries a 13-19 digit run
// that passes the Luhn check. Runs longer than 19 digits are skipped:
// they cannot be card numbers and slicing them would double-count.
func containsPaymentNumber(text string) bool {
	for _, loc := range digitRunPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}
		if luhnValid(text[start:end]) {
			return true
		}
	}
	return false
}

// containsDigitRun reports whether text carries a standalone 13-19 digit
// run regardless of checksum. Used by the keyword-privacy detector as a
// lower-confidence card signal.
func containsDigitRun(text string) bool {
	for _, loc := range digitRunPattern.FindAllStringIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && isDigit(text[start-1]) {
			continue
		}
		if end < len(text) && isDigit(text[end]) {
			continue
		}
		return true
	}
	return false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
