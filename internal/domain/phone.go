package domain

import "regexp"

// nonDigitRe strips everything but digits from a free-form phone value.
var nonDigitRe = regexp.MustCompile(`\D`)

// localAreaCode is prepended to seven-digit numbers, which the export treats
// as local St. Croix numbers.
const localAreaCode = "340"

// FormatPhone formats a phone number as 340-555-1234. Seven-digit numbers
// get the local area code; anything that is neither seven nor ten digits is
// returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := nonDigitRe.ReplaceAllString(phone, "")

	switch len(digits) {
	case 10:
		return digits[0:3] + "-" + digits[3:6] + "-" + digits[6:10]
	case 7:
		return localAreaCode + "-" + digits[0:3] + "-" + digits[3:7]
	}

	return phone
}
