package user

// IsValidEmail applies the structural rules for addresses: exactly one '@'
// that is neither at the start nor within two characters of the end, no '@'
// or '.' at either string boundary, and at least one '.' after the '@' that
// is not directly adjacent to it.
func IsValidEmail(email string) bool {
	if len(email) < 5 {
		return false
	}
	first, last := email[0], email[len(email)-1]
	if first == '@' || first == '.' || last == '@' || last == '.' {
		return false
	}

	atCount := 0
	atPos := -1
	for i := 0; i < len(email); i++ {
		if email[i] == '@' {
			atCount++
			atPos = i
		}
	}
	if atCount != 1 || atPos <= 0 || atPos >= len(email)-2 {
		return false
	}

	for i := atPos + 1; i < len(email); i++ {
		if email[i] == '.' {
			// a dot directly after the '@' or at the end is malformed
			if i == atPos+1 || i == len(email)-1 {
				return false
			}
			return true
		}
	}
	return false
}

// IsValidPhone accepts 7-15 characters of digits plus "+-() ", requiring at
// least 7 actual digits.
func IsValidPhone(phone string) bool {
	if len(phone) < 7 || len(phone) > 15 {
		return false
	}
	digits := 0
	for i := 0; i < len(phone); i++ {
		c := phone[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '+' || c == '-' || c == ' ' || c == '(' || c == ')':
		default:
			return false
		}
	}
	return digits >= 7
}
