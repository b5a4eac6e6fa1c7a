package core

// utoa converts an unsigned integer to a string without using fmt
// This is a lightweight alternative for embedded systems
func utoa(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [10]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[pos:])
}

// itoa converts a signed integer to a string
func itoa(n int) string {
	if n < 0 {
		return "-" + utoa(uint32(-n))
	}
	return utoa(uint32(n))
}

const hexDigits = "0123456789ABCDEF"

// utoh formats n as upper-case hex without a prefix, at least one digit
func utoh(n uint32) string {
	if n == 0 {
		return "0"
	}

	var buf [8]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = hexDigits[n&0xF]
		n >>= 4
	}
	return string(buf[pos:])
}
