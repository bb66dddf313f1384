package signer

// Equal compares a and b in time that depends only on their length.
// Operands of different length are unequal and return immediately.
func Equal(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := range a {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}

// EqualString is Equal for strings.
func EqualString(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	var acc byte
	for i := 0; i < len(a); i++ {
		acc |= a[i] ^ b[i]
	}
	return acc == 0
}
