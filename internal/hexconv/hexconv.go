package hexconv

// Halfbyte maps an ASCII character to its hex value. Non-hex characters are mapped into 0xFF.
var Halfbyte = func() (table [256]byte) {
	for i := range table {
		table[i] = 0xFF
	}

	for c := byte('0'); c <= '9'; c++ {
		table[c] = c - '0'
	}

	for c := byte('a'); c <= 'f'; c++ {
		table[c] = c - 'a' + 0xa
		table[c-'a'+'A'] = c - 'a' + 0xa
	}

	return table
}()

// Parse returns the value of a hex digit and whether it was a valid one.
func Parse(char byte) (value byte, ok bool) {
	value = Halfbyte[char]
	return value, value != 0xFF
}
