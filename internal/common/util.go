package common

// WipeByteArray zeroes the buffer in place. Callers use it to shorten the
// lifetime of passwords in memory.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
