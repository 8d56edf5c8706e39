// SPDX-License-Identifier: EPL-2.0

package utils

// FloatToInt scales a sample in [-1, 1] to a signed integer of bits
// precision, clamping out of range input. Full scale maps to
// ±(2^(bits-1)-1) so both polarities stay symmetric.
func FloatToInt[T Float](x T, bits int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	full := float64(int64(1)<<(bits-1) - 1)
	return int(float64(x) * full)
}

// FloatToInt16 scales a sample in [-1, 1] to 16-bit PCM.
func FloatToInt16[T Float](x T) int16 {
	return int16(FloatToInt(x, 16))
}
