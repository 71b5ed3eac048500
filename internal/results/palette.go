package results

import "math/rand/v2"

const paletteDigits = "789ABCDEF"

// randomColor returns a bright "#RRGGBB" color. Only the upper hex digits
// are drawn so text stays readable on a dark background.
func randomColor(rng *rand.Rand) string {
	buf := make([]byte, 7)
	buf[0] = '#'
	for i := 1; i < len(buf); i++ {
		buf[i] = paletteDigits[rng.IntN(len(paletteDigits))]
	}
	return string(buf)
}
