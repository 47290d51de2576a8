// Package mix combines voices into 16bit samples. Voices are summed at 32bit
// precision and the result is passed through a soft clipping curve so that
// loud passages saturate rather than wrap.
package mix

var softClip [65536]int16

// generate the soft clip curve
func init() {
	for i := -32768; i <= 32767; i++ {
		x := int32(i)

		// saturator y = x / (1 + |x|/32768)
		abs := x
		if abs < 0 {
			abs = -abs
		}
		scale := 32768 + (abs >> 15)
		y := (x * 32767) / scale

		y = max(min(y, 32767), -32768)
		softClip[uint16(i)] = int16(y)
	}
}

// Clip 32bit value so that it doesn't exceed 16bit range
func Clip(x int32) int16 {
	x = max(min(x, 32767), -32768)
	return softClip[uint16(x)]
}

// Stereo sums the left and right voices and clips the totals. The result is a
// single interleaved stereo frame written to the start of dst, which must have
// a length of at least two.
func Stereo(dst []int16, left []int32, right []int32) {
	var l, r int32
	for _, v := range left {
		l += v
	}
	for _, v := range right {
		r += v
	}
	dst[0] = Clip(l)
	dst[1] = Clip(r)
}

// Pan splits a mono voice into left and right voices. The pan value ranges
// from -1.0 (fully left) to 1.0 (fully right) and is clamped to that range.
func Pan(v int32, pan float32) (int32, int32) {
	pan = max(min(pan, 1.0), -1.0)
	l := float32(v) * (1.0 - pan) * 0.5
	r := float32(v) * (1.0 + pan) * 0.5
	return int32(l), int32(r)
}
