// SPDX-License-Identifier: EPL-2.0

package audio

import "math/bits"

// ChannelLayout is a bitmask of speaker positions.
type ChannelLayout uint64

const (
	ChannelFrontLeft ChannelLayout = 1 << iota
	ChannelFrontRight
	ChannelFrontCenter
	ChannelLowFrequency
	ChannelBackLeft
	ChannelBackRight
)

const (
	LayoutMono     = ChannelFrontCenter
	LayoutStereo   = ChannelFrontLeft | ChannelFrontRight
	LayoutSurround = LayoutStereo | ChannelFrontCenter
	LayoutQuad     = LayoutStereo | ChannelBackLeft | ChannelBackRight
	Layout5Point1  = LayoutSurround | ChannelLowFrequency | ChannelBackLeft | ChannelBackRight
)

// Channels returns the number of speakers in the layout.
func (l ChannelLayout) Channels() int { return bits.OnesCount64(uint64(l)) }

func (l ChannelLayout) String() string {
	switch l {
	case LayoutMono:
		return "mono"
	case LayoutStereo:
		return "stereo"
	case LayoutSurround:
		return "3.0"
	case LayoutQuad:
		return "quad"
	case Layout5Point1:
		return "5.1"
	case 0:
		return "unknown"
	}
	return "custom"
}

// DefaultLayout returns the conventional layout for a channel count, or 0
// when there is none.
func DefaultLayout(channels int) ChannelLayout {
	switch channels {
	case 1:
		return LayoutMono
	case 2:
		return LayoutStereo
	case 3:
		return LayoutSurround
	case 4:
		return LayoutQuad
	case 6:
		return Layout5Point1
	}
	return 0
}

// remixMatrix builds an out x in gain matrix.
//
//   - same count: identity
//   - to mono: average of all inputs
//   - from mono: input copied to every output
//   - otherwise: output c takes input c, extra outputs take the input average
func remixMatrix(in, out int) [][]float64 {
	m := make([][]float64, out)
	for o := range m {
		m[o] = make([]float64, in)
	}

	switch {
	case in == out:
		for c := range in {
			m[c][c] = 1
		}
	case out == 1:
		inv := 1.0 / float64(in)
		for c := range in {
			m[0][c] = inv
		}
	case in == 1:
		for o := range out {
			m[o][0] = 1
		}
	default:
		inv := 1.0 / float64(in)
		for o := range out {
			if o < in {
				m[o][o] = 1
				continue
			}
			for c := range in {
				m[o][c] = inv
			}
		}
	}

	return m
}

// remix applies m to frames interleaved frames of src, appending to dst.
func remix(dst, src []float64, m [][]float64, frames int) []float64 {
	in := len(m[0])
	out := len(m)

	// Fast paths for the common layouts
	switch {
	case in == out:
		return append(dst, src[:frames*in]...)
	case in == 2 && out == 1:
		for f := range frames {
			idx := f << 1
			dst = append(dst, (src[idx]+src[idx+1])*0.5)
		}
		return dst
	case in == 1 && out == 2:
		for f := range frames {
			dst = append(dst, src[f], src[f])
		}
		return dst
	}

	for f := range frames {
		base := f * in
		for o := range out {
			sum := 0.0
			for c, g := range m[o] {
				if g != 0 {
					sum += g * src[base+c]
				}
			}
			dst = append(dst, sum)
		}
	}

	return dst
}
