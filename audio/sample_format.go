// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"
)

// SampleFormat is the in-memory representation of one interleaved sample.
// All multi-byte formats are little-endian.
type SampleFormat int

const (
	SampleFormatNone SampleFormat = iota
	SampleFormatU8
	SampleFormatS16
	SampleFormatS24
	SampleFormatS32
	SampleFormatF32
	SampleFormatF64
)

// BytesPerSample returns the width of one sample, or 0 for SampleFormatNone.
func (f SampleFormat) BytesPerSample() int {
	switch f {
	case SampleFormatU8:
		return 1
	case SampleFormatS16:
		return 2
	case SampleFormatS24:
		return 3
	case SampleFormatS32, SampleFormatF32:
		return 4
	case SampleFormatF64:
		return 8
	}
	return 0
}

func (f SampleFormat) String() string {
	switch f {
	case SampleFormatU8:
		return "u8"
	case SampleFormatS16:
		return "s16"
	case SampleFormatS24:
		return "s24"
	case SampleFormatS32:
		return "s32"
	case SampleFormatF32:
		return "flt"
	case SampleFormatF64:
		return "dbl"
	}
	return "none"
}

// DecodeSamples converts interleaved raw samples of format f into float64
// values in [-1, 1). It writes at most len(dst) values and returns the count.
func DecodeSamples(dst []float64, src []byte, f SampleFormat) int {
	width := f.BytesPerSample()
	if width == 0 {
		return 0
	}

	n := min(len(src)/width, len(dst))

	switch f {
	case SampleFormatU8:
		for i := range n {
			dst[i] = (float64(src[i]) - 128) / 128.0
		}
	case SampleFormatS16:
		for i := range n {
			v := int16(binary.LittleEndian.Uint16(src[2*i:]))
			dst[i] = float64(v) / 32768.0
		}
	case SampleFormatS24:
		for i := range n {
			b := src[3*i : 3*i+3]
			v := int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16
			if v&0x800000 != 0 {
				v |= ^0xFFFFFF
			}
			dst[i] = float64(v) / 8388608.0
		}
	case SampleFormatS32:
		for i := range n {
			v := int32(binary.LittleEndian.Uint32(src[4*i:]))
			dst[i] = float64(v) / 2147483648.0
		}
	case SampleFormatF32:
		for i := range n {
			dst[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:])))
		}
	case SampleFormatF64:
		for i := range n {
			dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
		}
	}

	return n
}

// AppendSample appends one integer sample encoded as f. Float formats take
// v as already scaled to [-1, 1] through AppendFloatSample instead.
func AppendSample(dst []byte, v int32, f SampleFormat) []byte {
	switch f {
	case SampleFormatU8:
		return append(dst, byte(v+128))
	case SampleFormatS16:
		return binary.LittleEndian.AppendUint16(dst, uint16(int16(v)))
	case SampleFormatS24:
		return append(dst, byte(v), byte(v>>8), byte(v>>16))
	case SampleFormatS32:
		return binary.LittleEndian.AppendUint32(dst, uint32(v))
	}
	return dst
}

// AppendFloatSample appends one floating point sample encoded as f.
func AppendFloatSample(dst []byte, v float64, f SampleFormat) []byte {
	switch f {
	case SampleFormatF32:
		return binary.LittleEndian.AppendUint32(dst, math.Float32bits(float32(v)))
	case SampleFormatF64:
		return binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}
