// SPDX-License-Identifier: EPL-2.0

// Package utils holds the sample-level math shared by the resampler and the
// WAV writers.
package utils

// Float is the set of sample types the helpers operate on.
type Float interface {
	~float32 | ~float64
}

// CatmullRomWeights returns the weights of the four neighbouring samples
// y0..y3 for a point x in [0, 1] between y1 and y2. They sum to one, and
// x == 0 yields exactly {0, 1, 0, 0}.
func CatmullRomWeights[T Float](x T) [4]T {
	x2 := x * x
	x3 := x2 * x

	return [4]T{
		-0.5*x3 + x2 - 0.5*x,
		1.5*x3 - 2.5*x2 + 1,
		-1.5*x3 + 2*x2 + 0.5*x,
		0.5*x3 - 0.5*x2,
	}
}

// CubicInterpolate evaluates the Catmull-Rom spline through y0..y3 at x.
func CubicInterpolate[T Float](y0, y1, y2, y3, x T) T {
	w := CatmullRomWeights(x)
	return w[0]*y0 + w[1]*y1 + w[2]*y2 + w[3]*y3
}
