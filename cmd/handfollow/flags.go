package main

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"

	"github.com/gogpu/handfollow"
)

// parseMatrix reads "a,b,c,d,e,f" (commas or spaces) as SVG matrix
// numbers. An empty string yields nil.
func parseMatrix(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) != 6 {
		return nil, fmt.Errorf("matrix %q: got %d numbers, want 6", s, len(fields))
	}
	m := make([]float64, 6)
	for i, f := range fields {
		v, n := strconv.ParseFloat([]byte(f))
		if n == 0 || n != len(f) {
			return nil, fmt.Errorf("matrix %q: bad number %q", s, f)
		}
		m[i] = v
	}
	return m, nil
}

// toMatrix converts parsed matrix numbers, nil meaning identity.
func toMatrix(m []float64) handfollow.Matrix {
	if m == nil {
		return handfollow.Identity()
	}
	return handfollow.MatrixFromSVG(m[0], m[1], m[2], m[3], m[4], m[5])
}
