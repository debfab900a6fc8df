// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

// parseColor parses a "#rrggbb" or "#rgb" color. Other strings are
// black.
func parseColor(s string) color.NRGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.NRGBA{A: 0xff}
	}
	return color.NRGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}
}

// withAlpha returns c with opacity alpha in [0, 1].
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(math.Round(255 * math.Max(0, math.Min(1, alpha))))
	return c
}

// fade mixes c with white, keeping fraction f of c.
func fade(c color.NRGBA, f float64) color.NRGBA {
	f = math.Max(0, math.Min(1, f))
	mix := func(v uint8) uint8 { return uint8(math.Round(255 - f*(255-float64(v)))) }
	return color.NRGBA{mix(c.R), mix(c.G), mix(c.B), c.A}
}

func hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
