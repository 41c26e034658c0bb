package colorparse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aleister1102/webdiff/internal/common/errorwrapper"
)

// Color is a parsed CSS colour with alpha in [0,1].
type Color struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// DefaultChannelThreshold is the per-channel delta (0-255) below which two
// colours compare equal.
const DefaultChannelThreshold = 5

// Parse parses #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(...), rgba(...), CSS
// named colours and "transparent" into a Color.
func Parse(value string) (Color, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return Color{}, errorwrapper.NewValidationError("color", value, "empty colour value")
	}

	if v == "transparent" {
		return Color{A: 0}, nil
	}

	if strings.HasPrefix(v, "#") {
		return parseHex(v)
	}

	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		return parseRGBFunc(v)
	}

	if named, ok := namedColors[v]; ok {
		return named, nil
	}

	return Color{}, errorwrapper.NewValidationError("color", value, "unrecognized colour value")
}

// parseHex handles 3, 4, 6 and 8 digit hex forms.
func parseHex(v string) (Color, error) {
	hex := v[1:]

	switch len(hex) {
	case 3, 4:
		expanded := make([]byte, 0, len(hex)*2)
		for i := 0; i < len(hex); i++ {
			expanded = append(expanded, hex[i], hex[i])
		}
		hex = string(expanded)
	case 6, 8:
	default:
		return Color{}, errorwrapper.NewValidationError("color", v, "invalid hex colour length")
	}

	channels := make([]uint8, 0, 4)
	for i := 0; i < len(hex); i += 2 {
		n, err := strconv.ParseUint(hex[i:i+2], 16, 8)
		if err != nil {
			return Color{}, errorwrapper.NewValidationError("color", v, "invalid hex digit")
		}
		channels = append(channels, uint8(n))
	}

	c := Color{R: channels[0], G: channels[1], B: channels[2], A: 1}
	if len(channels) == 4 {
		c.A = float64(channels[3]) / 255
	}
	return c, nil
}

// parseRGBFunc handles rgb(r,g,b) and rgba(r,g,b,a).
func parseRGBFunc(v string) (Color, error) {
	open := strings.Index(v, "(")
	close := strings.LastIndex(v, ")")
	if open < 0 || close < open {
		return Color{}, errorwrapper.NewValidationError("color", v, "malformed rgb() value")
	}

	parts := strings.Split(v[open+1:close], ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, errorwrapper.NewValidationError("color", v, "rgb() expects 3 or 4 components")
	}

	var channels [3]uint8
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return Color{}, errorwrapper.NewValidationError("color", v, "rgb channel out of range")
		}
		channels[i] = uint8(n)
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 64)
		if err != nil || a < 0 || a > 1 {
			return Color{}, errorwrapper.NewValidationError("color", v, "alpha out of range")
		}
		alpha = a
	}

	return Color{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// Equal reports whether two colours match within the per-channel threshold.
// Alpha is compared on the same 0-255 scale as the colour channels.
func Equal(a, b Color, threshold int) bool {
	if threshold < 0 {
		threshold = 0
	}
	return channelDelta(a.R, b.R) <= threshold &&
		channelDelta(a.G, b.G) <= threshold &&
		channelDelta(a.B, b.B) <= threshold &&
		alphaDelta(a.A, b.A) <= threshold
}

// EqualStrings parses both values and compares them; unparseable values
// compare by exact string equality.
func EqualStrings(v1, v2 string, threshold int) bool {
	c1, err1 := Parse(v1)
	c2, err2 := Parse(v2)
	if err1 != nil || err2 != nil {
		return strings.EqualFold(strings.TrimSpace(v1), strings.TrimSpace(v2))
	}
	return Equal(c1, c2, threshold)
}

// Hex returns the canonical lowercase hex form, with an alpha byte only
// when the colour is not fully opaque.
func (c Color) Hex() string {
	if c.A >= 1 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, uint8(c.A*255+0.5))
}

func channelDelta(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func alphaDelta(a, b float64) int {
	d := (a - b) * 255
	if d < 0 {
		d = -d
	}
	return int(d + 0.5)
}
