package pot

import (
	"strings"

	"github.com/matzehuels/sprout/pkg/errors"
)

// Style selects pot proportions and side shape.
type Style uint8

// Tapered is the zero value and the fallback for unknown styles.
const (
	Tapered Style = iota
	Round
	RoundConcave
	Square
	Bowl
)

var styleNames = map[Style]string{
	Tapered:      "tapered",
	Round:        "round",
	RoundConcave: "round-concave",
	Square:       "square",
	Bowl:         "bowl",
}

// Styles returns all styles in showcase order.
func Styles() []Style {
	return []Style{Round, RoundConcave, Tapered, Square, Bowl}
}

// StyleNames returns the names of all styles in showcase order.
func StyleNames() []string {
	styles := Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return names
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether s is one of the five known styles.
func (s Style) Valid() bool {
	_, ok := styleNames[s]
	return ok
}

// ParseStyle converts a style name such as "round-concave" to a Style.
// Matching ignores case and surrounding space; an empty name means Tapered.
func ParseStyle(name string) (Style, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Tapered, nil
	}
	for s, n := range styleNames {
		if n == name {
			return s, nil
		}
	}
	return Tapered, errors.New(errors.ErrCodeInvalidStyle,
		"unknown pot style %q (want one of: %s)", name, strings.Join(StyleNames(), ", "))
}

// MarshalText implements encoding.TextMarshaler.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Style) UnmarshalText(text []byte) error {
	v, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Dimensions are the effective measurements of a pot body.
type Dimensions struct {
	RimWidth  float64
	BaseWidth float64
	Height    float64
}

// Measure returns the rim width, base width and body height a pot of the
// given style has when drawn at width × height. Unknown styles measure as
// Tapered.
func Measure(style Style, width, height float64) Dimensions {
	d := Dimensions{RimWidth: width, BaseWidth: width, Height: height}
	switch style {
	case Round:
		d.BaseWidth = width * 0.9
	case RoundConcave:
		d.BaseWidth = width * 0.85
	case Square:
		d.BaseWidth = width * 0.95
	case Bowl:
		d.RimWidth = width * 1.2
		d.BaseWidth = width * 0.5
		d.Height = height * 0.8
	default:
		d.BaseWidth = width * 0.6
	}
	return d
}
