package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ProportionType selects how a grid track is sized.
type ProportionType int

const (
	// ProportionAuto sizes the track to its largest single-span child.
	ProportionAuto ProportionType = iota
	// ProportionPart shares the remaining space by weight.
	ProportionPart
	// ProportionFill takes whatever is left after every other track.
	ProportionFill
	// ProportionPixels is a fixed size.
	ProportionPixels
)

func (t ProportionType) String() string {
	switch t {
	case ProportionAuto:
		return "Auto"
	case ProportionPart:
		return "Part"
	case ProportionFill:
		return "Fill"
	case ProportionPixels:
		return "Pixels"
	default:
		return "Unknown"
	}
}

const proportionEpsilon = 1e-6

// Proportion is the sizing rule of one grid column or row. Mutating it
// notifies Changed so owning grids re-measure.
type Proportion struct {
	typ   ProportionType
	value float64

	Changed Event[*Proportion]
}

// NewProportion returns a proportion of the given type and value.
func NewProportion(t ProportionType, value float64) *Proportion {
	return &Proportion{typ: t, value: value}
}

// Auto returns a content-sized proportion.
func Auto() *Proportion { return NewProportion(ProportionAuto, 1) }

// Part returns a weighted share of the remaining space.
func Part(weight float64) *Proportion { return NewProportion(ProportionPart, weight) }

// Fill returns a proportion that takes the leftover space.
func Fill() *Proportion { return NewProportion(ProportionFill, 1) }

// Pixels returns a fixed-size proportion.
func Pixels(size int) *Proportion { return NewProportion(ProportionPixels, float64(size)) }

// Type returns the proportion type.
func (p *Proportion) Type() ProportionType { return p.typ }

// SetType changes the proportion type.
func (p *Proportion) SetType(t ProportionType) {
	if p.typ == t {
		return
	}
	p.typ = t
	p.Changed.Fire(p)
}

// Value returns the weight for Part, the size for Pixels, and is otherwise
// only used by Fill when counting the total weight.
func (p *Proportion) Value() float64 { return p.value }

// SetValue changes the value.
func (p *Proportion) SetValue(v float64) {
	if math.Abs(p.value-v) < proportionEpsilon {
		return
	}
	p.value = v
	p.Changed.Fire(p)
}

func (p *Proportion) String() string {
	switch p.typ {
	case ProportionPart, ProportionPixels:
		return fmt.Sprintf("%s(%s)", p.typ, strconv.FormatFloat(p.value, 'g', -1, 64))
	default:
		return p.typ.String()
	}
}

// ParseProportion parses the compact forms "auto", "fill", "<n>px" for
// Pixels, and "<w>*" or "*" for Part.
func ParseProportion(s string) (*Proportion, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case s == "auto":
		return Auto(), nil
	case s == "fill":
		return Fill(), nil
	case s == "*":
		return Part(1), nil
	case strings.HasSuffix(s, "px"):
		v, err := strconv.Atoi(strings.TrimSuffix(s, "px"))
		if err != nil {
			return nil, fmt.Errorf("bad pixel proportion %q: %w", s, err)
		}
		return Pixels(max(v, 0)), nil
	case strings.HasSuffix(s, "*"):
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "*"), 64)
		if err != nil {
			return nil, fmt.Errorf("bad part proportion %q: %w", s, err)
		}
		return Part(max(v, 0)), nil
	}
	return nil, fmt.Errorf("unknown proportion %q", s)
}
