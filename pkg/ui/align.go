package ui

import "github.com/go-drift/retain/pkg/geometry"

// HorizontalAlignment positions a widget inside its container horizontally.
type HorizontalAlignment int

const (
	HorizontalLeft HorizontalAlignment = iota
	HorizontalCenter
	HorizontalRight
	HorizontalStretch
)

func (a HorizontalAlignment) String() string {
	switch a {
	case HorizontalLeft:
		return "left"
	case HorizontalCenter:
		return "center"
	case HorizontalRight:
		return "right"
	case HorizontalStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// VerticalAlignment positions a widget inside its container vertically.
type VerticalAlignment int

const (
	VerticalTop VerticalAlignment = iota
	VerticalCenter
	VerticalBottom
	VerticalStretch
)

func (a VerticalAlignment) String() string {
	switch a {
	case VerticalTop:
		return "top"
	case VerticalCenter:
		return "center"
	case VerticalBottom:
		return "bottom"
	case VerticalStretch:
		return "stretch"
	default:
		return "unknown"
	}
}

// Align places a control of controlSize inside a container of
// containerSize. The result is relative to the container origin.
//
// Left and Top keep the origin. Center splits the slack evenly, rounding
// toward zero. Right and Bottom push against the far edge, and Stretch takes
// the container extent on that axis.
func Align(containerSize, controlSize geometry.Point, h HorizontalAlignment, v VerticalAlignment) geometry.Rect {
	r := geometry.Rect{Width: controlSize.X, Height: controlSize.Y}

	switch h {
	case HorizontalCenter:
		r.X = (containerSize.X - controlSize.X) / 2
	case HorizontalRight:
		r.X = containerSize.X - controlSize.X
	case HorizontalStretch:
		r.Width = containerSize.X
	}

	switch v {
	case VerticalCenter:
		r.Y = (containerSize.Y - controlSize.Y) / 2
	case VerticalBottom:
		r.Y = containerSize.Y - controlSize.Y
	case VerticalStretch:
		r.Height = containerSize.Y
	}

	return r
}

// LayoutState tracks how much of a widget's arrangement is stale.
type LayoutState int

const (
	// LayoutNormal means bounds are current.
	LayoutNormal LayoutState = iota
	// LayoutLocationInvalid means only the position hints moved; the
	// subtree can be translated without re-measuring.
	LayoutLocationInvalid
	// LayoutInvalid means the widget must be measured and arranged again.
	LayoutInvalid
)

func (s LayoutState) String() string {
	switch s {
	case LayoutNormal:
		return "normal"
	case LayoutLocationInvalid:
		return "location-invalid"
	case LayoutInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}
