package style

import (
	stderrors "errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/image/colornames"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/render"
)

// Format identifies a stylesheet encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// SupportedMajor is the stylesheet major version this package understands.
const SupportedMajor = "v1"

// ErrUnsupportedVersion is returned for stylesheets outside SupportedMajor.
var ErrUnsupportedVersion = stderrors.New("unsupported stylesheet version")

type sheetDoc struct {
	Version string              `yaml:"version" toml:"version"`
	Styles  map[string]styleDoc `yaml:"styles" toml:"styles"`
}

type paddingDoc struct {
	Left   int `yaml:"left" toml:"left"`
	Top    int `yaml:"top" toml:"top"`
	Right  int `yaml:"right" toml:"right"`
	Bottom int `yaml:"bottom" toml:"bottom"`
}

type styleDoc struct {
	Width   *int       `yaml:"width,omitempty" toml:"width,omitempty"`
	Height  *int       `yaml:"height,omitempty" toml:"height,omitempty"`
	Padding paddingDoc `yaml:"padding" toml:"padding"`

	Background         string `yaml:"background,omitempty" toml:"background,omitempty"`
	OverBackground     string `yaml:"over_background,omitempty" toml:"over_background,omitempty"`
	DisabledBackground string `yaml:"disabled_background,omitempty" toml:"disabled_background,omitempty"`
	FocusedBackground  string `yaml:"focused_background,omitempty" toml:"focused_background,omitempty"`

	Border         string `yaml:"border,omitempty" toml:"border,omitempty"`
	OverBorder     string `yaml:"over_border,omitempty" toml:"over_border,omitempty"`
	DisabledBorder string `yaml:"disabled_border,omitempty" toml:"disabled_border,omitempty"`
	FocusedBorder  string `yaml:"focused_border,omitempty" toml:"focused_border,omitempty"`
}

// Load reads a stylesheet from path. The format is chosen by extension:
// .toml is TOML, anything else is YAML.
func Load(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &errors.RetainError{Op: "style.Load", Kind: errors.KindStyle, Err: fmt.Errorf("failed to read %s: %w", path, err)}
	}
	format := FormatYAML
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		format = FormatTOML
	}
	ss, err := Parse(data, format)
	if err != nil {
		return nil, &errors.RetainError{Op: "style.Load", Kind: errors.KindStyle, Err: fmt.Errorf("%s: %w", path, err)}
	}
	return ss, nil
}

// Parse decodes a stylesheet document.
func Parse(data []byte, format Format) (*Stylesheet, error) {
	var doc sheetDoc
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		err = yaml.Unmarshal(data, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse stylesheet: %w", err)
	}

	version := strings.TrimSpace(doc.Version)
	if version == "" {
		version = SupportedMajor + ".0.0"
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("invalid stylesheet version %q", doc.Version)
	}
	if semver.Major(version) != SupportedMajor {
		return nil, fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedVersion, version, SupportedMajor)
	}

	ss := New()
	ss.Version = semver.Canonical(version)
	for name, sd := range doc.Styles {
		ws, err := sd.resolve()
		if err != nil {
			return nil, fmt.Errorf("style %q: %w", name, err)
		}
		ss.Set(name, ws)
	}
	return ss, nil
}

func (d styleDoc) resolve() (*WidgetStyle, error) {
	ws := &WidgetStyle{
		Width:  clampHint(d.Width),
		Height: clampHint(d.Height),
		Padding: geometry.Thickness{
			Left:   max(d.Padding.Left, 0),
			Top:    max(d.Padding.Top, 0),
			Right:  max(d.Padding.Right, 0),
			Bottom: max(d.Padding.Bottom, 0),
		},
	}
	fields := []struct {
		value string
		dst   *render.Brush
	}{
		{d.Background, &ws.Background},
		{d.OverBackground, &ws.OverBackground},
		{d.DisabledBackground, &ws.DisabledBackground},
		{d.FocusedBackground, &ws.FocusedBackground},
		{d.Border, &ws.Border},
		{d.OverBorder, &ws.OverBorder},
		{d.DisabledBorder, &ws.DisabledBorder},
		{d.FocusedBorder, &ws.FocusedBorder},
	}
	for _, f := range fields {
		b, err := ParseBrush(f.value)
		if err != nil {
			return nil, err
		}
		*f.dst = b
	}
	return ws, nil
}

func clampHint(v *int) *int {
	if v == nil {
		return nil
	}
	c := max(*v, 0)
	return &c
}

// ParseBrush converts a brush value into a Brush.
//
// Accepted forms are a colour ("#rgb", "#rrggbb", "#rrggbbaa", or an SVG
// colour name such as "cornflowerblue") for a solid fill, or
// "outline:<colour>" for a one pixel frame. An empty value or "none" yields nil.
func ParseBrush(value string) (render.Brush, error) {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, "none") {
		return nil, nil
	}
	if rest, ok := strings.CutPrefix(value, "outline:"); ok {
		c, err := ParseColor(rest)
		if err != nil {
			return nil, err
		}
		return render.Outline{Color: c, Thickness: 1}, nil
	}
	c, err := ParseColor(value)
	if err != nil {
		return nil, err
	}
	return render.Solid{Color: c}, nil
}

// ParseColor parses a hex colour or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		return parseHex(hex)
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

func parseHex(hex string) (color.RGBA, error) {
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("bad hex colour #%s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("bad hex colour #%s: %w", hex, err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
