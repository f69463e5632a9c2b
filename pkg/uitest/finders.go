package uitest

import (
	"fmt"
	"reflect"

	"github.com/go-drift/retain/pkg/ui"
)

// Finder locates widgets in a tree.
type Finder interface {
	// Evaluate returns all matching widgets under root (depth-first pre-order).
	Evaluate(root ui.Widget) []ui.Widget
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	widgets []ui.Widget
	finder  Finder
}

// Find runs f over every top-level widget of d, bottom to top.
func Find(d *ui.Desktop, f Finder) FinderResult {
	var found []ui.Widget
	for _, w := range d.Widgets() {
		found = append(found, f.Evaluate(w)...)
	}
	return FinderResult{widgets: found, finder: f}
}

func (r FinderResult) description() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() ui.Widget {
	if len(r.widgets) == 0 {
		panic(fmt.Sprintf("Finder found no widgets: %s", r.description()))
	}
	return r.widgets[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() ui.Widget {
	if len(r.widgets) == 0 {
		return nil
	}
	return r.widgets[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) ui.Widget {
	if index < 0 || index >= len(r.widgets) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.widgets), r.description()))
	}
	return r.widgets[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []ui.Widget { return r.widgets }

// Count returns the number of matches.
func (r FinderResult) Count() int { return len(r.widgets) }

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool { return len(r.widgets) > 0 }

func collectMatches(root ui.Widget, match func(ui.Widget) bool) []ui.Widget {
	var out []ui.Widget
	ui.Walk(root, func(w ui.Widget) bool {
		if match(w) {
			out = append(out, w)
		}
		return true
	})
	return out
}

type predicateFinder struct {
	fn   func(ui.Widget) bool
	desc string
}

func (f *predicateFinder) Evaluate(root ui.Widget) []ui.Widget { return collectMatches(root, f.fn) }
func (f *predicateFinder) Description() string                 { return f.desc }

// ByType returns a finder that matches widgets of concrete type T.
func ByType[T ui.Widget]() Finder {
	t := reflect.TypeFor[T]()
	return &predicateFinder{
		fn:   func(w ui.Widget) bool { return reflect.TypeOf(w) == t },
		desc: fmt.Sprintf("ByType(%s)", t),
	}
}

// ByID returns a finder that matches widgets with the given id.
func ByID(id string) Finder {
	return &predicateFinder{
		fn:   func(w ui.Widget) bool { return w.Core().ID() == id },
		desc: fmt.Sprintf("ByID(%q)", id),
	}
}

// ByPredicate returns a finder that matches widgets satisfying fn.
func ByPredicate(fn func(ui.Widget) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

type descendantFinder struct {
	of, matching Finder
}

func (f *descendantFinder) Evaluate(root ui.Widget) []ui.Widget {
	var results []ui.Widget
	seen := make(map[ui.Widget]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		ct, ok := ancestor.(ui.Container)
		if !ok {
			continue
		}
		for _, child := range ct.Children() {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches widgets satisfying matching
// that lie strictly inside widgets matching of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
