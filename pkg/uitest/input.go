package uitest

import (
	"slices"
	"sync"

	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/input"
)

// FakeInput is an input.Source whose snapshot is set by the test. Changes
// become visible to the desktop on its next UpdateInput.
type FakeInput struct {
	mu    sync.Mutex
	mouse input.MouseInfo
	keys  []input.Key
}

// Mouse returns the current pointer snapshot.
func (f *FakeInput) Mouse() input.MouseInfo {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mouse
}

// DownKeys returns a copy of the held keys.
func (f *FakeInput) DownKeys() []input.Key {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.keys)
}

// MoveTo sets the pointer position.
func (f *FakeInput) MoveTo(p geometry.Point) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouse.Position = p
}

// Press holds button b.
func (f *FakeInput) Press(b input.MouseButton) { f.setButton(b, true) }

// Release lets go of button b.
func (f *FakeInput) Release(b input.MouseButton) { f.setButton(b, false) }

func (f *FakeInput) setButton(b input.MouseButton, down bool) {
	if b < 0 || int(b) >= input.ButtonCount {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouse.Buttons[b] = down
}

// Scroll adds delta to the cumulative wheel value.
func (f *FakeInput) Scroll(delta int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.mouse.Wheel += delta
}

// KeyDown holds k. Holding a key twice has no extra effect.
func (f *FakeInput) KeyDown(k input.Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !slices.Contains(f.keys, k) {
		f.keys = append(f.keys, k)
	}
}

// KeyUp releases k.
func (f *FakeInput) KeyUp(k input.Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = slices.DeleteFunc(f.keys, func(x input.Key) bool { return x == k })
}

// ReleaseAll lets go of every key and button.
func (f *FakeInput) ReleaseAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys = nil
	f.mouse.Buttons = [input.ButtonCount]bool{}
}
