package input

// Key identifies a keyboard key independent of the host backend.
type Key int

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeySpace
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyLeftShift
	KeyRightShift
	KeyLeftControl
	KeyRightControl
	KeyLeftAlt
	KeyRightAlt
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyNone:         "none",
	KeyEscape:       "escape",
	KeyEnter:        "enter",
	KeyTab:          "tab",
	KeySpace:        "space",
	KeyBackspace:    "backspace",
	KeyDelete:       "delete",
	KeyLeft:         "left",
	KeyRight:        "right",
	KeyUp:           "up",
	KeyDown:         "down",
	KeyHome:         "home",
	KeyEnd:          "end",
	KeyPageUp:       "pageup",
	KeyPageDown:     "pagedown",
	KeyLeftShift:    "lshift",
	KeyRightShift:   "rshift",
	KeyLeftControl:  "lctrl",
	KeyRightControl: "rctrl",
	KeyLeftAlt:      "lalt",
	KeyRightAlt:     "ralt",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	}
	return "unknown"
}

// RuneKey returns the key for an ASCII letter or digit. Letters match
// case-insensitively.
func RuneKey(r rune) (Key, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), true
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0'), true
	}
	return KeyNone, false
}

// IsShift reports whether k is either shift key.
func (k Key) IsShift() bool {
	return k == KeyLeftShift || k == KeyRightShift
}

// IsAlt reports whether k is either alt key.
func (k Key) IsAlt() bool {
	return k == KeyLeftAlt || k == KeyRightAlt
}
