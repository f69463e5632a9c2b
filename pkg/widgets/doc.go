// Package widgets provides concrete widgets built on the ui package.
//
// Every constructor takes the stylesheet to copy sizing and brushes from;
// a nil stylesheet leaves the widget unstyled. Styles are looked up by
// widget kind ("label", "button", "panel", "menu") and the widget's style
// name, falling back to the default style:
//
//	ss, _ := style.Load("theme.yaml")
//	ok := widgets.NewButton(ss, "OK")
//	ok.Click.Add(func(*widgets.Button) { save() })
//
// # Mnemonics
//
// Menu item text marks its keyboard mnemonic with an underscore before the
// character ("_File"). A doubled underscore is a literal one. The mnemonic
// is underlined while the desktop shows underscores.
package widgets
