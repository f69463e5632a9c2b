// Package uitest drives widget trees in tests without a window.
//
// A Tester owns a desktop wired to a scriptable FakeInput and a FakeClock,
// plus a software surface, so a test can click, type, advance time and
// inspect pixels frame by frame:
//
//	tester := uitest.NewTesterWithT(t, 200, 100)
//	tester.Desktop.AddWidget(button)
//	tester.Click(10, 10)
//
// Finders locate widgets by type, id, or predicate.
package uitest
