package cmd

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-drift/retain/pkg/errors"
	"github.com/go-drift/retain/pkg/geometry"
	"github.com/go-drift/retain/pkg/style"
	"github.com/go-drift/retain/pkg/uitest"
)

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

type recordingHandler struct {
	errs []*errors.RetainError
}

func (h *recordingHandler) HandleError(err *errors.RetainError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(*errors.PanicError) {}

func recordErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })
	return h
}

func TestParseDemoArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(demoOptions) bool
		wantErr bool
	}{
		{"defaults", nil, func(o demoOptions) bool {
			return o.output == "demo.png" && o.columns == "Auto,*,2*" && o.width == 0
		}, false},
		{"output", []string{"-o", "x.png"}, func(o demoOptions) bool { return o.output == "x.png" }, false},
		{"size", []string{"--size", "320x200"}, func(o demoOptions) bool {
			return o.width == 320 && o.height == 200
		}, false},
		{"clicks", []string{"--click", "1,2", "--click", "3, 4"}, func(o demoOptions) bool {
			return len(o.clicks) == 2 && o.clicks[1] == geometry.Pt(3, 4)
		}, false},
		{"missing value", []string{"--rows"}, nil, true},
		{"unknown flag", []string{"--fast"}, nil, true},
		{"bad size", []string{"--size", "0x10"}, nil, true},
		{"bad point", []string{"--click", "3"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseDemoArgs(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseDemoArgs(%q) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(opts) {
				t.Errorf("parseDemoArgs(%q) = %+v", tt.args, opts)
			}
		})
	}
}

func TestBuildDemoRejectsBadProportions(t *testing.T) {
	ss := style.New()
	if _, err := buildDemo(ss, demoOptions{columns: "Auto,huge", rows: "*"}); err == nil {
		t.Fatal("expected an error for an invalid column proportion")
	}
}

func TestDemoRendersAndReplaysClicks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "go.mod"), "module example.com/apps/sampler\n\ngo 1.24\n")
	writeFile(t, filepath.Join(dir, "retain.yaml"), "desktop:\n  width: 320\n  height: 200\n")

	// Lay the same tree out on a tester to find where the OK button lands.
	ss, err := style.Parse([]byte(builtinTheme), style.FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	opts, err := parseDemoArgs(nil)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := buildDemo(ss, opts)
	if err != nil {
		t.Fatal(err)
	}
	tester := uitest.NewTesterWithT(t, 320, 200)
	tester.Desktop.AddWidget(tree.grid)
	tester.Pump()
	ok := tester.Desktop.EnsureWidgetByID("ok").Core().Bounds().Center()

	out := filepath.Join(dir, "out.png")
	buf := captureStdout(t)
	click := fmt.Sprintf("%d,%d", ok.X, ok.Y)
	if err := Execute([]string{"demo", "--dir", dir, "-o", out, "--click", click, "--click", click}); err != nil {
		t.Fatalf("demo: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"sampler: 320x200 desktop", "OK clicked 2 time(s)", "wrote " + out} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 320 || b.Dy() != 200 {
		t.Errorf("image size = %v, want 320x200", b.Size())
	}
}

func TestStyleCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "theme.toml")
	writeFile(t, good, "version = \"1.0.0\"\n\n[styles.default]\nbackground = \"navy\"\n\n[styles.\"button/default\"]\nwidth = 40\n")
	bad := filepath.Join(dir, "old.yaml")
	writeFile(t, bad, "version: \"0.9.0\"\nstyles: {}\n")

	buf := captureStdout(t)
	if err := Execute([]string{"style", good}); err != nil {
		t.Fatalf("style: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "2 styles") || !strings.Contains(got, "  button/default\n") {
		t.Errorf("unexpected output:\n%s", got)
	}

	handler := recordErrors(t)
	buf.Reset()
	if err := Execute([]string{"style", bad, good}); err == nil {
		t.Error("expected an error for a v0 stylesheet")
	}
	if len(handler.errs) != 1 {
		t.Fatalf("reported %d errors, want 1", len(handler.errs))
	}
	if got := handler.errs[0]; got.Op != "style.Load" || got.Kind != errors.KindStyle {
		t.Errorf("reported %s [%s], want style.Load [%s]", got.Op, got.Kind, errors.KindStyle)
	}
	if !strings.Contains(buf.String(), good+": version v1.0.0") {
		t.Errorf("valid stylesheet after a failure was not checked:\n%s", buf.String())
	}
	if err := Execute([]string{"style"}); err == nil {
		t.Error("expected an error without arguments")
	}
}

func TestDemoReportsLoadFailures(t *testing.T) {
	tests := []struct {
		name   string
		config string
		kind   errors.ErrorKind
	}{
		{"bad config", "desktop:\n  width: -1\n", errors.KindConfig},
		{"missing stylesheet", "style:\n  path: missing.yaml\n", errors.KindStyle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "retain.yaml"), tt.config)
			handler := recordErrors(t)
			captureStdout(t)

			err := Execute([]string{"demo", "--dir", dir, "-o", filepath.Join(dir, "out.png")})
			if err == nil {
				t.Fatal("expected an error")
			}
			if len(handler.errs) != 1 || handler.errs[0].Kind != tt.kind {
				t.Fatalf("reported %v, want one %s error", handler.errs, tt.kind)
			}
			if _, statErr := os.Stat(filepath.Join(dir, "out.png")); statErr == nil {
				t.Error("no image should be written when loading fails")
			}
		})
	}
}

func TestExecuteHelpAndVersion(t *testing.T) {
	buf := captureStdout(t)
	if err := Execute([]string{"--version"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "retain version "+Version) {
		t.Errorf("version output = %q", buf.String())
	}

	buf.Reset()
	if err := Execute([]string{"demo", "--help"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "retain demo [-o FILE]") {
		t.Errorf("demo help = %q", buf.String())
	}

	if err := Execute([]string{"paint"}); err == nil {
		t.Error("expected an error for an unknown command")
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
