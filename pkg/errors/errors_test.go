package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetainErrorString(t *testing.T) {
	err := &RetainError{
		Op:   "ui.Widget.EnsureWidgetByID",
		Kind: KindConfig,
		Err:  &NotFoundError{ID: "ok"},
	}
	assert.Equal(t, `ui.Widget.EnsureWidgetByID [config]: could not find widget with id "ok"`, err.Error())
}

func TestRetainErrorUnwrap(t *testing.T) {
	cause := &NotFoundError{ID: "x"}
	err := &RetainError{Op: "op", Kind: KindStyle, Err: cause}

	var nf *NotFoundError
	require.True(t, stderrors.As(err, &nf))
	assert.Equal(t, "x", nf.ID)
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindLayout, "layout"},
		{KindStyle, "style"},
		{KindInput, "input"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "boom", Timestamp: time.Now()}
	assert.Equal(t, "panic: boom", err.Error())

	err.Op = "cmd.demo"
	assert.Equal(t, "panic in cmd.demo: boom", err.Error())
}

func TestFailPanicsWithConfigError(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected Fail to panic")
		err, ok := r.(*RetainError)
		require.True(t, ok, "expected *RetainError, got %T", r)
		assert.Equal(t, KindConfig, err.Kind)
		assert.Equal(t, "test.fail", err.Op)
		assert.NotEmpty(t, err.StackTrace)
	}()

	Fail("test.fail", &NotFoundError{ID: "missing"})
}

func TestReport(t *testing.T) {
	var captured *RetainError
	handler := &testHandler{onError: func(err *RetainError) { captured = err }}

	old := DefaultHandler
	SetHandler(handler)
	defer SetHandler(old)

	Report(&RetainError{Op: "test.op", Kind: KindStyle, Err: stderrors.New("bad")})

	require.NotNil(t, captured)
	assert.Equal(t, "test.op", captured.Op)
	assert.False(t, captured.Timestamp.IsZero(), "expected Timestamp to be set")
}

func TestReportNilIsIgnored(t *testing.T) {
	called := false
	old := DefaultHandler
	SetHandler(&testHandler{onError: func(*RetainError) { called = true }})
	defer SetHandler(old)

	Report(nil)
	assert.False(t, called)
}

func TestRecover(t *testing.T) {
	var captured *PanicError
	old := DefaultHandler
	SetHandler(&testHandler{onPanic: func(err *PanicError) { captured = err }})
	defer SetHandler(old)

	func() {
		defer Recover("test.recover")
		panic("intentional test panic")
	}()

	require.NotNil(t, captured)
	assert.Equal(t, "intentional test panic", captured.Value)
	assert.Equal(t, "test.recover", captured.Op)
}

func TestRecoverWithCallback(t *testing.T) {
	old := DefaultHandler
	SetHandler(&testHandler{})
	defer SetHandler(old)

	var got any
	func() {
		defer RecoverWithCallback("test.callback", func(r any) { got = r })
		panic(42)
	}()
	assert.Equal(t, 42, got)
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	require.NotEmpty(t, stack)
	assert.True(t, strings.Contains(stack, "testing") || strings.Contains(stack, "runtime"))
}

func TestSetHandlerNil(t *testing.T) {
	SetHandler(nil)
	_, ok := DefaultHandler.(*LogHandler)
	assert.True(t, ok, "SetHandler(nil) should restore LogHandler, got %T", DefaultHandler)
}

func TestLogHandlerWritesOneLine(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Out: &buf}
	h.HandleError(&RetainError{Op: "style.Load", Kind: KindStyle, Err: stderrors.New("bad version")})
	assert.Equal(t, "[retain error] style.Load: bad version\n", buf.String())

	buf.Reset()
	h.Verbose = true
	h.HandlePanic(&PanicError{Op: "cmd.demo", Value: "boom", StackTrace: "frame"})
	assert.Equal(t, "[retain panic] cmd.demo: boom\nStack trace:\nframe\n", buf.String())
}

type testHandler struct {
	onError func(*RetainError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *RetainError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
