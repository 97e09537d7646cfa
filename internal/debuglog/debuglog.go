// Package debuglog is init's path to the kernel debug channel.
//
// The kernel exposes one system call (SysDebugLog) that takes a pointer to
// NUL-terminated text and makes it visible on whatever debug sink it owns.
// Log is the only function that issues it; everything else in init goes
// through a Sink.
package debuglog

import "unsafe"

// SysDebugLog is the debug channel call number (sys_debug_log).
//
// Assumed: 0 is the debug channel slot of the kernels this was brought up
// on. Replace it with the munix syscall table entry for SYS_debug_log once
// that table is published; the asm stubs read this constant, so it is the
// only place to change.
const SysDebugLog = 0

// Text points at the first byte of NUL-terminated, read-only text.
// The length is implied by the terminator.
type Text *byte

// Sink consumes debug text synchronously. The kernel does not keep the
// reference after the call returns, and callers may rely on that.
type Sink interface {
	Log(text Text)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(text Text)

func (f SinkFunc) Log(text Text) { f(text) }

const emptyText = "\x00"

// Static returns a reference into a string constant that already carries
// its terminator. It panics if s does not end in NUL.
func Static(s string) Text {
	if len(s) == 0 || s[len(s)-1] != 0 {
		panic("debuglog: static text is not NUL-terminated")
	}
	return unsafe.StringData(s)
}

// Arg returns a reference to a loader-supplied argument. The runtime builds
// os.Args in place over the loader's argument block, so the byte after
// each argument is its terminator. Empty arguments map to a static empty
// text.
func Arg(s string) Text {
	if s == "" {
		return Static(emptyText)
	}
	return unsafe.StringData(s)
}

// Terminate copies s into fresh NUL-terminated storage. Host tools use it
// to feed arbitrary strings to a Sink; init itself never builds text.
func Terminate(s string) Text {
	b := make([]byte, len(s)+1)
	copy(b, s)
	return &b[0]
}

// String reads t up to its terminator. A nil Text reads as "".
func String(t Text) string {
	if t == nil {
		return ""
	}
	p := unsafe.Pointer(t)
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return string(unsafe.Slice((*byte)(t), n))
}

// Recorder is a Sink that keeps a copy of everything logged to it, along
// with the references it was given so callers can check identity.
type Recorder struct {
	texts []Text
	lines []string
}

func (r *Recorder) Log(text Text) {
	r.texts = append(r.texts, text)
	r.lines = append(r.lines, String(text))
}

// Lines returns the recorded text in invocation order.
func (r *Recorder) Lines() []string {
	return append([]string(nil), r.lines...)
}

// Texts returns the references passed to Log, in invocation order.
func (r *Recorder) Texts() []Text {
	return append([]Text(nil), r.texts...)
}

func (r *Recorder) Len() int { return len(r.lines) }

func (r *Recorder) Reset() {
	r.texts = r.texts[:0]
	r.lines = r.lines[:0]
}
