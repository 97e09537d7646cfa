// Package transcript checks captured kernel debug output (a serial log, a
// QEMU -serial file, initsim output) for the init entry sequence.
package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/munix-os/munix/internal/initseq"
)

const maxLine = 1 << 20

// ErrBannerNotFound means init never announced itself.
var ErrBannerNotFound = errors.New("transcript: init banner not found")

// MismatchError reports the first line of an init sequence that differs
// from what init should have logged. Index counts from banner 1.
type MismatchError struct {
	Start int
	Index int
	Want  string
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("transcript: init sequence at line %d: entry %d: want %q, got %q",
		e.Start, e.Index, e.Want, e.Got)
}

// ShortError means the transcript ended partway through an init sequence.
type ShortError struct {
	Start int
	Want  int
	Got   int
}

func (e *ShortError) Error() string {
	return fmt.Sprintf("transcript: init sequence at line %d: want %d entries, got %d",
		e.Start, e.Want, e.Got)
}

// Report locates one verified init sequence.
type Report struct {
	Start int // line index of banner 1
	Count int // number of debug-log invocations, len(argv)+2
}

// Parse reads r line by line and returns the lines that start with prefix,
// with the prefix and any trailing carriage return removed. An empty prefix
// keeps every line.
func Parse(r io.Reader, prefix string) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var lines []string
	for sc.Scan() {
		line := strings.TrimSuffix(sc.Text(), "\r")
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		lines = append(lines, strings.TrimPrefix(line, prefix))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("transcript: read: %w", err)
	}
	return lines, nil
}

// Expected is the exact sequence init logs for argv.
func Expected(argv []string) []string {
	want := make([]string, 0, len(argv)+2)
	want = append(want, initseq.BannerStarted, initseq.BannerArgv)
	return append(want, argv...)
}

// Verify finds the first init sequence in lines and checks it against argv.
// Lines before banner 1 and after the sequence are ignored.
func Verify(lines, argv []string) (*Report, error) {
	start := find(lines, 0)
	if start < 0 {
		return nil, ErrBannerNotFound
	}
	return verifyAt(lines, Expected(argv), start)
}

// VerifyAll checks every init sequence in lines, e.g. across reboots in one
// serial log. It fails on the first bad sequence.
func VerifyAll(lines, argv []string) ([]Report, error) {
	want := Expected(argv)

	var reports []Report
	for from := 0; ; {
		start := find(lines, from)
		if start < 0 {
			break
		}
		rep, err := verifyAt(lines, want, start)
		if err != nil {
			return reports, err
		}
		reports = append(reports, *rep)
		from = start + rep.Count
	}

	if len(reports) == 0 {
		return nil, ErrBannerNotFound
	}
	return reports, nil
}

func find(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if lines[i] == initseq.BannerStarted {
			return i
		}
	}
	return -1
}

func verifyAt(lines, want []string, start int) (*Report, error) {
	for i, w := range want {
		j := start + i
		if j >= len(lines) {
			return nil, &ShortError{Start: start, Want: len(want), Got: i}
		}
		if lines[j] != w {
			return nil, &MismatchError{Start: start, Index: i, Want: w, Got: lines[j]}
		}
	}
	return &Report{Start: start, Count: len(want)}, nil
}
