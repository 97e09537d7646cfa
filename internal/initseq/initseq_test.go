package initseq

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munix-os/munix/internal/debuglog"
)

func texts(args ...string) []debuglog.Text {
	argv := make([]debuglog.Text, len(args))
	for i, a := range args {
		argv[i] = debuglog.Terminate(a)
	}
	return argv
}

func TestRunOrder(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{
			name: "no arguments",
			argv: nil,
			want: []string{BannerStarted, BannerArgv},
		},
		{
			name: "program name only",
			argv: []string{"init"},
			want: []string{BannerStarted, BannerArgv, "init"},
		},
		{
			name: "flag and value",
			argv: []string{"init", "--flag", "value"},
			want: []string{BannerStarted, BannerArgv, "init", "--flag", "value"},
		},
		{
			name: "arguments that look like banners",
			argv: []string{BannerArgv, "", BannerStarted},
			want: []string{BannerStarted, BannerArgv, BannerArgv, "", BannerStarted},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec debuglog.Recorder
			Run(&rec, texts(tt.argv...))

			assert.Equal(t, len(tt.argv)+2, rec.Len())
			assert.Equal(t, tt.want, rec.Lines())
		})
	}
}

func TestRunPassesArgumentsUnmodified(t *testing.T) {
	argv := texts("init", "--flag", "value")

	var rec debuglog.Recorder
	Run(&rec, argv)

	got := rec.Texts()
	require.Len(t, got, len(argv)+2)
	for i, arg := range argv {
		assert.Same(t, (*byte)(arg), (*byte)(got[i+2]), "argument %d", i)
	}
}

func TestRunBannersIndependentOfArguments(t *testing.T) {
	var short, long debuglog.Recorder
	Run(&short, nil)
	Run(&long, texts("init", "a", "b", "c", "d"))

	assert.Equal(t, short.Lines()[:2], long.Lines()[:2])
	assert.Equal(t, short.Texts()[:2], long.Texts()[:2])
}

func TestRunTwiceIsIdentical(t *testing.T) {
	argv := texts("init", "--flag", "value")

	var first, second debuglog.Recorder
	Run(&first, argv)
	Run(&second, argv)
	assert.Equal(t, first.Lines(), second.Lines())

	var both debuglog.Recorder
	Run(&both, argv)
	Run(&both, argv)
	lines := both.Lines()
	require.Len(t, lines, 10)
	assert.Equal(t, lines[:5], lines[5:])
}

// loaderArgs mimics os.Args: strings that sit directly in front of a NUL.
func loaderArgs(args ...string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		out[i] = unsafe.String((*byte)(debuglog.Terminate(a)), len(a))
	}
	return out
}

type countSink struct {
	n int
}

func (s *countSink) Log(debuglog.Text) { s.n++ }

func TestRunArgs(t *testing.T) {
	args := loaderArgs("init", "--flag", "value", "")

	var rec debuglog.Recorder
	RunArgs(&rec, args)

	assert.Equal(t, []string{BannerStarted, BannerArgv, "init", "--flag", "value", ""}, rec.Lines())
	got := rec.Texts()
	for i, a := range args[:3] {
		assert.Same(t, unsafe.StringData(a), (*byte)(got[i+2]), "argument %d", i)
	}
}

func TestRunArgsEmpty(t *testing.T) {
	var rec debuglog.Recorder
	RunArgs(&rec, nil)

	assert.Equal(t, []string{BannerStarted, BannerArgv}, rec.Lines())
}

func TestRunArgsDoesNotAllocate(t *testing.T) {
	args := loaderArgs("init", "--flag", "value", "")
	sink := &countSink{}

	allocs := testing.AllocsPerRun(100, func() {
		RunArgs(sink, args)
	})

	assert.Zero(t, allocs)
	assert.Equal(t, 101*(len(args)+2), sink.n)
}
