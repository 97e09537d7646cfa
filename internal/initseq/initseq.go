// Package initseq is what init does between entry and return: announce
// itself on the debug channel and dump its argument vector.
package initseq

import "github.com/munix-os/munix/internal/debuglog"

const (
	BannerStarted = "init: hello, world!"
	BannerArgv    = "init: dumping argv..."
)

const (
	bannerStarted = BannerStarted + "\x00"
	bannerArgv    = BannerArgv + "\x00"
)

// Run logs BannerStarted, BannerArgv, then every element of argv in index
// order. Each call completes before the next one is made.
func Run(sink debuglog.Sink, argv []debuglog.Text) {
	banners(sink)
	for _, arg := range argv {
		sink.Log(arg)
	}
}

// RunArgs is Run over the loader-supplied argument strings. Each argument
// is passed through debuglog.Arg in place; nothing is allocated.
func RunArgs(sink debuglog.Sink, args []string) {
	banners(sink)
	for _, a := range args {
		sink.Log(debuglog.Arg(a))
	}
}

func banners(sink debuglog.Sink) {
	sink.Log(debuglog.Static(bannerStarted))
	sink.Log(debuglog.Static(bannerArgv))
}
