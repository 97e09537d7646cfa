//go:build munix && (amd64 || arm64)

package main

// init for munix, the first user process.
// Reports the switch to user space and its argv via sys_debug_log
// (syscall 0), then returns.

import (
	"os"

	"github.com/munix-os/munix/internal/debuglog"
	"github.com/munix-os/munix/internal/initseq"
)

func main() {
	initseq.RunArgs(debuglog.Kernel(), os.Args)
}
