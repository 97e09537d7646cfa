//go:build munix && (amd64 || arm64)

package debuglog

// rawDebugLog invokes syscall SysDebugLog (sys_debug_log).
// Defined in syscall_$GOARCH.s.
//
//go:noescape
func rawDebugLog(text *byte)

// Log hands text to the kernel debug channel. The kernel's return value is
// discarded; a failed call is the kernel's problem, not init's.
func Log(text Text) {
	rawDebugLog(text)
}

type kernelSink struct{}

func (kernelSink) Log(text Text) { Log(text) }

// Kernel returns the Sink backed by the debug-log system call.
func Kernel() Sink { return kernelSink{} }
