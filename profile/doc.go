// Package profile starts optional runtime profiling of the interpreter using
// [github.com/pkg/profile].
//
// Profiling is compiled in only with the "pprof" build tag ([Tag]). Without
// it, [Modes] is empty and [Profiler.Start] returns a Stopper that does
// nothing.
//
//	defer profile.New(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	).Start().Stop()
//
// Each mode writes one file named after it, such as cpu.pprof or
// mem.pprof, to the configured directory. The wmd command exposes this
// through --pprof-mode and --pprof-dir:
//
//	go build -tags pprof .
//	./wmd --pprof-mode cpu --pprof-dir prof run program.wmd
//	go tool pprof -http=: prof/cpu.pprof
//
// The default directory is "pprof" below the user cache directory for wmd.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
