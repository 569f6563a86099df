package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler adds --timing, --cpu-profile and --mem-profile to a command
// tree.
type CobraProfiler struct {
	cpuProfileFile *os.File
	cpuProfilePath string
	memProfilePath string
	timing         bool
}

func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// Attach registers the flags on cmd and hooks the profiler into its
// persistent pre and post run.
func (p *CobraProfiler) Attach(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuProfilePath, "cpu-profile", "", "Write CPU profile to file")
	cmd.PersistentFlags().StringVar(&p.memProfilePath, "mem-profile", "", "Write memory profile to file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a timing summary on exit")
	cmd.PersistentPreRunE = p.PreRun
	cmd.PersistentPostRun = p.PostRun
}

// PreRun starts the requested profiles.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}
	if p.cpuProfilePath != "" {
		f, err := os.Create(p.cpuProfilePath)
		if err != nil {
			return fmt.Errorf("could not create CPU profile: %w", err)
		}
		p.cpuProfileFile = f
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
	}
	return nil
}

// PostRun writes the profiles and the timing summary to stderr.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	out := cmd.ErrOrStderr()

	if p.cpuProfileFile != nil {
		pprof.StopCPUProfile()
		p.cpuProfileFile.Close()
		fmt.Fprintf(out, "CPU profile written to %s\n", p.cpuProfilePath)
	}

	if p.memProfilePath != "" {
		f, err := os.Create(p.memProfilePath)
		if err != nil {
			fmt.Fprintf(out, "could not create memory profile: %v\n", err)
		} else {
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(out, "could not write memory profile: %v\n", err)
			}
			f.Close()
			fmt.Fprintf(out, "Memory profile written to %s\n", p.memProfilePath)
		}
	}

	if p.timing {
		Summarize(out)
	}
}
