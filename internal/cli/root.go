// Package cli implements the imgqueue command line: the same queue and
// conversion pipeline as the desktop app, driven without a window.
package cli

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
)

// Version is set during build via -ldflags "-X github.com/ytget/imgqueue/internal/cli.Version=X.Y.Z"
var Version = "dev"

type globalOptions struct {
	verbose bool

	mu     sync.Mutex
	stderr io.Writer
}

// logVerbose prints a message only when --verbose is set.
func (o *globalOptions) logVerbose(format string, args ...any) {
	if o.verbose {
		o.mu.Lock()
		defer o.mu.Unlock()
		fmt.Fprintf(o.stderr, "[imgqueue] "+format+"\n", args...)
	}
}

// NewRootCommand builds the command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "imgqueue",
		Short: "Queue images and batch-convert them to PNG, JPEG or WEBP",
		Long: `imgqueue converts every given image to one output format and writes
one file per image named <name>_<position>.<ext>, in the order given.

Images that cannot be decoded are reported by position and skipped;
the rest of the batch still converts.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.stderr = cmd.ErrOrStderr()
		},
	}

	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	root.SetVersionTemplate(fmt.Sprintf(
		"imgqueue %s (%s/%s, %s)\n",
		Version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))

	root.AddCommand(newConvertCommand(opts))
	root.AddCommand(newFormatsCommand())
	return root
}

// Execute runs the command line with os.Args
func Execute() error {
	return NewRootCommand().Execute()
}
