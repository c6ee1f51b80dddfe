package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ytget/imgqueue/internal/convert"
	"github.com/ytget/imgqueue/internal/download"
	"github.com/ytget/imgqueue/internal/encoder"
	"github.com/ytget/imgqueue/internal/model"
	"github.com/ytget/imgqueue/internal/platform"
	"github.com/ytget/imgqueue/internal/queue"
)

// ErrNothingConverted is returned when no image of the batch was delivered
var ErrNothingConverted = errors.New("no image was converted")

type convertOptions struct {
	*globalOptions
	format string
	name   string
	outDir string
}

func newConvertCommand(global *globalOptions) *cobra.Command {
	opts := &convertOptions{globalOptions: global}

	cmd := &cobra.Command{
		Use:   "convert <file>...",
		Short: "Convert images to one format",
		Long: `Queues the given files in order (files that are not PNG, JPEG or WEBP
are ignored) and converts each one at maximum quality.

WEBP output is lossy at maximum quality when the cwebp tool is in PATH
and lossless otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args)
		},
	}

	defaultOut, err := platform.DefaultOutputDir()
	if err != nil {
		defaultOut = "."
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", string(model.FormatPNG), "output format: png, jpeg (jpg) or webp")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "output base name (default "+model.DefaultBaseName+")")
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", defaultOut, "output directory")
	return cmd
}

func runConvert(cmd *cobra.Command, opts *convertOptions, args []string) error {
	start := time.Now()
	out := cmd.OutOrStdout()

	format, err := model.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	absOutput, err := filepath.Abs(opts.outDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	if err := platform.CreateDirectoryIfNotExists(absOutput); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	registry := encoder.NewRegistry()
	opts.logVerbose("output:  %s", absOutput)
	opts.logVerbose("format:  %s", format)
	opts.logVerbose("%s", registry)

	svc := convert.NewService(registry, download.NewService(absOutput))
	view := newConsoleView(cmd.ErrOrStderr())
	ctrl := queue.NewController(view, blankPreviewer{}, svc)
	ctrl.SetTaskListener(func(task *model.ConversionTask) {
		opts.logVerbose("#%d %s: %s", task.Position, task.SourceName, task.Status)
	})

	files, loadErrs := platform.LoadImageFiles(args)
	for _, err := range loadErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipping: %v\n", err)
	}

	added, err := ctrl.Enqueue(files)
	if err != nil {
		return err
	}
	opts.logVerbose("queued %d of %d file(s)", added, len(args))

	tasks, err := ctrl.ConvertAll(format, opts.name)
	if err != nil {
		return err
	}
	svc.Wait()

	finals := svc.GetAllTasks()
	sort.Slice(finals, func(i, j int) bool { return finals[i].Position < finals[j].Position })

	converted := 0
	for _, final := range finals {
		switch final.Status {
		case model.TaskStatusCompleted:
			converted++
			fmt.Fprintf(out, "%3d  %-10s %s (%s)\n", final.Position, final.Status, final.OutputPath, final.Duration().Round(time.Millisecond))
		default:
			fmt.Fprintf(out, "%3d  %-10s %s (%s)\n", final.Position, final.Status, final.SourceName, final.LastError)
		}
	}
	fmt.Fprintf(out, "\nconverted %d of %d image(s) in %s\n", converted, len(tasks), time.Since(start).Round(time.Millisecond))

	if converted == 0 {
		return ErrNothingConverted
	}
	return nil
}
