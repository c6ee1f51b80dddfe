package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ytget/imgqueue/internal/encoder"
	"github.com/ytget/imgqueue/internal/model"
)

func newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List output formats and whether their encoder is available",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry := encoder.NewRegistry()
			for _, f := range model.Formats() {
				enc := registry.Get(f)
				state := "available"
				if enc == nil {
					state = "unavailable"
				} else if w, ok := enc.(*encoder.WebPEncoder); ok {
					state += " (" + w.Backend() + ")"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-5s %-9s %s\n", f, f.MIMEType(), state)
			}
			return nil
		},
	}
}
