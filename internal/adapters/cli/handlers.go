package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHandlersCommand creates the handlers command
func NewHandlersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "handlers",
		Short: "List registered handlers per payload type",
		Long: `List every payload type in the registry with its handlers in
registration order. Registration order decides notification fan-out order
and which handler the first/last ambiguity policies select.

Example:
  mediator-demo handlers`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app, err := Bootstrap(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, payloadType := range app.Registry.Types() {
				fmt.Fprintf(out, "%s\n", payloadType)
				for i, id := range app.Registry.Lookup(payloadType) {
					fmt.Fprintf(out, "  %d. %s\n", i+1, id)
				}
			}
			return nil
		},
	}
}
