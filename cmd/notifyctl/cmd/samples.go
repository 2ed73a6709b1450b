package cmd

import (
	"github.com/medeiros-dev/notification-validator/internal/samples"
	"github.com/medeiros-dev/notification-validator/internal/validation"
	"github.com/spf13/cobra"
)

func newSamplesCmd() *cobra.Command {
	opts := &outputOptions{}

	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Validate the built-in sample payloads, each under its own flags and tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.renderer()
			if err != nil {
				return err
			}
			for _, s := range samples.All() {
				result := validation.Validate(s.Payload, s.Flags, s.AccountTier)
				if err := r.Render(cmd.OutOrStdout(), s.Name, result); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.addFlags(cmd)
	return cmd
}
