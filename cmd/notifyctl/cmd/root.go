package cmd

import (
	"fmt"
	"strings"

	"github.com/medeiros-dev/notification-validator/internal/app/registry"
	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/domain/port/renderer"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"github.com/spf13/cobra"

	// Renderers register themselves from init().
	_ "github.com/medeiros-dev/notification-validator/internal/infrastructure/renderer/json"
	_ "github.com/medeiros-dev/notification-validator/internal/infrastructure/renderer/text"
)

type outputOptions struct {
	format string
	pretty bool
}

func (o *outputOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "output", "o", "text",
		fmt.Sprintf("output format, one of: %s", strings.Join(registry.RendererNames(), ", ")))
	cmd.Flags().BoolVar(&o.pretty, "pretty", false, "indent output where the format supports it")
}

func (o *outputOptions) renderer() (renderer.Renderer, error) {
	factory, err := registry.GetRendererFactory(o.format)
	if err != nil {
		return nil, err
	}
	return factory(renderer.Options{Pretty: o.pretty})
}

// NewRootCmd builds the notifyctl command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "notifyctl",
		Short:         "Validate notification payloads against the versioned channel rules.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.InitializeLogger(verbose)
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development logging")
	rootCmd.DisableAutoGenTag = true

	rootCmd.AddCommand(
		newValidateCmd(),
		newSamplesCmd(),
	)
	return rootCmd
}

func parseTier(s string) (domain.AccountTier, error) {
	tier := domain.AccountTier(s)
	if !tier.Valid() {
		return "", fmt.Errorf("invalid account tier %q, expected %s or %s", s, domain.AccountTierFree, domain.AccountTierPremium)
	}
	return tier, nil
}
