package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/medeiros-dev/notification-validator/internal/domain"
	"github.com/medeiros-dev/notification-validator/internal/validation"
	"github.com/medeiros-dev/notification-validator/pkg/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ErrInvalidPayloads is returned by validate when at least one payload is
// invalid. The results have already been printed.
var ErrInvalidPayloads = errors.New("one or more payloads are invalid")

const stdinArg = "-"

type validateOptions struct {
	output    outputOptions
	tier      string
	deepLinks bool
	priority  bool
}

func newValidateCmd() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file|-]",
		Short: "Validate one JSON payload, or a JSON array of payloads",
		Long: `Validate reads a JSON payload, or an array of payloads, from a file or from
standard input ("-" or no argument) and prints one result per payload.
The exit status is 1 when any payload is invalid.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := stdinArg
			if len(args) == 1 {
				source = args[0]
			}
			return runValidate(cmd, opts, source)
		},
	}

	opts.output.addFlags(cmd)
	cmd.Flags().StringVar(&opts.tier, "tier", string(domain.AccountTierFree), "account tier, free or premium")
	cmd.Flags().BoolVar(&opts.deepLinks, "deep-links", false, "enable the deep links feature flag")
	cmd.Flags().BoolVar(&opts.priority, "priority", false, "enable the priority feature flag")
	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions, source string) error {
	tier, err := parseTier(opts.tier)
	if err != nil {
		return err
	}
	r, err := opts.output.renderer()
	if err != nil {
		return err
	}

	label, data, err := readSource(cmd, source)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return fmt.Errorf("failed to parse %s: %w", label, err)
	}

	payloads := []any{decoded}
	labels := []string{label}
	if list, ok := decoded.([]any); ok {
		payloads = list
		labels = make([]string, len(list))
		for i := range list {
			labels[i] = fmt.Sprintf("%s[%d]", label, i)
		}
	}

	flags := domain.FeatureFlags{EnableDeepLinks: opts.deepLinks, EnablePriority: opts.priority}
	invalid := 0
	for i, payload := range payloads {
		result := validation.Validate(payload, flags, tier)
		if !result.Valid {
			invalid++
		}
		if err := r.Render(cmd.OutOrStdout(), labels[i], result); err != nil {
			return err
		}
	}

	logger.L().Debug("Validation finished",
		zap.String("source", label),
		zap.Int("payloads", len(payloads)),
		zap.Int("invalid", invalid),
	)
	if invalid > 0 {
		return ErrInvalidPayloads
	}
	return nil
}

func readSource(cmd *cobra.Command, source string) (string, []byte, error) {
	if source == stdinArg {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return "stdin", data, nil
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return source, data, nil
}
