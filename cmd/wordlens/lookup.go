package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/wordlens/internal/adapter/provider/freedict"
	"github.com/heartmarshall/wordlens/internal/app"
	"github.com/heartmarshall/wordlens/internal/config"
	"github.com/heartmarshall/wordlens/internal/domain"
	"github.com/heartmarshall/wordlens/internal/render"
	"github.com/heartmarshall/wordlens/internal/service/lookup"
)

type lookupOptions struct {
	theme      string
	jsonOutput bool
}

func newLookupCmd() *cobra.Command {
	opts := &lookupOptions{}

	cmd := &cobra.Command{
		Use:   "lookup <word>...",
		Short: "Look up a word and print its definition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVar(&opts.theme, "theme", string(domain.DefaultTheme), "Color theme: light or dark")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Print the result as JSON")

	return cmd
}

func runLookup(cmd *cobra.Command, input string, opts *lookupOptions) error {
	theme := domain.Theme(opts.theme)
	if !theme.IsValid() {
		return fmt.Errorf("lookup: --theme must be %q or %q (got %q)", domain.ThemeLight, domain.ThemeDark, opts.theme)
	}

	word := domain.NormalizeQuery(input)
	if word == "" {
		return fmt.Errorf("lookup: word must not be blank")
	}

	cfg, err := config.LoadClient()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	dict := freedict.NewProvider(logger,
		freedict.WithBaseURL(cfg.Dictionary.BaseURL),
		freedict.WithTimeout(cfg.Dictionary.Timeout),
		freedict.WithRetries(cfg.Dictionary.Retries),
	)
	svc := lookup.NewService(logger, dict, 0)

	state := domain.NewState()
	status := svc.FetchWord(cmd.Context(), state, word)
	snap := state.Snapshot()

	out := cmd.OutOrStdout()
	if opts.jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(map[string]any{
			"status": snap.Status,
			"word":   snap.Word,
			"error":  snap.Error,
		}); err != nil {
			return fmt.Errorf("lookup: encode: %w", err)
		}
	} else {
		fmt.Fprintln(out, render.Terminal(snap, theme))
	}

	if status == domain.StatusError {
		return &exitError{code: 2}
	}
	return nil
}
