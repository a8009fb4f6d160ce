package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/skyportal/prefsgen/pkg/jsonschema"
	"github.com/skyportal/prefsgen/pkg/render"
	"github.com/skyportal/prefsgen/pkg/renderers/tui"
	"github.com/skyportal/prefsgen/pkg/schema"
	"github.com/skyportal/prefsgen/pkg/uischema"
)

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Run an interactive preferences session in the terminal",
		RunE:  runPrompt,
	}

	cmd.Flags().String("schema", "", "JSON Schema document describing the preference fields")
	cmd.Flags().String("from-values", "", "derive the fields from an existing JSON values payload instead")
	cmd.Flags().String("title", "Preferences", "dialog title")
	cmd.Flags().String("brand", "", "brand key the submission payload nests under")
	cmd.Flags().String("format", string(tui.OutputFormatJSON), "payload output format: json, form, or pretty")
	cmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	cmd.MarkFlagsOneRequired("schema", "from-values")
	cmd.MarkFlagsMutuallyExclusive("schema", "from-values")
	_ = cmd.MarkFlagRequired("brand")
	return cmd
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	entries, err := loadEntries(logger)
	if err != nil {
		return err
	}
	form, err := schema.NewForm(viper.GetString("title"), viper.GetString("brand"), entries)
	if err != nil {
		return err
	}

	store, err := uischema.Defaults()
	if err != nil {
		return err
	}
	if err := uischema.NewDecorator(store).Decorate(&form); err != nil {
		return err
	}

	renderer, err := tui.New(tui.WithOutputFormat(tui.OutputFormat(viper.GetString("format"))))
	if err != nil {
		return err
	}

	payload, err := renderer.Render(cmd.Context(), form, render.RenderOptions{})
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			logger.Info("session cancelled, no preferences saved")
			return nil
		}
		return err
	}

	return writeOutput(viper.GetString("output"), payload)
}

// loadEntries builds the preference fields either from a JSON Schema document
// or, with --from-values, by inferring them from an existing values payload.
func loadEntries(logger *zap.Logger) (schema.Schema, error) {
	if path := viper.GetString("from-values"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read values: %w", err)
		}
		var values map[string]any
		if err := json.Unmarshal(raw, &values); err != nil {
			return nil, fmt.Errorf("parse values: %w", err)
		}
		entries, dropped := schema.Infer(values)
		for _, d := range dropped {
			logger.Warn("skipped key", zap.String("key", d.Key), zap.String("reason", d.Reason))
		}
		return entries, nil
	}

	document, err := os.ReadFile(viper.GetString("schema"))
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return jsonschema.FromBytes(document)
}
