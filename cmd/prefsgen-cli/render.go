package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/skyportal/prefsgen/pkg/orchestrator"
	"github.com/skyportal/prefsgen/pkg/render"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a preferences dialog as HTML",
		RunE:  runRender,
	}

	cmd.Flags().String("schema", "", "JSON Schema document describing the preference fields")
	cmd.Flags().String("title", "Preferences", "dialog title")
	cmd.Flags().String("brand", "", "brand key the submission payload nests under")
	cmd.Flags().String("renderer", "vanilla", "renderer to use")
	cmd.Flags().String("values", "", "JSON file of values overriding schema defaults")
	cmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("brand")
	return cmd
}

func runRender(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	schemaPath := viper.GetString("schema")
	document, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	opts := render.RenderOptions{}
	if valuesPath := viper.GetString("values"); valuesPath != "" {
		raw, err := os.ReadFile(valuesPath)
		if err != nil {
			return fmt.Errorf("read values: %w", err)
		}
		if err := json.Unmarshal(raw, &opts.Values); err != nil {
			return fmt.Errorf("parse values: %w", err)
		}
	}

	gen := orchestrator.New(orchestrator.WithLogger(logger))
	output, err := gen.Generate(cmd.Context(), orchestrator.Request{
		Document:      document,
		Title:         viper.GetString("title"),
		Brand:         viper.GetString("brand"),
		Renderer:      viper.GetString("renderer"),
		RenderOptions: opts,
	})
	if err != nil {
		return err
	}

	logger.Debug("rendered dialog",
		zap.String("schema", schemaPath),
		zap.Int("bytes", len(output)))
	return writeOutput(viper.GetString("output"), output)
}
