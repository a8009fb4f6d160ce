package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/skyportal/prefsgen/pkg/schema"
)

func newInferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Derive a preference schema from an existing values payload",
		Long: `Reads a JSON object of preference values and derives the dialog schema
from it: string values become text entries, objects of booleans become
checkbox groups. Keys with other shapes are reported and skipped.`,
		RunE: runInfer,
	}

	cmd.Flags().String("values", "", "JSON file holding the preference values")
	cmd.Flags().StringP("output", "o", "", "output file (stdout if empty)")
	_ = cmd.MarkFlagRequired("values")
	return cmd
}

func runInfer(cmd *cobra.Command, _ []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	raw, err := os.ReadFile(viper.GetString("values"))
	if err != nil {
		return fmt.Errorf("read values: %w", err)
	}

	var values map[string]any
	if err := json.Unmarshal(raw, &values); err != nil {
		return fmt.Errorf("parse values: %w", err)
	}

	entries, dropped := schema.Infer(values)
	for _, d := range dropped {
		logger.Warn("skipped key", zap.String("key", d.Key), zap.String("reason", d.Reason))
	}

	encoded, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode schema: %w", err)
	}
	return writeOutput(viper.GetString("output"), encoded)
}
