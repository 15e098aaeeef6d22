package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/celebration/internal/config"
)

var flagSchemaOut string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON Schema of the config file",
	Long: `Generate a JSON Schema describing minigame.yaml, for editor
completion and validation.

Examples:
  celebration schema
  celebration schema --out configs/minigame.schema.json`,
	Args: cobra.NoArgs,
	Run:  runSchema,
}

func init() {
	schemaCmd.Flags().StringVar(&flagSchemaOut, "out", "", "Write the schema to this file instead of stdout")
}

func runSchema(_ *cobra.Command, _ []string) {
	data, err := config.SchemaJSON()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagSchemaOut == "" {
		os.Stdout.Write(data)
		return
	}

	if err := os.WriteFile(flagSchemaOut, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot write schema: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", flagSchemaOut)
}
