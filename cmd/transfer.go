package cmd

import (
	"fmt"

	"github.com/inovacc/consultas/internal/core"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Write every appointment to a JSON file",
	Long: `Write the whole collection to a JSON file in the stored format. The file
is replaced atomically.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := core.Export(cmd.Context(), current.store, args[0])
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d appointments to %s\n", n, args[0])

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load appointments from a JSON file",
	Long: `Upsert every appointment of a JSON list file. Records keep their ids, so
importing the same file twice does not duplicate anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := core.Import(cmd.Context(), current.store, args[0])
		if err != nil {
			return fmt.Errorf("import failed after %d records: %w", n, err)
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d appointments from %s\n", n, args[0])

		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
