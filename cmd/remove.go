package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/consultas/internal/model"
	"github.com/inovacc/consultas/internal/store"
	"github.com/spf13/cobra"
)

var removeYes bool

var removeCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Delete an appointment",
	Long: `Delete the appointment with the given id. Removing an id that does not
exist is not an error.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

func init() {
	rootCmd.AddCommand(removeCmd)
	removeCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip confirmation prompt")
}

func runRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]
	out := cmd.OutOrStdout()

	appt, err := current.store.Get(ctx, id)

	switch {
	case errors.Is(err, store.ErrNotFound):
		_, _ = fmt.Fprintf(out, "No appointment with id %s.\n", id)

		return nil
	case err != nil:
		return err
	}

	if !removeYes {
		prompt := fmt.Sprintf("Excluir a consulta de %q em %s? [s/N]: ",
			appt.PatientName, model.FormatDate(appt.Date, current.loc))

		if !promptConfirm(cmd.InOrStdin(), out, prompt) {
			_, _ = fmt.Fprintln(out, "Cancelled.")

			return nil
		}
	}

	if err := current.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	_, _ = fmt.Fprintf(out, "Removed: %s\n", id)

	return nil
}
