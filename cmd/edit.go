package cmd

import (
	"fmt"

	"github.com/inovacc/consultas/internal/core"
	"github.com/inovacc/consultas/internal/model"
	"github.com/spf13/cobra"
)

var (
	editPatient   string
	editDate      string
	editAmount    string
	editFrequency = model.FrequencyMonthly
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change an appointment",
	Long: `Change the fields of an existing appointment. Only the flags given are
applied; the id never changes.

Examples:
  consultas edit 0190f0c2-... --amount 200
  consultas edit 0190f0c2-... --frequency quinzenal`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editPatient, "patient", "p", "", "Patient name")
	editCmd.Flags().StringVarP(&editDate, "date", "d", "", "Appointment date")
	editCmd.Flags().StringVar(&editAmount, "amount", "", "Amount charged")
	editCmd.Flags().VarP(&editFrequency, "frequency", "f", "mensal or quinzenal")
	editCmd.MarkFlagsOneRequired("patient", "date", "amount", "frequency")
}

func runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	existing, err := current.store.Get(ctx, args[0])
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	form := core.FormFromAppointment(*existing)
	flags := cmd.Flags()

	if flags.Changed("patient") {
		form.Patient = editPatient
	}

	if flags.Changed("date") {
		form.Date = editDate
	}

	if flags.Changed("amount") {
		form.Amount = editAmount
	}

	if flags.Changed("frequency") {
		form.Frequency = editFrequency.String()
	}

	appt, err := core.BuildAppointment(form, current.loc)
	if err != nil {
		return err
	}

	if err := current.store.Upsert(ctx, appt); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated: %s\n", appt.ID)

	return nil
}
