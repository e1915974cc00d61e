package cmd

import (
	"fmt"

	"github.com/inovacc/consultas/internal/core"
	"github.com/inovacc/consultas/internal/model"
	"github.com/spf13/cobra"
)

var (
	addPatient   string
	addDate      string
	addAmount    string
	addFrequency = model.FrequencyMonthly
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create an appointment",
	Long: `Create an appointment with a fresh id.

The date accepts dd/mm/yyyy [hh:mm], yyyy-mm-dd [hh:mm[:ss]] or RFC 3339 and
defaults to now. The amount accepts "," as decimal separator.

Examples:
  consultas add --patient "Ana Souza" --date "05/03/2024 14:00" --amount 150
  consultas add -p Bruno --amount 80,50 --frequency quinzenal`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addPatient, "patient", "p", "", "Patient name")
	addCmd.Flags().StringVarP(&addDate, "date", "d", "", "Appointment date (default now)")
	addCmd.Flags().StringVar(&addAmount, "amount", "", "Amount charged (required)")
	addCmd.Flags().VarP(&addFrequency, "frequency", "f", "mensal or quinzenal")
	_ = addCmd.MarkFlagRequired("amount")
}

func runAdd(cmd *cobra.Command, _ []string) error {
	date := addDate
	if date == "" {
		date = current.now().In(current.loc).Format(model.DisplayLayout)
	}

	appt, err := core.BuildAppointment(core.Form{
		Patient:   addPatient,
		Date:      date,
		Amount:    addAmount,
		Frequency: addFrequency.String(),
	}, current.loc)
	if err != nil {
		return err
	}

	if err := current.store.Upsert(cmd.Context(), appt); err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Added: %s\n", appt.ID)

	return nil
}
