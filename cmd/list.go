package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/inovacc/consultas/internal/model"
	"github.com/spf13/cobra"
)

var (
	listAll   bool
	listMonth string
	listJSON  bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List appointments",
	Long: `List the appointments dated in the current month.

Examples:
  consultas list
  consultas list --month 2024-03
  consultas list --all --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "List every stored appointment")
	listCmd.Flags().StringVarP(&listMonth, "month", "m", "", "Month to list (YYYY-MM)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
	listCmd.MarkFlagsMutuallyExclusive("all", "month")
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	var (
		appts []model.Appointment
		err   error
	)

	switch {
	case listAll:
		appts, err = current.store.ListAll(ctx)
	case listMonth != "":
		ref, perr := parseMonth(listMonth, current.now(), current.loc)
		if perr != nil {
			return perr
		}

		appts, err = current.store.ListForMonth(ctx, ref)
	default:
		appts, err = current.store.ListForCurrentMonth(ctx)
	}

	if err != nil {
		return fmt.Errorf("failed to list appointments: %w", err)
	}

	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(appts)
	}

	if len(appts) == 0 {
		_, _ = fmt.Fprintln(out, "No appointments found.")
		_, _ = fmt.Fprintln(out, "\nCreate one with: consultas add --patient <name> --date <date> --amount <value>")

		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tPACIENTE\tDATA\tVALOR\tTIPO")

	for _, a := range appts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncateString(a.PatientName, 30),
			model.FormatDate(a.Date, current.loc),
			a.Amount.Display(),
			a.Frequency.Label(),
		)
	}

	return w.Flush()
}
