package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/inovacc/consultas/internal/core"
	"github.com/spf13/cobra"
)

var (
	summaryMonth string
	summaryJSON  bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Total the appointments of a month",
	Long: `Count and total the appointments of a month, broken down by frequency.

Examples:
  consultas summary
  consultas summary --month 2024-03`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryCmd.Flags().StringVarP(&summaryMonth, "month", "m", "", "Month to summarize (YYYY-MM, default current)")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "Output as JSON")
}

// summaryOutput is the JSON form of a month summary
type summaryOutput struct {
	Month       string            `json:"month"`
	Count       int               `json:"count"`
	Total       string            `json:"total"`
	ByFrequency map[string]string `json:"by_frequency"`
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ref, err := parseMonth(summaryMonth, current.now(), current.loc)
	if err != nil {
		return err
	}

	s, err := core.MonthSummary(cmd.Context(), current.store, ref)
	if err != nil {
		return fmt.Errorf("failed to summarize: %w", err)
	}

	month := fmt.Sprintf("%04d-%02d", s.Year, int(s.Month))
	out := cmd.OutOrStdout()

	if summaryJSON {
		o := summaryOutput{
			Month:       month,
			Count:       s.Count,
			Total:       s.Total.StringFixed(2),
			ByFrequency: make(map[string]string, len(s.ByFrequency)),
		}

		for _, ft := range s.ByFrequency {
			o.ByFrequency[ft.Frequency.String()] = ft.Total.StringFixed(2)
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")

		return enc.Encode(o)
	}

	items := map[string]string{
		"Mês":       month,
		"Consultas": strconv.Itoa(s.Count),
		"Total":     "R$ " + s.Total.StringFixed(2),
	}
	order := []string{"Mês", "Consultas", "Total"}

	for _, ft := range s.ByFrequency {
		label := ft.Frequency.Label()
		items[label] = fmt.Sprintf("%d / R$ %s", ft.Count, ft.Total.StringFixed(2))
		order = append(order, label)
	}

	printInfoBox(out, "Resumo do Mês", items, order)

	return nil
}
