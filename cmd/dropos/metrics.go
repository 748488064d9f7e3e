package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"dropos/internal/domain"
	"dropos/internal/service"
)

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().String("from", "", "first day, YYYY-MM-DD")
	metricsCmd.Flags().String("to", "", "last day, YYYY-MM-DD")
	metricsCmd.Flags().String("mode", "", "visual mode override (normal, rich, millionaire)")
	metricsCmd.Flags().Int("top", 0, "also list the N most profitable products")
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Print dashboard metrics as JSON",
	Args:  cobra.NoArgs,
	RunE:  runMetrics,
}

func runMetrics(cmd *cobra.Command, _ []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	mode, _ := cmd.Flags().GetString("mode")
	top, _ := cmd.Flags().GetInt("top")

	q, err := buildMetricsQuery(from, to, mode)
	if err != nil {
		return err
	}

	rt, err := openRuntime(cmd.Context())
	if err != nil {
		return err
	}
	defer rt.Close()

	m, err := rt.svc.Metrics(cmd.Context(), q)
	if err != nil {
		return err
	}
	out := map[string]any{"metrics": m}
	if top > 0 {
		products, err := rt.svc.TopProducts(cmd.Context(), q, top)
		if err != nil {
			return err
		}
		out["top_products"] = products
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func buildMetricsQuery(from, to, mode string) (service.MetricsQuery, error) {
	var q service.MetricsQuery
	var err error
	if from != "" {
		if q.Range.From, err = time.Parse("2006-01-02", from); err != nil {
			return q, fmt.Errorf("--from must be YYYY-MM-DD")
		}
	}
	if to != "" {
		if q.Range.To, err = time.Parse("2006-01-02", to); err != nil {
			return q, fmt.Errorf("--to must be YYYY-MM-DD")
		}
	}
	if !q.Range.From.IsZero() && !q.Range.To.IsZero() && q.Range.To.Before(q.Range.From) {
		return q, fmt.Errorf("--to must not be before --from")
	}
	if mode != "" {
		q.Mode = domain.VisualMode(mode)
		if !q.Mode.Valid() {
			return q, fmt.Errorf("unknown mode %q", mode)
		}
	}
	return q, nil
}
