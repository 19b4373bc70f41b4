package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/intel-cli/internal/model"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics <domain> [domain...]",
	Short: "Fetch aggregated metrics for one or more domains",
	Long: `Fetches metric sections for each domain from every configured metrics
source, merges them into one bundle per domain, and attaches the health
score and confidence. Multiple domains run with bounded concurrency; one
domain's failure never fails the rest.

Examples:
  metrics acme.com
  metrics acme.com rival.com other.com --format json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runMetrics,
}

func init() {
	metricsCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(metricsCmd)
}

func runMetrics(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := initService(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	format, _ := cmd.Flags().GetString("format")

	if len(args) == 1 {
		bundle, err := e.Service.GetDomainMetrics(ctx, args[0])
		if err != nil {
			return err
		}
		if format == "json" {
			return json.NewEncoder(os.Stdout).Encode(bundle)
		}
		return printBundleTable([]*model.MetricsBundle{bundle})
	}

	results, err := e.Service.GetDomainMetricsBatch(ctx, args)
	if err != nil {
		return err
	}
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(results)
	}

	bundles := make([]*model.MetricsBundle, 0, len(results))
	for _, b := range results {
		bundles = append(bundles, b)
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Domain < bundles[j].Domain })
	return printBundleTable(bundles)
}

func printBundleTable(bundles []*model.MetricsBundle) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tHEALTH\tCONFIDENCE\tSECTIONS\tUPDATED")
	for _, b := range bundles {
		updated := "-"
		if !b.LastUpdated.IsZero() {
			updated = b.LastUpdated.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%.1f\t%.2f\t%d/%d\t%s\n",
			b.Domain, b.HealthScore, b.Confidence, b.SectionCount(), len(model.SectionNames), updated)
	}
	return w.Flush()
}
