package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/intel-cli/internal/model"
	"github.com/sells-group/intel-cli/internal/score"
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors <domain>",
	Short: "Discover competing domains across all sources",
	Long: `Queries every configured competitor source concurrently, merges the
results into one canonical record per domain, and ranks them by relevance
to the subject.

Examples:
  # Discover competitors for a domain
  competitors acme.com

  # Provide subject context for better relevance scoring
  competitors acme.com --industry saas --authority 62 --traffic 150000

  # Top 10 as JSON
  competitors acme.com --limit 10 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runCompetitors,
}

func init() {
	f := competitorsCmd.Flags()
	f.String("industry", "", "subject industry for relevance scoring")
	f.Float64("authority", 0, "subject domain authority (0 = unknown)")
	f.Float64("traffic", 0, "subject monthly traffic (0 = unknown)")
	f.Int("limit", 0, "maximum results (0 = all)")
	f.String("format", "table", "output format: table or json")

	rootCmd.AddCommand(competitorsCmd)
}

func runCompetitors(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := initService(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	profile := score.Profile{}
	profile.Industry, _ = cmd.Flags().GetString("industry")
	if v, _ := cmd.Flags().GetFloat64("authority"); v > 0 {
		profile.DomainAuthority = &v
	}
	if v, _ := cmd.Flags().GetFloat64("traffic"); v > 0 {
		profile.MonthlyTraffic = &v
	}

	records, err := e.Service.GetCompetingDomains(ctx, args[0], profile)
	if err != nil {
		return err
	}

	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	zap.L().Info("competitors discovered",
		zap.String("domain", args[0]),
		zap.Int("count", len(records)),
	)

	format, _ := cmd.Flags().GetString("format")
	if format == "json" {
		return json.NewEncoder(os.Stdout).Encode(records)
	}
	return printCompetitorTable(records)
}

func printCompetitorTable(records []model.CompetitorRecord) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tRELEVANCE\tTRAFFIC SHARE\tCOMMON KW\tSOURCES")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%.2f\t%.3f\t%.0f\t%d\n",
			r.Domain,
			r.Relevance,
			r.Metric(model.MetricTrafficShare),
			r.Metric(model.MetricCommonKeywords),
			len(r.Sources),
		)
	}
	return w.Flush()
}
