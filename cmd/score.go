package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/intel-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Compute composite indices from a JSON input file",
}

var scoreLikeabilityCmd = &cobra.Command{
	Use:   "likeability <input.json>",
	Short: "Likeability index from content metrics",
	Long: `Reads a JSON object with position, visibility, likes, shares, and
linkedin_shares, and prints the 0-100 likeability index with its
components.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScoreIndex(cmd, args[0], func(e *env, raw []byte) (model.ScoreResult, error) {
			var m model.ContentMetrics
			if err := json.Unmarshal(raw, &m); err != nil {
				return model.ScoreResult{}, eris.Wrap(err, "score: parse content metrics")
			}
			return e.Service.CalculateLikeabilityIndex(m), nil
		})
	},
}

var scoreOpportunityCmd = &cobra.Command{
	Use:   "opportunity <input.json>",
	Short: "Opportunity index for a subtopic",
	Long: `Reads a JSON object with search_volume, engagement, competition_level,
and content_saturation. The --subject flag names the rolling history the
subtopic is normalized against; with no prior observations the score is
the neutral midpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		return runScoreIndex(cmd, args[0], func(e *env, raw []byte) (model.ScoreResult, error) {
			var st model.Subtopic
			if err := json.Unmarshal(raw, &st); err != nil {
				return model.ScoreResult{}, eris.Wrap(err, "score: parse subtopic")
			}
			return e.Service.CalculateOpportunityIndex(subject, st), nil
		})
	},
}

var scoreNicheCmd = &cobra.Command{
	Use:   "niche <input.json>",
	Short: "Niche potential for a subject area",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScoreIndex(cmd, args[0], func(e *env, raw []byte) (model.ScoreResult, error) {
			var sub model.Subject
			if err := json.Unmarshal(raw, &sub); err != nil {
				return model.ScoreResult{}, eris.Wrap(err, "score: parse subject")
			}
			return e.Service.CalculateNichePotential(sub), nil
		})
	},
}

var scoreEngagementCmd = &cobra.Command{
	Use:   "engagement <input.json>",
	Short: "Engagement index for a content asset",
	Long: `Reads a JSON object with the seven channel scores (0-100 each) and an
optional published_at timestamp. The --market and persona flags select
the applicable multipliers. With --project the forward-looking business
impact is included; content age decays the projection, never the index.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		market, _ := cmd.Flags().GetString("market")
		personaType, _ := cmd.Flags().GetString("persona-type")
		personaIndustry, _ := cmd.Flags().GetString("persona-industry")
		project, _ := cmd.Flags().GetBool("project")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		e, err := initService(ctx)
		if err != nil {
			return err
		}
		defer e.Close()

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "score: read input")
		}
		var asset model.ContentAsset
		if err := json.Unmarshal(raw, &asset); err != nil {
			return eris.Wrap(err, "score: parse content asset")
		}

		result := e.Service.CalculateEngagementIndex(asset,
			model.Market{Name: market},
			model.Persona{Type: personaType, Industry: personaIndustry},
		)

		out := struct {
			model.ScoreResult
			Projection *model.EngagementProjection `json:"projection,omitempty"`
		}{ScoreResult: result}
		if project {
			p := e.Service.ProjectEngagementImpact(result.Value, asset)
			out.Projection = &p
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	},
}

func init() {
	scoreOpportunityCmd.Flags().String("subject", "default", "subject whose history the subtopic is normalized against")
	scoreEngagementCmd.Flags().String("market", "", "target market name")
	scoreEngagementCmd.Flags().String("persona-type", "", "audience persona type")
	scoreEngagementCmd.Flags().String("persona-industry", "", "audience persona industry")
	scoreEngagementCmd.Flags().Bool("project", false, "include business impact projection")

	scoreCmd.AddCommand(scoreLikeabilityCmd, scoreOpportunityCmd, scoreNicheCmd, scoreEngagementCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScoreIndex(cmd *cobra.Command, path string, compute func(e *env, raw []byte) (model.ScoreResult, error)) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := initService(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	raw, err := os.ReadFile(path)
	if err != nil {
		return eris.Wrap(err, "score: read input")
	}
	result, err := compute(e, raw)
	if err != nil {
		return err
	}
	return json.NewEncoder(os.Stdout).Encode(result)
}
