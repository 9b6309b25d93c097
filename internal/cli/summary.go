package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/engine/cache"
	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/ingest"
	"github.com/rshade/ecoshare/internal/tui"
)

// UserReport is the structured output of summary user.
type UserReport struct {
	Donor      string                   `json:"donor,omitempty"`
	Summary    impact.UserImpactSummary `json:"summary"`
	Milestones impact.MilestoneState    `json:"milestones"`
}

// newSummaryCmd creates the summary command group.
func newSummaryCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{Use: "summary", Short: "Aggregate impact across transactions"}
	cmd.AddCommand(NewSummaryUserCmd(ver), NewSummaryCommunityCmd(ver))
	return cmd
}

// NewSummaryUserCmd creates the summary user command.
func NewSummaryUserCmd(ver string) *cobra.Command {
	var (
		inputs []string
		donor  string
	)

	cmd := &cobra.Command{
		Use:   "user",
		Short: "Cumulative impact and milestones for one user",
		Long: `Totals the impact of a user's transactions and reports which milestones the
CO2 total has reached. Without --donor every transaction in the input is
treated as belonging to the user.`,
		Example: `  ecoshare summary user --input completed.json --donor alice`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			key := ""
			if digest, ok := inputDigest(inputs); ok {
				key = cache.KeyFor("summary-user", ver, donor, digest)
			}

			report, err := cachedReport(ctx, openReportCache(cmd), key, func() (UserReport, error) {
				txns, err := ingest.LoadFiles(ctx, inputs)
				if err != nil {
					return UserReport{}, fmt.Errorf("loading transactions: %w", err)
				}
				if donor != "" {
					txns = ingest.FilterByDonor(txns, impact.DonorID(donor))
				}
				summary := impact.AggregateUserImpact(txns)
				return UserReport{
					Donor:      donor,
					Summary:    summary,
					Milestones: impact.GetImpactMilestones(summary.TotalCO2SavedKg),
				}, nil
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch outputFormat(cmd) {
			case config.FormatJSON:
				return renderJSON(w, report)
			case config.FormatNDJSON:
				return renderNDJSON(w, []UserReport{report})
			}
			if tui.DetectOutputMode(!isWriterTerminal(w), false) == tui.OutputModeStyled {
				_, err = fmt.Fprintln(w, tui.RenderUserSummary(donor, report.Summary, report.Milestones,
					tui.TerminalWidth(defaultTermWidth)))
				return err
			}
			return renderUserTable(w, report)
		},
	}

	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "transaction file(s); '-' reads JSON from stdin")
	cmd.Flags().StringVar(&donor, "donor", "", "only count transactions given by this donor")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func renderUserTable(w io.Writer, report UserReport) error {
	p := precision()
	s := report.Summary

	tw := newTabWriter(w)
	if report.Donor != "" {
		fmt.Fprintf(tw, "Donor:\t%s\n", report.Donor)
	}
	fmt.Fprintf(tw, "Transactions:\t%d\n", s.TotalTransactions)
	fmt.Fprintf(tw, "Waste prevented:\t%s kg\n", impact.FormatFloat(s.TotalWastePreventedKg, p))
	fmt.Fprintf(tw, "CO2 saved:\t%s kg\n", impact.FormatFloat(s.TotalCO2SavedKg, p))
	fmt.Fprintf(tw, "Meals provided:\t%s\n", impact.FormatNumber(int64(s.TotalMealsProvided)))
	fmt.Fprintf(tw, "Water saved:\t%s L\n", impact.FormatFloat(s.TotalWaterSavedLiters, p))
	fmt.Fprintf(tw, "Trees equivalent:\t%s\n", impact.FormatFloat(s.TreesEquivalent, p))
	fmt.Fprintf(tw, "Car days off road:\t%d\n", s.CarsOffRoadDays)

	achieved := "none"
	if len(report.Milestones.Achieved) > 0 {
		achieved = strings.Join(report.Milestones.Achieved, ", ")
	}
	fmt.Fprintf(tw, "Milestones:\t%s\n", achieved)
	if next := report.Milestones.NextMilestone; next != nil {
		fmt.Fprintf(tw, "Next milestone:\t%s\n", next)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if text := impact.EquivalencyText(s); text != "" {
		_, err := fmt.Fprintln(w, text)
		return err
	}
	return nil
}

// NewSummaryCommunityCmd creates the summary community command.
func NewSummaryCommunityCmd(ver string) *cobra.Command {
	var (
		inputs      []string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "community",
		Short: "Platform-wide totals and the top-donor leaderboard",
		Long: `Totals the impact of every transaction and ranks the top donors by waste
prevented. Donors with equal totals keep the order in which they first appear
in the input. Use --tui on a terminal for an interactive leaderboard.`,
		Example: `  ecoshare summary community --input completed.json
  ecoshare summary community --input completed.json --tui`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			key := ""
			if digest, ok := inputDigest(inputs); ok {
				key = cache.KeyFor("summary-community", ver, digest)
			}

			report, err := cachedReport(ctx, openReportCache(cmd), key, func() (impact.CommunityReport, error) {
				txns, err := ingest.LoadFiles(ctx, inputs)
				if err != nil {
					return impact.CommunityReport{}, fmt.Errorf("loading transactions: %w", err)
				}
				return impact.AggregateCommunityImpact(txns), nil
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch outputFormat(cmd) {
			case config.FormatJSON:
				return renderJSON(w, report)
			case config.FormatNDJSON:
				return renderCommunityNDJSON(w, report)
			}

			switch tui.DetectOutputMode(!isWriterTerminal(w), interactive) {
			case tui.OutputModeInteractive:
				_, err = tea.NewProgram(tui.NewLeaderboardModel(report), tea.WithContext(ctx)).Run()
				return err
			case tui.OutputModeStyled:
				if _, err = fmt.Fprintln(w, tui.RenderCommunitySummary(report.TotalImpact,
					tui.TerminalWidth(defaultTermWidth))); err != nil {
					return err
				}
				return renderLeaderboardTable(w, report.TopDonors)
			default:
				return renderCommunityTable(w, report)
			}
		},
	}

	cmd.Flags().StringSliceVarP(&inputs, "input", "i", nil, "transaction file(s); '-' reads JSON from stdin")
	cmd.Flags().BoolVar(&interactive, "tui", false, "show an interactive leaderboard (terminal only)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

type communityLine struct {
	Type string `json:"type"`
	impact.CommunityImpactSummary
}

type donorLine struct {
	Type string `json:"type"`
	Rank int    `json:"rank"`
	impact.DonorTotal
}

// renderCommunityNDJSON writes the totals as a "summary" line followed by one
// "donor" line per ranked donor.
func renderCommunityNDJSON(w io.Writer, report impact.CommunityReport) error {
	if err := renderNDJSON(w, []communityLine{{Type: "summary", CommunityImpactSummary: report.TotalImpact}}); err != nil {
		return err
	}
	lines := make([]donorLine, len(report.TopDonors))
	for i, d := range report.TopDonors {
		lines[i] = donorLine{Type: "donor", Rank: i + 1, DonorTotal: d}
	}
	return renderNDJSON(w, lines)
}

func renderCommunityTable(w io.Writer, report impact.CommunityReport) error {
	p := precision()
	s := report.TotalImpact

	tw := newTabWriter(w)
	fmt.Fprintf(tw, "Transactions:\t%d\n", s.TotalTransactions)
	fmt.Fprintf(tw, "Donors:\t%d\n", s.TotalUsers)
	fmt.Fprintf(tw, "Waste prevented:\t%s kg\n", impact.FormatFloat(s.TotalWastePreventedKg, p))
	fmt.Fprintf(tw, "CO2 saved:\t%s kg\n", impact.FormatFloat(s.TotalCO2SavedKg, p))
	fmt.Fprintf(tw, "Meals provided:\t%s\n", impact.FormatNumber(int64(s.TotalMealsProvided)))
	fmt.Fprintf(tw, "Water saved:\t%s L\n", impact.FormatFloat(s.TotalWaterSavedLiters, p))
	fmt.Fprintf(tw, "Trees equivalent:\t%s\n", impact.FormatFloat(s.TreesEquivalent, p))
	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	return renderLeaderboardTable(w, report.TopDonors)
}

func renderLeaderboardTable(w io.Writer, donors []impact.DonorTotal) error {
	if len(donors) == 0 {
		_, err := fmt.Fprintln(w, "No donors yet.")
		return err
	}

	p := precision()
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "RANK\tDONOR\tWASTE (kg)\tCO2 (kg)\tMEALS\tDONATIONS")
	for i, d := range donors {
		name := string(d.Donor)
		if name == "" {
			name = "(anonymous)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\n",
			strconv.Itoa(i+1), name,
			impact.FormatFloat(d.WasteKg, p), impact.FormatFloat(d.CO2Kg, p),
			d.Meals, d.Count)
	}
	return tw.Flush()
}
