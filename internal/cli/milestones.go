package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/tui"
)

const milestoneBarWidth = 30

// NewMilestonesCmd creates the milestones command.
func NewMilestonesCmd() *cobra.Command {
	var co2 float64

	cmd := &cobra.Command{
		Use:   "milestones",
		Short: "List CO2 milestones or check progress toward them",
		Long: `Without --co2, lists every milestone tier. With --co2, reports which tiers a
cumulative CO2 saving has reached and how far along the next one is.`,
		Example: `  # All tiers
  ecoshare milestones

  # Progress for 54 kg of CO2 saved
  ecoshare milestones --co2 54`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			format := outputFormat(cmd)

			if !cmd.Flags().Changed("co2") {
				milestones := impact.Milestones()
				switch format {
				case config.FormatJSON:
					return renderJSON(w, milestones)
				case config.FormatNDJSON:
					return renderNDJSON(w, milestones)
				}
				return renderMilestoneTable(w, milestones)
			}

			if co2 < 0 {
				return errors.New("co2 must be >= 0")
			}
			state := impact.GetImpactMilestones(co2)
			switch format {
			case config.FormatJSON:
				return renderJSON(w, state)
			case config.FormatNDJSON:
				return renderNDJSON(w, []impact.MilestoneState{state})
			}
			return renderMilestoneState(w, co2, state)
		},
	}

	cmd.Flags().Float64Var(&co2, "co2", 0, "cumulative CO2 saved in kg")

	return cmd
}

func renderMilestoneTable(w io.Writer, milestones []impact.Milestone) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "MILESTONE\tCO2 (kg)\tDESCRIPTION")
	for _, m := range milestones {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", m.Label, impact.FormatNumber(int64(m.ThresholdKg)), m.Description)
	}
	return tw.Flush()
}

func renderMilestoneState(w io.Writer, co2 float64, state impact.MilestoneState) error {
	tw := newTabWriter(w)
	fmt.Fprintf(tw, "CO2 saved:\t%s kg\n", impact.FormatFloat(co2, precision()))
	for _, label := range state.Achieved {
		fmt.Fprintf(tw, "Achieved:\t%s\n", label)
	}
	if next := state.NextMilestone; next != nil {
		fmt.Fprintf(tw, "Next:\t%s\n", next.Label)
		fmt.Fprintf(tw, "Progress:\t%s\n", tui.ProgressBar(next.Progress, milestoneBarWidth))
	} else {
		fmt.Fprintln(tw, "Next:\tall milestones reached")
	}
	return tw.Flush()
}
