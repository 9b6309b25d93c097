package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/ecoshare/internal/config"
	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/logging"
)

// ImpactResult is the structured output of the food and non-food commands.
type ImpactResult struct {
	Kind     impact.Kind         `json:"kind"`
	Category string              `json:"category"`
	Known    bool                `json:"knownCategory"`
	Impact   impact.ImpactRecord `json:"impact"`
}

// newImpactCmd creates the impact command group.
func newImpactCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "impact", Short: "Per-donation impact commands"}
	cmd.AddCommand(NewImpactFoodCmd(), NewImpactNonFoodCmd(), NewImpactCompleteCmd(), NewImpactCategoriesCmd())
	return cmd
}

// NewImpactFoodCmd creates the impact food command.
func NewImpactFoodCmd() *cobra.Command {
	var (
		category string
		weight   float64
		quantity float64
	)

	cmd := &cobra.Command{
		Use:   "food",
		Short: "Impact of a food donation",
		Long: `Computes the waste prevented, CO2 saved, meals provided and water saved by
donating quantity units of weight kilograms each. Unknown categories fall back
to the generic food factor.`,
		Example: `  # Two kilograms of meat
  ecoshare impact food --category meat --weight 2

  # Four 750 g frozen meals, as JSON
  ecoshare impact food --category frozen --weight 0.75 --quantity 4 --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if weight < 0 || quantity < 0 {
				return errors.New("weight and quantity must be >= 0")
			}
			result := ImpactResult{
				Kind:     impact.KindFood,
				Category: category,
				Known:    impact.IsKnownCategory(impact.KindFood, category),
				Impact:   impact.ComputeFoodImpact(category, weight, quantity),
			}
			return emitImpact(cmd, result)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "food category (see 'ecoshare impact categories')")
	cmd.Flags().Float64Var(&weight, "weight", 0, "weight of one unit in kilograms")
	cmd.Flags().Float64Var(&quantity, "quantity", impact.DefaultQuantity, "number of units")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("weight")

	return cmd
}

// NewImpactNonFoodCmd creates the impact non-food command.
func NewImpactNonFoodCmd() *cobra.Command {
	var (
		category string
		quantity float64
	)

	cmd := &cobra.Command{
		Use:     "non-food",
		Aliases: []string{"item"},
		Short:   "Impact of a non-food donation",
		Long: `Computes the waste prevented, CO2 saved, water saved and landfill space
saved by giving away quantity items. Unknown categories use the "other" factors.`,
		Example: `  # Two pieces of furniture
  ecoshare impact non-food --category furniture --quantity 2`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if quantity < 0 {
				return errors.New("quantity must be >= 0")
			}
			result := ImpactResult{
				Kind:     impact.KindNonFood,
				Category: category,
				Known:    impact.IsKnownCategory(impact.KindNonFood, category),
				Impact:   impact.ComputeNonFoodImpact(category, quantity),
			}
			return emitImpact(cmd, result)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "item category (see 'ecoshare impact categories')")
	cmd.Flags().Float64Var(&quantity, "quantity", impact.DefaultQuantity, "number of items")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}

func emitImpact(cmd *cobra.Command, result ImpactResult) error {
	if !result.Known {
		logging.FromContext(cmd.Context()).Warn().
			Str("kind", result.Kind.String()).
			Str("category", result.Category).
			Msg("unknown category, using fallback factor")
	}

	w := cmd.OutOrStdout()
	switch outputFormat(cmd) {
	case config.FormatJSON:
		return renderJSON(w, result)
	case config.FormatNDJSON:
		return renderNDJSON(w, []ImpactResult{result})
	default:
		return renderImpactTable(w, result)
	}
}

func renderImpactTable(w io.Writer, result ImpactResult) error {
	p := precision()
	rec := result.Impact

	tw := newTabWriter(w)
	category := result.Category
	if !result.Known {
		category += " (unknown, fallback factor)"
	}
	fmt.Fprintf(tw, "Kind:\t%s\n", result.Kind)
	fmt.Fprintf(tw, "Category:\t%s\n", category)
	fmt.Fprintf(tw, "Waste prevented:\t%s kg\n", impact.FormatFloat(rec.WastePreventedKg, p))
	fmt.Fprintf(tw, "CO2 saved:\t%s kg\n", impact.FormatFloat(rec.CO2SavedKg, p))
	if result.Kind == impact.KindFood {
		fmt.Fprintf(tw, "Meals provided:\t%s\n", impact.FormatNumber(int64(rec.MealsProvided)))
	}
	fmt.Fprintf(tw, "Water saved:\t%s L\n", impact.FormatFloat(rec.WaterSavedLiters, p))
	if rec.TreesEquivalent > 0 {
		fmt.Fprintf(tw, "Trees equivalent:\t%s\n", impact.FormatFloat(rec.TreesEquivalent, 3))
	}
	if rec.LandfillSpaceSavedM3 > 0 {
		fmt.Fprintf(tw, "Landfill saved:\t%s m3\n", impact.FormatFloat(rec.LandfillSpaceSavedM3, 3))
	}
	return tw.Flush()
}

// CategoryFactor is one row of the categories listing.
type CategoryFactor struct {
	Kind        impact.Kind `json:"kind"`
	Category    string      `json:"category"`
	CO2Kg       float64     `json:"co2Kg"`
	WaterLiters float64     `json:"waterLiters,omitempty"`
}

// NewImpactCategoriesCmd creates the impact categories command.
func NewImpactCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List categories and their emission factors",
		Long: `Lists every category with an explicit factor. Food factors are kg CO2 per
kg of food; non-food factors are kg CO2 and litres of water per item.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			factors := categoryFactors()
			w := cmd.OutOrStdout()
			switch outputFormat(cmd) {
			case config.FormatJSON:
				return renderJSON(w, factors)
			case config.FormatNDJSON:
				return renderNDJSON(w, factors)
			default:
				return renderCategoriesTable(w, factors)
			}
		},
	}
}

func categoryFactors() []CategoryFactor {
	food := impact.FoodCategories()
	nonFood := impact.NonFoodCategories()

	factors := make([]CategoryFactor, 0, len(food)+len(nonFood))
	for _, c := range food {
		factors = append(factors, CategoryFactor{Kind: impact.KindFood, Category: c, CO2Kg: impact.LookupFoodFactor(c)})
	}
	for _, c := range nonFood {
		f := impact.LookupNonFoodFactor(c)
		factors = append(factors, CategoryFactor{
			Kind:        impact.KindNonFood,
			Category:    c,
			CO2Kg:       f.CO2Kg,
			WaterLiters: f.WaterLiters,
		})
	}
	return factors
}

func renderCategoriesTable(w io.Writer, factors []CategoryFactor) error {
	tw := newTabWriter(w)
	fmt.Fprintln(tw, "KIND\tCATEGORY\tCO2 (kg)\tWATER (L)")
	for _, f := range factors {
		water := "-"
		if f.Kind == impact.KindNonFood {
			water = impact.FormatFloat(f.WaterLiters, 0)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Kind, f.Category, impact.FormatFloat(f.CO2Kg, 1), water)
	}
	return tw.Flush()
}
