// Package impact computes the environmental impact of completed donations.
//
// It converts a single donation (category, kind, weight or quantity) into a
// normalized ImpactRecord and rolls collections of transactions up into
// per-user, community-wide and milestone summaries. Everything in this
// package is a pure function over caller-supplied data: nothing here reads
// files, talks to the network or keeps mutable package state, so any
// function may be called concurrently with distinct inputs.
package impact

import (
	"fmt"
	"time"
)

// Kind discriminates food donations from non-food items.
type Kind string

const (
	// KindFood is a food donation measured by weight.
	KindFood Kind = "food"

	// KindNonFood is a non-food item measured by count.
	KindNonFood Kind = "non-food"
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	return string(k)
}

// Status is the lifecycle stage of a transaction.
type Status string

const (
	// StatusListed marks a donation that has been offered but not handed over.
	StatusListed Status = "listed"

	// StatusCompleted marks a finished exchange. Only completed transactions
	// carry an ImpactRecord.
	StatusCompleted Status = "completed"
)

// DonorID identifies the user who gave an item.
type DonorID string

// ImpactRecord is the set of environmental-benefit figures attached to one
// completed donation. It is computed once, at completion time, and never
// modified afterwards.
type ImpactRecord struct {
	WastePreventedKg     float64 `json:"wastePreventedKg"               yaml:"wastePreventedKg"`
	CO2SavedKg           float64 `json:"co2SavedKg"                     yaml:"co2SavedKg"`
	MealsProvided        int     `json:"mealsProvided,omitempty"        yaml:"mealsProvided,omitempty"`
	WaterSavedLiters     float64 `json:"waterSavedLiters"               yaml:"waterSavedLiters"`
	TreesEquivalent      float64 `json:"treesEquivalent,omitempty"      yaml:"treesEquivalent,omitempty"`
	LandfillSpaceSavedM3 float64 `json:"landfillSpaceSavedM3,omitempty" yaml:"landfillSpaceSavedM3,omitempty"`
}

// Transaction is a donation exchange as supplied by the persistence layer.
// Impact is nil until the exchange is marked complete.
type Transaction struct {
	ID          string        `json:"id"                    yaml:"id"`
	Donor       DonorID       `json:"donor"                 yaml:"donor"`
	Kind        Kind          `json:"kind"                  yaml:"kind"`
	Category    string        `json:"category"              yaml:"category"`
	WeightKg    float64       `json:"weightKg,omitempty"    yaml:"weightKg,omitempty"`
	Quantity    float64       `json:"quantity,omitempty"    yaml:"quantity,omitempty"`
	Status      Status        `json:"status,omitempty"      yaml:"status,omitempty"`
	CompletedAt *time.Time    `json:"completedAt,omitempty" yaml:"completedAt,omitempty"`
	Impact      *ImpactRecord `json:"impact,omitempty"      yaml:"impact,omitempty"`
}

// HasImpact reports whether an impact record has been attached.
func (t Transaction) HasImpact() bool {
	return t.Impact != nil
}

// UserImpactSummary is the cumulative impact of one user's transactions.
type UserImpactSummary struct {
	TotalWastePreventedKg float64 `json:"totalWastePreventedKg"`
	TotalCO2SavedKg       float64 `json:"totalCO2SavedKg"`
	TotalMealsProvided    int     `json:"totalMealsProvided"`
	TotalWaterSavedLiters float64 `json:"totalWaterSavedLiters"`
	TotalTransactions     int     `json:"totalTransactions"`
	TreesEquivalent       float64 `json:"treesEquivalent"`
	CarsOffRoadDays       int     `json:"carsOffRoadDays"`
}

// CommunityImpactSummary is the platform-wide impact over a transaction set.
type CommunityImpactSummary struct {
	TotalWastePreventedKg float64 `json:"totalWastePreventedKg"`
	TotalCO2SavedKg       float64 `json:"totalCO2SavedKg"`
	TotalMealsProvided    int     `json:"totalMealsProvided"`
	TotalWaterSavedLiters float64 `json:"totalWaterSavedLiters"`
	TotalTransactions     int     `json:"totalTransactions"`
	TotalUsers            int     `json:"totalUsers"`
	TreesEquivalent       float64 `json:"treesEquivalent"`
}

// DonorTotal is one donor's running totals on the community leaderboard.
type DonorTotal struct {
	Donor   DonorID `json:"donor"`
	WasteKg float64 `json:"wasteKg"`
	CO2Kg   float64 `json:"co2Kg"`
	Meals   int     `json:"meals"`
	Count   int     `json:"count"`
}

// CommunityReport pairs the community totals with the top-donor ranking.
type CommunityReport struct {
	TotalImpact CommunityImpactSummary `json:"totalImpact"`
	TopDonors   []DonorTotal           `json:"topDonors"`
}

// Milestone is a fixed cumulative-CO2 achievement tier.
type Milestone struct {
	ThresholdKg float64 `json:"threshold"`
	Label       string  `json:"label"`
	Description string  `json:"description"`
}

// MilestoneInfo describes the next tier and how far along the user is.
type MilestoneInfo struct {
	Milestone

	Progress float64 `json:"progress"`
}

// String renders the milestone as "Label (threshold kg, progress%)".
func (m MilestoneInfo) String() string {
	return fmt.Sprintf("%s (%.0f kg, %.1f%%)", m.Label, m.ThresholdKg, m.Progress)
}

// MilestoneState lists achieved milestone labels and the next tier, if any.
type MilestoneState struct {
	Achieved      []string       `json:"achieved"`
	NextMilestone *MilestoneInfo `json:"nextMilestone"`
}
