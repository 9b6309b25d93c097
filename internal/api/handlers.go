package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rshade/ecoshare/internal/impact"
	"github.com/rshade/ecoshare/internal/ingest"
	"github.com/rshade/ecoshare/internal/logging"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 10 << 20

// FoodRequest is the body of POST /v1/impact/food.
type FoodRequest struct {
	Category string   `json:"category" binding:"required"`
	WeightKg float64  `json:"weightKg" binding:"gte=0"`
	Quantity *float64 `json:"quantity" binding:"omitempty,gte=0"`
}

// NonFoodRequest is the body of POST /v1/impact/non-food.
type NonFoodRequest struct {
	Category string   `json:"category" binding:"required"`
	Quantity *float64 `json:"quantity" binding:"omitempty,gte=0"`
}

// UserSummaryResponse is returned by POST /v1/summary/user.
type UserSummaryResponse struct {
	Donor      string                   `json:"donor,omitempty"`
	Summary    impact.UserImpactSummary `json:"summary"`
	Milestones impact.MilestoneState    `json:"milestones"`
}

// CategoriesResponse lists the known factor-table categories.
type CategoriesResponse struct {
	Food    []string `json:"food"`
	NonFood []string `json:"nonFood"`
}

// Handler holds the route handlers.
type Handler struct {
	version     string
	development bool
}

// NewHandler returns a handler reporting version and build kind on /healthz.
func NewHandler(version string, development bool) *Handler {
	return &Handler{version: version, development: development}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": h.version, "development": h.development})
}

// Categories lists the food and non-food categories with explicit factors.
func (h *Handler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, CategoriesResponse{
		Food:    impact.FoodCategories(),
		NonFood: impact.NonFoodCategories(),
	})
}

// FoodImpact computes the impact of one food donation.
func (h *Handler) FoodImpact(c *gin.Context) {
	var req FoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, impact.ComputeFoodImpact(req.Category, req.WeightKg, quantityOrDefault(req.Quantity)))
}

// NonFoodImpact computes the impact of one non-food donation.
func (h *Handler) NonFoodImpact(c *gin.Context) {
	var req NonFoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, impact.ComputeNonFoodImpact(req.Category, quantityOrDefault(req.Quantity)))
}

// UserSummary aggregates the posted transactions, optionally restricted to
// the donor named by the donor query parameter.
func (h *Handler) UserSummary(c *gin.Context) {
	txns, ok := readTransactions(c)
	if !ok {
		return
	}

	donor := c.Query("donor")
	if donor != "" {
		txns = ingest.FilterByDonor(txns, impact.DonorID(donor))
	}

	summary := impact.AggregateUserImpact(txns)
	c.JSON(http.StatusOK, UserSummaryResponse{
		Donor:      donor,
		Summary:    summary,
		Milestones: impact.GetImpactMilestones(summary.TotalCO2SavedKg),
	})
}

// CommunitySummary aggregates the posted transactions into community totals
// and the top-donor ranking.
func (h *Handler) CommunitySummary(c *gin.Context) {
	txns, ok := readTransactions(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, impact.AggregateCommunityImpact(txns))
}

// Milestones returns the milestone table, or the milestone state for the
// total given in the co2 query parameter.
func (h *Handler) Milestones(c *gin.Context) {
	raw, present := c.GetQuery("co2")
	if !present {
		c.JSON(http.StatusOK, gin.H{"milestones": impact.Milestones()})
		return
	}

	total, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		badRequest(c, errors.New("co2 must be a number"))
		return
	}
	c.JSON(http.StatusOK, impact.GetImpactMilestones(total))
}

func readTransactions(c *gin.Context) ([]impact.Transaction, bool) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)
	txns, err := ingest.LoadReader(c.Request.Context(), body)
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return txns, true
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	logging.FromContext(c.Request.Context()).Debug().Err(err).Msg("rejecting request")
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func quantityOrDefault(q *float64) float64 {
	if q == nil {
		return impact.DefaultQuantity
	}
	return *q
}
