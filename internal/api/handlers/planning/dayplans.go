package planning

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/planner"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// DayPlanRequest is the body of PUT /dayplans.
type DayPlanRequest struct {
	HouseholdID      string  `json:"householdId"`
	UserID           string  `json:"userId"`
	Date             string  `json:"date"`
	EatingStatus     *string `json:"eatingStatus"`
	TimeAvailability *string `json:"timeAvailability"`
}

var validEatingStatuses = map[string]bool{
	models.EatingHome:     true,
	models.EatingOut:      true,
	models.EatingLunchBox: true,
	models.EatingLight:    true,
}

var validTimeAvailability = map[string]bool{
	models.TimeEarly: true,
	models.TimeLate:  true,
}

// HandleUpsertDayPlan writes a household member's plan for one date,
// replacing any earlier plan for that date.
func (h *Handler) HandleUpsertDayPlan(c *gin.Context) {
	var req DayPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}
	if req.HouseholdID == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "householdId krävs"})
		return
	}
	if _, err := time.Parse(planner.DateLayout, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltigt datum"})
		return
	}
	if req.EatingStatus != nil && !validEatingStatuses[*req.EatingStatus] {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig middagsstatus"})
		return
	}
	if req.TimeAvailability != nil && !validTimeAvailability[*req.TimeAvailability] {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig tidstillgänglighet"})
		return
	}

	plan := models.DayPlan{
		HouseholdID:      req.HouseholdID,
		UserID:           req.UserID,
		Date:             req.Date,
		EatingStatus:     req.EatingStatus,
		TimeAvailability: req.TimeAvailability,
	}
	if err := h.plans.UpsertDayPlan(&plan); err != nil {
		persistErr := common.NewPersistenceError("Kunde inte spara planeringen", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}

	c.JSON(http.StatusOK, gin.H{"dayPlan": plan})
}

// HandleListDayPlans returns a household's plans for an inclusive date
// range. Query: household_id, start, end.
func (h *Handler) HandleListDayPlans(c *gin.Context) {
	householdID := c.Query("householdId")
	start := c.Query("start")
	end := c.Query("end")
	if householdID == "" || start == "" || end == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "householdId, start och end krävs"})
		return
	}

	plans, err := h.plans.ListDayPlans(householdID, start, end)
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte läsa planeringen", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}

	c.JSON(http.StatusOK, gin.H{"dayPlans": plans})
}
