package planning

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/planner"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// MeatReminderRequest is the body of POST /reminders/meat.
type MeatReminderRequest struct {
	HouseholdID string `json:"householdId"`
	Date        string `json:"date"`
}

// HandleMeatReminder checks whether the accepted dinner for a date needs a
// take-out-of-the-freezer reminder.
func (h *Handler) HandleMeatReminder(c *gin.Context) {
	var req MeatReminderRequest
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

	reminder, err := h.reminders.Check(req.HouseholdID, req.Date)
	if err != nil {
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	c.JSON(http.StatusOK, reminder)
}
