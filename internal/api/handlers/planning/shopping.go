package planning

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/planner"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// GenerateShoppingRequest is the body of POST /shopping/generate.
type GenerateShoppingRequest struct {
	HouseholdID string `json:"householdId"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
}

// HandleGenerateShopping builds a shopping list from the accepted dinners
// in the date range.
func (h *Handler) HandleGenerateShopping(c *gin.Context) {
	var req GenerateShoppingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}
	if req.HouseholdID == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "householdId krävs"})
		return
	}
	if _, err := time.Parse(planner.DateLayout, req.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltigt startdatum"})
		return
	}
	if _, err := time.Parse(planner.DateLayout, req.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltigt slutdatum"})
		return
	}

	list, err := h.shopping.Generate(req.HouseholdID, req.StartDate, req.EndDate)
	if err != nil {
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"shoppingList": list})
}
