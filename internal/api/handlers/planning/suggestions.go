package planning

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/ai"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// GenerateSuggestionsRequest is the body of POST /suggestions/generate.
type GenerateSuggestionsRequest struct {
	HouseholdID string `json:"householdId"`
	StartDate   string `json:"startDate"`
}

// HandleGenerateSuggestions plans a week of dinners via the AI service.
func (h *Handler) HandleGenerateSuggestions(c *gin.Context) {
	requestID := requestid.Get(c)

	var req GenerateSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}
	if req.HouseholdID == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "householdId krävs"})
		return
	}

	common.LogInfo("generating week suggestions",
		zap.String("household_id", req.HouseholdID),
		zap.String("week_start", req.StartDate),
		zap.String("request_id", requestID),
	)

	ctx := ai.WithRequestID(c.Request.Context(), requestID)
	suggestions, err := h.suggester.GenerateWeek(ctx, req.HouseholdID, req.StartDate)
	if err != nil {
		common.LogError("suggestion generation failed",
			zap.Error(err),
			zap.String("household_id", req.HouseholdID),
			zap.String("request_id", requestID),
		)
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// HandleAcceptSuggestion marks a suggestion as accepted.
func (h *Handler) HandleAcceptSuggestion(c *gin.Context) {
	suggestion, found, err := h.plans.UpdateSuggestionStatus(c.Param("id"), models.SuggestionAccepted)
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte uppdatera förslaget", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, common.ErrorResponse{Error: "Förslaget hittades inte"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestion": suggestion})
}
