package recipes

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/extract"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/db"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/models"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// Handler serves the recipe bank routes.
type Handler struct {
	repo     *db.RecipeRepository
	pipeline *extract.Pipeline
}

func NewHandler(repo *db.RecipeRepository, pipeline *extract.Pipeline) *Handler {
	return &Handler{repo: repo, pipeline: pipeline}
}

// HandleList returns recipes, newest first. Optional ?limit=N.
func (h *Handler) HandleList(c *gin.Context) {
	limit := 0
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig limit"})
			return
		}
		limit = parsed
	}

	recipes, err := h.repo.List(limit)
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte läsa recepten", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}

	views := make([]models.RecipeView, 0, len(recipes))
	for i := range recipes {
		views = append(views, recipes[i].View())
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

// HandleGet returns one recipe by id.
func (h *Handler) HandleGet(c *gin.Context) {
	recipe, found, err := h.repo.GetByID(c.Param("id"))
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte läsa receptet", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, common.ErrorResponse{Error: "Receptet hittades inte"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": recipe.View()})
}

// RatingRequest is the body of POST /recipes/:id/rating.
type RatingRequest struct {
	UserID  string  `json:"userId"`
	Rating  int     `json:"rating"`
	Comment *string `json:"comment"`
}

// HandleRate stores or replaces a user's rating for a recipe.
func (h *Handler) HandleRate(c *gin.Context) {
	recipeID := c.Param("id")

	var req RatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "userId krävs"})
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Betyg måste vara 1-5"})
		return
	}

	_, found, err := h.repo.GetByID(recipeID)
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte läsa receptet", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, common.ErrorResponse{Error: "Receptet hittades inte"})
		return
	}

	rating := models.RecipeRating{
		UserID:   req.UserID,
		RecipeID: recipeID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	}
	if err := h.repo.SaveRating(&rating); err != nil {
		persistErr := common.NewPersistenceError("Kunde inte spara betyget", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}

	c.JSON(http.StatusOK, gin.H{"rating": rating})
}
