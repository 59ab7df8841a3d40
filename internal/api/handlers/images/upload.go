package images

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	imagesvc "github.com/marcus-ai-bot/maltidsplaneraren/internal/core/image"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/db"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// ObjectStore persists image bytes and resolves their public URLs.
type ObjectStore interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) error
	PublicURL(objectPath string) string
}

// Handler serves recipe image uploads. Each upload is stored as three
// renditions; the display rendition becomes the recipe's image_url.
type Handler struct {
	recipes   *db.RecipeRepository
	store     ObjectStore
	processor *imagesvc.Service
}

func NewHandler(recipes *db.RecipeRepository, store ObjectStore, processor *imagesvc.Service) *Handler {
	return &Handler{recipes: recipes, store: store, processor: processor}
}

// HandleUpload accepts multipart fields "image" and "recipeId". All three
// renditions are uploaded concurrently; any failed upload fails the whole
// request.
func (h *Handler) HandleUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "No image provided"})
		return
	}
	recipeID := c.PostForm("recipeId")
	if recipeID == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Recipe ID required"})
		return
	}

	_, found, err := h.recipes.GetByID(recipeID)
	if err != nil {
		persistErr := common.NewPersistenceError("Kunde inte läsa receptet", err)
		c.JSON(common.StatusOf(persistErr), common.ResponseOf(persistErr))
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, common.ErrorResponse{Error: "Receptet hittades inte"})
		return
	}

	if h.store == nil {
		configErr := common.NewConfigurationError("Bildlagring är inte konfigurerad")
		c.JSON(common.StatusOf(configErr), common.ResponseOf(configErr))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Failed to process image"})
		return
	}
	data, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Failed to process image"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	renditions, err := h.processor.Renditions(data, contentType)
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Failed to process image", Details: err.Error()})
		return
	}

	ext := strings.TrimPrefix(path.Ext(fileHeader.Filename), ".")
	if ext == "" {
		ext = "jpg"
	}
	timestamp := time.Now().UnixMilli()

	urls := make(map[string]string, len(renditions))
	paths := make(map[string]string, len(renditions))
	for _, rendition := range renditions {
		objectPath := fmt.Sprintf("recipes/%s/%d-%s.%s", recipeID, timestamp, rendition.Name, ext)
		paths[rendition.Name] = objectPath
		urls[rendition.Name] = h.store.PublicURL(objectPath)
	}

	var wg sync.WaitGroup
	uploadErrs := make([]error, len(renditions))
	for i, rendition := range renditions {
		wg.Add(1)
		go func(i int, rendition imagesvc.Rendition) {
			defer wg.Done()
			uploadErrs[i] = h.store.Upload(c.Request.Context(), paths[rendition.Name], rendition.Data, rendition.ContentType)
		}(i, rendition)
	}
	wg.Wait()

	for _, uploadErr := range uploadErrs {
		if uploadErr != nil {
			common.LogError("image rendition upload failed",
				zap.Error(uploadErr),
				zap.String("recipe_id", recipeID),
			)
			c.JSON(http.StatusInternalServerError, common.ErrorResponse{
				Error:   "Failed to upload images",
				Details: uploadErr.Error(),
			})
			return
		}
	}

	// The recipe update is best-effort; the renditions are already stored.
	if err := h.recipes.UpdateImageURL(recipeID, urls[imagesvc.RenditionDisplay]); err != nil {
		common.LogError("failed to update recipe image url",
			zap.Error(err),
			zap.String("recipe_id", recipeID),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"urls": gin.H{
			"original":  urls[imagesvc.RenditionOriginal],
			"display":   urls[imagesvc.RenditionDisplay],
			"thumbnail": urls[imagesvc.RenditionThumb],
		},
	})
}
