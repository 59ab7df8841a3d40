package recipes

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/ai"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/core/extract"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

// ExtractURLRequest is the body of POST /recipes/extract.
type ExtractURLRequest struct {
	URL string `json:"url"`
}

// HandleExtractURL extracts a recipe from a web page.
func (h *Handler) HandleExtractURL(c *gin.Context) {
	requestID := requestid.Get(c)

	var req ExtractURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}

	common.LogInfo("extracting recipe from url",
		zap.String("url", req.URL),
		zap.String("request_id", requestID),
	)

	ctx := ai.WithRequestID(c.Request.Context(), requestID)
	view, err := h.pipeline.FromURL(ctx, req.URL)
	if err != nil {
		common.LogError("url extraction failed",
			zap.Error(err),
			zap.String("url", req.URL),
			zap.String("request_id", requestID),
		)
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": view})
}

// HandleExtractImages extracts a recipe from uploaded photos. Multipart
// fields: "images" (1-4 files) and optional "mainImageIndex".
func (h *Handler) HandleExtractImages(c *gin.Context) {
	requestID := requestid.Get(c)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Ogiltig förfrågan"})
		return
	}

	files := form.File["images"]
	images, err := readImageFiles(files)
	if err != nil {
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	mainImageIndex := 0
	if v := c.PostForm("mainImageIndex"); v != "" {
		if idx, convErr := strconv.Atoi(v); convErr == nil {
			mainImageIndex = idx
		}
	}

	common.LogInfo("extracting recipe from images",
		zap.Int("image_count", len(images)),
		zap.Int("main_image_index", mainImageIndex),
		zap.String("request_id", requestID),
	)

	ctx := ai.WithRequestID(c.Request.Context(), requestID)
	view, err := h.pipeline.FromImages(ctx, images, mainImageIndex)
	if err != nil {
		common.LogError("image extraction failed",
			zap.Error(err),
			zap.Int("image_count", len(images)),
			zap.String("request_id", requestID),
		)
		c.JSON(common.StatusOf(err), common.ResponseOf(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": view})
}

func readImageFiles(files []*multipart.FileHeader) ([]extract.ImageInput, error) {
	images := make([]extract.ImageInput, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			return nil, common.NewValidationError("Kunde inte läsa bilden")
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, common.NewValidationError("Kunde inte läsa bilden")
		}
		images = append(images, extract.ImageInput{
			Data:        data,
			ContentType: header.Header.Get("Content-Type"),
			Filename:    header.Filename,
		})
	}
	return images, nil
}
