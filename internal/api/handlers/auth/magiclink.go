package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

const mailTemplate = `<h1>Välkommen till Måltidsplaneraren!</h1>
<p>Klicka på länken nedan för att logga in:</p>
<a href="%s" style="display: inline-block; padding: 12px 24px; background-color: #10b981; color: white; text-decoration: none; border-radius: 8px; font-weight: bold;">
  Logga in
</a>
<p style="margin-top: 20px; color: #666; font-size: 14px;">
  Länken är giltig i 1 timme.
</p>`

// MailSender delivers one HTML mail.
type MailSender interface {
	Send(ctx context.Context, to string, subject string, html string) error
}

// Handler serves the passwordless login route.
type Handler struct {
	config *config.Config
	mailer MailSender
}

func NewHandler(cfg *config.Config, mailer MailSender) *Handler {
	return &Handler{config: cfg, mailer: mailer}
}

// MagicLinkRequest is the body of POST /auth/magic-link.
type MagicLinkRequest struct {
	Email string `json:"email"`
}

// HandleMagicLink mails a login link to a whitelisted address. The response
// does not reveal whether the mail was actually delivered.
func (h *Handler) HandleMagicLink(c *gin.Context) {
	var req MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Email is required"})
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{Error: "Email is required"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.isWhitelisted(email) {
		common.LogWarn("magic link requested for non-whitelisted address",
			zap.String("email", email),
		)
		c.JSON(http.StatusForbidden, common.ErrorResponse{Error: "Not authorized"})
		return
	}

	token := uuid.New().String()
	magicLink := fmt.Sprintf("%s/auth/verify?token=%s", h.config.Mail.AppURL, token)

	html := fmt.Sprintf(mailTemplate, magicLink)
	if err := h.mailer.Send(c.Request.Context(), email, "Din magic link till Måltidsplaneraren", html); err != nil {
		common.LogError("failed to send magic link",
			zap.Error(err),
			zap.String("email", email),
		)
		c.JSON(http.StatusInternalServerError, common.ErrorResponse{Error: "Failed to send magic link"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) isWhitelisted(email string) bool {
	for _, allowed := range h.config.Auth.Whitelist {
		if allowed == email {
			return true
		}
	}
	return false
}
