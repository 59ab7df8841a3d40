package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
)

type fakeMailer struct {
	sentTo      string
	sentSubject string
	sentHTML    string
	err         error
}

func (f *fakeMailer) Send(ctx context.Context, to string, subject string, html string) error {
	f.sentTo = to
	f.sentSubject = subject
	f.sentHTML = html
	return f.err
}

func newTestRouter(mailer MailSender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Auth: config.AuthConfig{Whitelist: []string{"marcus@example.com", "ingela@example.com"}},
		Mail: config.MailConfig{AppURL: "https://maltidsplaneraren.example.com"},
	}
	router := gin.New()
	router.POST("/auth/magic-link", NewHandler(cfg, mailer).HandleMagicLink)
	return router
}

func postMagicLink(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/magic-link", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestMagicLinkWhitelistedAddress(t *testing.T) {
	mailer := &fakeMailer{}
	recorder := postMagicLink(newTestRouter(mailer), `{"email": "Marcus@Example.com "}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"success":true`)

	assert.Equal(t, "marcus@example.com", mailer.sentTo)
	assert.Equal(t, "Din magic link till Måltidsplaneraren", mailer.sentSubject)
	assert.Contains(t, mailer.sentHTML, "https://maltidsplaneraren.example.com/auth/verify?token=")
	assert.Contains(t, mailer.sentHTML, "Välkommen till Måltidsplaneraren!")
}

func TestMagicLinkNonWhitelistedAddress(t *testing.T) {
	mailer := &fakeMailer{}
	recorder := postMagicLink(newTestRouter(mailer), `{"email": "okand@example.com"}`)

	assert.Equal(t, http.StatusForbidden, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Not authorized")
	assert.Empty(t, mailer.sentTo)
}

func TestMagicLinkMissingEmail(t *testing.T) {
	recorder := postMagicLink(newTestRouter(&fakeMailer{}), `{}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Email is required")
}

func TestMagicLinkSendFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("provider down")}
	recorder := postMagicLink(newTestRouter(mailer), `{"email": "ingela@example.com"}`)

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	require.Contains(t, recorder.Body.String(), "Failed to send magic link")
}
