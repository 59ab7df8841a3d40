package extract

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcus-ai-bot/maltidsplaneraren/internal/infrastructure/config"
	"github.com/marcus-ai-bot/maltidsplaneraren/internal/pkg/common"
)

func testExtractConfig(limit int) *config.ExtractConfig {
	return &config.ExtractConfig{
		UserAgent: "Mozilla/5.0 (compatible; Maltidsplaneraren/1.0)",
		HTMLLimit: limit,
		MaxImages: 4,
		Timeout:   5 * time.Second,
	}
}

func TestFetchStripsNoiseAndSendsUserAgent(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><head><script>tracking()</script><style>.a{}</style></head>` +
			`<body><nav>meny</nav><h1>Kycklinggryta</h1><p>500 g kyckling</p><footer>om oss</footer></body></html>`))
	}))
	defer server.Close()

	html, err := NewPageFetcher(testExtractConfig(15000)).Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Mozilla/5.0 (compatible; Maltidsplaneraren/1.0)", gotUserAgent)
	assert.Contains(t, html, "Kycklinggryta")
	assert.Contains(t, html, "500 g kyckling")
	assert.NotContains(t, html, "tracking()")
	assert.NotContains(t, html, "meny")
	assert.NotContains(t, html, "om oss")
}

func TestFetchTruncatesToLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + strings.Repeat("recept ", 1000) + "</body></html>"))
	}))
	defer server.Close()

	html, err := NewPageFetcher(testExtractConfig(100)).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(html), 100)
}

func TestFetchNon2xxStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := NewPageFetcher(testExtractConfig(15000)).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var ce *common.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, common.ErrCodeUpstreamFetch, ce.Code)
	assert.Equal(t, http.StatusBadRequest, ce.Status)
	assert.Contains(t, ce.Message, "404")
}

func TestFetchUnreachableHost(t *testing.T) {
	_, err := NewPageFetcher(testExtractConfig(15000)).Fetch(context.Background(), "http://127.0.0.1:1")
	require.Error(t, err)

	var ce *common.CustomError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, common.ErrCodeUpstreamFetch, ce.Code)
}
