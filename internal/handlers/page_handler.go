package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avunculargroup/avuncular-web/internal/site"
	"github.com/avunculargroup/avuncular-web/pkg/contactform"
	"github.com/avunculargroup/avuncular-web/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// PageTemplate is the name of the landing page template
const PageTemplate = "index.html"

// PageHandler renders the landing page and its web manifest. The page hands
// the browser form controller its rules and notifications as JSON attributes.
type PageHandler struct {
	content site.Content
	baseURL string
	form    site.Form
	now     func() time.Time
}

func NewPageHandler(content site.Content, baseURL, endpoint, fallbackEmail string) (*PageHandler, error) {
	rules, err := json.Marshal(contactform.Rules())
	if err != nil {
		return nil, fmt.Errorf("encode form rules: %w", err)
	}
	success, err := json.Marshal(contactform.SuccessNotification())
	if err != nil {
		return nil, fmt.Errorf("encode success notification: %w", err)
	}
	failure, err := json.Marshal(contactform.FailureNotification(fallbackEmail))
	if err != nil {
		return nil, fmt.Errorf("encode failure notification: %w", err)
	}

	return &PageHandler{
		content: content,
		baseURL: baseURL,
		form: site.Form{
			Endpoint: endpoint,
			Rules:    string(rules),
			Success:  string(success),
			Failure:  string(failure),
		},
		now: time.Now,
	}, nil
}

// Home handles GET /
func (h *PageHandler) Home(c *gin.Context) {
	metrics.LandingPageViews.Inc()
	c.HTML(http.StatusOK, PageTemplate, site.NewPage(h.content, h.baseURL, h.now().Year(), h.form))
}

// Manifest handles GET /manifest.webmanifest
func (h *PageHandler) Manifest(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, site.ManifestContentType, site.Manifest())
}
