package handlers

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/wrobotics/field-randomizer/internal/field"
	"github.com/wrobotics/field-randomizer/pkg/models"
)

// FieldHandler handles HTTP requests for randomized field images
type FieldHandler struct {
	pool   *field.WorkerPool
	logger *zap.Logger
}

// NewFieldHandler creates a new field handler
func NewFieldHandler(pool *field.WorkerPool, logger *zap.Logger) *FieldHandler {
	return &FieldHandler{
		pool:   pool,
		logger: logger,
	}
}

// RegisterRoutes registers the field routes
func (h *FieldHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/", h.handleField)
}

// handleHealth handles GET /health - returns service health status
func (h *FieldHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": "field-randomizer",
	})
}

// handleField handles:
// - GET / - the HTML index page
// - GET /{challenge} - a field image with a randomized driving direction
// - GET /{challenge}/{direction} - a field image for the given direction
//
// {challenge} is open/qualification or obstacle/final, {direction} is cw or
// ccw.
func (h *FieldHandler) handleField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if r.URL.Path == "/" {
		h.handleIndex(w, r)
		return
	}

	// Parse the path: /{challenge} or /{challenge}/{direction}
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) > 2 {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	challenge, err := models.ParseChallengeType(parts[0])
	if err != nil {
		h.logger.Debug("Rejected challenge request",
			zap.String("path", r.URL.Path),
			zap.Error(err))
		http.Error(w, "Unknown challenge type", http.StatusNotFound)
		return
	}

	// The direction segment is optional; the generator randomizes it when
	// empty, the same way referees toss for it.
	var direction models.Direction
	if len(parts) == 2 {
		direction, err = models.ParseDirection(parts[1])
		if err != nil {
			h.logger.Debug("Rejected challenge request",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			http.Error(w, "Unknown direction", http.StatusNotFound)
			return
		}
	}

	result, err := h.pool.Submit(r.Context(), challenge, direction)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrUnsupportedChallengeType) || errors.Is(err, models.ErrUnsupportedDirection):
			http.Error(w, "Unknown challenge type", http.StatusNotFound)
		case errors.Is(err, field.ErrPoolStopped):
			http.Error(w, "Service is shutting down", http.StatusServiceUnavailable)
		default:
			h.logger.Error("Failed to render field",
				zap.String("challenge", string(challenge)),
				zap.Error(err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	// Every image is a one-shot randomization; caches must not replay it.
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(result.PNG); err != nil {
		h.logger.Warn("Failed to write image response", zap.Error(err))
		return
	}

	h.logger.Debug("Served field image",
		zap.String("challenge", string(result.Layout.Challenge)),
		zap.String("direction", string(result.Layout.Direction)),
		zap.String("start_section", result.Layout.StartSection.String()),
		zap.String("start_zone", result.Layout.StartZone.String()),
		zap.Int("bytes", len(result.PNG)))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head><title>Future Engineers Field Randomizer</title></head>
<body>
<h1>Future Engineers Field Randomizer</h1>
<p>Every request returns a freshly randomized game field as a PNG image.</p>
<ul>
  <li><a href="/qualification/cw">/qualification/cw</a>&mdash;open challenge, clockwise</li>
  <li><a href="/qualification/ccw">/qualification/ccw</a>&mdash;open challenge, counter-clockwise</li>
  <li><a href="/final/cw">/final/cw</a>&mdash;obstacle challenge, clockwise</li>
  <li><a href="/final/ccw">/final/ccw</a>&mdash;obstacle challenge, counter-clockwise</li>
</ul>
<p>The short forms <a href="/open">/open</a> and <a href="/obstacle">/obstacle</a>
randomize the driving direction as well.</p>
</body>
</html>
`))

// handleIndex handles GET / - serves the endpoint overview page
func (h *FieldHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		h.logger.Error("Failed to render index page", zap.Error(err))
	}
}
