package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "shoppulse/internal/errors"
)

// dateLayout is the wire format for range parameters.
const dateLayout = "2006-01-02"

// DashboardHandler handles dashboard HTTP requests.
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSnapshot)
	r.Get("/revenue/monthly", h.GetMonthlyRevenue)
	r.Get("/categories", h.GetCategories)
	r.Get("/states", h.GetStates)
	r.Get("/reviews", h.GetReviews)
	r.Get("/status-distribution", h.GetStatusDistribution)

	return r
}

// dateRange extracts the start/end query parameters, falling back to the
// dataset's purchase-date bounds when absent.
func (h *DashboardHandler) dateRange(r *http.Request) (start, end time.Time, err error) {
	startRaw := r.URL.Query().Get("start")
	endRaw := r.URL.Query().Get("end")

	if startRaw == "" || endRaw == "" {
		min, max, err := h.service.DateBounds(r.Context())
		if err != nil {
			return time.Time{}, time.Time{}, apierrors.DatasetLoadError(err)
		}
		start, end = min, max
	}

	if startRaw != "" {
		start, err = time.Parse(dateLayout, startRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apierrors.ErrValidation("start", "must be a date in YYYY-MM-DD form")
		}
	}
	if endRaw != "" {
		end, err = time.Parse(dateLayout, endRaw)
		if err != nil {
			return time.Time{}, time.Time{}, apierrors.ErrValidation("end", "must be a date in YYYY-MM-DD form")
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apierrors.ErrValidation("end", "must not precede start")
	}
	return start, end, nil
}

// GetSnapshot handles GET /api/dashboard.
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	snap, err := h.service.Snapshot(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// GetMonthlyRevenue handles GET /api/dashboard/revenue/monthly.
func (h *DashboardHandler) GetMonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	current, previous, err := h.service.MonthlyRevenue(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"current":  current,
		"previous": previous,
	})
}

// GetCategories handles GET /api/dashboard/categories.
func (h *DashboardHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("limit", "must be a positive integer"))
			return
		}
	}

	categories, err := h.service.TopCategories(r.Context(), start, end, limit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"categories": categories})
}

// GetStates handles GET /api/dashboard/states.
func (h *DashboardHandler) GetStates(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	states, err := h.service.StateRevenue(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{"states": states})
}

// GetReviews handles GET /api/dashboard/reviews.
func (h *DashboardHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	start, end, err := h.dateRange(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	analysis, err := h.service.Reviews(r.Context(), start, end)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, analysis)
}

// GetStatusDistribution handles GET /api/dashboard/status-distribution.
func (h *DashboardHandler) GetStatusDistribution(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "year is required"))
		return
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 9999 {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("year", "must be a four-digit year"))
		return
	}

	distribution, err := h.service.StatusDistribution(r.Context(), year)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"year":         year,
		"distribution": distribution,
	})
}
