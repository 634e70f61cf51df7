package handlers

import (
	"context"
	"hospital_app_go/middleware"
	"hospital_app_go/models"
	"hospital_app_go/services"
	"hospital_app_go/services/dashboard"
	"hospital_app_go/templates/pages"
	"hospital_app_go/templates/partials"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const patientsTimeout = 5 * time.Second

// ReceptionHandler serves the reception dashboard and its htmx partials.
// Every route sits behind RequireAuth and the reception role gate.
type ReceptionHandler struct {
	views    *dashboard.Registry
	patients *services.PatientService
	log      *zap.Logger
}

func NewReceptionHandler(views *dashboard.Registry, patients *services.PatientService, log *zap.Logger) *ReceptionHandler {
	return &ReceptionHandler{views: views, patients: patients, log: log}
}

func (h *ReceptionHandler) session(c echo.Context) (*services.SessionContext, error) {
	sess := middleware.GetSessionContext(c)
	if sess == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return sess, nil
}

func (h *ReceptionHandler) view(c echo.Context) (*dashboard.View, error) {
	sess, err := h.session(c)
	if err != nil {
		return nil, err
	}
	return h.views.Get(sess), nil
}

// Page renders the full dashboard. Every page load mounts a new view, so stats
// and patient names are recomputed; the htmx partials keep using that view.
func (h *ReceptionHandler) Page(c echo.Context) error {
	sess, err := h.session(c)
	if err != nil {
		return err
	}
	view := h.views.Remount(sess)
	return render(c, pages.Reception(middleware.GetCSRFToken(c), view.Snapshot()))
}

// Panel renders the dashboard content, polled by htmx while loading
func (h *ReceptionHandler) Panel(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	return render(c, partials.ReceptionContent(view.Snapshot()))
}

// RefreshQueue puts the queue in its loading state for the refresh delay
func (h *ReceptionHandler) RefreshQueue(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	view.Refresh()
	return render(c, partials.ReceptionContent(view.Snapshot()))
}

// Search echoes the searched term back as a notice
func (h *ReceptionHandler) Search(c echo.Context) error {
	view, err := h.view(c)
	if err != nil {
		return err
	}
	notice, _ := view.Search(c.FormValue("term"))
	return render(c, partials.SearchPanel(view.Snapshot().SearchTerm, notice))
}

// ListPatients returns the registered patients as JSON
func (h *ReceptionHandler) ListPatients(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), patientsTimeout)
	defer cancel()

	patients, err := h.patients.ListPatients(ctx)
	if err != nil {
		h.log.Error("failed to list patients", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load patients")
	}
	if patients == nil {
		patients = []models.Patient{}
	}
	return c.JSON(http.StatusOK, patients)
}
