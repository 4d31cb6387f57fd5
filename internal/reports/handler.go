package reports

import (
	"encoding/json"
	"net/http"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// File handles POST /reports.
func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	report, err := h.service.File(userID, req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusCreated, "Report submitted. Our moderators will review it.", map[string]any{
		"report": report,
	})
}

// MyReports handles GET /reports/mine.
func (h *Handler) MyReports(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	list, err := h.service.MyReports(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{
		"reports": list,
		"count":   len(list),
	})
}
