package admin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

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

func pathVar(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

// Stats handles GET /admin/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.DashboardStats()
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{"stats": stats})
}

// PendingPaths handles GET /admin/pending.
func (h *Handler) PendingPaths(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.PendingPaths()
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{
		"pending_paths": list,
		"total":         len(list),
	})
}

// ApprovePath handles POST /admin/approve/{pathID}.
func (h *Handler) ApprovePath(w http.ResponseWriter, r *http.Request) {
	pathID, err := pathVar(r, "pathID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid path id"))
		return
	}

	title, err := h.service.ApprovePath(pathID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("Learning path %q approved successfully", title),
		map[string]any{"xp_awarded": PathApprovalXP})
}

// RejectPath handles POST /admin/reject/{pathID}.
func (h *Handler) RejectPath(w http.ResponseWriter, r *http.Request) {
	pathID, err := pathVar(r, "pathID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid path id"))
		return
	}

	var req models.RejectPathRequest
	json.NewDecoder(r.Body).Decode(&req)

	title, reason, err := h.service.RejectPath(pathID, req.Reason)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("Learning path %q rejected", title),
		map[string]any{"reason": reason})
}

// Users handles GET /admin/users.
func (h *Handler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := UserFilter{
		Search: q.Get("search"),
		Role:   q.Get("role"),
		Status: q.Get("status"),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))

	users, pagination, err := h.service.Users(filter, page, perPage)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{
		"users":      users,
		"pagination": pagination,
	})
}

// ChangeRole handles PUT /admin/users/{userID}/role.
func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	userID, err := pathVar(r, "userID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user id"))
		return
	}

	var req models.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Role == "" {
		respond.Error(w, apperr.Validation("MISSING_ROLE", "Role is required"))
		return
	}

	user, oldRole, err := h.service.ChangeRole(userID, req.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("User role changed from %s to %s", oldRole, user.Role),
		map[string]any{"user": user})
}

// Suspend handles PUT /admin/users/{userID}/suspend.
func (h *Handler) Suspend(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	userID, err := pathVar(r, "userID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user id"))
		return
	}

	var req models.SuspendRequest
	json.NewDecoder(r.Body).Decode(&req)
	suspend := true
	if req.Suspend != nil {
		suspend = *req.Suspend
	}

	user, err := h.service.Suspend(adminID, userID, suspend)
	if err != nil {
		respond.Error(w, err)
		return
	}

	action := "suspended"
	if !suspend {
		action = "reactivated"
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("User %s successfully", action),
		map[string]any{"user": user})
}

// DeleteUser handles DELETE /admin/users/{userID}.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	userID, err := pathVar(r, "userID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user id"))
		return
	}

	username, err := h.service.DeleteUser(adminID, userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, fmt.Sprintf("User %q deleted successfully", username), nil)
}

// Reports handles GET /admin/reports.
func (h *Handler) Reports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	status := q.Get("status")
	if status == "" {
		status = models.ReportPending
	}

	reports, err := h.service.Reports(status, q.Get("content_type"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{
		"reports": reports,
		"total":   len(reports),
	})
}

// DismissReport handles POST /admin/reports/{reportID}/dismiss.
func (h *Handler) DismissReport(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	reportID, err := pathVar(r, "reportID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid report id"))
		return
	}

	if err := h.service.DismissReport(adminID, reportID); err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "Report dismissed", nil)
}

// ActionReport handles POST /admin/reports/{reportID}/action.
func (h *Handler) ActionReport(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	reportID, err := pathVar(r, "reportID")
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid report id"))
		return
	}

	var req models.ActionReportRequest
	json.NewDecoder(r.Body).Decode(&req)

	report, err := h.service.ActionReport(adminID, reportID, req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("Action %q taken successfully", req.Action),
		map[string]any{"report": report})
}
