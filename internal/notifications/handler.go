package notifications

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Inbox handles GET /notifications. Pass ?unread=true to filter to
// unread notifications only.
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	list, unread, err := h.service.Inbox(userID, unreadOnly)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{
		"notifications": list,
		"unread_count":  unread,
	})
}

// MarkRead handles POST /notifications/{notificationID}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["notificationID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid notification id"))
		return
	}

	if err := h.service.MarkRead(userID, id); err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "Notification marked as read", nil)
}

// MarkAllRead handles POST /notifications/read-all.
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	n, err := h.service.MarkAllRead(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, fmt.Sprintf("%d notifications marked as read", n), nil)
}
