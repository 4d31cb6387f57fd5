package comments

import (
	"encoding/json"
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

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryID(r *http.Request, name string) *int64 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	f := Filter{
		LearningPathID: queryID(r, "learning_path_id"),
		ResourceID:     queryID(r, "resource_id"),
	}
	page := queryInt(r, "page", 1)
	perPage := queryInt(r, "per_page", defaultPerPage)

	resp, err := h.service.List(f, page, perPage)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req models.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	comment, err := h.service.Create(userID, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusCreated, map[string]interface{}{"comment": comment})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	commentID, err := strconv.ParseInt(mux.Vars(r)["commentID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid comment ID"))
		return
	}

	var req models.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	comment, svcErr := h.service.Update(userID, commentID, req.Content)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"comment": comment})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	commentID, err := strconv.ParseInt(mux.Vars(r)["commentID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid comment ID"))
		return
	}

	if svcErr := h.service.Delete(userID, commentID); svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Message(w, http.StatusOK, "Comment deleted", nil)
}
