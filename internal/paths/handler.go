package paths

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

func pathVarID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperr.Validation("INVALID_ID", "Invalid "+name)
	}
	return id, nil
}

func (h *Handler) ListPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := h.service.ListPaths()
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"learning_paths": paths})
}

func (h *Handler) GetPath(w http.ResponseWriter, r *http.Request) {
	pathID, err := pathVarID(r, "pathID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	path, svcErr := h.service.GetPath(pathID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"learning_path": path})
}

func (h *Handler) CreatePath(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req models.CreatePathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	path, err := h.service.CreatePath(userID, &req)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusCreated, "Learning path created!",
		map[string]interface{}{"learning_path": path})
}

func (h *Handler) AddModule(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	pathID, err := pathVarID(r, "pathID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req models.CreateModuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	module, svcErr := h.service.AddModule(userID, pathID, &req)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Message(w, http.StatusCreated, "Module added!",
		map[string]interface{}{"module": module})
}

func (h *Handler) AddResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	moduleID, err := pathVarID(r, "moduleID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req models.CreateResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	resource, svcErr := h.service.AddResource(userID, moduleID, &req)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Message(w, http.StatusCreated, "Resource added!",
		map[string]interface{}{"resource": resource})
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	pathID, err := pathVarID(r, "pathID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	path, svcErr := h.service.Publish(userID, pathID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Message(w, http.StatusOK, "Path submitted for approval",
		map[string]interface{}{"learning_path": path})
}

func (h *Handler) Rate(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r); !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	pathID, err := pathVarID(r, "pathID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req struct {
		Rating int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	newRating, svcErr := h.service.Rate(pathID, req.Rating)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Message(w, http.StatusOK, "Rating submitted!",
		map[string]interface{}{"new_rating": newRating})
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.Search(r.URL.Query().Get("q"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, results)
}
