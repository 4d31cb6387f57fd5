package progress

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

func pathVarID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		return 0, apperr.Validation("INVALID_ID", "Invalid "+name)
	}
	return id, nil
}

func (h *Handler) Enroll(w http.ResponseWriter, r *http.Request) {
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

	p, already, err := h.service.Enroll(userID, pathID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if already {
		respond.Message(w, http.StatusOK, "Already enrolled",
			map[string]interface{}{"progress": p})
		return
	}
	respond.Message(w, http.StatusCreated, "Successfully enrolled!",
		map[string]interface{}{"progress": p})
}

func (h *Handler) MyPaths(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	paths, err := h.service.MyPaths(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{
		"paths": paths,
		"count": len(paths),
	})
}

func (h *Handler) PathProgress(w http.ResponseWriter, r *http.Request) {
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

	p, svcErr := h.service.PathProgress(userID, pathID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}

	var progress interface{}
	if p != nil {
		progress = p
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{
		"enrolled": p != nil,
		"progress": progress,
	})
}

func (h *Handler) CompleteResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	resourceID, err := pathVarID(r, "resourceID")
	if err != nil {
		respond.Error(w, err)
		return
	}

	var req models.CompleteResourceRequest
	if r.Body != nil {
		// An empty body means no time tracked.
		json.NewDecoder(r.Body).Decode(&req)
	}

	resp, already, svcErr := h.service.CompleteResource(userID, resourceID, req.TimeSpent)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}

	if already {
		respond.Message(w, http.StatusOK, "Resource already completed",
			map[string]interface{}{"completion": resp.Completion})
		return
	}
	respond.Message(w, http.StatusCreated,
		fmt.Sprintf("Resource completed! +%d XP", resp.XPEarned), resp)
}

func (h *Handler) CompleteModule(w http.ResponseWriter, r *http.Request) {
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

	resp, already, svcErr := h.service.CompleteModule(userID, moduleID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}

	if already {
		respond.Message(w, http.StatusOK, "Module already completed", nil)
		return
	}
	respond.Message(w, http.StatusOK,
		fmt.Sprintf("Module completed! +%d XP", resp.XPEarned), resp)
}
