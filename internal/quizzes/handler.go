package quizzes

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

func (h *Handler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	quizID, err := strconv.ParseInt(mux.Vars(r)["quizID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid quiz ID"))
		return
	}

	quiz, svcErr := h.service.GetQuiz(quizID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

func (h *Handler) GetModuleQuiz(w http.ResponseWriter, r *http.Request) {
	moduleID, err := strconv.ParseInt(mux.Vars(r)["moduleID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid module ID"))
		return
	}

	quiz, svcErr := h.service.GetModuleQuiz(moduleID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"quiz": quiz})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	quizID, err := strconv.ParseInt(mux.Vars(r)["quizID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid quiz ID"))
		return
	}

	var req models.SubmitQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}
	if req.Answers == nil {
		respond.Error(w, apperr.Validation("ANSWERS_REQUIRED", "Answers are required"))
		return
	}

	resp, svcErr := h.service.Submit(userID, quizID, &req)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

func (h *Handler) QuizAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}
	quizID, err := strconv.ParseInt(mux.Vars(r)["quizID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid quiz ID"))
		return
	}

	attempts, svcErr := h.service.QuizAttempts(userID, quizID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{
		"attempts": attempts,
		"count":    len(attempts),
	})
}

func (h *Handler) MyAttempts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	attempts, err := h.service.MyAttempts(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{
		"attempts": attempts,
		"count":    len(attempts),
	})
}
