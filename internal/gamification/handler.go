package gamification

import (
	"encoding/json"
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

// ── Streak ──────────────────────────────────────────────

func (h *Handler) UpdateStreak(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	resp, err := h.service.UpdateStreak(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

func (h *Handler) GetStreakStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	resp, err := h.service.GetStreakStatus(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

// ── Leaderboard ─────────────────────────────────────────

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = PeriodAllTime
	}
	limit := DefaultLeaderboardLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(w, apperr.Validation("INVALID_LIMIT", "limit must be an integer"))
			return
		}
		limit = n
	}

	resp, err := h.service.GetLeaderboard(period, limit)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

func (h *Handler) GetMyRank(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = PeriodAllTime
	}

	resp, err := h.service.GetUserRank(userID, period)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

// ── Badges ──────────────────────────────────────────────

func (h *Handler) CheckBadges(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	resp, err := h.service.CheckAndAwardBadges(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, resp)
}

func (h *Handler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.service.ListBadges()
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

func (h *Handler) ListUserBadges(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user ID"))
		return
	}

	badges, svcErr := h.service.ListUserBadges(userID)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"badges": badges})
}

// ── Achievements / Challenges ───────────────────────────

func (h *Handler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	achievements, err := h.service.ListAchievements()
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"achievements": achievements})
}

func (h *Handler) GetAchievementsProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	progress, err := h.service.GetAchievementsProgress(userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"achievements": progress})
}

func (h *Handler) ListChallenges(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") != "false"

	challenges, err := h.service.ListChallenges(activeOnly)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"challenges": challenges})
}

func (h *Handler) GetChallenge(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["challengeID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid challenge ID"))
		return
	}

	challenge, svcErr := h.service.GetChallenge(id)
	if svcErr != nil {
		respond.Error(w, svcErr)
		return
	}
	respond.Data(w, http.StatusOK, map[string]interface{}{"challenge": challenge})
}

// ── XP ──────────────────────────────────────────────────

func (h *Handler) AddXP(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req struct {
		XP int `json:"xp"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}
	if req.XP < 0 {
		respond.Error(w, apperr.Validation("INVALID_XP", "xp must not be negative"))
		return
	}

	total, err := h.service.AddXP(userID, req.XP)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, fmt.Sprintf("Added %d XP!", req.XP),
		map[string]interface{}{"total_xp": total})
}
