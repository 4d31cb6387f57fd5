package users

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/respond"
)

// Handler serves public user profiles and authed profile edits.
type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

const profileColumns = `id, username, email, role, status, xp, points, streak_days,
	hours_learned, COALESCE(avatar_url, ''), COALESCE(bio, ''),
	last_active, created_at, updated_at`

func scanProfile(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.Role, &u.Status, &u.XP, &u.Points,
		&u.StreakDays, &u.HoursLearned, &u.AvatarURL, &u.Bio,
		&u.LastActive, &u.CreatedAt, &u.UpdatedAt,
	)
	return u, err
}

// GetUser handles GET /users/{userID}.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user id"))
		return
	}

	user, err := scanProfile(h.db.QueryRow(
		`SELECT `+profileColumns+` FROM users WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		respond.Error(w, apperr.NotFound("USER_NOT_FOUND", "User not found"))
		return
	}
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{"user": user})
}

// UpdateProfile handles PUT /users/profile. Only the fields present in
// the body are changed.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var req models.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		respond.Error(w, apperr.Validation("INVALID_USERNAME", "Username cannot be empty"))
		return
	}

	user, err := scanProfile(h.db.QueryRow(
		`UPDATE users
		 SET username = COALESCE($1, username),
		     bio = COALESCE($2, bio),
		     avatar_url = COALESCE($3, avatar_url),
		     updated_at = NOW()
		 WHERE id = $4
		 RETURNING `+profileColumns,
		req.Username, req.Bio, req.AvatarURL, userID))
	if err == sql.ErrNoRows {
		respond.Error(w, apperr.NotFound("USER_NOT_FOUND", "User not found"))
		return
	}
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respond.Error(w, apperr.Conflict("DUPLICATE_ENTRY", "Username is already taken"))
			return
		}
		respond.Error(w, apperr.Database(err))
		return
	}
	respond.Message(w, http.StatusOK, "Profile updated successfully!", map[string]any{"user": user})
}

// GetStats handles GET /users/{userID}/stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		respond.Error(w, apperr.Validation("INVALID_ID", "Invalid user id"))
		return
	}

	var stats models.UserStats
	err = h.db.QueryRow(
		`SELECT xp, points, streak_days, hours_learned,
		        (SELECT COUNT(*) FROM user_badges ub WHERE ub.user_id = users.id)
		 FROM users WHERE id = $1`, id,
	).Scan(&stats.XP, &stats.Points, &stats.StreakDays, &stats.HoursLearned, &stats.BadgesCount)
	if err == sql.ErrNoRows {
		respond.Error(w, apperr.NotFound("USER_NOT_FOUND", "User not found"))
		return
	}
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}
	respond.Data(w, http.StatusOK, map[string]any{"stats": stats})
}
