package auth

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/models"
	"github.com/learnquest/backend/internal/respond"
)

type Handler struct {
	db     *sql.DB
	secret []byte
}

func NewHandler(db *sql.DB, secret []byte) *Handler {
	return &Handler{db: db, secret: secret}
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.Username = strings.TrimSpace(req.Username)

	if req.Email == "" || req.Username == "" || req.Password == "" {
		respond.Error(w, apperr.Validation("MISSING_FIELDS", "Username, email, and password are required"))
		return
	}

	if len(req.Password) < 8 {
		respond.Error(w, apperr.Validation("WEAK_PASSWORD", "Password must be at least 8 characters"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}

	var user models.User
	err = h.db.QueryRow(
		`INSERT INTO users (username, email, password_hash, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $4)
		 RETURNING id, username, email, role, status, xp, points, streak_days,
		           hours_learned, created_at, updated_at`,
		req.Username, req.Email, string(hashed), time.Now().UTC(),
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Status,
		&user.XP, &user.Points, &user.StreakDays, &user.HoursLearned,
		&user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respond.Error(w, apperr.Conflict("DUPLICATE_ENTRY", "An account with this username or email already exists"))
			return
		}
		respond.Error(w, apperr.Database(err))
		return
	}

	token, err := GenerateToken(h.secret, user.ID)
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}

	respond.Data(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, apperr.Validation("INVALID_BODY", "Invalid request body"))
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))

	if req.Email == "" || req.Password == "" {
		respond.Error(w, apperr.Validation("MISSING_FIELDS", "Email and password are required"))
		return
	}

	var user models.User
	var hashed string
	err := h.db.QueryRow(
		`SELECT id, username, email, password_hash, role, status, xp, points,
		        streak_days, hours_learned, COALESCE(avatar_url, ''), COALESCE(bio, ''),
		        last_active, created_at, updated_at
		 FROM users WHERE email = $1`,
		req.Email,
	).Scan(&user.ID, &user.Username, &user.Email, &hashed, &user.Role, &user.Status,
		&user.XP, &user.Points, &user.StreakDays, &user.HoursLearned,
		&user.AvatarURL, &user.Bio, &user.LastActive, &user.CreatedAt, &user.UpdatedAt)

	if err == sql.ErrNoRows {
		respond.Error(w, apperr.Unauthenticated("Invalid email or password"))
		return
	}
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(req.Password)); err != nil {
		respond.Error(w, apperr.Unauthenticated("Invalid email or password"))
		return
	}

	if user.Status == models.StatusBanned {
		respond.Error(w, apperr.Forbidden("ACCOUNT_BANNED", "This account has been banned"))
		return
	}

	token, err := GenerateToken(h.secret, user.ID)
	if err != nil {
		respond.Error(w, apperr.Database(err))
		return
	}

	respond.Data(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respond.Error(w, apperr.Unauthenticated("Authentication required"))
		return
	}

	var user models.User
	err := h.db.QueryRow(
		`SELECT id, username, email, role, status, xp, points, streak_days,
		        hours_learned, COALESCE(avatar_url, ''), COALESCE(bio, ''),
		        last_active, created_at, updated_at
		 FROM users WHERE id = $1`,
		userID,
	).Scan(&user.ID, &user.Username, &user.Email, &user.Role, &user.Status,
		&user.XP, &user.Points, &user.StreakDays, &user.HoursLearned,
		&user.AvatarURL, &user.Bio, &user.LastActive, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		respond.Error(w, apperr.NotFound("USER_NOT_FOUND", "User not found"))
		return
	}

	respond.Data(w, http.StatusOK, user)
}
