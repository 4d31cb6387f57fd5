package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/learnquest/backend/internal/admin"
	"github.com/learnquest/backend/internal/auth"
	"github.com/learnquest/backend/internal/comments"
	"github.com/learnquest/backend/internal/config"
	"github.com/learnquest/backend/internal/database"
	"github.com/learnquest/backend/internal/gamification"
	"github.com/learnquest/backend/internal/middleware"
	"github.com/learnquest/backend/internal/notifications"
	"github.com/learnquest/backend/internal/paths"
	"github.com/learnquest/backend/internal/progress"
	"github.com/learnquest/backend/internal/quizzes"
	"github.com/learnquest/backend/internal/reports"
	"github.com/learnquest/backend/internal/users"
)

func main() {
	cfg := config.Load()
	secret := []byte(cfg.JWTSecret)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Handlers
	authHandler := auth.NewHandler(db, secret)
	usersHandler := users.NewHandler(db)
	pathsHandler := paths.NewHandler(paths.NewService(paths.NewStore(db)))
	progressHandler := progress.NewHandler(progress.NewService(progress.NewStore(db)))
	quizzesHandler := quizzes.NewHandler(quizzes.NewService(quizzes.NewStore(db)))
	commentsHandler := comments.NewHandler(comments.NewService(comments.NewStore(db)))
	gamificationHandler := gamification.NewHandler(gamification.NewService(gamification.NewStore(db)))
	reportsHandler := reports.NewHandler(reports.NewService(reports.NewStore(db)))
	notificationsHandler := notifications.NewHandler(notifications.NewService(notifications.NewStore(db)))
	adminHandler := admin.NewHandler(admin.NewService(admin.NewStore(db)))

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	api.HandleFunc("/users/{userID:[0-9]+}", usersHandler.GetUser).Methods("GET")
	api.HandleFunc("/users/{userID:[0-9]+}/stats", usersHandler.GetStats).Methods("GET")

	api.HandleFunc("/paths", pathsHandler.ListPaths).Methods("GET")
	api.HandleFunc("/paths/{pathID:[0-9]+}", pathsHandler.GetPath).Methods("GET")
	api.HandleFunc("/search", pathsHandler.Search).Methods("GET")

	api.HandleFunc("/quizzes/{quizID:[0-9]+}", quizzesHandler.GetQuiz).Methods("GET")
	api.HandleFunc("/modules/{moduleID:[0-9]+}/quiz", quizzesHandler.GetModuleQuiz).Methods("GET")

	api.HandleFunc("/comments", commentsHandler.List).Methods("GET")

	api.HandleFunc("/gamification/badges", gamificationHandler.ListBadges).Methods("GET")
	api.HandleFunc("/gamification/badges/{userID:[0-9]+}", gamificationHandler.ListUserBadges).Methods("GET")
	api.HandleFunc("/gamification/leaderboard", gamificationHandler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/gamification/achievements", gamificationHandler.ListAchievements).Methods("GET")
	api.HandleFunc("/gamification/challenges", gamificationHandler.ListChallenges).Methods("GET")
	api.HandleFunc("/gamification/challenges/{challengeID:[0-9]+}", gamificationHandler.GetChallenge).Methods("GET")

	// Authenticated routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(secret))

	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")
	protected.HandleFunc("/users/profile", usersHandler.UpdateProfile).Methods("PUT")

	protected.HandleFunc("/paths", pathsHandler.CreatePath).Methods("POST")
	protected.HandleFunc("/paths/{pathID:[0-9]+}/modules", pathsHandler.AddModule).Methods("POST")
	protected.HandleFunc("/modules/{moduleID:[0-9]+}/resources", pathsHandler.AddResource).Methods("POST")
	protected.HandleFunc("/paths/{pathID:[0-9]+}/publish", pathsHandler.Publish).Methods("PUT")
	protected.HandleFunc("/paths/{pathID:[0-9]+}/rate", pathsHandler.Rate).Methods("POST")

	protected.HandleFunc("/paths/{pathID:[0-9]+}/enroll", progressHandler.Enroll).Methods("POST")
	protected.HandleFunc("/progress/my-paths", progressHandler.MyPaths).Methods("GET")
	protected.HandleFunc("/paths/{pathID:[0-9]+}/progress", progressHandler.PathProgress).Methods("GET")
	protected.HandleFunc("/resources/{resourceID:[0-9]+}/complete", progressHandler.CompleteResource).Methods("POST")
	protected.HandleFunc("/modules/{moduleID:[0-9]+}/complete", progressHandler.CompleteModule).Methods("POST")

	protected.HandleFunc("/quizzes/{quizID:[0-9]+}/submit", quizzesHandler.Submit).Methods("POST")
	protected.HandleFunc("/quizzes/{quizID:[0-9]+}/attempts", quizzesHandler.QuizAttempts).Methods("GET")
	protected.HandleFunc("/quizzes/attempts/mine", quizzesHandler.MyAttempts).Methods("GET")

	protected.HandleFunc("/comments", commentsHandler.Create).Methods("POST")
	protected.HandleFunc("/comments/{commentID:[0-9]+}", commentsHandler.Update).Methods("PUT")
	protected.HandleFunc("/comments/{commentID:[0-9]+}", commentsHandler.Delete).Methods("DELETE")

	protected.HandleFunc("/gamification/streak/update", gamificationHandler.UpdateStreak).Methods("POST")
	protected.HandleFunc("/gamification/streak/status", gamificationHandler.GetStreakStatus).Methods("GET")
	protected.HandleFunc("/gamification/leaderboard/me", gamificationHandler.GetMyRank).Methods("GET")
	protected.HandleFunc("/gamification/badges/check", gamificationHandler.CheckBadges).Methods("POST")
	protected.HandleFunc("/gamification/achievements/progress", gamificationHandler.GetAchievementsProgress).Methods("GET")
	protected.HandleFunc("/gamification/xp/add", gamificationHandler.AddXP).Methods("POST")

	protected.HandleFunc("/reports", reportsHandler.File).Methods("POST")
	protected.HandleFunc("/reports/mine", reportsHandler.MyReports).Methods("GET")

	protected.HandleFunc("/notifications", notificationsHandler.Inbox).Methods("GET")
	protected.HandleFunc("/notifications/{notificationID:[0-9]+}/read", notificationsHandler.MarkRead).Methods("POST")
	protected.HandleFunc("/notifications/read-all", notificationsHandler.MarkAllRead).Methods("POST")

	// Admin routes
	adminRoutes := api.PathPrefix("/admin").Subrouter()
	adminRoutes.Use(middleware.Auth(secret), middleware.AdminOnly(db))

	adminRoutes.HandleFunc("/stats", adminHandler.Stats).Methods("GET")
	adminRoutes.HandleFunc("/pending", adminHandler.PendingPaths).Methods("GET")
	adminRoutes.HandleFunc("/approve/{pathID:[0-9]+}", adminHandler.ApprovePath).Methods("POST")
	adminRoutes.HandleFunc("/reject/{pathID:[0-9]+}", adminHandler.RejectPath).Methods("POST")
	adminRoutes.HandleFunc("/users", adminHandler.Users).Methods("GET")
	adminRoutes.HandleFunc("/users/{userID:[0-9]+}/role", adminHandler.ChangeRole).Methods("PUT")
	adminRoutes.HandleFunc("/users/{userID:[0-9]+}/suspend", adminHandler.Suspend).Methods("PUT")
	adminRoutes.HandleFunc("/users/{userID:[0-9]+}", adminHandler.DeleteUser).Methods("DELETE")
	adminRoutes.HandleFunc("/reports", adminHandler.Reports).Methods("GET")
	adminRoutes.HandleFunc("/reports/{reportID:[0-9]+}/dismiss", adminHandler.DismissReport).Methods("POST")
	adminRoutes.HandleFunc("/reports/{reportID:[0-9]+}/action", adminHandler.ActionReport).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, c.Handler(r)); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
