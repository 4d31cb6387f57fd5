package main

import (
	"database/sql"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/learnquest/backend/internal/config"
	"github.com/learnquest/backend/internal/database"
)

// Seeds the database with demo accounts and content for local development.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Seeding database...")

	log.Println("  Creating users...")
	adminID := seedUser(db, "admin", "admin@learnquest.com", "admin123", "admin",
		5000, 2500, 30, 100.0, "Platform administrator")
	contributorID := seedUser(db, "teacher_jane", "jane@learnquest.com", "teacher123", "contributor",
		3500, 1800, 15, 60.0, "Passionate educator and course creator")
	seedUser(db, "student_john", "john@learnquest.com", "student123", "learner",
		1200, 600, 7, 25.5, "Eager learner exploring new technologies")
	seedUser(db, "alice_dev", "alice@example.com", "alice123", "learner",
		800, 400, 3, 12.0, "Aspiring full-stack developer")

	log.Println("  Creating badges...")
	badges := []struct{ name, description, badgeType, icon string }{
		{"First Steps", "Complete your first module", "bronze", "🎯"},
		{"Week Warrior", "Maintain a 7-day streak", "silver", "🔥"},
		{"Month Master", "Maintain a 30-day streak", "gold", "⭐"},
		{"Path Pioneer", "Complete your first learning path", "silver", "🏆"},
		{"Knowledge Sharer", "Create your first resource", "bronze", "📚"},
		{"Community Star", "Receive 10 ratings on your content", "gold", "💫"},
	}
	for _, b := range badges {
		mustExec(db,
			`INSERT INTO badges (name, description, badge_type, icon_url)
			 VALUES ($1, $2, $3, $4) ON CONFLICT (name) DO NOTHING`,
			b.name, b.description, b.badgeType, b.icon)
	}

	log.Println("  Creating achievements...")
	achievements := []struct {
		name, description, reqType string
		xp, reqValue               int
	}{
		{"Quick Learner", "Complete 5 modules", "modules_completed", 100, 5},
		{"Dedicated Student", "Complete 10 modules", "modules_completed", 250, 10},
		{"Path Completer", "Complete 3 learning paths", "paths_completed", 500, 3},
		{"Streak Champion", "Maintain a 14-day streak", "streak", 200, 14},
	}
	for _, a := range achievements {
		mustExec(db,
			`INSERT INTO achievements (name, description, xp_reward, requirement_type, requirement_value)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.name, a.description, a.xp, a.reqType, a.reqValue)
	}

	log.Println("  Creating challenges...")
	mustExec(db,
		`INSERT INTO challenges (title, description, challenge_type, xp_reward, points_reward,
		                         requirement_type, requirement_value, start_date, end_date, is_active)
		 VALUES ('Weekly Warrior', 'Complete 5 modules this week', 'weekly', 150, 75,
		         'modules_completed', 5, NOW(), NOW() + INTERVAL '7 days', TRUE)`)
	mustExec(db,
		`INSERT INTO challenges (title, description, challenge_type, xp_reward, points_reward,
		                         requirement_type, requirement_value, start_date, end_date, is_active)
		 VALUES ('Monthly Learning Sprint', 'Complete 2 learning paths this month', 'monthly', 500, 250,
		         'paths_completed', 2, NOW(), NOW() + INTERVAL '30 days', TRUE)`)

	log.Println("  Creating learning paths...")
	webDevID := seedPath(db, contributorID,
		"Full Stack Web Development",
		"Learn to build modern web applications from scratch using HTML, CSS, JavaScript, and React.",
		"Development", "beginner", 500, 4.5, 24, 156)
	htmlModuleID := seedModule(db, webDevID, "HTML Fundamentals", "Learn the basics of HTML structure and elements", 1, 50)
	seedModule(db, webDevID, "CSS Styling", "Master CSS for beautiful web designs", 2, 50)
	jsModuleID := seedModule(db, webDevID, "JavaScript Basics", "Introduction to programming with JavaScript", 3, 75)
	seedModule(db, webDevID, "React Introduction", "Build interactive UIs with React", 4, 100)

	seedResource(db, htmlModuleID, "What is HTML?", "Introduction to HTML", "article",
		"https://developer.mozilla.org/en-US/docs/Web/HTML", 1)
	seedResource(db, htmlModuleID, "HTML Tags Explained", "Video walkthrough of common HTML tags", "video",
		"https://www.youtube.com/watch?v=UB1O30fR-EE", 2)

	uxID := seedPath(db, contributorID,
		"UX Design Principles",
		"Master the fundamentals of user experience design and create intuitive interfaces.",
		"Design", "intermediate", 400, 4.8, 18, 89)
	seedModule(db, uxID, "Design Thinking", "Learn the design thinking process", 1, 60)
	seedModule(db, uxID, "User Research", "Understand your users through research", 2, 60)
	seedModule(db, uxID, "Wireframing", "Create low-fidelity designs", 3, 70)

	dataID := seedPath(db, adminID,
		"Introduction to Data Science",
		"Start your journey into data science with Python and machine learning basics.",
		"Data Science", "beginner", 450, 4.6, 32, 210)
	seedModule(db, dataID, "Python Basics", "Learn Python programming fundamentals", 1, 50)
	seedModule(db, dataID, "Data Analysis with Pandas", "Analyze data using Pandas library", 2, 75)
	seedModule(db, dataID, "Data Visualization", "Create compelling visualizations", 3, 75)
	seedModule(db, dataID, "Intro to Machine Learning", "Basic ML concepts and algorithms", 4, 100)

	log.Println("  Creating quizzes...")
	var quizID int64
	err = db.QueryRow(
		`INSERT INTO quizzes (title, description, module_id, passing_score, xp_reward)
		 VALUES ('HTML Fundamentals Quiz', 'Test your HTML knowledge', $1, 70, 50)
		 RETURNING id`, htmlModuleID,
	).Scan(&quizID)
	if err != nil {
		log.Fatalf("seed quiz: %v", err)
	}
	mustExec(db,
		`INSERT INTO questions (quiz_id, question_text, options, correct_answer, explanation, "order", points)
		 VALUES ($1, 'What does HTML stand for?',
		         '["Hyper Text Markup Language", "High Tech Modern Language", "Home Tool Markup Language"]',
		         0, 'HTML is the standard markup language for web pages.', 1, 10)`, quizID)
	mustExec(db,
		`INSERT INTO questions (quiz_id, question_text, options, correct_answer, explanation, "order", points)
		 VALUES ($1, 'Which tag creates a hyperlink?',
		         '["<link>", "<a>", "<href>"]',
		         1, 'The anchor tag <a> with an href attribute creates links.', 2, 10)`, quizID)

	err = db.QueryRow(
		`INSERT INTO quizzes (title, description, module_id, passing_score, xp_reward)
		 VALUES ('JavaScript Basics Quiz', 'Check your JavaScript fundamentals', $1, 70, 75)
		 RETURNING id`, jsModuleID,
	).Scan(&quizID)
	if err != nil {
		log.Fatalf("seed quiz: %v", err)
	}
	mustExec(db,
		`INSERT INTO questions (quiz_id, question_text, options, correct_answer, explanation, "order", points)
		 VALUES ($1, 'Which keyword declares a block-scoped variable?',
		         '["var", "let", "def"]',
		         1, 'let and const are block-scoped; var is function-scoped.', 1, 10)`, quizID)

	log.Println("Database seeded successfully!")
	log.Println("Test accounts:")
	log.Println("  admin@learnquest.com / admin123 (admin)")
	log.Println("  jane@learnquest.com  / teacher123 (contributor)")
	log.Println("  john@learnquest.com  / student123 (learner)")
	log.Println("  alice@example.com    / alice123 (learner)")
}

func mustExec(db *sql.DB, query string, args ...any) {
	if _, err := db.Exec(query, args...); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func seedUser(db *sql.DB, username, email, password, role string, xp, points int64, streak int, hours float64, bio string) int64 {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(
		`INSERT INTO users (username, email, password_hash, role, xp, points, streak_days, hours_learned, bio, last_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		 ON CONFLICT (email) DO UPDATE SET username = EXCLUDED.username
		 RETURNING id`,
		username, email, string(hashed), role, xp, points, streak, hours, bio,
	).Scan(&id)
	if err != nil {
		log.Fatalf("seed user %s: %v", username, err)
	}
	return id
}

func seedPath(db *sql.DB, creatorID int64, title, description, category, difficulty string, xp int, rating float64, totalRatings, enrolled int) int64 {
	var id int64
	err := db.QueryRow(
		`INSERT INTO learning_paths (title, description, category, difficulty, xp_reward, creator_id,
		                             is_published, is_approved, rating, total_ratings, enrolled_count)
		 VALUES ($1, $2, $3, $4, $5, $6, TRUE, TRUE, $7, $8, $9)
		 RETURNING id`,
		title, description, category, difficulty, xp, creatorID, rating, totalRatings, enrolled,
	).Scan(&id)
	if err != nil {
		log.Fatalf("seed path %s: %v", title, err)
	}
	return id
}

func seedModule(db *sql.DB, pathID int64, title, description string, order, xp int) int64 {
	var id int64
	err := db.QueryRow(
		`INSERT INTO modules (title, description, "order", xp_reward, learning_path_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		title, description, order, xp, pathID,
	).Scan(&id)
	if err != nil {
		log.Fatalf("seed module %s: %v", title, err)
	}
	return id
}

func seedResource(db *sql.DB, moduleID int64, title, description, resourceType, url string, order int) {
	mustExec(db,
		`INSERT INTO resources (title, description, resource_type, url, "order", module_id)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		title, description, resourceType, url, order, moduleID)
}
