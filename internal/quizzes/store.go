package quizzes

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/learnquest/backend/internal/models"
)

type querier interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Begin() (*sql.Tx, error) {
	return s.db.Begin()
}

// ── Quiz Reads ──────────────────────────────────────────

func (s *Store) GetQuiz(q querier, quizID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.QueryRow(
		`SELECT id, title, COALESCE(description, ''), module_id, passing_score,
		        xp_reward, time_limit, created_at, updated_at
		 FROM quizzes WHERE id = $1`,
		quizID,
	).Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.ModuleID,
		&quiz.PassingScore, &quiz.XPReward, &quiz.TimeLimit,
		&quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *Store) GetModuleQuiz(moduleID int64) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.QueryRow(
		`SELECT id, title, COALESCE(description, ''), module_id, passing_score,
		        xp_reward, time_limit, created_at, updated_at
		 FROM quizzes WHERE module_id = $1 ORDER BY id LIMIT 1`,
		moduleID,
	).Scan(&quiz.ID, &quiz.Title, &quiz.Description, &quiz.ModuleID,
		&quiz.PassingScore, &quiz.XPReward, &quiz.TimeLimit,
		&quiz.CreatedAt, &quiz.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (s *Store) ModuleExists(moduleID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM modules WHERE id = $1)`, moduleID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check module: %w", err)
	}
	return exists, nil
}

func (s *Store) UserExists(userID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)`, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user: %w", err)
	}
	return exists, nil
}

// ListQuestions loads a quiz's questions in order, decoding the options
// payload.
func (s *Store) ListQuestions(q querier, quizID int64) ([]models.Question, error) {
	rows, err := q.Query(
		`SELECT id, quiz_id, question_text, question_type, options,
		        correct_answer, COALESCE(explanation, ''), "order", points
		 FROM questions WHERE quiz_id = $1 ORDER BY "order", id`,
		quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var question models.Question
		var options []byte
		if err := rows.Scan(&question.ID, &question.QuizID, &question.QuestionText,
			&question.QuestionType, &options, &question.CorrectAnswer,
			&question.Explanation, &question.Order, &question.Points); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		if err := json.Unmarshal(options, &question.Options); err != nil {
			return nil, fmt.Errorf("decode options for question %d: %w", question.ID, err)
		}
		questions = append(questions, question)
	}
	return questions, rows.Err()
}

// ── Attempts ────────────────────────────────────────────

func (s *Store) InsertAttempt(tx *sql.Tx, a *models.QuizAttempt) (int64, error) {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return 0, fmt.Errorf("encode answers: %w", err)
	}

	var id int64
	err = tx.QueryRow(
		`INSERT INTO quiz_attempts
		    (user_id, quiz_id, score, correct_answers, total_questions,
		     passed, xp_earned, answers, time_taken, completed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		a.UserID, a.QuizID, a.Score, a.CorrectAnswers, a.TotalQuestions,
		a.Passed, a.XPEarned, answers, a.TimeTaken, a.CompletedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert attempt: %w", err)
	}
	return id, nil
}

func (s *Store) ListAttempts(userID int64, quizID *int64, limit int) ([]models.QuizAttempt, error) {
	query := `SELECT id, user_id, quiz_id, score, correct_answers, total_questions,
	                 passed, xp_earned, answers, time_taken, started_at, completed_at
	          FROM quiz_attempts WHERE user_id = $1`
	args := []interface{}{userID}
	if quizID != nil {
		query += ` AND quiz_id = $2`
		args = append(args, *quizID)
	}
	query += fmt.Sprintf(` ORDER BY completed_at DESC LIMIT %d`, limit)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var a models.QuizAttempt
		var answers []byte
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuizID, &a.Score, &a.CorrectAnswers,
			&a.TotalQuestions, &a.Passed, &a.XPEarned, &answers, &a.TimeTaken,
			&a.StartedAt, &a.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(answers, &a.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for attempt %d: %w", a.ID, err)
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// ── User Rewards ────────────────────────────────────────

func (s *Store) AddUserRewards(tx *sql.Tx, userID int64, xp, points int) error {
	_, err := tx.Exec(
		`UPDATE users SET xp = xp + $2, points = points + $3, updated_at = NOW()
		 WHERE id = $1`,
		userID, xp, points,
	)
	if err != nil {
		return fmt.Errorf("add user rewards: %w", err)
	}
	return nil
}
