package models

import "time"

type Quiz struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ModuleID     int64     `json:"module_id"`
	PassingScore int       `json:"passing_score"` // percentage needed to pass
	XPReward     int       `json:"xp_reward"`
	TimeLimit    int       `json:"time_limit"` // minutes, 0 = no limit
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	QuestionCount int        `json:"question_count"`
	Questions     []Question `json:"questions,omitempty"`
}

type Question struct {
	ID            int64    `json:"id"`
	QuizID        int64    `json:"quiz_id"`
	QuestionText  string   `json:"question_text"`
	QuestionType  string   `json:"question_type"` // multiple_choice, true_false, code
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer,omitempty"` // 0-based option index, stripped from public payloads
	Explanation   string   `json:"explanation,omitempty"`
	Order         int      `json:"order"`
	Points        int      `json:"points"`
}

// QuizAttempt is an immutable record of one grading event.
type QuizAttempt struct {
	ID             int64        `json:"id"`
	UserID         int64        `json:"user_id"`
	QuizID         int64        `json:"quiz_id"`
	Score          int          `json:"score"` // percentage
	CorrectAnswers int          `json:"correct_answers"`
	TotalQuestions int          `json:"total_questions"`
	Passed         bool         `json:"passed"`
	XPEarned       int          `json:"xp_earned"`
	Answers        []QuizAnswer `json:"answers,omitempty"`
	TimeTaken      int          `json:"time_taken"` // seconds
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
}

type QuizAnswer struct {
	QuestionID int64 `json:"question_id"`
	Answer     int   `json:"answer"`
}

type SubmitQuizRequest struct {
	Answers   []QuizAnswer `json:"answers"`
	TimeTaken int          `json:"time_taken"`
}

// QuestionResult is the per-question entry in a grading response.
// UserAnswer is nil when the question was never answered.
type QuestionResult struct {
	QuestionID    int64  `json:"question_id"`
	UserAnswer    *int   `json:"user_answer"`
	CorrectAnswer int    `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
	PointsEarned  int    `json:"points_earned"`
}

type SubmitQuizResponse struct {
	Score          int              `json:"score"`
	Passed         bool             `json:"passed"`
	CorrectAnswers int              `json:"correct_answers"`
	TotalQuestions int              `json:"total_questions"`
	XPEarned       int              `json:"xp_earned"`
	PointsEarned   int              `json:"points_earned"`
	Results        []QuestionResult `json:"results"`
	AttemptID      int64            `json:"attempt_id"`
}
