package quizzes

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/learnquest/backend/internal/apperr"
	"github.com/learnquest/backend/internal/models"
)

const myAttemptsLimit = 20

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// GetQuiz returns a quiz with its questions stripped of answer keys, ready
// for a client to take.
func (s *Service) GetQuiz(quizID int64) (*models.Quiz, error) {
	quiz, err := s.store.GetQuiz(s.store.db, quizID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "Quiz not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return s.attachPublicQuestions(quiz)
}

// GetModuleQuiz returns the quiz attached to a module, if any.
func (s *Service) GetModuleQuiz(moduleID int64) (*models.Quiz, error) {
	exists, err := s.store.ModuleExists(moduleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("MODULE_NOT_FOUND", "Module not found")
	}

	quiz, err := s.store.GetModuleQuiz(moduleID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "No quiz found for this module")
	}
	if err != nil {
		return nil, fmt.Errorf("get module quiz: %w", err)
	}
	return s.attachPublicQuestions(quiz)
}

// attachPublicQuestions loads the question set with correct answers and
// explanations blanked out.
func (s *Service) attachPublicQuestions(quiz *models.Quiz) (*models.Quiz, error) {
	questions, err := s.store.ListQuestions(s.store.db, quiz.ID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		questions[i].CorrectAnswer = 0
		questions[i].Explanation = ""
	}
	quiz.Questions = questions
	quiz.QuestionCount = len(questions)
	return quiz, nil
}

// Submit grades an attempt, credits rewards when passed, and records the
// attempt unconditionally as the audit trail.
func (s *Service) Submit(userID, quizID int64, req *models.SubmitQuizRequest) (*models.SubmitQuizResponse, error) {
	exists, err := s.store.UserExists(userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("USER_NOT_FOUND", "User not found")
	}

	quiz, err := s.store.GetQuiz(s.store.db, quizID)
	if err == sql.ErrNoRows {
		return nil, apperr.NotFound("QUIZ_NOT_FOUND", "Quiz not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	questions, err := s.store.ListQuestions(s.store.db, quizID)
	if err != nil {
		return nil, err
	}

	graded := Grade(questions, req.Answers)
	xpEarned, passed := QuizXP(graded.Score, quiz.PassingScore, quiz.XPReward)

	tx, err := s.store.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	if passed {
		if err := s.store.AddUserRewards(tx, userID, xpEarned, graded.PointsEarned); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	attemptID, err := s.store.InsertAttempt(tx, &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          graded.Score,
		CorrectAnswers: graded.CorrectAnswers,
		TotalQuestions: graded.TotalQuestions,
		Passed:         passed,
		XPEarned:       xpEarned,
		Answers:        req.Answers,
		TimeTaken:      req.TimeTaken,
		CompletedAt:    &now,
	})
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit submit: %w", err)
	}

	log.Printf("[quizzes] user %d scored %d%% on quiz %d (passed=%v)", userID, graded.Score, quizID, passed)

	return &models.SubmitQuizResponse{
		Score:          graded.Score,
		Passed:         passed,
		CorrectAnswers: graded.CorrectAnswers,
		TotalQuestions: graded.TotalQuestions,
		XPEarned:       xpEarned,
		PointsEarned:   graded.PointsEarned,
		Results:        graded.Results,
		AttemptID:      attemptID,
	}, nil
}

// QuizAttempts lists the user's attempts at one quiz, newest first.
func (s *Service) QuizAttempts(userID, quizID int64) ([]models.QuizAttempt, error) {
	return s.store.ListAttempts(userID, &quizID, myAttemptsLimit)
}

// MyAttempts lists the user's recent attempts across all quizzes.
func (s *Service) MyAttempts(userID int64) ([]models.QuizAttempt, error) {
	return s.store.ListAttempts(userID, nil, myAttemptsLimit)
}
