package quizzes

import (
	"testing"

	"github.com/learnquest/backend/internal/models"
)

func twoQuestionQuiz() []models.Question {
	return []models.Question{
		{ID: 1, CorrectAnswer: 2, Points: 10},
		{ID: 2, CorrectAnswer: 0, Points: 10},
	}
}

func TestGradeAllCorrect(t *testing.T) {
	res := Grade(twoQuestionQuiz(), []models.QuizAnswer{
		{QuestionID: 1, Answer: 2},
		{QuestionID: 2, Answer: 0},
	})

	if res.Score != 100 {
		t.Errorf("score = %d, want 100", res.Score)
	}
	if res.CorrectAnswers != 2 || res.TotalQuestions != 2 {
		t.Errorf("correct/total = %d/%d, want 2/2", res.CorrectAnswers, res.TotalQuestions)
	}
	if res.PointsEarned != 20 {
		t.Errorf("points = %d, want 20", res.PointsEarned)
	}
}

func TestGradeAllWrong(t *testing.T) {
	res := Grade(twoQuestionQuiz(), []models.QuizAnswer{
		{QuestionID: 1, Answer: 0},
		{QuestionID: 2, Answer: 3},
	})

	if res.Score != 0 || res.CorrectAnswers != 0 || res.PointsEarned != 0 {
		t.Errorf("got score=%d correct=%d points=%d, want all zero",
			res.Score, res.CorrectAnswers, res.PointsEarned)
	}
}

func TestGradePartial(t *testing.T) {
	questions := []models.Question{
		{ID: 1, CorrectAnswer: 1, Points: 10},
		{ID: 2, CorrectAnswer: 1, Points: 10},
		{ID: 3, CorrectAnswer: 1, Points: 10},
	}
	res := Grade(questions, []models.QuizAnswer{
		{QuestionID: 1, Answer: 1},
		{QuestionID: 2, Answer: 0},
		{QuestionID: 3, Answer: 1},
	})

	// 2/3 rounds to 67, not truncates to 66.
	if res.Score != 67 {
		t.Errorf("score = %d, want 67", res.Score)
	}
	if res.PointsEarned != 20 {
		t.Errorf("points = %d, want 20", res.PointsEarned)
	}
}

func TestGradeUnansweredQuestionsAppearAsIncorrect(t *testing.T) {
	res := Grade(twoQuestionQuiz(), []models.QuizAnswer{
		{QuestionID: 1, Answer: 2},
	})

	if len(res.Results) != 2 {
		t.Fatalf("results length = %d, want 2 (unanswered included)", len(res.Results))
	}

	unanswered := res.Results[1]
	if unanswered.QuestionID != 2 {
		t.Fatalf("second result is question %d, want 2", unanswered.QuestionID)
	}
	if unanswered.UserAnswer != nil {
		t.Errorf("unanswered question has user_answer %v, want nil", *unanswered.UserAnswer)
	}
	if unanswered.IsCorrect || unanswered.PointsEarned != 0 {
		t.Error("unanswered question must be incorrect with zero points")
	}
	if res.Score != 50 {
		t.Errorf("score = %d, want 50", res.Score)
	}
}

func TestGradeEmptyQuiz(t *testing.T) {
	res := Grade(nil, []models.QuizAnswer{{QuestionID: 9, Answer: 1}})
	if res.Score != 0 || res.TotalQuestions != 0 {
		t.Errorf("empty quiz: score=%d total=%d, want 0/0", res.Score, res.TotalQuestions)
	}
}

func TestGradeIgnoresAnswersForUnknownQuestions(t *testing.T) {
	res := Grade(twoQuestionQuiz(), []models.QuizAnswer{
		{QuestionID: 99, Answer: 2},
		{QuestionID: 1, Answer: 2},
	})
	if res.CorrectAnswers != 1 {
		t.Errorf("correct = %d, want 1", res.CorrectAnswers)
	}
	if len(res.Results) != 2 {
		t.Errorf("results length = %d, want 2", len(res.Results))
	}
}

func TestQuizXP(t *testing.T) {
	tests := []struct {
		name         string
		score        int
		passingScore int
		xpReward     int
		wantXP       int
		wantPassed   bool
	}{
		{"failing score earns nothing", 50, 70, 100, 0, false},
		{"just below passing", 69, 70, 100, 0, false},
		{"exactly passing", 70, 70, 100, 100, true},
		{"passing without perfection", 85, 70, 100, 100, true},
		{"perfect adds the bonus", 100, 70, 100, 125, true},
		{"zero passing score always passes", 0, 0, 50, 50, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xp, passed := QuizXP(tt.score, tt.passingScore, tt.xpReward)
			if xp != tt.wantXP || passed != tt.wantPassed {
				t.Errorf("QuizXP(%d, %d, %d) = (%d, %v), want (%d, %v)",
					tt.score, tt.passingScore, tt.xpReward, xp, passed, tt.wantXP, tt.wantPassed)
			}
		})
	}
}
