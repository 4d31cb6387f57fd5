package quizzes

import (
	"math"

	"github.com/learnquest/backend/internal/models"
)

// PerfectScoreBonus is the flat XP added on top of the quiz reward for a
// 100% score.
const PerfectScoreBonus = 25

// GradeResult is the outcome of grading one submission against a quiz's
// question set, before any persistence.
type GradeResult struct {
	Score          int
	CorrectAnswers int
	TotalQuestions int
	PointsEarned   int
	Results        []models.QuestionResult
}

// Grade scores a submission. Every question of the quiz appears in
// Results; a question with no matching submitted answer counts as
// incorrect with a nil user answer.
func Grade(questions []models.Question, answers []models.QuizAnswer) GradeResult {
	byQuestion := make(map[int64]int, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a.Answer
	}

	res := GradeResult{
		TotalQuestions: len(questions),
		Results:        make([]models.QuestionResult, 0, len(questions)),
	}
	for _, q := range questions {
		result := models.QuestionResult{
			QuestionID:    q.ID,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}
		if answer, answered := byQuestion[q.ID]; answered {
			result.UserAnswer = &answer
			if answer == q.CorrectAnswer {
				result.IsCorrect = true
				result.PointsEarned = q.Points
				res.CorrectAnswers++
				res.PointsEarned += q.Points
			}
		}
		res.Results = append(res.Results, result)
	}

	if len(questions) > 0 {
		res.Score = int(math.Round(float64(res.CorrectAnswers) / float64(len(questions)) * 100))
	}
	return res
}

// QuizXP computes the XP for an attempt: the quiz reward when passed, plus
// the perfect-score bonus, zero otherwise.
func QuizXP(score, passingScore, xpReward int) (xp int, passed bool) {
	passed = score >= passingScore
	if !passed {
		return 0, false
	}
	xp = xpReward
	if score == 100 {
		xp += PerfectScoreBonus
	}
	return xp, true
}
