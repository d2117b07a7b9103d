package dto

import "github.com/mentorlink/backend/internal/app/models"

// QuizAnswer pairs one question with the chosen option index
type QuizAnswer struct {
	QuestionID string `json:"questionId" binding:"required"`
	OptionIdx  int    `json:"optionIdx" binding:"gte=0"`
}

// SubmitQuizRequest is the payload for a career-interest quiz submission
type SubmitQuizRequest struct {
	Answers []QuizAnswer `json:"answers" binding:"required,min=1,dive"`
}

// QuizOptionResponse is one selectable option of a quiz question
type QuizOptionResponse struct {
	Text string `json:"text"`
}

// QuizQuestionResponse is one question of the career-interest quiz
type QuizQuestionResponse struct {
	ID      string               `json:"id"`
	Text    string               `json:"text"`
	Options []QuizOptionResponse `json:"options"`
}

// QuizResultResponse is the ranked recommendation list from a submission
type QuizResultResponse struct {
	RecommendedCareers []models.CareerScore `json:"recommendedCareers"`
}
