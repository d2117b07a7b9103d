package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

type fakeQuizResultStore struct {
	studentID int64
	careers   []models.CareerScore
	takenAt   time.Time
	saves     int
}

func (f *fakeQuizResultStore) SaveQuizResult(_ context.Context, studentID int64, careers []models.CareerScore, takenAt time.Time) error {
	f.studentID = studentID
	f.careers = careers
	f.takenAt = takenAt
	f.saves++
	return nil
}

func TestQuestionsStripWeights(t *testing.T) {
	svc := NewQuizService(&fakeQuizResultStore{}, zerolog.Nop())

	questions := svc.Questions()
	if len(questions) != len(quizBank) {
		t.Fatalf("Questions() = %d questions, want %d", len(questions), len(quizBank))
	}
	for i, q := range questions {
		if q.ID != quizBank[i].ID {
			t.Errorf("question %d ID = %s, want %s", i, q.ID, quizBank[i].ID)
		}
		if len(q.Options) != len(quizBank[i].Options) {
			t.Errorf("question %s has %d options, want %d", q.ID, len(q.Options), len(quizBank[i].Options))
		}
	}
}

func TestScoreSumsWeightsAcrossAnswers(t *testing.T) {
	svc := NewQuizService(&fakeQuizResultStore{}, zerolog.Nop())

	// q1 option 0 and q2 option 0 both weight Engineering 3
	scores, err := svc.Score([]dto.QuizAnswer{
		{QuestionID: "q1", OptionIdx: 0},
		{QuestionID: "q2", OptionIdx: 0},
	})
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	if len(scores) == 0 {
		t.Fatal("Score() returned no careers")
	}
	if scores[0].Career != "Engineering" || scores[0].Score != 6 {
		t.Errorf("top career = %+v, want Engineering with score 6", scores[0])
	}

	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not sorted descending at %d: %+v", i, scores)
		}
	}
}

func TestScoreCapsRecommendations(t *testing.T) {
	svc := NewQuizService(&fakeQuizResultStore{}, zerolog.Nop())

	// Answering every question touches more than five distinct careers
	answers := make([]dto.QuizAnswer, 0, len(quizBank))
	for i, q := range quizBank {
		answers = append(answers, dto.QuizAnswer{QuestionID: q.ID, OptionIdx: i % len(q.Options)})
	}

	scores, err := svc.Score(answers)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if len(scores) > maxRecommendedCareers {
		t.Errorf("Score() returned %d careers, cap is %d", len(scores), maxRecommendedCareers)
	}
}

func TestScoreRejectsUnknownInput(t *testing.T) {
	svc := NewQuizService(&fakeQuizResultStore{}, zerolog.Nop())

	_, err := svc.Score([]dto.QuizAnswer{{QuestionID: "q99", OptionIdx: 0}})
	if !errors.Is(err, apperrors.ErrUnknownQuestion) {
		t.Errorf("Score() error = %v, want ErrUnknownQuestion", err)
	}

	_, err = svc.Score([]dto.QuizAnswer{{QuestionID: "q1", OptionIdx: 42}})
	if !errors.Is(err, apperrors.ErrUnknownOption) {
		t.Errorf("Score() error = %v, want ErrUnknownOption", err)
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	svc := NewQuizService(&fakeQuizResultStore{}, zerolog.Nop())
	answers := []dto.QuizAnswer{
		{QuestionID: "q1", OptionIdx: 1},
		{QuestionID: "q3", OptionIdx: 2},
		{QuestionID: "q5", OptionIdx: 3},
	}

	first, err := svc.Score(answers)
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := svc.Score(answers)
		if err != nil {
			t.Fatalf("Score() error = %v", err)
		}
		if len(again) != len(first) {
			t.Fatalf("run %d returned %d careers, first run %d", i, len(again), len(first))
		}
		for j := range again {
			if again[j] != first[j] {
				t.Fatalf("run %d position %d = %+v, first run %+v", i, j, again[j], first[j])
			}
		}
	}
}

func TestSubmitReplacesStoredResult(t *testing.T) {
	store := &fakeQuizResultStore{}
	svc := NewQuizService(store, zerolog.Nop())
	fixed := time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	result, err := svc.Submit(context.Background(), 7, dto.SubmitQuizRequest{
		Answers: []dto.QuizAnswer{{QuestionID: "q1", OptionIdx: 0}},
	})
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	if store.saves != 1 || store.studentID != 7 {
		t.Errorf("store saves = %d for student %d, want one save for student 7", store.saves, store.studentID)
	}
	if !store.takenAt.Equal(fixed) {
		t.Errorf("takenAt = %v, want %v", store.takenAt, fixed)
	}
	if len(result.RecommendedCareers) != len(store.careers) {
		t.Errorf("response careers = %d, stored = %d", len(result.RecommendedCareers), len(store.careers))
	}

	// A second submission overwrites, it never appends
	if _, err := svc.Submit(context.Background(), 7, dto.SubmitQuizRequest{
		Answers: []dto.QuizAnswer{{QuestionID: "q2", OptionIdx: 1}},
	}); err != nil {
		t.Fatalf("second Submit() error = %v", err)
	}
	if store.saves != 2 {
		t.Errorf("store saves = %d, want 2", store.saves)
	}
}
