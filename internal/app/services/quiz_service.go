package services

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

// maxRecommendedCareers caps the recommendation list per submission
const maxRecommendedCareers = 5

// quizOption is one selectable answer with its career weight contributions
type quizOption struct {
	Text    string
	Weights map[string]int
}

// quizQuestion is one question of the static career-interest quiz
type quizQuestion struct {
	ID      string
	Text    string
	Options []quizOption
}

// quizBank is the fixed in-code question set. Editing questions is a code
// change, not a data change.
var quizBank = []quizQuestion{
	{
		ID:   "q1",
		Text: "Which activity sounds most enjoyable to you?",
		Options: []quizOption{
			{Text: "Building something with my hands or with code", Weights: map[string]int{"Engineering": 3, "Software Development": 2}},
			{Text: "Helping someone work through a problem", Weights: map[string]int{"Medicine": 2, "Education": 3}},
			{Text: "Designing a poster or a room layout", Weights: map[string]int{"Design": 3, "Architecture": 2}},
			{Text: "Organizing an event from start to finish", Weights: map[string]int{"Business": 3, "Project Management": 2}},
		},
	},
	{
		ID:   "q2",
		Text: "Which school subject do you look forward to?",
		Options: []quizOption{
			{Text: "Math or physics", Weights: map[string]int{"Engineering": 3, "Data Science": 2}},
			{Text: "Biology or chemistry", Weights: map[string]int{"Medicine": 3, "Research": 2}},
			{Text: "Art or literature", Weights: map[string]int{"Design": 2, "Writing": 3}},
			{Text: "Economics or social studies", Weights: map[string]int{"Business": 2, "Law": 3}},
		},
	},
	{
		ID:   "q3",
		Text: "How do you prefer to work?",
		Options: []quizOption{
			{Text: "Alone, deeply focused on a hard problem", Weights: map[string]int{"Software Development": 3, "Research": 2}},
			{Text: "In a small team bouncing ideas around", Weights: map[string]int{"Design": 2, "Engineering": 2, "Business": 1}},
			{Text: "Face to face with the people I am helping", Weights: map[string]int{"Medicine": 2, "Education": 2, "Law": 1}},
			{Text: "Leading a group toward a shared goal", Weights: map[string]int{"Project Management": 3, "Business": 2}},
		},
	},
	{
		ID:   "q4",
		Text: "What kind of result satisfies you most?",
		Options: []quizOption{
			{Text: "A working machine, app or structure", Weights: map[string]int{"Engineering": 2, "Software Development": 2, "Architecture": 1}},
			{Text: "Someone's life made measurably better", Weights: map[string]int{"Medicine": 3, "Education": 2}},
			{Text: "Something beautiful that did not exist before", Weights: map[string]int{"Design": 3, "Writing": 2}},
			{Text: "A plan executed on time and on budget", Weights: map[string]int{"Project Management": 2, "Business": 2}},
		},
	},
	{
		ID:   "q5",
		Text: "Which headline would you click first?",
		Options: []quizOption{
			{Text: "New bridge design halves construction cost", Weights: map[string]int{"Engineering": 2, "Architecture": 2}},
			{Text: "Breakthrough treatment enters clinical trials", Weights: map[string]int{"Medicine": 2, "Research": 2}},
			{Text: "Startup raises funding round at record valuation", Weights: map[string]int{"Business": 3, "Data Science": 1}},
			{Text: "Court ruling reshapes digital privacy rights", Weights: map[string]int{"Law": 3, "Writing": 1}},
		},
	},
}

// QuizResultStore persists the latest quiz result for a student
type QuizResultStore interface {
	SaveQuizResult(ctx context.Context, studentID int64, careers []models.CareerScore, takenAt time.Time) error
}

// QuizService scores career-interest quiz submissions against the static
// question bank
type QuizService struct {
	store     QuizResultStore
	questions map[string]quizQuestion
	now       func() time.Time
	logger    zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(store QuizResultStore, logger zerolog.Logger) *QuizService {
	questions := make(map[string]quizQuestion, len(quizBank))
	for _, q := range quizBank {
		questions[q.ID] = q
	}
	return &QuizService{
		store:     store,
		questions: questions,
		now:       time.Now,
		logger:    logger,
	}
}

// Questions returns the quiz in presentation order, without weights
func (s *QuizService) Questions() []dto.QuizQuestionResponse {
	out := make([]dto.QuizQuestionResponse, 0, len(quizBank))
	for _, q := range quizBank {
		options := make([]dto.QuizOptionResponse, 0, len(q.Options))
		for _, o := range q.Options {
			options = append(options, dto.QuizOptionResponse{Text: o.Text})
		}
		out = append(out, dto.QuizQuestionResponse{ID: q.ID, Text: q.Text, Options: options})
	}
	return out
}

// Score sums the chosen options' career weights and returns up to five
// careers ranked by descending score. Careers tied on score keep the order
// in which they first appeared in the answers.
func (s *QuizService) Score(answers []dto.QuizAnswer) ([]models.CareerScore, error) {
	totals := make(map[string]int)
	var order []string

	for _, a := range answers {
		q, ok := s.questions[a.QuestionID]
		if !ok {
			return nil, apperrors.NewBadRequestError("unknown question: "+a.QuestionID, apperrors.ErrUnknownQuestion)
		}
		if a.OptionIdx < 0 || a.OptionIdx >= len(q.Options) {
			return nil, apperrors.NewBadRequestError("invalid option for question "+a.QuestionID, apperrors.ErrUnknownOption)
		}

		// Option weight keys are walked in the bank's declared order so tie
		// breaking stays deterministic
		opt := q.Options[a.OptionIdx]
		keys := make([]string, 0, len(opt.Weights))
		for career := range opt.Weights {
			keys = append(keys, career)
		}
		sort.Strings(keys)

		for _, career := range keys {
			if _, seen := totals[career]; !seen {
				order = append(order, career)
			}
			totals[career] += opt.Weights[career]
		}
	}

	scores := make([]models.CareerScore, 0, len(order))
	for _, career := range order {
		scores = append(scores, models.CareerScore{Career: career, Score: totals[career]})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if len(scores) > maxRecommendedCareers {
		scores = scores[:maxRecommendedCareers]
	}

	return scores, nil
}

// Submit scores a submission and stores it as the student's latest result,
// replacing any previous one
func (s *QuizService) Submit(ctx context.Context, studentID int64, req dto.SubmitQuizRequest) (*dto.QuizResultResponse, error) {
	scores, err := s.Score(req.Answers)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveQuizResult(ctx, studentID, scores, s.now()); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("studentId", studentID).Int("careers", len(scores)).Msg("Quiz result saved")

	return &dto.QuizResultResponse{RecommendedCareers: scores}, nil
}
