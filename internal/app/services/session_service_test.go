package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/mentorlink/backend/internal/app/models"
	"github.com/mentorlink/backend/internal/app/models/dto"
	"github.com/mentorlink/backend/internal/db"
	"github.com/mentorlink/backend/internal/pkg/apperrors"
)

type fakeSessionStore struct {
	sessions map[int64]*models.Session
	nextID   int64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	f.nextID++
	session.ID = f.nextID
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id int64) (*models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) HasBookingAt(_ context.Context, studentID int64, scheduledAt time.Time) (bool, error) {
	for _, s := range f.sessions {
		if s.StudentID != studentID || !s.ScheduledAt.Equal(scheduledAt) {
			continue
		}
		if s.Status == models.SessionScheduled || s.Status == models.SessionConfirmed {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionStore) SetMeetingLink(_ context.Context, sessionID int64, link string) error {
	f.sessions[sessionID].MeetingLink = &link
	return nil
}

func (f *fakeSessionStore) UpdateStatus(_ context.Context, session *models.Session) error {
	stored := f.sessions[session.ID]
	stored.Status = session.Status
	stored.ActualStartTime = session.ActualStartTime
	stored.ActualEndTime = session.ActualEndTime
	stored.ActualDuration = session.ActualDuration
	return nil
}

func (f *fakeSessionStore) Cancel(_ context.Context, sessionID int64, by models.RoleType, reason string, at time.Time) error {
	stored := f.sessions[sessionID]
	stored.Status = models.SessionCancelled
	stored.CancelledBy = &by
	stored.CancelReason = &reason
	stored.CancelledAt = &at
	return nil
}

func (f *fakeSessionStore) SetStudentFeedback(_ context.Context, _ pgx.Tx, sessionID int64, fb models.SessionFeedback) error {
	f.sessions[sessionID].StudentFeedback = &fb
	return nil
}

func (f *fakeSessionStore) SetMentorFeedback(_ context.Context, sessionID int64, fb models.SessionFeedback) error {
	f.sessions[sessionID].MentorFeedback = &fb
	return nil
}

func (f *fakeSessionStore) ListForStudent(_ context.Context, studentID int64, _ dto.SessionFilter) ([]*models.Session, int64, error) {
	var out []*models.Session
	for _, s := range f.sessions {
		if s.StudentID == studentID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionStore) ListForMentor(_ context.Context, mentorID int64, _ dto.SessionFilter) ([]*models.Session, int64, error) {
	var out []*models.Session
	for _, s := range f.sessions {
		if s.MentorID == mentorID {
			out = append(out, s)
		}
	}
	return out, int64(len(out)), nil
}

type fakeMentorStore struct {
	mentors      map[int64]*models.Mentor
	reviews      []*models.MentorReview
	totalMinutes map[int64]int
}

func newFakeMentorStore(mentors ...*models.Mentor) *fakeMentorStore {
	f := &fakeMentorStore{
		mentors:      make(map[int64]*models.Mentor),
		totalMinutes: make(map[int64]int),
	}
	for _, m := range mentors {
		f.mentors[m.ID] = m
	}
	return f
}

func (f *fakeMentorStore) GetByID(_ context.Context, id int64) (*models.Mentor, error) {
	mentor, ok := f.mentors[id]
	if !ok {
		return nil, apperrors.ErrMentorNotFound
	}
	return mentor, nil
}

func (f *fakeMentorStore) AddReviewAndRecompute(_ context.Context, _ pgx.Tx, review *models.MentorReview) error {
	f.reviews = append(f.reviews, review)
	return nil
}

func (f *fakeMentorStore) AddSessionTotals(_ context.Context, mentorID int64, durationMinutes int) error {
	f.totalMinutes[mentorID] += durationMinutes
	return nil
}

type fakeStudentStore struct {
	attended map[int64]int
}

func newFakeStudentStore() *fakeStudentStore {
	return &fakeStudentStore{attended: make(map[int64]int)}
}

func (f *fakeStudentStore) GetByID(_ context.Context, id int64) (*models.Student, error) {
	return &models.Student{ID: id, UserID: id + 200}, nil
}

func (f *fakeStudentStore) IncrementSessionsAttended(_ context.Context, studentID int64) error {
	f.attended[studentID]++
	return nil
}

type fakeUserStore struct{}

func (fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	return &models.User{
		ID:        id,
		Email:     fmt.Sprintf("user%d@example.com", id),
		FirstName: "Test",
		LastName:  fmt.Sprintf("User%d", id),
	}, nil
}

type sentMail struct {
	toEmail     string
	studentName string
	title       string
}

// fakeMailer records booking notices instead of sending them
type fakeMailer struct {
	bookings []sentMail
}

func (f *fakeMailer) SendMentorDecisionEmail(string, string, bool) error { return nil }

func (f *fakeMailer) SendBookingEmail(toEmail, _, studentName, title, _ string) error {
	f.bookings = append(f.bookings, sentMail{toEmail: toEmail, studentName: studentName, title: title})
	return nil
}

// passTxRunner hands fn a nil transaction; the fakes ignore it
func passTxRunner(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

func approvedMentor(id int64) *models.Mentor {
	return &models.Mentor{ID: id, UserID: id + 100, VerificationStatus: models.VerificationApproved}
}

type sessionFixture struct {
	service  *SessionService
	sessions *fakeSessionStore
	mentors  *fakeMentorStore
	students *fakeStudentStore
	mailer   *fakeMailer
	now      time.Time
}

func newSessionFixture(t *testing.T, mentors ...*models.Mentor) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		sessions: newFakeSessionStore(),
		mentors:  newFakeMentorStore(mentors...),
		students: newFakeStudentStore(),
		mailer:   &fakeMailer{},
		now:      time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	f.service = NewSessionService(f.sessions, f.mentors, f.students, fakeUserStore{}, passTxRunner, f.mailer, "http://localhost:8080", zerolog.Nop())
	f.service.now = func() time.Time { return f.now }
	return f
}

func (f *sessionFixture) book(t *testing.T, studentID int64, req dto.BookSessionRequest) *models.Session {
	t.Helper()
	session, err := f.service.Book(context.Background(), studentID, req)
	if err != nil {
		t.Fatalf("Book() error = %v", err)
	}
	return session
}

func videoBooking(mentorID int64, at time.Time) dto.BookSessionRequest {
	return dto.BookSessionRequest{
		MentorID:        mentorID,
		Title:           "Intro call",
		ScheduledAt:     at,
		DurationMinutes: 60,
		SessionType:     string(models.SessionTypeVideo),
	}
}

func TestBookRequiresApprovedMentor(t *testing.T) {
	pending := &models.Mentor{ID: 1, VerificationStatus: models.VerificationPending}
	f := newSessionFixture(t, pending)

	_, err := f.service.Book(context.Background(), 7, videoBooking(1, f.now.Add(24*time.Hour)))
	if !errors.Is(err, apperrors.ErrMentorNotApproved) {
		t.Fatalf("Book() error = %v, want ErrMentorNotApproved", err)
	}
}

func TestBookRejectsTakenSlot(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1), approvedMentor(2))
	slot := f.now.Add(24 * time.Hour)

	f.book(t, 7, videoBooking(1, slot))

	// Even with a different mentor the student's slot is taken
	_, err := f.service.Book(context.Background(), 7, videoBooking(2, slot))
	if !errors.Is(err, apperrors.ErrBookingConflict) {
		t.Fatalf("Book() error = %v, want ErrBookingConflict", err)
	}

	// Another student is free to book the same instant
	if _, err := f.service.Book(context.Background(), 8, videoBooking(1, slot)); err != nil {
		t.Fatalf("Book() by another student error = %v", err)
	}

	// A different start instant is a different slot
	if _, err := f.service.Book(context.Background(), 7, videoBooking(1, slot.Add(time.Hour))); err != nil {
		t.Fatalf("Book() at a free slot error = %v", err)
	}
}

func TestBookVideoSessionGetsMeetingLink(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))

	session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))

	if session.Status != models.SessionScheduled {
		t.Errorf("Status = %s, want SCHEDULED", session.Status)
	}
	if session.MeetingLink == nil {
		t.Fatal("MeetingLink = nil, want a link for a VIDEO session")
	}
	want := "http://localhost:8080/video/session-1"
	if *session.MeetingLink != want {
		t.Errorf("MeetingLink = %q, want %q", *session.MeetingLink, want)
	}
}

func TestBookNotifiesMentorByEmail(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))

	f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))

	if len(f.mailer.bookings) != 1 {
		t.Fatalf("booking emails sent = %d, want 1", len(f.mailer.bookings))
	}
	notice := f.mailer.bookings[0]
	if notice.toEmail != "user101@example.com" {
		t.Errorf("toEmail = %q, want the mentor's address", notice.toEmail)
	}
	if notice.studentName != "Test User207" {
		t.Errorf("studentName = %q, want the booking student's name", notice.studentName)
	}
	if notice.title != "Intro call" {
		t.Errorf("title = %q, want the session title", notice.title)
	}

	// A rejected booking sends nothing
	if _, err := f.service.Book(context.Background(), 7, videoBooking(1, f.now.Add(24*time.Hour))); err == nil {
		t.Fatal("Book() on a taken slot succeeded, want error")
	}
	if len(f.mailer.bookings) != 1 {
		t.Errorf("booking emails sent = %d, want still 1", len(f.mailer.bookings))
	}
}

func TestGetDeniesOutsiders(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))

	cases := []struct {
		name    string
		actor   Actor
		wantErr error
	}{
		{"owning student", Actor{Role: models.RoleStudent, StudentID: 7}, nil},
		{"owning mentor", Actor{Role: models.RoleMentor, MentorID: 1}, nil},
		{"admin", Actor{Role: models.RoleAdmin}, nil},
		{"other student", Actor{Role: models.RoleStudent, StudentID: 8}, apperrors.ErrPermissionDenied},
		{"other mentor", Actor{Role: models.RoleMentor, MentorID: 2}, apperrors.ErrPermissionDenied},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.service.Get(context.Background(), session.ID, tc.actor)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Get() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	actor := Actor{Role: models.RoleMentor, MentorID: 1}

	cases := []struct {
		name   string
		from   models.SessionStatus
		target models.SessionStatus
		ok     bool
	}{
		{"scheduled to confirmed", models.SessionScheduled, models.SessionConfirmed, true},
		{"scheduled to in progress", models.SessionScheduled, models.SessionInProgress, true},
		{"scheduled to no show", models.SessionScheduled, models.SessionNoShow, true},
		{"scheduled to completed", models.SessionScheduled, models.SessionCompleted, false},
		{"confirmed to completed", models.SessionConfirmed, models.SessionCompleted, true},
		{"confirmed cannot repeat", models.SessionConfirmed, models.SessionConfirmed, false},
		{"completed is terminal", models.SessionCompleted, models.SessionInProgress, false},
		{"cancelled is terminal", models.SessionCancelled, models.SessionConfirmed, false},
		{"no show is terminal", models.SessionNoShow, models.SessionCompleted, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newSessionFixture(t, approvedMentor(1))
			session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))
			f.sessions.sessions[session.ID].Status = tc.from

			_, err := f.service.UpdateStatus(context.Background(), session.ID, actor, tc.target)
			if tc.ok && err != nil {
				t.Fatalf("UpdateStatus() error = %v", err)
			}
			if !tc.ok && !errors.Is(err, apperrors.ErrInvalidTransition) {
				t.Fatalf("UpdateStatus() error = %v, want ErrInvalidTransition", err)
			}
		})
	}
}

func TestUpdateStatusIsMentorDriven(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))
	f.sessions.sessions[session.ID].Status = models.SessionConfirmed

	// The owning student cannot drive the transition, and no totals move
	student := Actor{Role: models.RoleStudent, StudentID: 7}
	_, err := f.service.UpdateStatus(context.Background(), session.ID, student, models.SessionCompleted)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("UpdateStatus() by student error = %v, want ErrPermissionDenied", err)
	}
	if got := f.mentors.totalMinutes[1]; got != 0 {
		t.Errorf("mentor total minutes = %d, want 0", got)
	}

	admin := Actor{Role: models.RoleAdmin}
	if _, err := f.service.UpdateStatus(context.Background(), session.ID, admin, models.SessionCompleted); err != nil {
		t.Fatalf("UpdateStatus() by admin error = %v", err)
	}
}

func TestCancelIsStudentDriven(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))

	mentor := Actor{Role: models.RoleMentor, MentorID: 1}
	_, err := f.service.Cancel(context.Background(), session.ID, mentor, "cannot make it")
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("Cancel() by mentor error = %v, want ErrPermissionDenied", err)
	}

	student := Actor{Role: models.RoleStudent, StudentID: 7}
	if _, err := f.service.Cancel(context.Background(), session.ID, student, "conflict came up"); err != nil {
		t.Fatalf("Cancel() by student error = %v", err)
	}
}

func TestCompletionFoldsIntoTotals(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	scheduledAt := f.now.Add(-90 * time.Minute)
	session := f.book(t, 7, videoBooking(1, scheduledAt))
	actor := Actor{Role: models.RoleMentor, MentorID: 1}

	f.sessions.sessions[session.ID].Status = models.SessionConfirmed

	// Completed straight from CONFIRMED: the duration counts from the
	// scheduled start
	updated, err := f.service.UpdateStatus(context.Background(), session.ID, actor, models.SessionCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}

	if updated.ActualStartTime == nil || !updated.ActualStartTime.Equal(scheduledAt) {
		t.Errorf("ActualStartTime = %v, want scheduled start %v", updated.ActualStartTime, scheduledAt)
	}
	if updated.ActualDuration == nil || *updated.ActualDuration != 90 {
		t.Errorf("ActualDuration = %v, want 90", updated.ActualDuration)
	}
	if got := f.mentors.totalMinutes[1]; got != 90 {
		t.Errorf("mentor total minutes = %d, want 90", got)
	}
	if got := f.students.attended[7]; got != 1 {
		t.Errorf("student sessions attended = %d, want 1", got)
	}
}

func TestCompletionClampsNegativeDuration(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	// Scheduled in the future; completing now would yield a negative duration
	session := f.book(t, 7, videoBooking(1, f.now.Add(2*time.Hour)))
	actor := Actor{Role: models.RoleMentor, MentorID: 1}

	f.sessions.sessions[session.ID].Status = models.SessionConfirmed

	updated, err := f.service.UpdateStatus(context.Background(), session.ID, actor, models.SessionCompleted)
	if err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if updated.ActualDuration == nil || *updated.ActualDuration != 0 {
		t.Errorf("ActualDuration = %v, want 0", updated.ActualDuration)
	}
}

func TestCancelSemantics(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(24*time.Hour)))
	actor := Actor{Role: models.RoleStudent, StudentID: 7}

	cancelled, err := f.service.Cancel(context.Background(), session.ID, actor, "conflict came up")
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if cancelled.Status != models.SessionCancelled {
		t.Errorf("Status = %s, want CANCELLED", cancelled.Status)
	}
	if cancelled.CancelledBy == nil || *cancelled.CancelledBy != models.RoleStudent {
		t.Errorf("CancelledBy = %v, want STUDENT", cancelled.CancelledBy)
	}

	// Cancelling again reports the dedicated sentinel
	_, err = f.service.Cancel(context.Background(), session.ID, actor, "again")
	if !errors.Is(err, apperrors.ErrSessionAlreadyCancelled) {
		t.Fatalf("Cancel() error = %v, want ErrSessionAlreadyCancelled", err)
	}

	// Other terminal states cannot be cancelled either
	f.sessions.sessions[session.ID].Status = models.SessionCompleted
	_, err = f.service.Cancel(context.Background(), session.ID, actor, "too late")
	if !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("Cancel() on COMPLETED error = %v, want ErrInvalidTransition", err)
	}
}

func TestStudentFeedbackAppendsReviewOnce(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(-time.Hour)))
	req := dto.SessionFeedbackRequest{Rating: 5, Comment: "great session"}

	// Feedback requires a completed session
	_, err := f.service.SubmitStudentFeedback(context.Background(), session.ID, 7, req)
	if !errors.Is(err, apperrors.ErrSessionNotCompleted) {
		t.Fatalf("SubmitStudentFeedback() error = %v, want ErrSessionNotCompleted", err)
	}

	f.sessions.sessions[session.ID].Status = models.SessionCompleted

	// Someone else's session is off limits
	_, err = f.service.SubmitStudentFeedback(context.Background(), session.ID, 8, req)
	if !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Fatalf("SubmitStudentFeedback() error = %v, want ErrPermissionDenied", err)
	}

	updated, err := f.service.SubmitStudentFeedback(context.Background(), session.ID, 7, req)
	if err != nil {
		t.Fatalf("SubmitStudentFeedback() error = %v", err)
	}
	if updated.StudentFeedback == nil || updated.StudentFeedback.Rating != 5 {
		t.Fatalf("StudentFeedback = %+v, want rating 5", updated.StudentFeedback)
	}

	if len(f.mentors.reviews) != 1 {
		t.Fatalf("reviews = %d, want 1", len(f.mentors.reviews))
	}
	review := f.mentors.reviews[0]
	if review.MentorID != 1 || review.StudentID != 7 || review.SessionID != session.ID || review.Rating != 5 {
		t.Errorf("review = %+v, want mentor 1 student 7 session %d rating 5", review, session.ID)
	}

	// Second submission is rejected and appends nothing
	_, err = f.service.SubmitStudentFeedback(context.Background(), session.ID, 7, req)
	if !errors.Is(err, apperrors.ErrFeedbackAlreadyGiven) {
		t.Fatalf("second SubmitStudentFeedback() error = %v, want ErrFeedbackAlreadyGiven", err)
	}
	if len(f.mentors.reviews) != 1 {
		t.Errorf("reviews = %d after rejected resubmit, want 1", len(f.mentors.reviews))
	}
}

func TestMentorFeedbackNeverTouchesRatings(t *testing.T) {
	f := newSessionFixture(t, approvedMentor(1))
	session := f.book(t, 7, videoBooking(1, f.now.Add(-time.Hour)))
	f.sessions.sessions[session.ID].Status = models.SessionCompleted

	req := dto.SessionFeedbackRequest{Rating: 4, Comment: "engaged student"}
	updated, err := f.service.SubmitMentorFeedback(context.Background(), session.ID, 1, req)
	if err != nil {
		t.Fatalf("SubmitMentorFeedback() error = %v", err)
	}
	if updated.MentorFeedback == nil || updated.MentorFeedback.Rating != 4 {
		t.Fatalf("MentorFeedback = %+v, want rating 4", updated.MentorFeedback)
	}
	if len(f.mentors.reviews) != 0 {
		t.Errorf("reviews = %d, mentor feedback must not create reviews", len(f.mentors.reviews))
	}

	_, err = f.service.SubmitMentorFeedback(context.Background(), session.ID, 1, req)
	if !errors.Is(err, apperrors.ErrFeedbackAlreadyGiven) {
		t.Fatalf("second SubmitMentorFeedback() error = %v, want ErrFeedbackAlreadyGiven", err)
	}
}
