package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository         *UserRepository
	TokenRepository        *TokenRepository
	StudentRepository      *StudentRepository
	MentorRepository       *MentorRepository
	SessionRepository      *SessionRepository
	ResourceRepository     *ResourceRepository
	ConversationRepository *ConversationRepository
	FileRepository         *FileRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:         NewUserRepository(db),
		TokenRepository:        NewTokenRepository(db),
		StudentRepository:      NewStudentRepository(db),
		MentorRepository:       NewMentorRepository(db),
		SessionRepository:      NewSessionRepository(db),
		ResourceRepository:     NewResourceRepository(db),
		ConversationRepository: NewConversationRepository(db),
		FileRepository:         NewFileRepository(db),
	}
}
