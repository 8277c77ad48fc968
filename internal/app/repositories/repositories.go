package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	TokenRepository   *TokenRepository
	PersonRepository  *PersonRepository
	EventRepository   *EventRepository
	CheckinRepository *CheckinRepository
	CompanyRepository *CompanyRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		TokenRepository:   NewTokenRepository(db),
		PersonRepository:  NewPersonRepository(db),
		EventRepository:   NewEventRepository(db),
		CheckinRepository: NewCheckinRepository(db),
		CompanyRepository: NewCompanyRepository(db),
	}
}
