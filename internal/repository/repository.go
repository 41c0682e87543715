package repository

import (
	"database/sql"

	"slideforge/internal/models"
)

// Users is the credential store: one row per account, username and email
// unique at the schema level.
type Users interface {
	Create(username, email, passwordHash string) (int, error)
	GetByEmail(email string) (*models.User, error)
	GetByID(id int) (*models.User, error)
}

type Repository struct {
	Users Users
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users: NewUserRepository(db),
	}
}
