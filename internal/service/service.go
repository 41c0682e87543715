package service

import (
	"context"
	"time"

	"slideforge/internal/deck"
	"slideforge/internal/llm"
	"slideforge/internal/models"
	"slideforge/internal/repository"
)

// Authorization covers account management and session tokens.
type Authorization interface {
	Register(username, email, password string) (int, error)
	Authenticate(email, password string) (*models.User, error)
	IssueToken(userID int, remember bool) (string, error)
	ParseToken(accessToken string) (int, error)
	SessionTTL(remember bool) time.Duration
	UserByID(id int) (*models.User, error)
}

// Generator runs one text-to-deck pipeline pass and returns the produced
// file name.
type Generator interface {
	Generate(ctx context.Context, req models.GenerationRequest) (string, error)
}

// DeckRenderer is the slice of the deck package the generator needs;
// satisfied by *deck.Renderer.
type DeckRenderer interface {
	Render(slides []models.SlideRecord, templateChoice, title, presenter string, insertImage bool) (string, error)
}

// Root Service aggregates all sub-services.
type Service struct {
	Authorization
	Generator
}

func NewService(repos *repository.Repository, authCfg AuthConfig, completer llm.Completer, renderer *deck.Renderer) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, authCfg),
		Generator:     NewGeneratorService(completer, renderer),
	}
}
