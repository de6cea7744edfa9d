package service

import (
	"context"

	"tournament/export"
	"tournament/models"
)

type TeamRepository interface {
	ListAll(ctx context.Context) ([]models.Team, error)
	ListByGameType(ctx context.Context, game models.GameType) ([]models.Team, error)
	GetByID(ctx context.Context, id string) (*models.Team, error)
	CreateWithinCapacity(ctx context.Context, team *models.Team, maxTeams int) error
	CountAll(ctx context.Context) (int64, error)
	CountByGameType(ctx context.Context, game models.GameType) (int64, error)
	CountByStatus(ctx context.Context, status models.TeamStatus) (int64, error)
	UpdateStatus(ctx context.Context, id string, status models.TeamStatus) (*models.Team, error)
	UpdateNotes(ctx context.Context, id string, notes *string) (*models.Team, error)
	BulkUpdateStatus(ctx context.Context, ids []string, status models.TeamStatus) ([]models.Team, error)
	Search(ctx context.Context, query string, status models.TeamStatus) ([]models.Team, error)
}

type AdminRepository interface {
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	GetByID(ctx context.Context, id uint) (*models.Admin, error)
	Create(ctx context.Context, username, passwordHash string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// Notifier announces changes to realtime subscribers. Implementations must
// not block the caller.
type Notifier interface {
	TeamRegistered(game models.GameType)
	StatusChanged(teamID string)
}

type Exporter interface {
	Export(teams []models.Team, game models.GameType) (*export.File, error)
}
