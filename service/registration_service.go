package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tournament/export"
	"tournament/metrics"
	"tournament/models"
	"tournament/validation"

	"github.com/charmbracelet/log"
)

type RegistrationService struct {
	teams     TeamRepository
	notifier  Notifier
	validator *validation.Validator
	catalog   models.Catalog
	exporter  Exporter
	logger    *log.Logger
}

func NewRegistrationService(
	teams TeamRepository,
	notifier Notifier,
	validator *validation.Validator,
	catalog models.Catalog,
	exporter Exporter,
	logger *log.Logger,
) *RegistrationService {
	return &RegistrationService{
		teams:     teams,
		notifier:  notifier,
		validator: validator,
		catalog:   catalog,
		exporter:  exporter,
		logger:    logger.WithPrefix("registration"),
	}
}

// Register validates the payload and stores a pending team if the game still
// has a free slot. The slot check and the insert are atomic.
func (s *RegistrationService) Register(ctx context.Context, req *validation.Registration) (*models.Team, error) {
	team, err := s.validator.Registration(req)
	if err != nil {
		metrics.RejectedRegistrations.WithLabelValues("validation").Inc()
		return nil, err
	}

	maxTeams := s.catalog.MaxTeams(team.GameType)
	if err := s.teams.CreateWithinCapacity(ctx, &team, maxTeams); err != nil {
		if errors.Is(err, models.ErrCapacityReached) {
			metrics.RejectedRegistrations.WithLabelValues("capacity").Inc()
			s.logger.Info("registration refused, tournament full", "game", team.GameType, "max", maxTeams)
			return nil, &models.CapacityError{
				GameType: team.GameType,
				GameName: s.catalog.Name(team.GameType),
				MaxTeams: maxTeams,
			}
		}
		return nil, fmt.Errorf("failed to register team: %w", err)
	}

	metrics.Registrations.WithLabelValues(string(team.GameType)).Inc()
	s.logger.Info("team registered", "id", team.ID, "game", team.GameType, "team", team.TeamName)
	s.notifier.TeamRegistered(team.GameType)
	return &team, nil
}

func (s *RegistrationService) ListTeams(ctx context.Context) ([]models.Team, error) {
	return s.teams.ListAll(ctx)
}

func (s *RegistrationService) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	return s.teams.GetByID(ctx, id)
}

func (s *RegistrationService) CountTeams(ctx context.Context) (int64, error) {
	return s.teams.CountAll(ctx)
}

func (s *RegistrationService) CountByGameType(ctx context.Context, game string) (int64, error) {
	g, err := parseGame(game)
	if err != nil {
		return 0, err
	}
	return s.teams.CountByGameType(ctx, g)
}

// UpdateStatus sets any of the three statuses regardless of the current one.
func (s *RegistrationService) UpdateStatus(ctx context.Context, id string, status string) (*models.Team, error) {
	st, err := parseStatus(status)
	if err != nil {
		return nil, err
	}

	team, err := s.teams.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, err
	}

	metrics.StatusChanges.WithLabelValues(string(st)).Inc()
	s.logger.Info("team status updated", "id", id, "status", st)
	s.notifier.StatusChanged(team.ID)
	return team, nil
}

// UpdateNotes replaces the admin notes. A nil or blank value clears them.
func (s *RegistrationService) UpdateNotes(ctx context.Context, id string, notes *string) (*models.Team, error) {
	if err := s.validator.Struct(&validation.NotesUpdate{Notes: notes}); err != nil {
		return nil, err
	}
	if notes != nil && strings.TrimSpace(*notes) == "" {
		notes = nil
	}
	return s.teams.UpdateNotes(ctx, id, notes)
}

// BulkUpdateStatus applies status to every id at once. Unknown ids are
// skipped and only the updated teams are returned.
func (s *RegistrationService) BulkUpdateStatus(ctx context.Context, ids []string, status string) ([]models.Team, error) {
	if err := s.validator.Struct(&validation.BulkStatusUpdate{IDs: ids, Status: status}); err != nil {
		return nil, err
	}
	st := models.TeamStatus(status)

	teams, err := s.teams.BulkUpdateStatus(ctx, ids, st)
	if err != nil {
		return nil, err
	}

	metrics.StatusChanges.WithLabelValues(string(st)).Add(float64(len(teams)))
	s.logger.Info("bulk status update", "status", st, "requested", len(ids), "updated", len(teams))
	for _, team := range teams {
		s.notifier.StatusChanged(team.ID)
	}
	return teams, nil
}

func (s *RegistrationService) BulkApprove(ctx context.Context, ids []string) ([]models.Team, error) {
	return s.BulkUpdateStatus(ctx, ids, string(models.StatusApproved))
}

func (s *RegistrationService) BulkReject(ctx context.Context, ids []string) ([]models.Team, error) {
	return s.BulkUpdateStatus(ctx, ids, string(models.StatusRejected))
}

// Search filters by free text and, when given, status. "all" is the same as
// no status.
func (s *RegistrationService) Search(ctx context.Context, query, status string) ([]models.Team, error) {
	var st models.TeamStatus
	if status != "" && status != "all" {
		var err error
		if st, err = parseStatus(status); err != nil {
			return nil, err
		}
	}
	return s.teams.Search(ctx, query, st)
}

func (s *RegistrationService) Stats(ctx context.Context) (*models.Stats, error) {
	var stats models.Stats
	var err error

	if stats.Total, err = s.teams.CountAll(ctx); err != nil {
		return nil, err
	}
	if stats.PubgTeams, err = s.teams.CountByGameType(ctx, models.GamePUBG); err != nil {
		return nil, err
	}
	if stats.FreeFireTeams, err = s.teams.CountByGameType(ctx, models.GameFreeFire); err != nil {
		return nil, err
	}
	if stats.Pending, err = s.teams.CountByStatus(ctx, models.StatusPending); err != nil {
		return nil, err
	}
	if stats.Approved, err = s.teams.CountByStatus(ctx, models.StatusApproved); err != nil {
		return nil, err
	}
	if stats.Rejected, err = s.teams.CountByStatus(ctx, models.StatusRejected); err != nil {
		return nil, err
	}

	stats.PubgAvailable = models.Available(s.catalog.MaxTeams(models.GamePUBG), stats.PubgTeams)
	stats.FreeFireAvailable = models.Available(s.catalog.MaxTeams(models.GameFreeFire), stats.FreeFireTeams)
	return &stats, nil
}

// Tournaments lists every game with its live slot counts.
func (s *RegistrationService) Tournaments(ctx context.Context) ([]models.Slots, error) {
	slots := make([]models.Slots, 0, len(models.GameTypes))
	for _, g := range models.GameTypes {
		game, ok := s.catalog[g]
		if !ok {
			continue
		}
		registered, err := s.teams.CountByGameType(ctx, g)
		if err != nil {
			return nil, err
		}
		slots = append(slots, models.Slots{
			Game:       game,
			Registered: registered,
			Available:  models.Available(game.MaxTeams, registered),
		})
	}
	return slots, nil
}

// Export renders the teams of one game, or all teams when game is empty or
// "all", into a spreadsheet.
func (s *RegistrationService) Export(ctx context.Context, game string) (*export.File, error) {
	var (
		g     models.GameType
		teams []models.Team
		err   error
	)
	if game == "" || game == "all" {
		teams, err = s.teams.ListAll(ctx)
	} else {
		if g, err = parseGame(game); err != nil {
			return nil, err
		}
		teams, err = s.teams.ListByGameType(ctx, g)
	}
	if err != nil {
		return nil, err
	}

	file, err := s.exporter.Export(teams, g)
	if err != nil {
		return nil, fmt.Errorf("failed to export teams: %w", err)
	}

	label := string(g)
	if label == "" {
		label = "all"
	}
	metrics.Exports.WithLabelValues(label).Inc()
	s.logger.Info("teams exported", "game", label, "rows", len(teams), "path", file.Path)
	return file, nil
}

func parseGame(game string) (models.GameType, error) {
	g := models.GameType(game)
	if !g.Valid() {
		return "", models.NewValidationError("gameType", "Invalid game type")
	}
	return g, nil
}

func parseStatus(status string) (models.TeamStatus, error) {
	st := models.TeamStatus(status)
	if !st.Valid() {
		return "", models.NewValidationError("status", "Status must be one of pending, approved or rejected")
	}
	return st, nil
}
