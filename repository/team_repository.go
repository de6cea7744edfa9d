package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tournament/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const teamOrder = "created_at ASC, id ASC"

type TeamRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTeamRepository(db *gorm.DB) *TeamRepository {
	return &TeamRepository{db: db, now: time.Now}
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]models.Team, error) {
	teams := []models.Team{}
	if err := r.db.WithContext(ctx).Order(teamOrder).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) ListByGameType(ctx context.Context, game models.GameType) ([]models.Team, error) {
	teams := []models.Team{}
	err := r.db.WithContext(ctx).Where("game_type = ?", game).Order(teamOrder).Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s teams: %w", game, err)
	}
	return teams, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	var team models.Team
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &team, nil
}

// Create inserts a new pending team. It does not look at capacity; callers
// that need the per-game cap use CreateWithinCapacity.
func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	r.prepare(team)
	if err := r.db.WithContext(ctx).Create(team).Error; err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}
	return nil
}

// CreateWithinCapacity inserts team only if fewer than maxTeams teams of the
// same game exist. The count and the insert run in one transaction that is
// serialized per game type, so concurrent registrations cannot overbook.
// Returns models.ErrCapacityReached when the game is full.
func (r *TeamRepository) CreateWithinCapacity(ctx context.Context, team *models.Team, maxTeams int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockGame(tx, team.GameType); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.Team{}).Where("game_type = ?", team.GameType).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to count %s teams: %w", team.GameType, err)
		}
		if count >= int64(maxTeams) {
			return models.ErrCapacityReached
		}

		r.prepare(team)
		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}
		return nil
	})
}

// lockGame takes a transaction-scoped lock for one game type. On sqlite the
// single writer connection already serializes transactions.
func lockGame(tx *gorm.DB, game models.GameType) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	if err := tx.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", "teams:"+string(game)).Error; err != nil {
		return fmt.Errorf("failed to lock %s registrations: %w", game, err)
	}
	return nil
}

func (r *TeamRepository) prepare(team *models.Team) {
	now := r.now().UTC().Truncate(time.Microsecond)
	team.ID = uuid.NewString()
	team.Status = models.StatusPending
	team.AdminNotes = nil
	team.AgreedToTerms = 1
	team.CreatedAt = now
	team.UpdatedAt = now
}

func (r *TeamRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Team{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count teams: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) CountByGameType(ctx context.Context, game models.GameType) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Team{}).Where("game_type = ?", game).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count %s teams: %w", game, err)
	}
	return count, nil
}

// CountByStatus counts teams with the given status, or all teams when status
// is empty.
func (r *TeamRepository) CountByStatus(ctx context.Context, status models.TeamStatus) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Team{})
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count teams by status: %w", err)
	}
	return count, nil
}

func (r *TeamRepository) UpdateStatus(ctx context.Context, id string, status models.TeamStatus) (*models.Team, error) {
	return r.update(ctx, id, map[string]interface{}{"status": status})
}

// UpdateNotes replaces the admin notes; nil clears them.
func (r *TeamRepository) UpdateNotes(ctx context.Context, id string, notes *string) (*models.Team, error) {
	return r.update(ctx, id, map[string]interface{}{"admin_notes": notes})
}

func (r *TeamRepository) update(ctx context.Context, id string, fields map[string]interface{}) (*models.Team, error) {
	fields["updated_at"] = r.now().UTC().Truncate(time.Microsecond)

	var team models.Team
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Team{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return fmt.Errorf("failed to update team: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return models.ErrTeamNotFound
		}
		return tx.Where("id = ?", id).First(&team).Error
	})
	if err != nil {
		return nil, err
	}
	return &team, nil
}

// BulkUpdateStatus sets status on every listed team in one transaction.
// Unknown ids are skipped; the teams that were updated are returned.
func (r *TeamRepository) BulkUpdateStatus(ctx context.Context, ids []string, status models.TeamStatus) ([]models.Team, error) {
	teams := []models.Team{}
	if len(ids) == 0 {
		return teams, nil
	}

	now := r.now().UTC().Truncate(time.Microsecond)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Team{}).Where("id IN ?", ids).
			Updates(map[string]interface{}{"status": status, "updated_at": now}).Error
		if err != nil {
			return fmt.Errorf("failed to update teams: %w", err)
		}
		return tx.Where("id IN ?", ids).Order(teamOrder).Find(&teams).Error
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// Search matches query case-insensitively as a substring of the team name,
// leader name, leader whatsapp or transaction id, optionally restricted to
// one status. An empty query and status lists every team.
//
// sqlite only folds ASCII case in LOWER and LIKE, so there the text match runs
// in Go over the status-filtered rows. The tables hold at most one tournament's
// worth of teams.
func (r *TeamRepository) Search(ctx context.Context, query string, status models.TeamStatus) ([]models.Team, error) {
	q := r.db.WithContext(ctx).Model(&models.Team{})

	query = strings.TrimSpace(query)
	inSQL := query != "" && r.db.Dialector.Name() == "postgres"
	if inSQL {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		q = q.Where(
			`(LOWER(team_name) LIKE ? ESCAPE '\' OR LOWER(leader_name) LIKE ? ESCAPE '\'`+
				` OR LOWER(leader_whatsapp) LIKE ? ESCAPE '\' OR LOWER(transaction_id) LIKE ? ESCAPE '\')`,
			pattern, pattern, pattern, pattern,
		)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	teams := []models.Team{}
	if err := q.Order(teamOrder).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to search teams: %w", err)
	}
	if query == "" || inSQL {
		return teams, nil
	}

	needle := strings.ToLower(query)
	matched := teams[:0]
	for _, t := range teams {
		if matchesTeam(t, needle) {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func matchesTeam(t models.Team, needle string) bool {
	for _, field := range []string{t.TeamName, t.LeaderName, t.LeaderWhatsapp, t.TransactionID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
