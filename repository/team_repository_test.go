package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"tournament/database/dbtest"
	"tournament/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTeamRepo(t *testing.T) *TeamRepository {
	t.Helper()
	repo := NewTeamRepository(dbtest.New(t).Gorm)
	clock := time.Date(2025, time.October, 1, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return repo
}

func sampleTeam(game models.GameType, name string) *models.Team {
	return &models.Team{
		GameType:          game,
		TeamName:          name,
		LeaderName:        name + " Leader",
		LeaderWhatsapp:    "9876543210",
		LeaderPlayerID:    "ID001",
		Player2Name:       "Second",
		Player2PlayerID:   "ID002",
		Player3Name:       "Third",
		Player3PlayerID:   "ID003",
		Player4Name:       "Fourth",
		Player4PlayerID:   "ID004",
		YoutubeVote:       "no",
		TransactionID:     "TXN-" + name,
		PaymentScreenshot: "data:image/png;base64,AAAA",
		AgreedToTerms:     1,
	}
}

func TestCreateSetsDefaults(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	team := sampleTeam(models.GamePUBG, "Alpha Squad")
	team.Status = models.StatusApproved
	notes := "sneaky"
	team.AdminNotes = &notes
	require.NoError(t, repo.Create(ctx, team))

	assert.NotEmpty(t, team.ID)
	assert.Equal(t, models.StatusPending, team.Status)
	assert.Nil(t, team.AdminNotes)
	assert.True(t, team.CreatedAt.Equal(team.UpdatedAt))

	stored, err := repo.GetByID(ctx, team.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha Squad", stored.TeamName)
	assert.Equal(t, models.StatusPending, stored.Status)
	assert.Nil(t, stored.AdminNotes)
	assert.True(t, stored.CreatedAt.Equal(stored.UpdatedAt))
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTeamRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, models.ErrTeamNotFound)
}

func TestListAllOrderedByCreation(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	empty, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, name := range []string{"First", "Second", "Third"} {
		require.NoError(t, repo.Create(ctx, sampleTeam(models.GamePUBG, name)))
	}

	teams, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, teams, 3)
	assert.Equal(t, "First", teams[0].TeamName)
	assert.Equal(t, "Second", teams[1].TeamName)
	assert.Equal(t, "Third", teams[2].TeamName)
}

func TestCounts(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, sampleTeam(models.GamePUBG, fmt.Sprintf("PUBG %d", i))))
	}
	ff := sampleTeam(models.GameFreeFire, "Fire One")
	require.NoError(t, repo.Create(ctx, ff))
	_, err := repo.UpdateStatus(ctx, ff.ID, models.StatusApproved)
	require.NoError(t, err)

	total, err := repo.CountAll(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)

	pubg, err := repo.CountByGameType(ctx, models.GamePUBG)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pubg)

	pending, err := repo.CountByStatus(ctx, models.StatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 3, pending)

	all, err := repo.CountByStatus(ctx, "")
	require.NoError(t, err)
	assert.EqualValues(t, 4, all)

	byGame, err := repo.ListByGameType(ctx, models.GameFreeFire)
	require.NoError(t, err)
	require.Len(t, byGame, 1)
	assert.Equal(t, ff.ID, byGame[0].ID)
}

func TestCreateWithinCapacity(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateWithinCapacity(ctx, sampleTeam(models.GameFreeFire, "One"), 2))
	require.NoError(t, repo.CreateWithinCapacity(ctx, sampleTeam(models.GameFreeFire, "Two"), 2))

	err := repo.CreateWithinCapacity(ctx, sampleTeam(models.GameFreeFire, "Three"), 2)
	assert.ErrorIs(t, err, models.ErrCapacityReached)

	require.NoError(t, repo.CreateWithinCapacity(ctx, sampleTeam(models.GamePUBG, "Other Game"), 2))

	count, err := repo.CountByGameType(ctx, models.GameFreeFire)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestUpdateStatusOverwrites(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	team := sampleTeam(models.GamePUBG, "Switchers")
	require.NoError(t, repo.Create(ctx, team))

	approved, err := repo.UpdateStatus(ctx, team.ID, models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	assert.True(t, approved.UpdatedAt.After(approved.CreatedAt))

	rejected, err := repo.UpdateStatus(ctx, team.ID, models.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)
	assert.True(t, rejected.UpdatedAt.After(approved.UpdatedAt))
	assert.True(t, rejected.CreatedAt.Equal(team.CreatedAt))

	_, err = repo.UpdateStatus(ctx, "missing", models.StatusApproved)
	assert.ErrorIs(t, err, models.ErrTeamNotFound)
}

func TestUpdateNotes(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	team := sampleTeam(models.GamePUBG, "Noted")
	require.NoError(t, repo.Create(ctx, team))

	notes := "Payment verified against UPI statement"
	updated, err := repo.UpdateNotes(ctx, team.ID, &notes)
	require.NoError(t, err)
	require.NotNil(t, updated.AdminNotes)
	assert.Equal(t, notes, *updated.AdminNotes)
	assert.Equal(t, models.StatusPending, updated.Status)

	cleared, err := repo.UpdateNotes(ctx, team.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.AdminNotes)

	_, err = repo.UpdateNotes(ctx, "missing", &notes)
	assert.ErrorIs(t, err, models.ErrTeamNotFound)
}

func TestBulkUpdateStatusSkipsUnknownIDs(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	a := sampleTeam(models.GamePUBG, "Team A")
	b := sampleTeam(models.GameFreeFire, "Team B")
	c := sampleTeam(models.GamePUBG, "Team C")
	for _, team := range []*models.Team{a, b, c} {
		require.NoError(t, repo.Create(ctx, team))
	}

	updated, err := repo.BulkUpdateStatus(ctx, []string{a.ID, b.ID, "unknown-id"}, models.StatusApproved)
	require.NoError(t, err)
	require.Len(t, updated, 2)
	assert.Equal(t, a.ID, updated[0].ID)
	assert.Equal(t, b.ID, updated[1].ID)
	for _, team := range updated {
		assert.Equal(t, models.StatusApproved, team.Status)
	}

	untouched, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, untouched.Status)

	none, err := repo.BulkUpdateStatus(ctx, nil, models.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearch(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	alpha := sampleTeam(models.GamePUBG, "Alpha Squad")
	alpha.TransactionID = "UPI998877"
	beta := sampleTeam(models.GameFreeFire, "Beta_Force")
	beta.LeaderWhatsapp = "9123456789"
	gamma := sampleTeam(models.GamePUBG, "Gamma 100%")
	for _, team := range []*models.Team{alpha, beta, gamma} {
		require.NoError(t, repo.Create(ctx, team))
	}
	_, err := repo.UpdateStatus(ctx, beta.ID, models.StatusApproved)
	require.NoError(t, err)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	everything, err := repo.Search(ctx, "", "")
	require.NoError(t, err)
	assert.Equal(t, ids(all), ids(everything))

	for _, q := range []string{"alpha", "Squad", "ALPHA SQ", "9988"} {
		found, err := repo.Search(ctx, q, "")
		require.NoError(t, err)
		assert.Equal(t, []string{alpha.ID}, ids(found), q)
	}

	byPhone, err := repo.Search(ctx, "912345", "")
	require.NoError(t, err)
	assert.Equal(t, []string{beta.ID}, ids(byPhone))

	byLeader, err := repo.Search(ctx, "gamma 100% leader", "")
	require.NoError(t, err)
	assert.Equal(t, []string{gamma.ID}, ids(byLeader))

	// Wildcards in the query are literal.
	underscore, err := repo.Search(ctx, "_", "")
	require.NoError(t, err)
	assert.Equal(t, []string{beta.ID}, ids(underscore))
	percent, err := repo.Search(ctx, "%", "")
	require.NoError(t, err)
	assert.Equal(t, []string{gamma.ID}, ids(percent))

	approved, err := repo.Search(ctx, "", models.StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, []string{beta.ID}, ids(approved))

	none, err := repo.Search(ctx, "alpha", models.StatusApproved)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchFoldsNonASCIICase(t *testing.T) {
	repo := newTeamRepo(t)
	ctx := context.Background()

	umlaut := sampleTeam(models.GamePUBG, "ÄRGER Squad")
	other := sampleTeam(models.GameFreeFire, "Plain Squad")
	for _, team := range []*models.Team{umlaut, other} {
		require.NoError(t, repo.Create(ctx, team))
	}

	for _, q := range []string{"ärger", "ÄRGER", "Ärger squad"} {
		found, err := repo.Search(ctx, q, "")
		require.NoError(t, err)
		assert.Equal(t, []string{umlaut.ID}, ids(found), q)
	}

	found, err := repo.Search(ctx, "squad", models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, []string{umlaut.ID, other.ID}, ids(found))
}

func ids(teams []models.Team) []string {
	out := make([]string, 0, len(teams))
	for _, team := range teams {
		out = append(out, team.ID)
	}
	return out
}
