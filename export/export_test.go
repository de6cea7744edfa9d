package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
	_ "time/tzdata"

	"tournament/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func testTeams() []models.Team {
	notes := "paid twice, refund one"
	return []models.Team{
		{
			ID: "id-1", GameType: models.GamePUBG, TeamName: "Alpha", LeaderName: "Arjun",
			LeaderWhatsapp: "9876543210", LeaderPlayerID: "L001",
			Player2Name: "Bala", Player2PlayerID: "P002",
			Player3Name: "Chetan", Player3PlayerID: "P003",
			Player4Name: "Dev", Player4PlayerID: "P004",
			YoutubeVote: "yes", TransactionID: "UPI12345",
			PaymentScreenshot: "data:image/png;base64,AAAA",
			Status:            models.StatusApproved, AdminNotes: &notes,
			CreatedAt: time.Date(2025, time.October, 20, 9, 30, 15, 0, time.UTC),
		},
		{
			ID: "id-2", GameType: models.GameFreeFire, TeamName: "Booyah", LeaderName: "Esha",
			LeaderWhatsapp: "9123456789", LeaderPlayerID: "L100",
			Player2Name: "Farah", Player2PlayerID: "P200",
			Player3Name: "Gopal", Player3PlayerID: "P300",
			Player4Name: "Hari", Player4PlayerID: "P400",
			YoutubeVote: "no", TransactionID: "UPI67890",
			Status:    models.StatusPending,
			CreatedAt: time.Date(2025, time.October, 20, 0, 5, 0, 0, time.UTC),
		},
	}
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)
	e := NewExporter(filepath.Join(t.TempDir(), "exports"), loc, models.DefaultCatalog())
	e.now = func() time.Time { return time.Date(2025, time.October, 21, 18, 45, 0, 0, time.UTC) }
	return e
}

func TestExportWorkbook(t *testing.T) {
	e := newTestExporter(t)

	file, err := e.Export(testTeams(), "")
	require.NoError(t, err)

	assert.Equal(t, "all-teams-2025-10-22.xlsx", file.Name)
	assert.Equal(t, "teams-all-20251022-001500.xlsx", filepath.Base(file.Path))

	onDisk, err := os.ReadFile(file.Path)
	require.NoError(t, err)
	assert.Equal(t, file.Data, onDisk)

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{SheetName}, wb.GetSheetList())

	rows, err := wb.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Len(t, rows[0], len(header))
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Registered At", rows[0][16])
	assert.NotContains(t, rows[0], "Payment Screenshot")

	assert.Equal(t, []string{
		"id-1", "PUBG Mobile", "Alpha", "Arjun", "9876543210", "L001",
		"Bala", "P002", "Chetan", "P003", "Dev", "P004",
		"yes", "UPI12345", "approved", "paid twice, refund one", "20/10/2025, 3:00:15 pm",
	}, rows[1])

	assert.Equal(t, "Free Fire", rows[2][1])
	assert.Equal(t, "pending", rows[2][14])
	assert.Equal(t, "", rows[2][15])
	assert.Equal(t, "20/10/2025, 5:35:00 am", rows[2][16])

	styleID, err := wb.GetCellStyle(SheetName, "C1")
	require.NoError(t, err)
	style, err := wb.GetStyle(styleID)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.True(t, style.Font.Bold)
}

func TestExportSingleGameAndEmpty(t *testing.T) {
	e := newTestExporter(t)

	file, err := e.Export([]models.Team{}, models.GameFreeFire)
	require.NoError(t, err)
	assert.Equal(t, "freefire-teams-2025-10-22.xlsx", file.Name)
	assert.Equal(t, "teams-freefire-20251022-001500.xlsx", filepath.Base(file.Path))

	wb, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
