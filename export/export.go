package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tournament/models"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Teams"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	registeredAtLayout = "02/01/2006, 3:04:05 pm"
)

var header = []interface{}{
	"ID", "Game", "Team Name", "Leader Name", "Leader WhatsApp", "Leader Player ID",
	"Player 2 Name", "Player 2 ID", "Player 3 Name", "Player 3 ID",
	"Player 4 Name", "Player 4 ID", "YouTube Vote", "Transaction ID",
	"Status", "Admin Notes", "Registered At",
}

// File is a generated workbook.
type File struct {
	// Name is the suggested download file name.
	Name string
	// Path is where the workbook was written on disk.
	Path string
	Data []byte
}

type Exporter struct {
	dir     string
	loc     *time.Location
	catalog models.Catalog
	now     func() time.Time
}

func NewExporter(dir string, loc *time.Location, catalog models.Catalog) *Exporter {
	if loc == nil {
		loc = time.UTC
	}
	return &Exporter{dir: dir, loc: loc, catalog: catalog, now: time.Now}
}

// Export renders teams into a workbook, keeps a copy under the export
// directory and returns it. An empty game labels the file "all".
func (e *Exporter) Export(teams []models.Team, game models.GameType) (*File, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(SheetName, "A1", last, bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i := range teams {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := e.row(&teams[i])
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	label := "all"
	if game != "" {
		label = string(game)
	}
	now := e.now().In(e.loc)

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(e.dir, fmt.Sprintf("teams-%s-%s.xlsx", label, now.Format("20060102-150405")))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return nil, fmt.Errorf("failed to save export: %w", err)
	}

	return &File{
		Name: fmt.Sprintf("%s-teams-%s.xlsx", label, now.Format(time.DateOnly)),
		Path: path,
		Data: buf.Bytes(),
	}, nil
}

func (e *Exporter) row(t *models.Team) []interface{} {
	return []interface{}{
		t.ID,
		e.catalog.Name(t.GameType),
		t.TeamName,
		t.LeaderName,
		t.LeaderWhatsapp,
		t.LeaderPlayerID,
		t.Player2Name,
		t.Player2PlayerID,
		t.Player3Name,
		t.Player3PlayerID,
		t.Player4Name,
		t.Player4PlayerID,
		t.YoutubeVote,
		t.TransactionID,
		string(t.Status),
		t.Notes(),
		t.CreatedAt.In(e.loc).Format(registeredAtLayout),
	}
}
