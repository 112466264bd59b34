// Package export renders sites and submissions as XLSX workbooks.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Spok95/geosites/internal/domain/sites"
	"github.com/Spok95/geosites/internal/domain/submissions"
	"github.com/Spok95/geosites/internal/domain/users"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FileName returns a timestamped download name such as sites_20250101_120000.xlsx.
func FileName(kind string, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, now.Format("20060102_150405"))
}

func Sites(w io.Writer, list []sites.Site) error {
	header := []interface{}{"id", "name", "description", "location", "status", "owner_id", "owner_email", "created_at", "updated_at"}
	rows := make([][]interface{}, 0, len(list))
	for _, s := range list {
		rows = append(rows, []interface{}{
			s.ID,
			s.Name,
			s.Description,
			string(s.Location),
			string(s.Status),
			s.CreatedByID,
			refEmail(s.CreatedBy),
			stamp(s.CreatedAt),
			stamp(s.UpdatedAt),
		})
	}
	return write(w, "Sites", header, rows)
}

func Submissions(w io.Writer, list []submissions.Submission) error {
	header := []interface{}{"id", "site_name", "site_description", "site_location", "status", "submitted_by_id", "submitted_by_email", "reviewed_by_email", "reviewed_at", "created_at"}
	rows := make([][]interface{}, 0, len(list))
	for _, s := range list {
		reviewedAt := ""
		if s.ReviewedAt != nil {
			reviewedAt = stamp(*s.ReviewedAt)
		}
		rows = append(rows, []interface{}{
			s.ID,
			s.SiteData.Name,
			s.SiteData.Description,
			string(s.SiteData.Location),
			string(s.Status),
			s.SubmittedByID,
			refEmail(s.SubmittedBy),
			refEmail(s.ReviewedBy),
			reviewedAt,
			stamp(s.CreatedAt),
		})
	}
	return write(w, "Submissions", header, rows)
}

func write(w io.Writer, sheetName string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(sheet, sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheetName, cell, &r); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}
	return f.Write(w)
}

func refEmail(r *users.Ref) string {
	if r == nil {
		return ""
	}
	return r.Email
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
