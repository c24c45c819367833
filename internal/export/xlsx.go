// Package export writes applicant reports for HR. The spreadsheet mirrors
// what the review screen shows: who applied, how they scored, where they
// stand.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/DenisMakokha/Kechita-Portal-sub000/internal/models"
)

const sheetName = "Applications"

var header = []string{"First Name", "Last Name", "Email", "Phone", "Status", "Score", "Reasons", "Applied At"}

// WriteApplicationsXLSX streams an xlsx listing the job's applicants.
func WriteApplicationsXLSX(w io.Writer, job *models.JobPosting, apps []models.Application) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	if err := f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s - %s / %s", job.Title, job.Branch, job.Region)); err != nil {
		return err
	}
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}

	for row, app := range apps {
		score := ""
		if app.Score != nil {
			score = fmt.Sprintf("%.1f", *app.Score)
		}
		values := []interface{}{
			app.FirstName,
			app.LastName,
			app.Email,
			app.Phone,
			string(app.Status),
			score,
			strings.Join(app.Reasons, "; "),
			app.CreatedAt.Format("2006-01-02 15:04"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}
