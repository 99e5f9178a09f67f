package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/acadflow/ethics-review/internal/application/port"
)

// ReportService produces spreadsheet exports for the committee office
type ReportService interface {
	// ArchivedApplications renders all archived applications as an xlsx file
	ArchivedApplications(ctx context.Context) ([]byte, error)
}

type reportServiceImpl struct {
	applicationRepo port.ApplicationRepository
	logger          Logger
}

// NewReportService creates a new ReportService
func NewReportService(applicationRepo port.ApplicationRepository, logger Logger) ReportService {
	return &reportServiceImpl{
		applicationRepo: applicationRepo,
		logger:          logger,
	}
}

func (s *reportServiceImpl) ArchivedApplications(ctx context.Context) ([]byte, error) {
	apps, err := s.applicationRepo.ListArchived(ctx)
	if err != nil {
		return nil, fmt.Errorf("list archived applications: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Archived Applications"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Title", "Researcher", "Faculty", "Status", "Submitted"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, app := range apps {
		values := []interface{}{
			app.ID,
			app.Title,
			app.ResearcherName,
			app.FacultyName,
			app.Status,
			app.SubmittedAt.Format("2006-01-02 15:04"),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write report: %w", err)
	}

	s.logger.Info("Archived applications report generated", "rows", len(apps))
	return buf.Bytes(), nil
}
