package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/scholar-stream/scholarship-service/internal/authz"
	"github.com/scholar-stream/scholarship-service/internal/repositories"
)

// exportBatchSize caps how many rows a single export query pulls.
const exportBatchSize = 500

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportApplications(ctx context.Context, actor Actor) ([]byte, error) {
	if err := authz.Authorize(actor.Role, authz.WriteAdmin, authz.Ownership{SubjectEmail: actor.Email}); err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Applications"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{
		"ID", "Applicant", "Email", "Scholarship", "University",
		"Category", "Degree", "Fees", "Service Charge",
		"Status", "Payment", "Applied At", "Feedback",
	}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to build header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
	}

	row := 2
	offset := 0
	for {
		applications, _, err := s.repo.Application().List(ctx, repositories.ApplicationFilters{
			Limit:     exportBatchSize,
			Offset:    offset,
			SortBy:    "applied_at",
			SortOrder: "asc",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to load applications: %w", err)
		}
		if len(applications) == 0 {
			break
		}

		for _, a := range applications {
			feedback := ""
			if a.Feedback != nil {
				feedback = *a.Feedback
			}
			values := []interface{}{
				a.ID, a.UserName, a.UserEmail, a.ScholarshipName, a.UniversityName,
				string(a.ScholarshipCategory), string(a.Degree), a.ApplicationFees, a.ServiceCharge,
				string(a.ApplicationStatus), string(a.PaymentStatus),
				a.AppliedAt.Format("2006-01-02 15:04"), feedback,
			}
			for i, v := range values {
				cell, err := excelize.CoordinatesToCellName(i+1, row)
				if err != nil {
					return nil, fmt.Errorf("failed to build cell: %w", err)
				}
				if err := f.SetCellValue(sheet, cell, v); err != nil {
					return nil, fmt.Errorf("failed to write row: %w", err)
				}
			}
			row++
		}

		if len(applications) < exportBatchSize {
			break
		}
		offset += exportBatchSize
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}

	s.logger.Info("Applications exported", "rows", row-2, "by", actor.Email)
	return buf.Bytes(), nil
}
