package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-careermatch-backend/internal/domain"
	"go-careermatch-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

type adminUsecase struct {
	userRepo domain.UserRepository
	jobRepo  domain.JobRepository
}

func NewAdminUsecase(userRepo domain.UserRepository, jobRepo domain.JobRepository) domain.AdminUsecase {
	return &adminUsecase{userRepo: userRepo, jobRepo: jobRepo}
}

func (u *adminUsecase) Stats(ctx context.Context) (*domain.JobStats, error) {
	return u.jobRepo.Stats(ctx)
}

func (u *adminUsecase) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, int64, error) {
	limit, offset := clampPage(page, pageSize)
	return u.userRepo.List(ctx, limit, offset)
}

func (u *adminUsecase) DeactivateUser(ctx context.Context, userID string) error {
	user, err := u.userRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("User not found")
		}
		return err
	}
	if user.Role == domain.RoleAdmin {
		return apperror.Forbidden("Admin accounts cannot be deactivated")
	}
	return u.userRepo.SetActive(ctx, userID, false)
}

var exportHeader = []string{
	"Job ID", "Employer Number", "Organization", "Title", "Job Type",
	"City", "State", "Country", "Bill Rate", "Duration (months)",
	"Posted Date", "Active",
}

func exportRow(j *domain.JobWithEmployer) []string {
	billRate := ""
	if j.BillRate != nil {
		billRate = strconv.FormatFloat(*j.BillRate, 'f', 2, 64)
	}
	duration := ""
	if j.DurationMonths != nil {
		duration = strconv.Itoa(*j.DurationMonths)
	}
	return []string{
		strconv.FormatInt(j.ID, 10),
		j.EmployerNumber,
		j.OrganizationName,
		j.Title,
		j.JobType,
		j.City,
		j.State,
		j.Country,
		billRate,
		duration,
		j.PostedDate.Format("2006-01-02"),
		strconv.FormatBool(j.IsActive),
	}
}

// ExportJobs renders the full job table for download. format is "csv" or
// "xlsx" (the default).
func (u *adminUsecase) ExportJobs(ctx context.Context, format string) ([]byte, string, error) {
	jobs, err := u.jobRepo.FetchAll(ctx)
	if err != nil {
		return nil, "", err
	}

	stamp := time.Now().Format("20060102")
	if format == "csv" {
		content, err := exportCSV(jobs)
		if err != nil {
			return nil, "", err
		}
		return content, fmt.Sprintf("jobs-%s.csv", stamp), nil
	}

	content, err := exportXLSX(jobs)
	if err != nil {
		return nil, "", err
	}
	return content, fmt.Sprintf("jobs-%s.xlsx", stamp), nil
}

func exportCSV(jobs []domain.JobWithEmployer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range jobs {
		if err := w.Write(exportRow(&jobs[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportXLSX(jobs []domain.JobWithEmployer) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	f.SetSheetName("Sheet1", sheet)

	writeRow := func(rowIdx int, values []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
		}
		return f.SetSheetRow(sheet, cell, &row)
	}

	if err := writeRow(1, exportHeader); err != nil {
		return nil, err
	}
	for i := range jobs {
		if err := writeRow(i+2, exportRow(&jobs[i])); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
