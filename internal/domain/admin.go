package domain

import "context"

type AdminUsecase interface {
	Stats(ctx context.Context) (*JobStats, error)
	ListUsers(ctx context.Context, page, pageSize int) ([]User, int64, error)
	DeactivateUser(ctx context.Context, userID string) error
	// ExportJobs renders all jobs as xlsx or csv; returns content, filename.
	ExportJobs(ctx context.Context, format string) ([]byte, string, error)
}
