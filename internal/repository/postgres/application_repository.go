package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
)

const applicationColumns = `id, project_id, technician_id, cover_letter, proposed_rate, availability_start, availability_end, status, created_at, updated_at`

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create relies on the (project_id, technician_id) unique constraint as the
// authoritative duplicate signal; the write-time violation maps to conflict.
func (r *ApplicationRepository) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.CreatedAt = now
	app.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		app.ID, app.ProjectID, app.TechnicianID, app.CoverLetter, app.ProposedRate, app.AvailabilityStart, app.AvailabilityEnd, app.Status, app.CreatedAt, app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.NewError(common.CodeConflict, "already applied to this project", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to create application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	var app application.Application
	if err := scanApplication(row.Scan, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) FindByProjectAndTechnician(ctx context.Context, projectID, technicianID common.UUID) (*application.Application, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE project_id = $1 AND technician_id = $2`, projectID, technicianID)
	var app application.Application
	if err := scanApplication(row.Scan, &app); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "application not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load application", err)
	}
	return &app, nil
}

func (r *ApplicationRepository) ListByTechnician(ctx context.Context, technicianID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE technician_id = $1 ORDER BY created_at DESC`, technicianID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list technician applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) ListByProject(ctx context.Context, projectID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+applicationColumns+` FROM applications WHERE project_id = $1 ORDER BY created_at DESC`, projectID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list project applications", err)
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update application", err)
	}
	return r.GetByID(ctx, id)
}

func collectApplications(rows *sql.Rows) ([]application.Application, error) {
	var items []application.Application
	for rows.Next() {
		var app application.Application
		if err := scanApplication(rows.Scan, &app); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, app)
	}
	return items, nil
}

func scanApplication(scan func(dest ...any) error, app *application.Application) error {
	return scan(&app.ID, &app.ProjectID, &app.TechnicianID, &app.CoverLetter, &app.ProposedRate, &app.AvailabilityStart, &app.AvailabilityEnd, &app.Status, &app.CreatedAt, &app.UpdatedAt)
}
