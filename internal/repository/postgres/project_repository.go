package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
)

const projectColumns = `id, company_id, title, description, category, location, budget, status, application_deadline, created_at, updated_at`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, p project.Project) (*project.Project, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO projects (`+projectColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.CompanyID, p.Title, p.Description, p.Category, p.Location, p.Budget, p.Status, p.ApplicationDeadline, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create project", err)
	}
	return &p, nil
}

func (r *ProjectRepository) Update(ctx context.Context, p project.Project) (*project.Project, error) {
	p.UpdatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET title = $1, description = $2, category = $3, location = $4, budget = $5, status = $6, application_deadline = $7, updated_at = $8
		WHERE id = $9 AND company_id = $10`,
		p.Title, p.Description, p.Category, p.Location, p.Budget, p.Status, p.ApplicationDeadline, p.UpdatedAt, p.ID, p.CompanyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update project", err)
	}
	return r.GetByID(ctx, p.ID)
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id common.UUID, status project.Status) (*project.Project, error) {
	_, err := r.db.ExecContext(ctx, `UPDATE projects SET status = $1, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update project status", err)
	}
	return r.GetByID(ctx, id)
}

func (r *ProjectRepository) GetByID(ctx context.Context, id common.UUID) (*project.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	var p project.Project
	if err := scanProject(row.Scan, &p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "project not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load project", err)
	}
	return &p, nil
}

func (r *ProjectRepository) ListOpen(ctx context.Context, limit, offset int) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		project.StatusOpen, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list projects", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func (r *ProjectRepository) ListByCompany(ctx context.Context, companyID common.UUID) ([]project.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list company projects", err)
	}
	defer rows.Close()
	return collectProjects(rows)
}

func collectProjects(rows *sql.Rows) ([]project.Project, error) {
	var items []project.Project
	for rows.Next() {
		var p project.Project
		if err := scanProject(rows.Scan, &p); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan project", err)
		}
		items = append(items, p)
	}
	return items, nil
}

func scanProject(scan func(dest ...any) error, p *project.Project) error {
	return scan(&p.ID, &p.CompanyID, &p.Title, &p.Description, &p.Category, &p.Location, &p.Budget, &p.Status, &p.ApplicationDeadline, &p.CreatedAt, &p.UpdatedAt)
}
