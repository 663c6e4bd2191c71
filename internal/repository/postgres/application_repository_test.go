package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
)

func newApplicationRepoMock(t *testing.T) (*ApplicationRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewApplicationRepository(db), mock
}

func applicationRows(app application.Application) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "project_id", "technician_id", "cover_letter", "proposed_rate",
		"availability_start", "availability_end", "status", "created_at", "updated_at",
	}).AddRow(
		app.ID, app.ProjectID, app.TechnicianID, app.CoverLetter, app.ProposedRate,
		app.AvailabilityStart, app.AvailabilityEnd, app.Status, app.CreatedAt, app.UpdatedAt,
	)
}

func TestApplicationCreate(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), application.Application{
		ProjectID:    common.NewUUID(),
		TechnicianID: common.NewUUID(),
		CoverLetter:  "hello",
		Status:       application.StatusPending,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "applications_project_id_technician_id_key"})

	_, err := repo.Create(context.Background(), application.Application{
		ProjectID:    common.NewUUID(),
		TechnicianID: common.NewUUID(),
		CoverLetter:  "hello",
		Status:       application.StatusPending,
	})
	assert.True(t, common.Is(err, common.CodeConflict), "expected conflict, got %v", err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationGetByIDNotFound(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), common.NewUUID())
	assert.True(t, common.Is(err, common.CodeNotFound), "expected not_found, got %v", err)
}

func TestApplicationFindByProjectAndTechnician(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	now := time.Now().UTC()
	want := application.Application{
		ID:           common.NewUUID(),
		ProjectID:    common.NewUUID(),
		TechnicianID: common.NewUUID(),
		CoverLetter:  "hello",
		Status:       application.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE project_id .+ AND technician_id`).
		WithArgs(want.ProjectID, want.TechnicianID).
		WillReturnRows(applicationRows(want))

	got, err := repo.FindByProjectAndTechnician(context.Background(), want.ProjectID, want.TechnicianID)
	require.NoError(t, err)
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, application.StatusPending, got.Status)
}

func TestApplicationUpdateStatus(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	now := time.Now().UTC()
	want := application.Application{
		ID:           common.NewUUID(),
		ProjectID:    common.NewUUID(),
		TechnicianID: common.NewUUID(),
		CoverLetter:  "hello",
		Status:       application.StatusAccepted,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	mock.ExpectExec(`UPDATE applications SET status`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE id`).
		WithArgs(want.ID).
		WillReturnRows(applicationRows(want))

	got, err := repo.UpdateStatus(context.Background(), want.ID, application.StatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, application.StatusAccepted, got.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationListByProject(t *testing.T) {
	repo, mock := newApplicationRepoMock(t)

	projectID := common.NewUUID()
	now := time.Now().UTC()
	first := application.Application{
		ID: common.NewUUID(), ProjectID: projectID, TechnicianID: common.NewUUID(),
		CoverLetter: "a", Status: application.StatusPending, CreatedAt: now, UpdatedAt: now,
	}
	rows := applicationRows(first)
	mock.ExpectQuery(`SELECT .+ FROM applications WHERE project_id`).
		WithArgs(projectID).
		WillReturnRows(rows)

	items, err := repo.ListByProject(context.Background(), projectID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
