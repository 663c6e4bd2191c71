package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/profile"
)

type TechnicianProfileRepository struct {
	db *sql.DB
}

func NewTechnicianProfileRepository(db *sql.DB) *TechnicianProfileRepository {
	return &TechnicianProfileRepository{db: db}
}

func (r *TechnicianProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.TechnicianProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, full_name, phone, skills, bio, hourly_rate, cv_uploaded, cv_file, created_at, updated_at
		FROM technician_profiles WHERE user_id = $1`, userID)
	var p profile.TechnicianProfile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Phone, pq.Array(&p.Skills), &p.Bio, &p.HourlyRate, &p.CVUploaded, &p.CVFile, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "technician profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load technician profile", err)
	}
	return &p, nil
}

func (r *TechnicianProfileRepository) Upsert(ctx context.Context, p profile.TechnicianProfile) (*profile.TechnicianProfile, error) {
	now := time.Now().UTC()
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO technician_profiles (user_id, full_name, phone, skills, bio, hourly_rate, cv_uploaded, cv_file, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		ON CONFLICT (user_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			phone = EXCLUDED.phone,
			skills = EXCLUDED.skills,
			bio = EXCLUDED.bio,
			hourly_rate = EXCLUDED.hourly_rate,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.FullName, p.Phone, pq.Array(p.Skills), p.Bio, p.HourlyRate, p.CVUploaded, p.CVFile, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save technician profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}

func (r *TechnicianProfileRepository) SetCV(ctx context.Context, userID common.UUID, filename string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE technician_profiles SET cv_uploaded = TRUE, cv_file = $1, updated_at = $2 WHERE user_id = $3`,
		filename, time.Now().UTC(), userID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to update cv", err)
	}
	affected, err := result.RowsAffected()
	if err == nil && affected == 0 {
		return common.NewError(common.CodeNotFound, "technician profile not found", nil)
	}
	return nil
}

type CompanyProfileRepository struct {
	db *sql.DB
}

func NewCompanyProfileRepository(db *sql.DB) *CompanyProfileRepository {
	return &CompanyProfileRepository{db: db}
}

func (r *CompanyProfileRepository) GetByUserID(ctx context.Context, userID common.UUID) (*profile.CompanyProfile, error) {
	row := r.db.QueryRowContext(ctx, `SELECT user_id, company_name, phone, description, website, created_at, updated_at
		FROM company_profiles WHERE user_id = $1`, userID)
	var p profile.CompanyProfile
	if err := row.Scan(&p.UserID, &p.CompanyName, &p.Phone, &p.Description, &p.Website, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "company profile not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load company profile", err)
	}
	return &p, nil
}

func (r *CompanyProfileRepository) Upsert(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO company_profiles (user_id, company_name, phone, description, website, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			phone = EXCLUDED.phone,
			description = EXCLUDED.description,
			website = EXCLUDED.website,
			updated_at = EXCLUDED.updated_at`,
		p.UserID, p.CompanyName, p.Phone, p.Description, p.Website, now)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to save company profile", err)
	}
	return r.GetByUserID(ctx, p.UserID)
}
