package app

import (
	"context"
	"strings"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/profile"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
)

// ProfileService routes each role to its own repository; the role tag picks
// the implementation, never a table name.
type ProfileService struct {
	technicians profile.TechnicianRepository
	companies   profile.CompanyRepository
}

func NewProfileService(technicians profile.TechnicianRepository, companies profile.CompanyRepository) *ProfileService {
	return &ProfileService{technicians: technicians, companies: companies}
}

func (s *ProfileService) Get(ctx context.Context, userID common.UUID, role user.Role) (any, error) {
	switch role {
	case user.RoleTechnician:
		return s.technicians.GetByUserID(ctx, userID)
	case user.RoleCompany:
		return s.companies.GetByUserID(ctx, userID)
	default:
		return nil, common.NewError(common.CodeForbidden, "unknown role", nil)
	}
}

func (s *ProfileService) UpsertTechnician(ctx context.Context, p profile.TechnicianProfile) (*profile.TechnicianProfile, error) {
	fields := map[string]string{}
	if strings.TrimSpace(p.FullName) == "" {
		fields["full_name"] = "full_name is required"
	}
	if p.HourlyRate != nil && *p.HourlyRate < 0 {
		fields["hourly_rate"] = "hourly_rate must not be negative"
	}
	if len(fields) > 0 {
		return nil, common.NewValidationError("invalid request", fields)
	}
	// cv state is owned by the upload flow, never by a profile update
	if current, err := s.technicians.GetByUserID(ctx, p.UserID); err == nil {
		p.CVUploaded = current.CVUploaded
		p.CVFile = current.CVFile
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}
	return s.technicians.Upsert(ctx, p)
}

func (s *ProfileService) UpsertCompany(ctx context.Context, p profile.CompanyProfile) (*profile.CompanyProfile, error) {
	if strings.TrimSpace(p.CompanyName) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"company_name": "company_name is required"})
	}
	return s.companies.Upsert(ctx, p)
}

// AttachCV records a stored CV file on the technician profile, creating the
// profile row if the technician has not filled it in yet.
func (s *ProfileService) AttachCV(ctx context.Context, userID common.UUID, storedName string) error {
	if _, err := s.technicians.GetByUserID(ctx, userID); err != nil {
		if !common.Is(err, common.CodeNotFound) {
			return err
		}
		if _, err := s.technicians.Upsert(ctx, profile.TechnicianProfile{UserID: userID}); err != nil {
			return err
		}
	}
	return s.technicians.SetCV(ctx, userID, storedName)
}
