package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/notification"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/profile"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/user"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/mail"
)

// FileResolver turns a stored upload name into a readable path for mail
// attachments.
type FileResolver interface {
	Path(stored string) (string, error)
}

type ApplicationService struct {
	repo          application.Repository
	projects      project.Repository
	technicians   profile.TechnicianRepository
	companies     profile.CompanyRepository
	users         user.Repository
	notifications notification.Repository
	mailer        mail.Sender
	files         FileResolver
	policy        application.TransitionPolicy
	opsEmail      string
	logger        zerolog.Logger
}

func NewApplicationService(
	repo application.Repository,
	projects project.Repository,
	technicians profile.TechnicianRepository,
	companies profile.CompanyRepository,
	users user.Repository,
	notifications notification.Repository,
	mailer mail.Sender,
	files FileResolver,
	policy application.TransitionPolicy,
	opsEmail string,
	logger zerolog.Logger,
) *ApplicationService {
	return &ApplicationService{
		repo:          repo,
		projects:      projects,
		technicians:   technicians,
		companies:     companies,
		users:         users,
		notifications: notifications,
		mailer:        mailer,
		files:         files,
		policy:        policy,
		opsEmail:      opsEmail,
		logger:        logger,
	}
}

type SubmitApplicationInput struct {
	ProjectID         common.UUID
	CoverLetter       string
	ProposedRate      *float64
	AvailabilityStart *time.Time
	AvailabilityEnd   *time.Time
}

// Submit validates eligibility in a fixed order, persists the application and
// then fans out notifications and emails. Everything after the insert is
// best-effort: failures are logged and never surfaced to the caller.
func (s *ApplicationService) Submit(ctx context.Context, technicianID common.UUID, role user.Role, in SubmitApplicationInput) (*application.Application, error) {
	if role != user.RoleTechnician {
		return nil, common.NewError(common.CodeForbidden, "only technicians can apply to projects", nil)
	}

	techProfile, err := s.technicians.GetByUserID(ctx, technicianID)
	if err != nil {
		if common.Is(err, common.CodeNotFound) {
			return nil, common.NewError(common.CodePrecondition, "a CV must be uploaded before applying", nil)
		}
		return nil, err
	}
	if !techProfile.CVUploaded {
		return nil, common.NewError(common.CodePrecondition, "a CV must be uploaded before applying", nil)
	}

	proj, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if proj.Status != project.StatusOpen {
		return nil, common.NewError(common.CodeNotFound, "project not found", nil)
	}
	if !proj.AcceptsApplications(time.Now().UTC()) {
		return nil, common.NewError(common.CodeValidation, "the application deadline has passed", nil)
	}

	if strings.TrimSpace(in.CoverLetter) == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"cover_letter": "cover_letter is required"})
	}
	if in.AvailabilityStart != nil && in.AvailabilityEnd != nil && in.AvailabilityEnd.Before(*in.AvailabilityStart) {
		return nil, common.NewValidationError("invalid request", map[string]string{"availability_end": "availability_end must not precede availability_start"})
	}

	// Fast-path duplicate check; the unique constraint on
	// (project_id, technician_id) remains the authoritative signal.
	if _, err := s.repo.FindByProjectAndTechnician(ctx, in.ProjectID, technicianID); err == nil {
		return nil, common.NewError(common.CodeConflict, "already applied to this project", nil)
	} else if !common.Is(err, common.CodeNotFound) {
		return nil, err
	}

	created, err := s.repo.Create(ctx, application.Application{
		ProjectID:         in.ProjectID,
		TechnicianID:      technicianID,
		CoverLetter:       strings.TrimSpace(in.CoverLetter),
		ProposedRate:      in.ProposedRate,
		AvailabilityStart: in.AvailabilityStart,
		AvailabilityEnd:   in.AvailabilityEnd,
		Status:            application.StatusPending,
	})
	if err != nil {
		return nil, err
	}

	s.runPostCommit(ctx, created.ID, s.submitHooks(created, proj, techProfile))
	return created, nil
}

// UpdateStatus lets the owning company accept or reject an application. The
// allowed transition set is the explicit policy the service was built with.
func (s *ApplicationService) UpdateStatus(ctx context.Context, companyID common.UUID, role user.Role, applicationID common.UUID, next application.Status) (application.Status, error) {
	if role != user.RoleCompany {
		return "", common.NewError(common.CodeForbidden, "only companies can decide on applications", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}
	proj, err := s.projects.GetByID(ctx, app.ProjectID)
	if err != nil {
		return "", err
	}
	if proj.CompanyID != companyID {
		return "", common.NewError(common.CodeForbidden, "application belongs to another company", nil)
	}
	next = application.Status(strings.ToLower(strings.TrimSpace(string(next))))
	if next != application.StatusAccepted && next != application.StatusRejected {
		return "", common.NewValidationError("invalid status", map[string]string{"status": "status must be accepted or rejected"})
	}
	if !s.policy.Allows(app.Status, next) {
		return "", common.NewError(common.CodeInvalidState, fmt.Sprintf("application cannot change from %s to %s", app.Status, next), nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, next)
	if err != nil {
		return "", err
	}

	s.runPostCommit(ctx, updated.ID, []sideEffect{
		{"notify_technician", func(ctx context.Context) error {
			_, err := s.notifications.Create(ctx, notification.StatusChanged(app.TechnicianID, proj.ID, proj.Title, updated.Status))
			return err
		}},
	})
	return updated.Status, nil
}

// Withdraw hides the resource rather than admitting it exists when the
// requester is not the owning technician.
func (s *ApplicationService) Withdraw(ctx context.Context, technicianID common.UUID, role user.Role, applicationID common.UUID) (application.Status, error) {
	if role != user.RoleTechnician {
		return "", common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return "", err
	}
	if app.TechnicianID != technicianID {
		return "", common.NewError(common.CodeNotFound, "application not found", nil)
	}
	if app.Status != application.StatusPending {
		return "", common.NewError(common.CodeInvalidState, "only pending applications can be withdrawn", nil)
	}
	updated, err := s.repo.UpdateStatus(ctx, applicationID, application.StatusWithdrawn)
	if err != nil {
		return "", err
	}

	s.runPostCommit(ctx, updated.ID, []sideEffect{
		{"notify_technician", func(ctx context.Context) error {
			proj, err := s.projects.GetByID(ctx, app.ProjectID)
			if err != nil {
				return err
			}
			_, err = s.notifications.Create(ctx, notification.StatusChanged(technicianID, proj.ID, proj.Title, application.StatusWithdrawn))
			return err
		}},
	})
	return updated.Status, nil
}

func (s *ApplicationService) ListMine(ctx context.Context, technicianID common.UUID) ([]application.Application, error) {
	return s.repo.ListByTechnician(ctx, technicianID)
}

func (s *ApplicationService) ListForProject(ctx context.Context, companyID, projectID common.UUID) ([]application.Application, error) {
	proj, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if proj.CompanyID != companyID {
		return nil, common.NewError(common.CodeForbidden, "project belongs to another company", nil)
	}
	return s.repo.ListByProject(ctx, projectID)
}

type sideEffect struct {
	name string
	fn   func(ctx context.Context) error
}

// runPostCommit executes each side effect after the durable write, isolating
// failures so one broken hook cannot abort the rest or the response.
func (s *ApplicationService) runPostCommit(ctx context.Context, applicationID common.UUID, hooks []sideEffect) {
	for _, hook := range hooks {
		func() {
			defer func() {
				if recovered := recover(); recovered != nil {
					s.logger.Error().Interface("panic", recovered).Str("hook", hook.name).Str("application_id", applicationID.String()).Msg("post-commit hook panicked")
				}
			}()
			if err := hook.fn(ctx); err != nil {
				s.logger.Warn().Err(err).Str("hook", hook.name).Str("application_id", applicationID.String()).Msg("post-commit hook failed")
			}
		}()
	}
}

func (s *ApplicationService) submitHooks(created *application.Application, proj *project.Project, techProfile *profile.TechnicianProfile) []sideEffect {
	technicianID := created.TechnicianID
	return []sideEffect{
		{"notify_technician", func(ctx context.Context) error {
			_, err := s.notifications.Create(ctx, notification.ApplicationSubmitted(technicianID, proj.ID, proj.Title))
			return err
		}},
		{"notify_company", func(ctx context.Context) error {
			name := s.technicianDisplayName(ctx, technicianID, techProfile)
			_, err := s.notifications.Create(ctx, notification.ApplicationReceived(proj.CompanyID, proj.ID, proj.Title, name))
			return err
		}},
		{"email_technician", func(ctx context.Context) error {
			account, err := s.users.GetByID(ctx, technicianID)
			if err != nil {
				return err
			}
			body, err := mail.RenderConfirmation(mail.ConfirmationData{
				TechnicianName: s.technicianDisplayName(ctx, technicianID, techProfile),
				ProjectTitle:   proj.Title,
			})
			if err != nil {
				return err
			}
			result := s.mailer.Send(mail.OutboundEmail{
				To:      account.Email,
				Subject: "Your application to " + proj.Title,
				HTML:    body,
			})
			if !result.Delivered {
				return fmt.Errorf("confirmation email not delivered: %s", result.Reason)
			}
			return nil
		}},
		{"email_operations", func(ctx context.Context) error {
			account, err := s.users.GetByID(ctx, technicianID)
			if err != nil {
				return err
			}
			companyName := ""
			if companyProfile, err := s.companies.GetByUserID(ctx, proj.CompanyID); err == nil {
				companyName = companyProfile.CompanyName
			}
			body, err := mail.RenderApplicationNotice(mail.ApplicationNoticeData{
				TechnicianName:  s.technicianDisplayName(ctx, technicianID, techProfile),
				TechnicianEmail: account.Email,
				ProjectTitle:    proj.Title,
				CompanyName:     companyName,
				CoverLetter:     created.CoverLetter,
				ProposedRate:    created.ProposedRate,
			})
			if err != nil {
				return err
			}
			attachment := ""
			if techProfile.CVUploaded && techProfile.CVFile != "" {
				if path, err := s.files.Path(techProfile.CVFile); err == nil {
					attachment = path
				} else {
					s.logger.Warn().Err(err).Str("cv_file", techProfile.CVFile).Msg("cv path rejected, sending without attachment")
				}
			}
			result := s.mailer.Send(mail.OutboundEmail{
				To:             s.opsEmail,
				Subject:        "New application: " + proj.Title,
				HTML:           body,
				AttachmentPath: attachment,
			})
			if !result.Delivered {
				return fmt.Errorf("operations email not delivered: %s", result.Reason)
			}
			return nil
		}},
	}
}

func (s *ApplicationService) technicianDisplayName(ctx context.Context, technicianID common.UUID, techProfile *profile.TechnicianProfile) string {
	if techProfile != nil && strings.TrimSpace(techProfile.FullName) != "" {
		return techProfile.FullName
	}
	if account, err := s.users.GetByID(ctx, technicianID); err == nil && account.Name != "" {
		return account.Name
	}
	return "A technician"
}
