package app

import (
	"context"
	"strings"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/message"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/project"
)

const maxMessageLength = 2000

type MessageService struct {
	repo         message.Repository
	applications application.Repository
	projects     project.Repository
}

func NewMessageService(repo message.Repository, applications application.Repository, projects project.Repository) *MessageService {
	return &MessageService{repo: repo, applications: applications, projects: projects}
}

func (s *MessageService) Send(ctx context.Context, applicationID, senderID common.UUID, body string) (*message.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, common.NewValidationError("invalid request", map[string]string{"body": "body is required"})
	}
	if len(body) > maxMessageLength {
		return nil, common.NewValidationError("invalid request", map[string]string{"body": "body is too long"})
	}
	if err := s.authorize(ctx, applicationID, senderID); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, message.Message{ApplicationID: applicationID, SenderID: senderID, Body: body})
}

func (s *MessageService) List(ctx context.Context, applicationID, requesterID common.UUID, limit, offset int) ([]message.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if err := s.authorize(ctx, applicationID, requesterID); err != nil {
		return nil, err
	}
	return s.repo.ListByApplication(ctx, applicationID, limit, offset)
}

// authorize admits only the two parties of the application: the technician
// who applied and the company that owns the project.
func (s *MessageService) authorize(ctx context.Context, applicationID, requesterID common.UUID) error {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return err
	}
	if app.TechnicianID == requesterID {
		return nil
	}
	proj, err := s.projects.GetByID(ctx, app.ProjectID)
	if err != nil {
		return err
	}
	if proj.CompanyID == requesterID {
		return nil
	}
	return common.NewError(common.CodeForbidden, "not a participant of this application", nil)
}
