package notification

import (
	"fmt"

	"github.com/amadokevin66-sudo/back-trabajatec/internal/domain/application"
	"github.com/amadokevin66-sudo/back-trabajatec/internal/common"
)

// Constructors for the known lifecycle events. They only shape the text;
// persistence stays with the repository.

func ApplicationSubmitted(technicianID, projectID common.UUID, projectTitle string) Notification {
	return Notification{
		UserID:    technicianID,
		Type:      TypeApplicationSubmitted,
		Title:     "Application submitted",
		Message:   fmt.Sprintf("Your application for %q was submitted and is pending review.", projectTitle),
		RelatedID: &projectID,
	}
}

func ApplicationReceived(companyID, projectID common.UUID, projectTitle, technicianName string) Notification {
	return Notification{
		UserID:    companyID,
		Type:      TypeApplicationReceived,
		Title:     "New application received",
		Message:   fmt.Sprintf("%s applied to your project %q.", technicianName, projectTitle),
		RelatedID: &projectID,
	}
}

func StatusChanged(technicianID, projectID common.UUID, projectTitle string, status application.Status) Notification {
	n := Notification{
		UserID:    technicianID,
		Type:      TypeStatusChanged,
		RelatedID: &projectID,
	}
	switch status {
	case application.StatusAccepted:
		n.Title = "Application accepted"
		n.Message = fmt.Sprintf("Congratulations, your application for %q was accepted.", projectTitle)
	case application.StatusRejected:
		n.Title = "Application rejected"
		n.Message = fmt.Sprintf("Your application for %q was not selected this time.", projectTitle)
	case application.StatusWithdrawn:
		n.Title = "Application withdrawn"
		n.Message = fmt.Sprintf("You withdrew your application for %q.", projectTitle)
	default:
		n.Type = TypeGeneric
		n.Title = "Application updated"
		n.Message = fmt.Sprintf("Your application for %q changed to %s.", projectTitle, status)
	}
	return n
}
