package mail

import (
	"bytes"
	"fmt"
	"html/template"
)

// ApplicationNoticeData feeds the internal notice sent to the operations
// mailbox when a technician applies.
type ApplicationNoticeData struct {
	TechnicianName  string
	TechnicianEmail string
	ProjectTitle    string
	CompanyName     string
	CoverLetter     string
	ProposedRate    *float64
}

type ConfirmationData struct {
	TechnicianName string
	ProjectTitle   string
}

var applicationNoticeTmpl = template.Must(template.New("application_notice").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; border: 1px solid #e4e7eb; border-radius: 8px; padding: 24px;">
    <h2 style="color: #0b5394; margin-top: 0;">New job application</h2>
    <table style="width: 100%; border-collapse: collapse;">
      <tr><td style="padding: 6px 0; font-weight: bold; width: 160px;">Technician</td><td>{{.TechnicianName}} ({{.TechnicianEmail}})</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">Project</td><td>{{.ProjectTitle}}</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">Company</td><td>{{.CompanyName}}</td></tr>
      {{if .RateLabel}}<tr><td style="padding: 6px 0; font-weight: bold;">Proposed rate</td><td>{{.RateLabel}}</td></tr>{{end}}
    </table>
    <h3 style="color: #0b5394;">Cover letter</h3>
    <p style="white-space: pre-wrap; background: #f5f7fa; padding: 12px; border-radius: 4px;">{{.CoverLetter}}</p>
    <p style="color: #7b8794; font-size: 12px;">The technician's CV is attached when available.</p>
  </div>
</body>
</html>`))

var confirmationTmpl = template.Must(template.New("application_confirmation").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2933; margin: 0; padding: 24px;">
  <div style="max-width: 600px; margin: 0 auto; border: 1px solid #e4e7eb; border-radius: 8px; padding: 24px;">
    <h2 style="color: #0b5394; margin-top: 0;">Application received</h2>
    <p>Hi {{.TechnicianName}},</p>
    <p>We received your application for <strong>{{.ProjectTitle}}</strong>. The company will review it and you will be notified as soon as there is a decision.</p>
    <p style="color: #7b8794; font-size: 12px;">You can follow your applications from your TrabajaTec account.</p>
  </div>
</body>
</html>`))

func RenderApplicationNotice(data ApplicationNoticeData) (string, error) {
	rateLabel := ""
	if data.ProposedRate != nil {
		rateLabel = fmt.Sprintf("$%.2f/h", *data.ProposedRate)
	}
	var buf bytes.Buffer
	err := applicationNoticeTmpl.Execute(&buf, struct {
		ApplicationNoticeData
		RateLabel string
	}{data, rateLabel})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func RenderConfirmation(data ConfirmationData) (string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
