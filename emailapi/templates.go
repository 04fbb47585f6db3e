package emailapi

import (
	"fmt"
	"html/template"
	"partnerportal/portal"
	"strings"
)

const planEmailSubject = "Your Personalized UiPath Partner Training Plan"
const welcomeEmailSubject = "Welcome to the UiPath Partner Enablement Portal"

var planEmailTemplate = template.Must(template.New("plan").Parse(`
      <h2>Your Personalized UiPath Partner Training Plan</h2>

      <p>Congratulations on completing your partner assessment! Based on your responses, we've created a customized training plan to help you excel in your role.</p>
      {{if .PlanSummary}}<p style="color:#334155;">{{.PlanSummary}}</p>{{end}}

      <h3>Recommended Training Courses:</h3>
      <div style="background: #f7fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
        {{range .Trainings}}<div style="margin-bottom: 12px;">
            <strong>{{.Title}}</strong><br>
            <span style="color: #64748B;">Duration: {{.Duration}} hours</span>
            {{if .Rationale}}<div style="color:#64748B; font-size: 13px; margin-top: 4px;">Why: {{.Rationale}}</div>{{end}}
          </div>{{end}}
      </div>

      <h3>Your Schedule Preferences:</h3>
      <ul>
        <li><strong>Daily Commitment:</strong> {{.HoursPerDay}} hours per day</li>
        <li><strong>Weekend Training:</strong> {{if .IncludeWeekends}}Yes{{else}}No{{end}}</li>
      </ul>

      <p>To get started with your training journey, please visit the <a href="https://www.uipath.com/learning" style="color: #FF6400;">UiPath Academy</a>.</p>

      <p>If you have any questions about your training plan, please don't hesitate to reach out to your partner success manager.</p>

      <p>Best regards,<br>
      The UiPath Partner Team</p>
`))

const welcomeEmailHTML = `
      <h2>Welcome to the UiPath Partner Enablement Portal</h2>
      <p>Your account has been confirmed successfully.</p>
      <p>You can now sign in and start your partner assessment and training journey.</p>
      <p>Best regards,<br/>The UiPath Partner Team</p>
`

type planEmailData struct {
	PlanSummary     string
	Trainings       []portal.TrainingItem
	HoursPerDay     int
	IncludeWeekends bool
}

func renderPlanEmail(data planEmailData) (string, error) {
	var b strings.Builder
	if err := planEmailTemplate.Execute(&b, data); err != nil {
		return "", fmt.Errorf("could not render plan email: %w", err)
	}
	return b.String(), nil
}
