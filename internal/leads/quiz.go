package leads

import (
	"fmt"
	"strings"

	"github.com/wecreatehub/site_backend/internal/models"
)

type Diagnosis struct {
	Category    string `json:"category" yaml:"category"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
}

var (
	driftDiagnosis = Diagnosis{
		Category:    "General",
		Title:       "Operational Drift",
		Description: "Your workflows are functional but lack the structure needed for high-velocity scaling.",
	}
	diagnoses = []Diagnosis{
		{"Revenue Leakage", "Lead Decay", "Your top-of-funnel is healthy, but manual response times are costing you conversions. Automated lead triage is your fastest ROI."},
		{"Support Friction", "Customer Response Bloat", "You're answering the same questions repeatedly. Your business needs a structured knowledge base or an AI support layer."},
		{"Scaling Cap", "Founder Dependency", "Everything still flows through you. Your business is limited by your personal bandwidth, not your market potential."},
		{"Process Fragmentation", "Operational Lag", "The gaps between steps are manual and messy. You're losing hours every week in the 'handoff' between tools."},
	}
)

// Diagnose maps the first answer to a canned diagnosis. An unmapped answer
// falls back to founder dependency.
func Diagnose(selections []int) Diagnosis {
	if len(selections) == 0 {
		return driftDiagnosis
	}
	if i := selections[0]; i >= 0 && i < len(diagnoses) {
		return diagnoses[i]
	}
	return diagnoses[2]
}

type QuizQuestion struct {
	Question string   `json:"q" yaml:"q"`
	Options  []string `json:"options" yaml:"options"`
}

// QuizForm builds the quizSubmission record with the diagnosis and the full
// transcript. Selections past the last question or out of an option range
// are skipped.
func QuizForm(name, email string, questions []QuizQuestion, selections []int) Form {
	d := Diagnose(selections)
	lines := make([]string, 0, len(selections))
	for i, s := range selections {
		if i >= len(questions) || s < 0 || s >= len(questions[i].Options) {
			continue
		}
		lines = append(lines, fmt.Sprintf("Q%d: %s\nAnswer: %s", i+1, questions[i].Question, questions[i].Options[s]))
	}
	return Form{
		FormType:        models.FormQuizSubmission,
		FullName:        name,
		Email:           email,
		PartnershipType: "Quiz Lead",
		Message: fmt.Sprintf("DIAGNOSIS: %s (%s)\n\n--- FULL TRANSCRIPT ---\n%s",
			d.Title, d.Category, strings.Join(lines, "\n\n")),
	}
}

// Questions is the AI snapshot quiz as the site asks it.
var Questions = []QuizQuestion{
	{"Where does work slow down most?", []string{
		"Leads or DMs don’t get answered fast enough",
		"Customers ask the same questions repeatedly",
		"My team depends on me for answers",
		"Handoffs between steps feel messy",
	}},
	{"What happens when that slowdown occurs?", []string{
		"We lose leads or opportunities",
		"I jump in personally to fix it",
		"It creates stress or rework later",
		"It delays decisions or delivery",
	}},
	{"Have you tried tools or systems to fix this?", []string{
		"Yes, but nothing really stuck",
		"Yes, but it added complexity",
		"Not yet — not sure what to try",
		"No — we’re still mostly manual",
	}},
	{"Which statement feels most true right now?", []string{
		"“Everything still comes through me”",
		"“We’re busy, but not efficient”",
		"“I know we could be moving faster”",
		"“I don’t want to waste money guessing”",
	}},
	{"If this ONE issue were fixed, what would change most?", []string{
		"I’d get more time back",
		"We’d convert more leads",
		"My team would be more independent",
		"Things would feel calmer and clearer",
	}},
}
