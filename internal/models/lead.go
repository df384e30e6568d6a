package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Sheets that lead rows are appended to.
const (
	SheetInquiries     = "inquiries"
	SheetNotifications = "notifications"
	SheetLeads         = "leads"
)

// Form types accepted by the intake endpoint.
const (
	FormPartnershipInquiry  = "partnershipInquiry"
	FormProgramNotification = "programNotification"
	FormLeadCapture         = "leadCapture"
	FormQuizSubmission      = "quizSubmission"
	FormGeneralInquiry      = "generalInquiry"
)

// SheetFor maps a form type to its sheet; ok is false for unknown types.
func SheetFor(formType string) (sheet string, ok bool) {
	switch formType {
	case FormPartnershipInquiry:
		return SheetInquiries, true
	case FormProgramNotification:
		return SheetNotifications, true
	case FormLeadCapture, FormQuizSubmission, FormGeneralInquiry:
		return SheetLeads, true
	}
	return "", false
}

// Lead is one append-only form submission row. Resubmissions create new rows.
type Lead struct {
	ID                string         `gorm:"size:36;primaryKey" json:"id"`
	Sheet             string         `gorm:"size:32;index" json:"sheet"`
	FormType          string         `gorm:"size:64" json:"formType"`
	FullName          string         `json:"fullName"`
	Organization      string         `json:"organization,omitempty"`
	Email             string         `json:"email"`
	Phone             string         `json:"phone,omitempty"`
	PartnershipType   string         `json:"partnershipType,omitempty"`
	Budget            string         `json:"budget,omitempty"`
	Message           string         `gorm:"type:text" json:"message,omitempty"`
	ProgramInterested string         `json:"programInterested,omitempty"`
	Fields            datatypes.JSON `json:"fields,omitempty"`
	CreatedAt         time.Time      `gorm:"index" json:"createdAt"`
}

func (l *Lead) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// LeadForm is the flat record a marketing form posts. The same struct is
// decoded from JSON bodies and from urlencoded form posts.
type LeadForm struct {
	FormType          string `json:"formType" schema:"formType"`
	FullName          string `json:"fullName,omitempty" schema:"fullName"`
	Organization      string `json:"organization,omitempty" schema:"organization"`
	Email             string `json:"email,omitempty" schema:"email"`
	Phone             string `json:"phone,omitempty" schema:"phone"`
	PartnershipType   string `json:"partnershipType,omitempty" schema:"partnershipType"`
	Budget            string `json:"budget,omitempty" schema:"budget"`
	Message           string `json:"message,omitempty" schema:"message"`
	ProgramInterested string `json:"programInterested,omitempty" schema:"programInterested"`
	Subject           string `json:"subject,omitempty" schema:"subject"`
	SubmittedAt       string `json:"submittedAt,omitempty" schema:"submittedAt"`
}

// ToLead builds the row for sheet; fields is the complete submitted record.
func (f LeadForm) ToLead(sheet string, fields []byte) Lead {
	return Lead{
		Sheet:             sheet,
		FormType:          f.FormType,
		FullName:          f.FullName,
		Organization:      f.Organization,
		Email:             f.Email,
		Phone:             f.Phone,
		PartnershipType:   f.PartnershipType,
		Budget:            f.Budget,
		Message:           f.Message,
		ProgramInterested: f.ProgramInterested,
		Fields:            datatypes.JSON(fields),
	}
}
