// Package leads delivers marketing form submissions to the site endpoint and
// keeps a local copy when delivery is not possible.
package leads

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/wecreatehub/site_backend/internal/endpoint"
	"github.com/wecreatehub/site_backend/internal/models"
)

type Form = models.LeadForm

var ErrUnknownFormType = errors.New("leads: unknown form type")

// Poster is the write side of the site endpoint.
type Poster interface {
	Post(ctx context.Context, payload any) (endpoint.Result, error)
	Configured() bool
}

// Outcome is what the visitor is told. Delivered reports the remote accepted
// the record; Mirrored reports a local copy was kept.
type Outcome struct {
	Delivered bool   `json:"delivered"`
	Mirrored  bool   `json:"mirrored"`
	Message   string `json:"message"`
}

type messages struct {
	sent, local, failed string
}

var formMessages = map[string]messages{
	models.FormPartnershipInquiry: {
		sent:   "Thank you! Your inquiry has been submitted successfully.",
		local:  "Inquiry saved locally. Please configure Google Sheets to enable full functionality.",
		failed: "Your inquiry was saved, but we couldn't send it to our team. Please contact us directly.",
	},
	models.FormGeneralInquiry: {
		sent:   "Message sent! Our team will get back to you shortly.",
		local:  "Message saved locally. (Backend not configured)",
		failed: "Couldn't send message. Please email info@wecreatehub.com directly.",
	},
	models.FormProgramNotification: {
		sent:   "You're on the list! We'll let you know when programs open.",
		local:  "You're on the list! (Saved locally)",
		failed: "You're on the list, but we couldn't reach our team. Please try again later.",
	},
	models.FormQuizSubmission: {
		sent:   "Your AI Snapshot has been submitted successfully!",
		local:  "Your AI Snapshot was saved locally. (Backend not configured)",
		failed: "Your AI Snapshot was saved, but we couldn't send it to our team. Please contact us directly.",
	},
	models.FormLeadCapture: {
		sent:   "Thanks! We'll be in touch soon.",
		local:  "Details saved locally. (Backend not configured)",
		failed: "Your details were saved, but we couldn't send them to our team. Please contact us directly.",
	},
}

type Submitter struct {
	poster Poster
	mirror Mirror
	log    *zap.Logger
	now    func() time.Time
}

// NewSubmitter accepts a nil poster (nothing is sent) and a nil mirror
// (nothing is kept locally).
func NewSubmitter(poster Poster, mirror Mirror, log *zap.Logger) *Submitter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Submitter{poster: poster, mirror: mirror, log: log, now: time.Now}
}

// Submit never fails towards the visitor: every path ends in a message.
func (s *Submitter) Submit(ctx context.Context, form Form) Outcome {
	msgs, ok := formMessages[form.FormType]
	if !ok {
		s.log.Warn("lead rejected", zap.String("form_type", form.FormType), zap.Error(ErrUnknownFormType))
		return Outcome{Message: "Something went wrong. Please try again."}
	}
	if form.SubmittedAt == "" {
		form.SubmittedAt = s.now().UTC().Format(time.RFC3339)
	}
	log := s.log.With(zap.String("form_type", form.FormType))

	if s.poster == nil || !s.poster.Configured() {
		log.Info("lead endpoint not configured, mirroring")
		return Outcome{Mirrored: s.keep(form), Message: msgs.local}
	}

	if _, err := s.poster.Post(ctx, form); err != nil {
		log.Error("lead delivery failed", zap.Error(err))
		return Outcome{Mirrored: s.keep(form), Message: msgs.failed}
	}

	out := Outcome{Delivered: true, Message: msgs.sent}
	switch form.FormType {
	case models.FormProgramNotification, models.FormPartnershipInquiry:
		out.Mirrored = s.keep(form)
	}
	log.Info("lead delivered", zap.Bool("mirrored", out.Mirrored))
	return out
}

func (s *Submitter) keep(form Form) bool {
	if s.mirror == nil {
		return false
	}
	if err := s.mirror.Append(StorageKey(form.FormType), form); err != nil {
		s.log.Error("lead mirror failed", zap.Error(err))
		return false
	}
	return true
}
