package invitation

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/email"
	"github.com/lanelink/lanelink/internal/template"
)

// dispatchTimeout bounds the background email dispatch; it is independent of
// the request that created the invitation.
const dispatchTimeout = 30 * time.Second

// expiresDateFormat is how the expiry renders inside message bodies.
const expiresDateFormat = "January 2, 2006"

// Service wires record creation to template rendering and email dispatch.
// Dispatch runs in the background so creation never blocks on transport; the
// outcome of the attempt is recorded in the logs, and the delivery channel
// feeds engagement back through Advance.
type Service struct {
	repo      *Repository
	templates *template.Store
	sender    email.Sender
}

// NewService creates an invitation service.
func NewService(repo *Repository, templates *template.Store, sender email.Sender) *Service {
	return &Service{repo: repo, templates: templates, sender: sender}
}

// Send creates an invitation and, for email-backed types, dispatches the
// rendered message asynchronously. Link-type invitations skip dispatch; the
// caller delivers the returned link itself (clipboard or share sheet).
func (s *Service) Send(req CreateRequest) (*Invitation, error) {
	if req.TemplateID != "" {
		if _, err := s.templates.Get(req.TemplateID); err != nil {
			return nil, fmt.Errorf("template %q: %w", req.TemplateID, err)
		}
	}

	inv, err := s.repo.Create(req)
	if err != nil {
		return nil, err
	}

	if inv.Type == TypeEmail || inv.Type == TypeBulk {
		go s.dispatch(inv)
	}

	return inv, nil
}

// Render produces the message content for an invitation from its template.
// Placeholders the variable set does not cover pass through untouched.
func (s *Service) Render(inv *Invitation) (template.Rendered, error) {
	tpl, err := s.templates.Get(inv.TemplateUsed)
	if err != nil {
		return template.Rendered{}, fmt.Errorf("template %q: %w", inv.TemplateUsed, err)
	}
	return template.Render(tpl, templateVariables(inv)), nil
}

func (s *Service) dispatch(inv *Invitation) {
	ctx, cancel := context.WithTimeout(context.Background(), dispatchTimeout)
	defer cancel()

	rendered, err := s.Render(inv)
	if err != nil {
		log.Error().
			Err(err).
			Str("invitation_id", inv.ID).
			Msg("Invitation email not dispatched")
		return
	}

	messageID, err := s.sender.Send(ctx, email.Payload{
		To:       inv.TargetCarrier.Email,
		ToName:   inv.TargetCarrier.ContactName,
		Subject:  rendered.Subject,
		TextBody: rendered.TextContent,
		HTMLBody: rendered.HTMLContent,
		CustomArgs: map[string]string{
			"invitation_id": inv.ID,
			"referral_code": inv.Metadata.ReferralCode,
			"source":        string(inv.Source),
		},
	})
	if err != nil {
		log.Error().
			Err(err).
			Str("invitation_id", inv.ID).
			Str("to", inv.TargetCarrier.Email).
			Msg("Invitation email dispatch failed")
		return
	}

	log.Info().
		Str("invitation_id", inv.ID).
		Str("message_id", messageID).
		Msg("Invitation email dispatch recorded")
}

func templateVariables(inv *Invitation) map[string]string {
	return map[string]string{
		"CONTACT_NAME":    inv.TargetCarrier.ContactName,
		"COMPANY_NAME":    inv.TargetCarrier.CompanyName,
		"INVITER_NAME":    inv.InvitedBy,
		"INVITER_COMPANY": inv.InviterCompany,
		"INVITATION_LINK": inv.InvitationLink,
		"REFERRAL_CODE":   inv.Metadata.ReferralCode,
		"EXPIRES_DATE":    inv.ExpiresDate.Format(expiresDateFormat),
		"CUSTOM_MESSAGE":  inv.CustomMessage,
	}
}
