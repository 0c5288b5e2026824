package invitation

import (
	"errors"
	"time"
)

var (
	// ErrContactNameRequired is returned when the prospect contact name is missing.
	ErrContactNameRequired = errors.New("contact name is required")

	// ErrCompanyNameRequired is returned when the prospect company name is missing.
	ErrCompanyNameRequired = errors.New("company name is required")

	// ErrInvalidMCNumber is returned when an MC number does not look like one.
	ErrInvalidMCNumber = errors.New("invalid MC number")

	// ErrInvalidDOTNumber is returned when a DOT number does not look like one.
	ErrInvalidDOTNumber = errors.New("invalid DOT number")

	// ErrInvalidInvitationType is returned for unknown invitation types.
	ErrInvalidInvitationType = errors.New("invalid invitation type")

	// ErrInvalidSource is returned for unknown invitation sources.
	ErrInvalidSource = errors.New("invalid invitation source")

	// ErrInvalidPriority is returned for unknown priorities.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvitationNotFound is returned when an invitation id is unknown.
	ErrInvitationNotFound = errors.New("invitation not found")
)

// Status tracks an invitation through the engagement funnel.
type Status string

const (
	StatusSent      Status = "sent"
	StatusOpened    Status = "opened"
	StatusStarted   Status = "started"
	StatusCompleted Status = "completed"
	StatusExpired   Status = "expired"
	StatusDeclined  Status = "declined"
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusSent, StatusOpened, StatusStarted, StatusCompleted, StatusExpired, StatusDeclined:
		return true
	}
	return false
}

// IsTerminal reports whether s ends the funnel.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusExpired || s == StatusDeclined
}

// Type is the delivery channel an invitation was created for.
type Type string

const (
	TypeEmail Type = "email"
	TypeSMS   Type = "sms"
	TypeLink  Type = "link"
	TypeBulk  Type = "bulk"
)

// IsValid reports whether t is a known invitation type.
func (t Type) IsValid() bool {
	switch t {
	case TypeEmail, TypeSMS, TypeLink, TypeBulk:
		return true
	}
	return false
}

// Source identifies which surface originated the invitation.
type Source string

const (
	SourceBrokerPortal    Source = "broker_portal"
	SourceEnhancedPortal  Source = "enhanced_portal"
	SourceDispatchCentral Source = "dispatch_central"
	SourceDirect          Source = "direct"
)

// IsValid reports whether s is a known source.
func (s Source) IsValid() bool {
	switch s {
	case SourceBrokerPortal, SourceEnhancedPortal, SourceDispatchCentral, SourceDirect:
		return true
	}
	return false
}

// Priority flags how urgently an invitation should be worked.
type Priority string

const (
	PriorityStandard Priority = "standard"
	PriorityHigh     Priority = "high"
	PriorityUrgent   Priority = "urgent"
)

// IsValid reports whether p is a known priority.
func (p Priority) IsValid() bool {
	return p == PriorityStandard || p == PriorityHigh || p == PriorityUrgent
}

// TargetCarrier is the prospect identity an invitation is addressed to.
// Email is required; MC/DOT numbers and phone are optional.
type TargetCarrier struct {
	CompanyName string `json:"company_name"`
	MCNumber    string `json:"mc_number,omitempty"`
	DOTNumber   string `json:"dot_number,omitempty"`
	ContactName string `json:"contact_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
}

// Metadata carries auxiliary invitation attributes. All fields are set at
// creation and never mutated.
type Metadata struct {
	ReferralCode  string            `json:"referral_code"`
	PrefilledData map[string]string `json:"prefilled_data,omitempty"`
	Incentives    []string          `json:"incentives,omitempty"`
	Priority      Priority          `json:"priority"`
}

// Invitation is an outbound solicitation to a prospective carrier, tracked
// through the funnel sent -> opened -> started -> completed with side exits
// to expired and declined. Only Status and the engagement timestamps mutate
// after creation; everything else is immutable.
type Invitation struct {
	ID             string        `json:"id"`
	InvitedBy      string        `json:"invited_by"`
	InvitedByRole  string        `json:"invited_by_role"`
	InviterCompany string        `json:"inviter_company"`
	TargetCarrier  TargetCarrier `json:"target_carrier"`
	Type           Type          `json:"invitation_type"`
	Status         Status        `json:"status"`
	SentDate       time.Time     `json:"sent_date"`
	OpenedDate     *time.Time    `json:"opened_date,omitempty"`
	StartedDate    *time.Time    `json:"started_date,omitempty"`
	CompletedDate  *time.Time    `json:"completed_date,omitempty"`
	ExpiresDate    time.Time     `json:"expires_date"`
	InvitationLink string        `json:"invitation_link"`
	CustomMessage  string        `json:"custom_message,omitempty"`
	TemplateUsed   string        `json:"template_used"`
	Source         Source        `json:"source"`
	Metadata       Metadata      `json:"metadata"`
}

// clone returns a copy safe to hand outside the repository lock. Timestamp
// pointers are duplicated so callers cannot reach back into stored state.
func (inv *Invitation) clone() *Invitation {
	cp := *inv
	cp.OpenedDate = cloneTime(inv.OpenedDate)
	cp.StartedDate = cloneTime(inv.StartedDate)
	cp.CompletedDate = cloneTime(inv.CompletedDate)
	if inv.Metadata.PrefilledData != nil {
		cp.Metadata.PrefilledData = make(map[string]string, len(inv.Metadata.PrefilledData))
		for k, v := range inv.Metadata.PrefilledData {
			cp.Metadata.PrefilledData[k] = v
		}
	}
	if inv.Metadata.Incentives != nil {
		cp.Metadata.Incentives = append([]string(nil), inv.Metadata.Incentives...)
	}
	return &cp
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}
