package invitation

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lanelink/lanelink/internal/template"
	"github.com/lanelink/lanelink/internal/validation"
)

const (
	// DefaultInviterRole is used when a create request omits the role.
	DefaultInviterRole = "User"

	// DefaultInviterCompany is used when a create request omits the company.
	DefaultInviterCompany = "LaneLink"

	// DefaultInviteTTL is the invitation validity window when none is configured.
	DefaultInviteTTL = 30 * 24 * time.Hour
)

// CreateRequest is a partial invitation; the repository fills defaults for
// every omitted optional field.
type CreateRequest struct {
	InvitedBy      string            `json:"invited_by"`
	InvitedByRole  string            `json:"invited_by_role,omitempty"`
	InviterCompany string            `json:"inviter_company,omitempty"`
	TargetCarrier  TargetCarrier     `json:"target_carrier"`
	Type           Type              `json:"invitation_type"`
	Source         Source            `json:"source,omitempty"`
	TemplateID     string            `json:"template_id,omitempty"`
	CustomMessage  string            `json:"custom_message,omitempty"`
	PrefilledData  map[string]string `json:"prefilled_data,omitempty"`
	Incentives     []string          `json:"incentives,omitempty"`
	Priority       Priority          `json:"priority,omitempty"`
}

// Repository is the in-memory source of truth for invitation records. It is
// an explicitly constructed object rather than a package-level singleton so
// tests get hermetic instances. Records live for the process lifetime and
// are never deleted.
type Repository struct {
	mu         sync.RWMutex
	records    map[string]*Invitation
	byReferral map[string]string
	// order holds ids in insertion order; sentDate listings derive from it.
	order []string
	// nextSeq backs referral-code generation. Allocated under the write
	// lock so concurrent creates cannot observe the same sequence.
	nextSeq int

	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewRepository creates an empty invitation store. baseURL is the landing
// page origin embedded in invitation links; ttl is the validity window
// (DefaultInviteTTL when zero).
func NewRepository(baseURL string, ttl time.Duration) *Repository {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	return &Repository{
		records:    make(map[string]*Invitation),
		byReferral: make(map[string]string),
		baseURL:    strings.TrimRight(baseURL, "/"),
		ttl:        ttl,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates the request, fills defaults, generates the id, referral
// code and invitation link, and stores the new record with status "sent".
// Validation failures leave the store untouched.
func (r *Repository) Create(req CreateRequest) (*Invitation, error) {
	email, err := validation.NormalizeEmail(req.TargetCarrier.Email)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.TargetCarrier.ContactName) == "" {
		return nil, ErrContactNameRequired
	}
	if strings.TrimSpace(req.TargetCarrier.CompanyName) == "" {
		return nil, ErrCompanyNameRequired
	}
	if !validation.ValidMCNumber(req.TargetCarrier.MCNumber) {
		return nil, ErrInvalidMCNumber
	}
	if !validation.ValidDOTNumber(req.TargetCarrier.DOTNumber) {
		return nil, ErrInvalidDOTNumber
	}
	if !req.Type.IsValid() {
		return nil, ErrInvalidInvitationType
	}
	if req.Source == "" {
		req.Source = SourceDirect
	}
	if !req.Source.IsValid() {
		return nil, ErrInvalidSource
	}
	if req.Priority == "" {
		req.Priority = PriorityStandard
	}
	if !req.Priority.IsValid() {
		return nil, ErrInvalidPriority
	}
	if req.InvitedByRole == "" {
		req.InvitedByRole = DefaultInviterRole
	}
	if req.InviterCompany == "" {
		req.InviterCompany = DefaultInviterCompany
	}
	if req.TemplateID == "" {
		if req.Type == TypeSMS {
			req.TemplateID = template.DefaultSMSTemplateID
		} else {
			req.TemplateID = template.DefaultEmailTemplateID
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	id := newInvitationID(now)

	referralCode := r.allocateReferralCode(req.InvitedBy, req.InvitedByRole)

	tc := req.TargetCarrier
	tc.Email = email

	inv := &Invitation{
		ID:             id,
		InvitedBy:      req.InvitedBy,
		InvitedByRole:  req.InvitedByRole,
		InviterCompany: req.InviterCompany,
		TargetCarrier:  tc,
		Type:           req.Type,
		Status:         StatusSent,
		SentDate:       now,
		ExpiresDate:    now.Add(r.ttl),
		InvitationLink: BuildLink(r.baseURL, id, tc),
		CustomMessage:  req.CustomMessage,
		TemplateUsed:   req.TemplateID,
		Source:         req.Source,
		Metadata: Metadata{
			ReferralCode:  referralCode,
			PrefilledData: req.PrefilledData,
			Incentives:    req.Incentives,
			Priority:      req.Priority,
		},
	}

	r.records[id] = inv
	r.byReferral[referralCode] = id
	r.order = append(r.order, id)

	log.Info().
		Str("invitation_id", id).
		Str("referral_code", referralCode).
		Str("invited_by", inv.InvitedBy).
		Str("carrier", tc.CompanyName).
		Str("source", string(inv.Source)).
		Msg("Invitation created")

	return inv.clone(), nil
}

// allocateReferralCode hands out the next sequence number and regenerates on
// the off chance a code is already taken (possible when two inviters share a
// role prefix and initials and the sequence wraps). Caller holds the write lock.
func (r *Repository) allocateReferralCode(inviterName, role string) string {
	for {
		r.nextSeq++
		code := ReferralCode(inviterName, role, r.nextSeq)
		if _, taken := r.byReferral[code]; !taken {
			return code
		}
	}
}

// Get returns the invitation with the given id.
func (r *Repository) Get(id string) (*Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	inv, ok := r.records[id]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	return inv.clone(), nil
}

// ListAll returns every invitation, most recently sent first.
func (r *Repository) ListAll() []*Invitation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(*Invitation) bool { return true })
}

// ListByStatus returns invitations currently in the given status,
// most recently sent first.
func (r *Repository) ListByStatus(status Status) []*Invitation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(inv *Invitation) bool { return inv.Status == status })
}

// ListByInviter returns invitations created by the given inviter,
// most recently sent first.
func (r *Repository) ListByInviter(name string) []*Invitation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.listLocked(func(inv *Invitation) bool { return inv.InvitedBy == name })
}

// FindByReferralCode resolves a referral code through the insert-time index.
func (r *Repository) FindByReferralCode(code string) (*Invitation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byReferral[code]
	if !ok {
		return nil, ErrInvitationNotFound
	}
	return r.records[id].clone(), nil
}

// Count returns the number of invitations ever created.
func (r *Repository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

// listLocked filters and clones records, sorted by sentDate descending.
// Caller holds at least the read lock.
func (r *Repository) listLocked(keep func(*Invitation) bool) []*Invitation {
	var out []*Invitation
	for _, id := range r.order {
		if inv := r.records[id]; keep(inv) {
			out = append(out, inv.clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SentDate.After(out[j].SentDate)
	})
	return out
}

// newInvitationID combines the creation timestamp with a random suffix.
func newInvitationID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("INV-%d-%s", now.UnixMilli(), suffix)
}
