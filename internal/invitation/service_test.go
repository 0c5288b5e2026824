package invitation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lanelink/lanelink/internal/email"
	"github.com/lanelink/lanelink/internal/template"
)

// channelSender signals each dispatched payload so tests can wait for the
// background goroutine without sleeping.
type channelSender struct {
	payloads chan email.Payload
}

func newChannelSender() *channelSender {
	return &channelSender{payloads: make(chan email.Payload, 1)}
}

func (s *channelSender) Send(_ context.Context, p email.Payload) (string, error) {
	s.payloads <- p
	return "msg-test", nil
}

func newTestService(sender email.Sender) (*Service, *Repository) {
	repo := newTestRepository()
	return NewService(repo, template.NewStore(), sender), repo
}

func TestService_Send_EmailTypeDispatchesRenderedTemplate(t *testing.T) {
	sender := newChannelSender()
	svc, _ := newTestService(sender)

	req := validRequest()
	req.CustomMessage = "We run your lanes weekly."
	inv, err := svc.Send(req)
	require.NoError(t, err)

	select {
	case p := <-sender.payloads:
		require.Equal(t, "a@b.com", p.To)
		require.Equal(t, "Sam", p.ToName)
		require.Contains(t, p.Subject, "Acme")
		require.Contains(t, p.TextBody, inv.InvitationLink)
		require.Contains(t, p.TextBody, inv.Metadata.ReferralCode)
		require.Contains(t, p.TextBody, "We run your lanes weekly.")
		require.NotContains(t, p.TextBody, "{{")
		require.Equal(t, inv.ID, p.CustomArgs["invitation_id"])
	case <-time.After(2 * time.Second):
		t.Fatal("email was not dispatched")
	}
}

func TestService_Send_LinkTypeSkipsDispatch(t *testing.T) {
	sender := newChannelSender()
	svc, _ := newTestService(sender)

	req := validRequest()
	req.Type = TypeLink
	inv, err := svc.Send(req)
	require.NoError(t, err)
	require.NotEmpty(t, inv.InvitationLink)

	select {
	case <-sender.payloads:
		t.Fatal("link invitations must not dispatch email")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestService_Send_UnknownTemplateRejected(t *testing.T) {
	svc, repo := newTestService(newChannelSender())

	req := validRequest()
	req.TemplateID = "missing-template"
	_, err := svc.Send(req)
	require.ErrorIs(t, err, template.ErrTemplateNotFound)
	require.Zero(t, repo.Count())
}

func TestService_Render_UsesInvitationFields(t *testing.T) {
	svc, _ := newTestService(newChannelSender())

	inv, err := svc.Send(validRequestOfType(TypeLink))
	require.NoError(t, err)

	rendered, err := svc.Render(inv)
	require.NoError(t, err)
	require.Contains(t, rendered.TextContent, inv.InvitationLink)
	require.Contains(t, rendered.Subject, "Acme")
}

func validRequestOfType(t Type) CreateRequest {
	req := validRequest()
	req.Type = t
	return req
}
