package template

import "time"

// Default template ids referenced by invitation creation.
const (
	DefaultEmailTemplateID = "carrier-invite-email-v1"
	DefaultSMSTemplateID   = "carrier-invite-sms-v1"
)

var seedDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func seedTemplates() []*Template {
	return []*Template{
		{
			ID:      DefaultEmailTemplateID,
			Name:    "Carrier Invitation (Email)",
			Type:    TypeEmail,
			Subject: "{{INVITER_COMPANY}} invited {{COMPANY_NAME}} to haul with LaneLink",
			HTMLContent: `<p>Hi {{CONTACT_NAME}},</p>
<p>{{INVITER_NAME}} at {{INVITER_COMPANY}} invited {{COMPANY_NAME}} to join the LaneLink carrier network.</p>
<p>{{CUSTOM_MESSAGE}}</p>
<p><a href="{{INVITATION_LINK}}">Start your onboarding</a> &mdash; it takes about 10 minutes.</p>
<p>Your referral code is <strong>{{REFERRAL_CODE}}</strong>. This invitation expires on {{EXPIRES_DATE}}.</p>`,
			TextContent: `Hi {{CONTACT_NAME}},

{{INVITER_NAME}} at {{INVITER_COMPANY}} invited {{COMPANY_NAME}} to join the LaneLink carrier network.

{{CUSTOM_MESSAGE}}

Start your onboarding: {{INVITATION_LINK}}

Your referral code is {{REFERRAL_CODE}}. This invitation expires on {{EXPIRES_DATE}}.`,
			Variables: []string{
				"CONTACT_NAME", "COMPANY_NAME", "INVITER_NAME", "INVITER_COMPANY",
				"INVITATION_LINK", "REFERRAL_CODE", "EXPIRES_DATE", "CUSTOM_MESSAGE",
			},
			IsDefault:   true,
			CreatedBy:   "system",
			CreatedDate: seedDate,
		},
		{
			ID:   DefaultSMSTemplateID,
			Name: "Carrier Invitation (SMS)",
			Type: TypeSMS,
			TextContent: `{{INVITER_NAME}} ({{INVITER_COMPANY}}) invited {{COMPANY_NAME}} to join LaneLink. ` +
				`Start here: {{INVITATION_LINK}} (code {{REFERRAL_CODE}}, expires {{EXPIRES_DATE}})`,
			Variables: []string{
				"CONTACT_NAME", "COMPANY_NAME", "INVITER_NAME", "INVITER_COMPANY",
				"INVITATION_LINK", "REFERRAL_CODE", "EXPIRES_DATE",
			},
			IsDefault:   true,
			CreatedBy:   "system",
			CreatedDate: seedDate,
		},
	}
}
