package invitation

import (
	"net/url"
	"strings"
)

// landingPath is the onboarding page consumed by the portal UI. It reads the
// query parameters to pre-fill the form and to report opened/started events.
const landingPath = "/carrier-landing"

// BuildLink constructs the shareable onboarding URL for an invitation.
// Parameter order is fixed (ref, carrier, mc, dot, email) and absent carrier
// fields are omitted entirely so the link stays short.
func BuildLink(baseURL, invitationID string, tc TargetCarrier) string {
	params := url.Values{}
	params.Set("ref", invitationID)
	if v := strings.TrimSpace(tc.CompanyName); v != "" {
		params.Set("carrier", v)
	}
	if v := strings.TrimSpace(tc.MCNumber); v != "" {
		params.Set("mc", v)
	}
	if v := strings.TrimSpace(tc.DOTNumber); v != "" {
		params.Set("dot", v)
	}
	if v := strings.TrimSpace(tc.Email); v != "" {
		params.Set("email", v)
	}

	return strings.TrimRight(baseURL, "/") + landingPath + "?" + encodeOrdered(params)
}

// encodeOrdered encodes query parameters in the documented order instead of
// url.Values.Encode's alphabetical order, so links are reproducible.
func encodeOrdered(params url.Values) string {
	var b strings.Builder
	for _, key := range []string{"ref", "carrier", "mc", "dot", "email"} {
		if !params.Has(key) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('&')
		}
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(key)))
	}
	return b.String()
}
