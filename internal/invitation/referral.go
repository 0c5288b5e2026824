package invitation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// referralCodeRegex matches the generated format: {ROLE3}-{INITIALS}-{SEQ:03}.
var referralCodeRegex = regexp.MustCompile(`^[A-Z]{3}-[A-Z]+-\d{3,}$`)

// ReferralCode derives a short human-readable code from the inviter's role
// and the initials of each whitespace-separated token of their name, plus a
// zero-padded sequence number: BRO-JS-007. Uniqueness is enforced by the
// repository, not here; the sequence number is only a recommendation.
func ReferralCode(inviterName, role string, seq int) string {
	return fmt.Sprintf("%s-%s-%03d", rolePrefix(role), initials(inviterName), seq)
}

// ValidReferralCodeFormat reports whether s matches the generated format.
func ValidReferralCodeFormat(s string) bool {
	return referralCodeRegex.MatchString(s)
}

func rolePrefix(role string) string {
	letters := make([]rune, 0, 3)
	for _, r := range strings.TrimSpace(role) {
		if unicode.IsLetter(r) {
			letters = append(letters, unicode.ToUpper(r))
		}
		if len(letters) == 3 {
			break
		}
	}
	// Short or empty roles are padded so the code always scans as three
	// letters, a group of initials, and a sequence.
	for len(letters) < 3 {
		letters = append(letters, 'X')
	}
	return string(letters)
}

func initials(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		for _, r := range token {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
			}
			break
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}
