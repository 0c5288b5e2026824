package invitation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferralCode_Format(t *testing.T) {
	code := ReferralCode("John Smith", "Broker", 7)
	require.Equal(t, "BRO-JS-007", code)
	require.True(t, ValidReferralCodeFormat(code))
}

func TestReferralCode_MultiTokenName(t *testing.T) {
	code := ReferralCode("Mary Jane van Dyke", "dispatcher", 42)
	require.Equal(t, "DIS-MJVD-042", code)
}

func TestReferralCode_ShortRoleIsPadded(t *testing.T) {
	code := ReferralCode("Ana Lopez", "op", 1)
	require.Equal(t, "OPX-AL-001", code)
	require.True(t, ValidReferralCodeFormat(code))
}

func TestReferralCode_LargeSequenceKeepsDigits(t *testing.T) {
	code := ReferralCode("John Smith", "Broker", 1234)
	require.Equal(t, "BRO-JS-1234", code)
	require.True(t, ValidReferralCodeFormat(code))
}

func TestReferralCode_EmptyNameStillScans(t *testing.T) {
	code := ReferralCode("", "Broker", 3)
	require.Equal(t, "BRO-X-003", code)
	require.True(t, ValidReferralCodeFormat(code))
}

func TestValidReferralCodeFormat_Rejects(t *testing.T) {
	require.False(t, ValidReferralCodeFormat("bro-js-007"))
	require.False(t, ValidReferralCodeFormat("BRO-JS"))
	require.False(t, ValidReferralCodeFormat("BRO-js-007"))
	require.False(t, ValidReferralCodeFormat("BR-JS-007"))
}
