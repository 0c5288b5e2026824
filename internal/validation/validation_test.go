package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail_TrimsAndAccepts(t *testing.T) {
	email, err := NormalizeEmail("  sam@acme.com  ")
	require.NoError(t, err)
	require.Equal(t, "sam@acme.com", email)
}

func TestNormalizeEmail_Required(t *testing.T) {
	_, err := NormalizeEmail("   ")
	require.ErrorIs(t, err, ErrEmailRequired)
}

func TestNormalizeEmail_Invalid(t *testing.T) {
	_, err := NormalizeEmail("not-an-address")
	require.ErrorIs(t, err, ErrEmailInvalid)
}

func TestValidMCNumber(t *testing.T) {
	require.True(t, ValidMCNumber(""))
	require.True(t, ValidMCNumber("123456"))
	require.True(t, ValidMCNumber("MC-123456"))
	require.True(t, ValidMCNumber("mc123456"))
	require.False(t, ValidMCNumber("12"))
	require.False(t, ValidMCNumber("MC-ABC"))
}

func TestValidDOTNumber(t *testing.T) {
	require.True(t, ValidDOTNumber(""))
	require.True(t, ValidDOTNumber("1234567"))
	require.False(t, ValidDOTNumber("DOT-123"))
	require.False(t, ValidDOTNumber("123"))
}
