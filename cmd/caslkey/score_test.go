package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"caslkey/internal/platform/health"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeApplication(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "application.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestScoreRiskyBooking(t *testing.T) {
	path := writeApplication(t, `
form:
  stayPurpose: Special Occasion
  travelingNearHome: true
  usedSTRBefore: false
  checkInDate: "2026-06-11"
  checkOutDate: "2026-06-14"
`)

	out, err := execute(t, "score", "-f", path, "--today", "2026-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:       84")
	assert.Contains(t, out, "Verified – Review Recommended (70-84)")
	assert.Contains(t, out, "-5  Special occasion/birthday")
	assert.Contains(t, out, "-3  Booking within 48 hours of check-in")
	assert.Contains(t, out, "Warning:")
}

func TestScoreCleanApplication(t *testing.T) {
	path := writeApplication(t, `
form:
  name: Jane Doe
verification:
  reviewCount: 12
  idVerified: true
`)

	out, err := execute(t, "score", "--file", path, "--today", "2026-06-10")
	require.NoError(t, err)
	assert.Contains(t, out, "Score:       100")
	assert.Contains(t, out, "+3  Well-reviewed on platform")
	assert.Contains(t, out, "+5  Verified background check")
}

func TestScoreNoDeductions(t *testing.T) {
	path := writeApplication(t, "form: {}\n")

	out, err := execute(t, "score", "-f", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No deductions applied.")
}

func TestScoreErrors(t *testing.T) {
	t.Run("file flag required", func(t *testing.T) {
		_, err := execute(t, "score")
		require.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := execute(t, "score", "-f", filepath.Join(t.TempDir(), "nope.yaml"))
		require.ErrorContains(t, err, "read application")
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := execute(t, "score", "-f", writeApplication(t, "form: [unterminated"))
		require.ErrorContains(t, err, "parse application")
	})
	t.Run("bad date", func(t *testing.T) {
		_, err := execute(t, "score", "-f", writeApplication(t, "form: {}\n"), "--today", "10/06/2026")
		require.ErrorContains(t, err, "--today")
	})
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "caslkey version "+health.Version+"\n", out)
}
