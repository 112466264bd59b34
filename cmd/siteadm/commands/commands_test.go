package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		dbURL, exportStatus, exportOut = "", "", ""
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestExportRejectsUnknownKind(t *testing.T) {
	_, err := run(t, "export", "users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestExportRejectsUnknownStatus(t *testing.T) {
	_, err := run(t, "export", "sites", "--status", "LOST")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "LOST"`)
}

func TestCheckStatus(t *testing.T) {
	assert.NoError(t, checkStatus("sites", ""))
	assert.NoError(t, checkStatus("submissions", "REJECTED"))
	assert.Error(t, checkStatus("submissions", "approved"))
}

func TestCreateAdminShortPassword(t *testing.T) {
	_, err := run(t, "create-admin", "--email", "admin@example.com", "--password", "123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6")
}

func TestDSNFromFlag(t *testing.T) {
	dbURL = "postgres://localhost/geosites"
	t.Cleanup(func() { dbURL = "" })
	d, err := dsn()
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/geosites", d)
}
