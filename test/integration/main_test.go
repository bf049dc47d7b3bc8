package integration_test

import (
	"testing"

	"greentech_backend/test/helpers"
)

// setup starts a server on a clean database; it skips without TEST_DATABASE_URL.
func setup(t *testing.T) *helpers.TestServer {
	t.Helper()
	ts := helpers.NewTestServer(t)
	ts.ClearTables(t)
	t.Cleanup(ts.Close)
	return ts
}
