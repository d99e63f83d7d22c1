package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	store := NewStore(path)
	assert.Equal(t, "", store.Load())

	id := uuid.NewString()
	require.NoError(t, store.Save(id))
	assert.Equal(t, id, store.Load())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"active_session_id":"`+id+`"}`, string(data))

	require.NoError(t, store.Clear())
	assert.Equal(t, "", store.Load())
	require.NoError(t, store.Clear())
}

func TestStoreDiscardsUntrustedContents(t *testing.T) {
	id := uuid.NewString()
	cases := map[string]string{
		"garbage":        "{{{",
		"future version": `{"version":2,"active_session_id":"` + id + `"}`,
		"no version":     `{"active_session_id":"` + id + `"}`,
		"bad id":         `{"version":1,"active_session_id":"../../etc/passwd"}`,
	}
	for name, contents := range cases {
		path := filepath.Join(t.TempDir(), "state.json")
		require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
		assert.Equal(t, "", NewStore(path).Load(), name)
	}
}
