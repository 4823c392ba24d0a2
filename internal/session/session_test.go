package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret"

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.jwt")
}

func TestLoginPersistsAcrossManagers(t *testing.T) {
	path := sessionPath(t)

	m := NewManager(path, testSecret)
	assert.Nil(t, m.Current())

	user, err := m.Login("Alice", RoleWaiter)
	assert.NoError(t, err)
	assert.Equal(t, "Alice", user.Name)
	assert.Equal(t, RoleWaiter, user.Role)
	assert.NotEmpty(t, user.LoginTime)

	// A fresh manager reads the persisted record.
	reloaded := NewManager(path, testSecret)
	current := reloaded.Current()
	assert.NotNil(t, current)
	assert.Equal(t, "Alice", current.Name)
	assert.Equal(t, RoleWaiter, current.Role)
}

func TestLoginDefaultsNameToRoleLabel(t *testing.T) {
	m := NewManager(sessionPath(t), testSecret)

	user, err := m.Login("", RoleKitchen)
	assert.NoError(t, err)
	assert.Equal(t, "Kitchen", user.Name)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	m := NewManager(sessionPath(t), testSecret)

	_, err := m.Login("Bob", "chef")
	assert.Error(t, err)
	assert.Nil(t, m.Current())
}

func TestMalformedRecordIsDiscarded(t *testing.T) {
	path := sessionPath(t)
	assert.NoError(t, os.WriteFile(path, []byte("not a token"), 0o600))

	m := NewManager(path, testSecret)
	assert.Nil(t, m.Current(), "malformed content is treated as logged out")

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "the corrupt record is removed")
}

func TestTamperedRecordIsDiscarded(t *testing.T) {
	path := sessionPath(t)

	m := NewManager(path, testSecret)
	_, err := m.Login("Alice", RoleManager)
	assert.NoError(t, err)

	// A record signed with a different secret must not verify.
	other := NewManager(path, "other-secret")
	assert.Nil(t, other.Current())
}

func TestLogoutClearsRecord(t *testing.T) {
	path := sessionPath(t)

	m := NewManager(path, testSecret)
	_, err := m.Login("Alice", RoleManager)
	assert.NoError(t, err)

	m.Logout()
	assert.Nil(t, m.Current())

	reloaded := NewManager(path, testSecret)
	assert.Nil(t, reloaded.Current())
}

func TestConcurrentAccess(t *testing.T) {
	m := NewManager(sessionPath(t), testSecret)

	// Login, Current and Logout run from concurrent request handlers; this
	// fails under the race detector if the record is unguarded.
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(3)
		go func() {
			defer wg.Done()
			_, err := m.Login("Alice", RoleWaiter)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			if user := m.Current(); user != nil {
				assert.Equal(t, "Alice", user.Name)
			}
		}()
		go func() {
			defer wg.Done()
			m.Logout()
		}()
	}
	wg.Wait()
}
