// Package session persists the staff identity record between runs. The
// record is stored as a signed token so a malformed or tampered file is
// detected on load and treated as logged out.
package session

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// Role identifies which view a staff member works in
type Role string

const (
	RoleWaiter  Role = "waiter"
	RoleKitchen Role = "kitchen"
	RoleManager Role = "manager"
)

// ValidRole reports whether r is a defined staff role.
func ValidRole(r Role) bool {
	switch r {
	case RoleWaiter, RoleKitchen, RoleManager:
		return true
	}
	return false
}

// roleLabels name the default identity per role, used when a staff member
// logs in without a name.
var roleLabels = map[Role]string{
	RoleWaiter:  "Waiter",
	RoleKitchen: "Kitchen",
	RoleManager: "Manager",
}

// User is the persisted identity record
type User struct {
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	LoginTime string `json:"loginTime"`
}

// claims is the token form of the identity record
type claims struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	LoginTime string `json:"loginTime"`
	jwt.StandardClaims
}

// Manager owns the session file and the in-memory current user. Handlers
// call it from concurrent requests, so the record is mutex-guarded.
type Manager struct {
	path   string
	secret []byte

	mu      sync.RWMutex
	current *User
}

// NewManager loads any persisted session from path. Content that does not
// parse or verify is discarded and the user starts logged out.
func NewManager(path, secret string) *Manager {
	m := &Manager{path: path, secret: []byte(secret)}
	m.load()
	return m
}

func (m *Manager) load() {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return
	}

	user, err := m.parse(string(data))
	if err != nil {
		log.Printf("Discarding invalid session record: %v", err)
		os.Remove(m.path)
		return
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
}

func (m *Manager) parse(tokenString string) (*User, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("session token is not valid")
	}
	if !ValidRole(Role(c.Role)) {
		return nil, fmt.Errorf("session has unknown role %q", c.Role)
	}
	return &User{Name: c.Name, Role: Role(c.Role), LoginTime: c.LoginTime}, nil
}

// Login records a staff identity and persists it. An empty name falls back
// to the role's label.
func (m *Manager) Login(name string, role Role) (*User, error) {
	if !ValidRole(role) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	if name == "" {
		name = roleLabels[role]
	}

	user := &User{
		Name:      name,
		Role:      role,
		LoginTime: time.Now().UTC().Format(time.RFC3339),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Name:      user.Name,
		Role:      string(user.Role),
		LoginTime: user.LoginTime,
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	if err := os.WriteFile(m.path, []byte(signed), 0o600); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.current = user
	m.mu.Unlock()
	return user, nil
}

// Logout clears the current identity and removes the persisted record.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()
	os.Remove(m.path)
}

// Current returns the logged-in user, or nil when logged out.
func (m *Manager) Current() *User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
