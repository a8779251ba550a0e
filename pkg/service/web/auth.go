package web

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/m-mizutani/medlar/pkg/model"
)

// User is one web account. Passwords are stored as hex-encoded SHA-256
// digests, matching the demo account format.
type User struct {
	Name         string
	Role         string
	PasswordHash string
}

// HashPassword returns the hex-encoded SHA-256 digest of the password
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// DemoUsers returns the built-in demo accounts
func DemoUsers() map[string]User {
	return map[string]User{
		"demo": {
			Name:         "Demo User",
			Role:         "patient",
			PasswordHash: "5e884898da28047151d0e56f8dc6292773603d0d6aabbdd62a11ef721d1542d8", // "password"
		},
		"doctor": {
			Name:         "Dr. Smith",
			Role:         "healthcare_provider",
			PasswordHash: "ef92b778bafe771e89245b89ecbc08a44a4e166c06659911881f383d4473e94f", // "secret123"
		},
		"admin": {
			Name:         "System Admin",
			Role:         "administrator",
			PasswordHash: "240be518fabd2724ddb6f04eeb1da5967448d7e831c08c8fa822809f74c720a9", // "admin2024"
		},
	}
}

// verify checks a username/password pair against the account table
func (s *Server) verify(username, password string) bool {
	user, ok := s.users[username]
	if !ok {
		return false
	}
	return user.PasswordHash == HashPassword(password)
}

// currentUser returns the authenticated username for the request, if any.
// Expired sessions are cleaned up by the session store on access.
func (s *Server) currentUser(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return "", false
	}

	sess, err := s.sessions.Get(model.SessionID(cookie.Value))
	if err != nil {
		return "", false
	}
	return sess.Username, true
}
