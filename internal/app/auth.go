package app

import (
	"bufio"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/argon2"
)

const (
	DefaultAuthFile = "auth.secret"
)

// Argon2id parameters (OWASP recommended)
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLen       = 16
)

// Gate is the admin gate: HTTP Basic Auth over either an Argon2id hash
// file (username:hash) or a plain shared passphrase from configuration.
// The hash file wins when both exist. With neither, mutation routes are
// open, which is meant for local development only.
type Gate struct {
	user       string
	hash       []byte
	passphrase string
}

// LoadGate loads credentials from the auth file (AUTH_FILE or
// auth.secret next to the binary), falling back to the configured
// passphrase.
func LoadGate(passphrase string) (*Gate, error) {
	g := &Gate{passphrase: passphrase}

	authFile, err := authFilePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(authFile)
	if err != nil {
		if os.IsNotExist(err) {
			if passphrase != "" {
				logrus.Info("admin gate using shared passphrase from environment")
				return g, nil
			}
			logrus.Warnf("no auth file at %s and no ADMIN_PASSPHRASE set", authFile)
			logrus.Warn("ADMIN ROUTES ARE UNPROTECTED - local development only")
			logrus.Warn("create an auth file with: work-roster hash-password")
			return g, nil
		}
		return nil, fmt.Errorf("failed to read auth file: %w", err)
	}

	// Parse auth file (format: username:hash)
	line := strings.TrimSpace(string(data))
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid auth file format (expected: username:hash)")
	}
	g.user = parts[0]
	g.hash = []byte(parts[1])

	logrus.WithFields(logrus.Fields{"user": g.user, "file": authFile}).Info("admin gate enabled")
	return g, nil
}

// Enabled reports whether any credential source is configured.
func (g *Gate) Enabled() bool {
	return g.hash != nil || g.passphrase != ""
}

// Require is a middleware enforcing the admin gate on next.
func (g *Gate) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !g.Enabled() {
			next(w, r)
			return
		}

		user, pass, ok := r.BasicAuth()
		if ok && g.check(user, pass) {
			next(w, r)
			return
		}

		w.Header().Set("WWW-Authenticate", `Basic realm="Work Roster Admin"`)
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		logrus.WithFields(logrus.Fields{"remote": r.RemoteAddr, "user": user}).Warn("failed auth attempt")
	}
}

func (g *Gate) check(user, pass string) bool {
	if g.hash != nil {
		if subtle.ConstantTimeCompare([]byte(user), []byte(g.user)) != 1 {
			return false
		}
		match, err := VerifyPassword(pass, string(g.hash))
		if err != nil {
			logrus.WithError(err).Error("error verifying password")
			return false
		}
		return match
	}
	// Shared passphrase: identity-free, the username is ignored.
	return subtle.ConstantTimeCompare([]byte(pass), []byte(g.passphrase)) == 1
}

// HashPassword creates an Argon2id hash of the password
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)

	// Encode as: $argon2id$v=19$m=65536,t=1,p=4$salt$hash
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argon2Memory, argon2Time, argon2Threads, b64Salt, b64Hash), nil
}

// VerifyPassword verifies a password against an Argon2id hash
func VerifyPassword(password, hash string) (bool, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("invalid hash format")
	}

	if parts[1] != "argon2id" {
		return false, fmt.Errorf("not an argon2id hash")
	}

	var memory, time, threads uint32
	_, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads)
	if err != nil {
		return false, fmt.Errorf("failed to parse hash parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("failed to decode salt: %w", err)
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("failed to decode hash: %w", err)
	}

	computedHash := argon2.IDKey([]byte(password), salt, time, memory, uint8(threads), uint32(len(decodedHash)))

	return subtle.ConstantTimeCompare(decodedHash, computedHash) == 1, nil
}

func authFilePath() (string, error) {
	if path := os.Getenv("AUTH_FILE"); path != "" {
		return path, nil
	}
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to get executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(execPath), DefaultAuthFile), nil
}

// CreateAuthFile creates an auth.secret file with username and hashed password
func CreateAuthFile(username, password string, overwrite bool) error {
	authFile, err := authFilePath()
	if err != nil {
		return err
	}

	// Check if file exists
	if _, err := os.Stat(authFile); err == nil {
		if !overwrite {
			fmt.Printf("Auth file already exists: %s\n", authFile)
			fmt.Print("Overwrite? (y/N): ")
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n')
			response = strings.TrimSpace(strings.ToLower(response))
			if response != "y" && response != "yes" {
				return fmt.Errorf("aborted")
			}
		}
		// Delete existing file (necessary because we use 0400 read-only)
		if err := os.Remove(authFile); err != nil {
			return fmt.Errorf("failed to remove existing auth file: %w", err)
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// Write to file with format: username:hash (0400 = read-only)
	content := fmt.Sprintf("%s:%s\n", username, hash)
	if err := os.WriteFile(authFile, []byte(content), 0400); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}

	fmt.Printf("Auth file created: %s (mode: 0400 read-only)\n", authFile)
	fmt.Printf("   Username: %s\n", username)
	return nil
}
