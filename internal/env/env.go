// Package env reads the session environment: .env files, the database path
// and the password-gate secrets.
package env

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"

	"github.com/sadopc/routine/internal/auth"
)

const (
	KeyDB           = "ROUTINE_DB"
	KeyPasswordHash = "ROUTINE_PASSWORD_HASH"
	KeyPasswordSalt = "ROUTINE_PASSWORD_SALT"
	KeyIterations   = "ROUTINE_PBKDF2_ITERATIONS"
	KeyPassword     = "ROUTINE_PASSWORD"
)

var ErrMissingSecrets = errors.New("password secrets are not configured (set " +
	KeyPasswordHash + " and " + KeyPasswordSalt + ")")

type Env struct {
	DBPath       string
	PasswordHash string
	PasswordSalt string
	Iterations   string
	Password     string
}

// Files lists the .env candidates in load order: the working directory, then
// the user config directory. Earlier files win.
func Files() []string {
	files := []string{".env"}
	if dir, err := configDir(); err == nil {
		files = append(files, filepath.Join(dir, "routine", ".env"))
	}
	return files
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir, nil
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config"), nil
}

// Load reads the existing files among paths into the process environment,
// never overriding variables that are already set, then returns the
// resulting Env. It reports which files were loaded.
func Load(paths ...string) (Env, []string, error) {
	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return Env{}, loaded, fmt.Errorf("load %s: %w", p, err)
		}
		loaded = append(loaded, p)
	}
	e, err := Read()
	return e, loaded, err
}

// Read returns the Env from the process environment. DBPath has ~ expanded.
func Read() (Env, error) {
	db, err := homedir.Expand(strings.TrimSpace(os.Getenv(KeyDB)))
	if err != nil {
		return Env{}, fmt.Errorf("expand %s: %w", KeyDB, err)
	}
	return Env{
		DBPath:       db,
		PasswordHash: strings.TrimSpace(os.Getenv(KeyPasswordHash)),
		PasswordSalt: strings.TrimSpace(os.Getenv(KeyPasswordSalt)),
		Iterations:   strings.TrimSpace(os.Getenv(KeyIterations)),
		Password:     os.Getenv(KeyPassword),
	}, nil
}

// Secret parses the configured verifier. Missing hash or salt is
// ErrMissingSecrets.
func (e Env) Secret() (auth.Secret, error) {
	if e.PasswordHash == "" || e.PasswordSalt == "" {
		return auth.Secret{}, ErrMissingSecrets
	}
	return auth.ParseSecret(e.PasswordHash, e.PasswordSalt, e.Iterations)
}

// Lines renders a secret as .env assignments.
func Lines(s auth.Secret) []string {
	hash, salt, it := s.Encode()
	return []string{
		KeyPasswordHash + "=" + hash,
		KeyPasswordSalt + "=" + salt,
		KeyIterations + "=" + it,
	}
}
