package commands

import (
	"errors"
	"fmt"
	"log"

	"github.com/charmbracelet/huh"
	"github.com/mitchellh/go-homedir"

	"github.com/sadopc/routine/internal/env"
	"github.com/sadopc/routine/internal/routine"
	"github.com/sadopc/routine/internal/store"
)

var errNoPassword = errors.New("no password given (use --password or " + env.KeyPassword + ")")

// session is an authenticated, loaded application state.
type session struct {
	store *store.Store
	state *routine.State
}

func (s *session) Close() error {
	return s.store.Close()
}

// openSession loads the environment, passes the password gate and loads the
// routine state. interactive allows prompting for the password.
func openSession(ro *RootOptions, interactive bool) (*session, error) {
	e, loaded, err := env.Load(env.Files()...)
	if err != nil {
		return nil, err
	}
	if ro.Verbose {
		for _, f := range loaded {
			log.Printf("loaded %s", f)
		}
	}

	secret, err := e.Secret()
	if err != nil {
		return nil, err
	}
	password := ro.Password
	if password == "" {
		password = e.Password
	}
	if password == "" {
		if !interactive {
			return nil, errNoPassword
		}
		if password, err = promptPassword("Password"); err != nil {
			return nil, err
		}
	}
	if err := secret.Verify(password); err != nil {
		return nil, err
	}

	path, err := dbPath(ro, e)
	if err != nil {
		return nil, err
	}
	if ro.Verbose {
		log.Printf("database %s", path)
	}

	s, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	st, err := routine.Load(s)
	if err != nil {
		s.Close()
		return nil, err
	}
	return &session{store: s, state: st}, nil
}

func dbPath(ro *RootOptions, e env.Env) (string, error) {
	path := ro.DB
	if path == "" {
		path = e.DBPath
	}
	if path == "" {
		return store.DefaultDBPath()
	}
	return homedir.Expand(path)
}

func promptPassword(title string) (string, error) {
	var password string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password).
		Run()
	if err != nil {
		return "", err
	}
	return password, nil
}
