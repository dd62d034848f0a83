package main

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shashiranjanraj/dokon/app/store"
	"github.com/shashiranjanraj/dokon/config"
	"github.com/shashiranjanraj/dokon/pkg/logger"
)

// sessionState is what survives between CLI invocations.
type sessionState struct {
	Token string `json:"token"`
}

// boot loads config, builds the store set and restores a persisted token.
// Every command starts here.
func boot() (*store.Stores, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}

	stores := store.New()
	state, err := loadState()
	if err != nil {
		logger.Warn("cli: could not read session state", "error", err)
	}
	if state.Token != "" {
		stores.Session.RestoreToken(state.Token)
	}
	return stores, nil
}

// persistSession writes the current token to STATE_FILE, or deletes the file
// when the session is signed out.
func persistSession(stores *store.Stores) error {
	token := stores.Session.Token()
	if token == "" {
		return clearState()
	}
	return saveState(sessionState{Token: token})
}

func loadState() (sessionState, error) {
	var state sessionState
	raw, err := os.ReadFile(config.StateFile())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return state, nil
		}
		return state, err
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return sessionState{}, err
	}
	return state, nil
}

func saveState(state sessionState) error {
	path := config.StateFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	// 0600: the file holds a bearer token.
	return os.WriteFile(path, raw, 0o600)
}

func clearState() error {
	err := os.Remove(config.StateFile())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
