// Package store owns the flat JSON files the monitor keeps between runs:
// the identifier registry and the account store, plus the line-delimited
// source list they are derived from. Each file is read fully at the start
// of a run and rewritten wholesale at the end.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"wechat-monitor/internal/domain/model"
)

// Configuration and persistence errors. The first two abort a run before
// anything is persisted.
var (
	ErrSourceListMissing = errors.New("source list file is missing")
	ErrSourceListEmpty   = errors.New("source list file has no identifiers")
	ErrMalformedAccounts = errors.New("account store is not a JSON object")
)

// Store reads and writes the monitor's state files.
type Store struct {
	sourcePath   string
	registryPath string
	accountsPath string
}

// New builds a Store over the three state file paths.
func New(sourcePath, registryPath, accountsPath string) *Store {
	return &Store{
		sourcePath:   sourcePath,
		registryPath: registryPath,
		accountsPath: accountsPath,
	}
}

// ReadSourceList returns the raw lines of the source list. A missing file
// or a file with no non-blank content is a configuration error.
func (s *Store) ReadSourceList() ([]string, error) {
	data, err := os.ReadFile(s.sourcePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceListMissing, s.sourcePath)
		}
		return nil, fmt.Errorf("read source list: %w", err)
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	for _, line := range lines {
		if strings.TrimSpace(strings.ReplaceAll(line, "\uFEFF", "")) != "" {
			return lines, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSourceListEmpty, s.sourcePath)
}

// LoadAccounts reads the account store. A missing file means a first run
// and yields an empty store; malformed content is a configuration error so
// the run aborts instead of clobbering state it could not read.
func (s *Store) LoadAccounts() (model.AccountStore, error) {
	data, err := os.ReadFile(s.accountsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AccountStore{}, nil
		}
		return nil, fmt.Errorf("read account store: %w", err)
	}

	accounts := model.AccountStore{}
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedAccounts, err)
	}
	if accounts == nil {
		accounts = model.AccountStore{}
	}
	return accounts, nil
}

// SaveAccounts rewrites the account store wholesale.
func (s *Store) SaveAccounts(accounts model.AccountStore) error {
	if err := writeJSON(s.accountsPath, accounts); err != nil {
		return fmt.Errorf("write account store: %w", err)
	}
	return nil
}

// SaveRegistry rewrites the identifier registry wholesale. The registry is
// regenerated from the current source list on every run; prior contents are
// intentionally dropped.
func (s *Store) SaveRegistry(registry model.Registry) error {
	if err := writeJSON(s.registryPath, registry); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

// writeJSON writes v next to path and renames it into place, so a failed
// run never leaves a half-written state file behind.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
