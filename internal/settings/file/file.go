package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/MrJamesThe3rd/budgettracker/internal/settings"
)

// Store persists flags as a flat YAML mapping, e.g.
//
//	isExpensesEmpty: false
//	isIncomesEmpty: true
type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Get(_ context.Context, key settings.Key) (bool, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags, err := s.read()
	if err != nil {
		return false, false, err
	}

	v, ok := flags[string(key)]

	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key settings.Key, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	flags, err := s.read()
	if err != nil {
		return err
	}

	flags[string(key)] = value

	return s.write(flags)
}

func (s *Store) read() (map[string]bool, error) {
	flags := map[string]bool{}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return flags, nil
		}

		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if err := yaml.Unmarshal(data, &flags); err != nil {
		return nil, fmt.Errorf("decoding settings file: %w", err)
	}

	return flags, nil
}

// write replaces the file through a rename so readers never see a partial document.
func (s *Store) write(flags map[string]bool) error {
	data, err := yaml.Marshal(flags)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("creating temp settings file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing settings: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing settings: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing settings file: %w", err)
	}

	return nil
}
