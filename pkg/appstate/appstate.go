package appstate

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"budgetctl/pkg/i18n"
)

// persistedState is the exact on-disk shape. Only whitelisted keys are
// written; anything else in the file is dropped on the next save.
type persistedState struct {
	Theme    string `yaml:"theme"`
	Language string `yaml:"language"`
}

// State holds the session's UI preferences. Only Theme and Language are
// persisted; the rest lives for the process lifetime and resets on
// restart.
type State struct {
	Theme    string
	Language i18n.Lang

	// In-memory only.
	LastServer   string
	LastTemplate string

	path string
}

// Default returns the state used when nothing was persisted yet.
func Default() *State {
	return &State{Theme: "system", Language: i18n.English}
}

// Path returns the state file location under the user config dir.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "budgetctl", "state.yaml"), nil
}

// Load reads the persisted state from path, falling back to defaults for
// a missing file or any unknown value.
func Load(path string) (*State, error) {
	st := Default()
	st.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return nil, err
	}

	var p persistedState
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse state file: %w", err)
	}

	switch p.Theme {
	case "light", "dark", "system":
		st.Theme = p.Theme
	}
	if i18n.Valid(i18n.Lang(p.Language)) {
		st.Language = i18n.Lang(p.Language)
	}
	return st, nil
}

// Save writes the whitelisted keys back to the state file, creating the
// parent directory when needed.
func (s *State) Save() error {
	if s.path == "" {
		p, err := Path()
		if err != nil {
			return err
		}
		s.path = p
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(persistedState{
		Theme:    s.Theme,
		Language: string(s.Language),
	})
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o644)
}
