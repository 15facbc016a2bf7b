package appstate

import (
	"os"
	"path/filepath"
	"testing"

	"budgetctl/pkg/i18n"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	st, err := Load(filepath.Join(t.TempDir(), "state.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if st.Theme != "system" || st.Language != i18n.English {
		t.Errorf("unexpected defaults: %+v", st)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	st, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	st.Theme = "dark"
	st.Language = i18n.Polish
	st.LastServer = "http://localhost:8080"
	st.LastTemplate = "my bank"
	if err := st.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if loaded.Theme != "dark" || loaded.Language != i18n.Polish {
		t.Errorf("roundtrip lost values: %+v", loaded)
	}
	// Session-only fields never reach the file.
	if loaded.LastServer != "" || loaded.LastTemplate != "" {
		t.Errorf("session fields must not persist: %+v", loaded)
	}
}

func TestLoadIgnoresUnknownValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	content := "theme: neon\nlanguage: xx\nextra_key: dropped\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	st, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	// Unknown values fall back to defaults instead of erroring.
	if st.Theme != "system" || st.Language != i18n.English {
		t.Errorf("unknown values should be dropped: %+v", st)
	}
}
