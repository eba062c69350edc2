package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"github.com/ogurasousui/employee-directory/internal/client/view"
)

// settings はコマンド実行をまたいで保持する表示設定です。
type settings struct {
	Sort  view.SortState `json:"sort"`
	Theme view.Theme     `json:"theme"`
}

// settingsStore は表示設定を JSON ファイルで永続化します。壊れた
// ファイルは既定値として扱います。
type settingsStore struct {
	path string
}

func newSettingsStore(path string) *settingsStore {
	return &settingsStore{path: path}
}

func (s *settingsStore) load() settings {
	loaded := settings{Theme: view.ThemeLight}

	b, err := os.ReadFile(s.path)
	if err != nil {
		return loaded
	}
	if err := json.Unmarshal(b, &loaded); err != nil {
		return settings{Theme: view.ThemeLight}
	}
	if loaded.Theme != view.ThemeDark {
		loaded.Theme = view.ThemeLight
	}
	return loaded
}

func (s *settingsStore) save(value settings) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, b, 0o600)
}
