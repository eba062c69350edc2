package state

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

// SnapshotTTL はキャッシュ済みスナップショットの有効期間です。
const SnapshotTTL = 5 * time.Minute

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Snapshot はローカルに保存する従業員一覧の写しです。サーバーが常に
// 正で、スナップショットは再描画を速くするための使い捨ての投影です。
type Snapshot struct {
	Data      []api.Employee `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// Store はスナップショットを単一の JSON ファイルで管理します。
type Store struct {
	path  string
	clock Clock
}

// NewStore は Store を生成します。
func NewStore(path string, clock Clock) *Store {
	if clock == nil {
		clock = realClock{}
	}
	return &Store{path: path, clock: clock}
}

// Load は有効期限内のスナップショットを返します。ファイルが存在しない、
// 壊れている、または期限切れの場合はキャッシュミスとして扱います。
func (s *Store) Load() ([]api.Employee, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		return nil, false
	}

	var snapshot Snapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, false
	}

	if s.clock.Now().Sub(snapshot.Timestamp) > SnapshotTTL {
		return nil, false
	}

	return snapshot.Data, true
}

// Save はスナップショットを現在時刻付きで保存します。
func (s *Store) Save(employees []api.Employee) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	b, err := json.MarshalIndent(Snapshot{Data: employees, Timestamp: s.clock.Now()}, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(s.path, b, 0o600)
}

// Clear はスナップショットを破棄します。
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
