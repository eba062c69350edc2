package activity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// MaxEntries はログに保持する最大件数です。超過した分は古い方から
// 破棄されます。
const MaxEntries = 10

// Type は記録される操作の種別です。
type Type string

const (
	TypeAdded   Type = "added"
	TypeEdited  Type = "edited"
	TypeDeleted Type = "deleted"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// Entry は 1 件の操作履歴です。ID は記録時刻から導出され、重複排除と
// 並び替えに使われます。サーバー側の状態とは独立で、突き合わせは
// 行いません。
type Entry struct {
	ID           int64  `json:"id"`
	Type         Type   `json:"type"`
	EmployeeName string `json:"employeeName"`
	Position     string `json:"position"`
	Timestamp    string `json:"timestamp"`
}

// Log は新しい順に並ぶ追記専用の操作履歴です。変更のたびにファイルへ
// 保存され、起動時に読み戻されます。
type Log struct {
	path    string
	clock   Clock
	entries []Entry
}

// Open は path のログを読み込んで返します。ファイルが存在しない、
// または壊れている場合は空のログとして扱います。
func Open(path string, clock Clock) *Log {
	if clock == nil {
		clock = realClock{}
	}

	l := &Log{path: path, clock: clock}

	b, err := os.ReadFile(path)
	if err != nil {
		return l
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return l
	}
	if len(entries) > MaxEntries {
		entries = entries[:MaxEntries]
	}
	l.entries = entries
	return l
}

// Record は操作を先頭に追記し、上限を超えた分を破棄して保存します。
func (l *Log) Record(t Type, employeeName, position string) error {
	now := l.clock.Now()
	entry := Entry{
		ID:           now.UnixMilli(),
		Type:         t,
		EmployeeName: employeeName,
		Position:     position,
		Timestamp:    now.Format(time.RFC3339),
	}

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > MaxEntries {
		l.entries = l.entries[:MaxEntries]
	}

	return l.persist()
}

// Entries は新しい順の履歴のコピーを返します。
func (l *Log) Entries() []Entry {
	entries := make([]Entry, len(l.entries))
	copy(entries, l.entries)
	return entries
}

func (l *Log) persist() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return err
	}

	b, err := json.MarshalIndent(l.entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(l.path, b, 0o600)
}

// RelativeLabel は記録時刻を now 基準の相対表記に変換します。表示の
// 時点で一度だけ計算され、継続的には更新されません。
func RelativeLabel(timestamp string, now time.Time) string {
	recorded, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		return timestamp
	}

	elapsed := now.Sub(recorded)
	switch {
	case elapsed < time.Minute:
		return "just now"
	case elapsed < time.Hour:
		return fmt.Sprintf("%dm ago", int(elapsed.Minutes()))
	case elapsed < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(elapsed.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(elapsed.Hours()/24))
	}
}
