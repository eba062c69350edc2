package view

import (
	"sort"
	"strings"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

// Direction はソート方向です。
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// SortState は現在のソート列と方向です。Column が空の場合は
// ストアの並び順のまま表示します。
type SortState struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// State は表示側が保持するアプリケーション状態です。従業員一覧の
// 写しと検索・ソート状態をひとつのオブジェクトにまとめます。
type State struct {
	Employees []api.Employee
	Query     string
	Sort      SortState
}

// SetEmployees は一覧を差し替えます。サーバーから取得した並び順が基準です。
func (s *State) SetEmployees(employees []api.Employee) {
	s.Employees = employees
}

// ToggleSort はソート列を切り替えます。同じ列なら方向を反転し、
// 別の列なら昇順から始めます。
func (s *State) ToggleSort(column string) {
	if s.Sort.Column == column {
		if s.Sort.Direction == Ascending {
			s.Sort.Direction = Descending
		} else {
			s.Sort.Direction = Ascending
		}
		return
	}
	s.Sort = SortState{Column: column, Direction: Ascending}
}

// Visible は検索とソートを適用した表示用の行を返します。元の一覧は
// 変更されません。
func (s *State) Visible() []api.Employee {
	return SortEmployees(Filter(s.Employees, s.Query), s.Sort)
}

// Filter は名前・メール・役職に対する大文字小文字を区別しない部分
// 一致で絞り込みます。空のクエリは全件を返します。
func Filter(employees []api.Employee, query string) []api.Employee {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		result := make([]api.Employee, len(employees))
		copy(result, employees)
		return result
	}

	result := make([]api.Employee, 0, len(employees))
	for _, e := range employees {
		if strings.Contains(strings.ToLower(e.Name), query) ||
			strings.Contains(strings.ToLower(e.Email), query) ||
			strings.Contains(strings.ToLower(e.Position), query) {
			result = append(result, e)
		}
	}
	return result
}

// SortEmployees は一覧のコピーを大文字小文字を区別しない辞書順で
// 並べ替えます。
func SortEmployees(employees []api.Employee, sortState SortState) []api.Employee {
	result := make([]api.Employee, len(employees))
	copy(result, employees)

	if sortState.Column == "" {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		a := strings.ToLower(fieldValue(result[i], sortState.Column))
		b := strings.ToLower(fieldValue(result[j], sortState.Column))
		if sortState.Direction == Descending {
			return a > b
		}
		return a < b
	})

	return result
}

// SortableColumns はソート可能な列名です。
func SortableColumns() []string {
	return []string{"name", "email", "position"}
}

// IsSortableColumn は column がソート可能か判定します。
func IsSortableColumn(column string) bool {
	for _, c := range SortableColumns() {
		if c == column {
			return true
		}
	}
	return false
}

func fieldValue(e api.Employee, column string) string {
	switch column {
	case "name":
		return e.Name
	case "email":
		return e.Email
	case "position":
		return e.Position
	default:
		return ""
	}
}
