package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

func testEmployees() []api.Employee {
	return []api.Employee{
		{ID: 1, Name: "charlie", Email: "charlie@x.com", Position: "Engineer"},
		{ID: 2, Name: "Alice", Email: "alice@x.com", Position: "Manager"},
		{ID: 3, Name: "bob", Email: "bob@x.com", Position: "UX Designer"},
	}
}

func namesOf(employees []api.Employee) []string {
	names := make([]string, 0, len(employees))
	for _, e := range employees {
		names = append(names, e.Name)
	}
	return names
}

func TestState_ToggleSort_SameColumnFlipsDirection(t *testing.T) {
	t.Parallel()

	s := &State{Employees: testEmployees()}

	s.ToggleSort("name")
	if s.Sort.Column != "name" || s.Sort.Direction != Ascending {
		t.Fatalf("expected name asc, got %+v", s.Sort)
	}

	asc := namesOf(s.Visible())
	if strings.Join(asc, ",") != "Alice,bob,charlie" {
		t.Errorf("unexpected ascending order: %v", asc)
	}

	s.ToggleSort("name")
	if s.Sort.Direction != Descending {
		t.Fatalf("expected descending after second toggle, got %+v", s.Sort)
	}

	desc := namesOf(s.Visible())
	if strings.Join(desc, ",") != "charlie,bob,Alice" {
		t.Errorf("unexpected descending order: %v", desc)
	}

	s.ToggleSort("name")
	if s.Sort.Direction != Ascending {
		t.Fatalf("expected ascending after third toggle, got %+v", s.Sort)
	}
}

func TestState_ToggleSort_NewColumnResetsToAscending(t *testing.T) {
	t.Parallel()

	s := &State{Employees: testEmployees()}
	s.ToggleSort("name")
	s.ToggleSort("name")
	s.ToggleSort("position")

	if s.Sort.Column != "position" || s.Sort.Direction != Ascending {
		t.Fatalf("expected position asc, got %+v", s.Sort)
	}
}

func TestSortEmployees_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	employees := testEmployees()
	_ = SortEmployees(employees, SortState{Column: "name", Direction: Ascending})

	if employees[0].Name != "charlie" {
		t.Errorf("input slice was mutated: %v", namesOf(employees))
	}
}

func TestFilter_CaseInsensitiveAcrossFields(t *testing.T) {
	t.Parallel()

	employees := testEmployees()

	byPosition := Filter(employees, "ENG")
	if len(byPosition) != 1 || byPosition[0].Name != "charlie" {
		t.Errorf("expected engineer match, got %v", namesOf(byPosition))
	}

	byEmail := Filter(employees, "Alice@")
	if len(byEmail) != 1 || byEmail[0].Name != "Alice" {
		t.Errorf("expected email match, got %v", namesOf(byEmail))
	}

	all := Filter(employees, "  ")
	if len(all) != 3 {
		t.Errorf("expected empty query to return all, got %d", len(all))
	}
}

func TestFilter_UnaffectedBySortOrder(t *testing.T) {
	t.Parallel()

	s := &State{Employees: testEmployees(), Query: "eng"}

	s.ToggleSort("name")
	ascMatch := namesOf(s.Visible())
	s.ToggleSort("name")
	descMatch := namesOf(s.Visible())

	if len(ascMatch) != 1 || len(descMatch) != 1 || ascMatch[0] != descMatch[0] {
		t.Errorf("search results changed with sort order: %v vs %v", ascMatch, descMatch)
	}
}

func TestIsSortableColumn(t *testing.T) {
	t.Parallel()

	for _, column := range SortableColumns() {
		if !IsSortableColumn(column) {
			t.Errorf("expected %q to be sortable", column)
		}
	}
	if IsSortableColumn("id") {
		t.Error("id must not be sortable")
	}
}

func TestRenderTable_ShowsSortIndicator(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	employees := []api.Employee{
		{ID: 1, Name: "Ann Lee", Email: "ann@x.com", Position: "Engineer", CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)},
	}

	RenderTable(&buf, employees, SortState{Column: "name", Direction: Descending}, ThemeLight)

	out := buf.String()
	if !strings.Contains(out, "NAME ▼") {
		t.Errorf("expected descending indicator on NAME, got:\n%s", out)
	}
	if !strings.Contains(out, "ann@x.com") {
		t.Errorf("expected employee row, got:\n%s", out)
	}
	if !strings.Contains(out, "2025-03-01") {
		t.Errorf("expected created date, got:\n%s", out)
	}
}

func TestRenderTable_EmptyList(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	RenderTable(&buf, nil, SortState{}, ThemeLight)

	if !strings.Contains(buf.String(), "(no employees)") {
		t.Errorf("expected empty placeholder, got:\n%s", buf.String())
	}
}

func TestRenderTable_DarkThemeUsesANSI(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	RenderTable(&buf, nil, SortState{}, ThemeDark)

	if !strings.Contains(buf.String(), "\x1b[1;36m") {
		t.Error("expected ANSI header in dark theme")
	}
}
