package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUseCase struct {
	createFn func(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error)
	getFn    func(ctx context.Context, id int64) (*employee.Employee, error)
	listFn   func(ctx context.Context) ([]*employee.Employee, error)
	updateFn func(ctx context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (s *stubUseCase) CreateEmployee(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
	return s.createFn(ctx, in)
}

func (s *stubUseCase) GetEmployee(ctx context.Context, id int64) (*employee.Employee, error) {
	return s.getFn(ctx, id)
}

func (s *stubUseCase) ListEmployees(ctx context.Context) ([]*employee.Employee, error) {
	return s.listFn(ctx)
}

func (s *stubUseCase) UpdateEmployee(ctx context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
	return s.updateFn(ctx, in)
}

func (s *stubUseCase) DeleteEmployee(ctx context.Context, id int64) error {
	return s.deleteFn(ctx, id)
}

func sampleEmployee() *employee.Employee {
	return &employee.Employee{
		ID:        1,
		Name:      "Ann Lee",
		Email:     "ann@x.com",
		Position:  "Engineer",
		CreatedAt: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func performRequest(t *testing.T, svc employee.UseCase, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	router := NewRouter(svc)
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var decoded map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response body %q: %v", rec.Body.String(), err)
	}
	return decoded
}

func TestEmployeeHandler_List(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{listFn: func(ctx context.Context) ([]*employee.Employee, error) {
		return []*employee.Employee{sampleEmployee()}, nil
	}}

	rec := performRequest(t, svc, http.MethodGet, "/api/employees", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Error("expected success true")
	}
	if body["count"] != float64(1) {
		t.Errorf("expected count 1, got %v", body["count"])
	}

	data := body["data"].([]any)
	first := data[0].(map[string]any)
	if first["email"] != "ann@x.com" {
		t.Errorf("unexpected email %v", first["email"])
	}
	if first["created_at"] != "2025-03-01T09:00:00Z" {
		t.Errorf("unexpected created_at %v", first["created_at"])
	}
}

func TestEmployeeHandler_Create_Success(t *testing.T) {
	t.Parallel()

	var gotInput employee.CreateEmployeeInput
	svc := &stubUseCase{createFn: func(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
		gotInput = in
		return sampleEmployee(), nil
	}}

	rec := performRequest(t, svc, http.MethodPost, "/api/employees",
		`{"name":"Ann Lee","email":"ann@x.com","position":"Engineer"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotInput.Name != "Ann Lee" {
		t.Errorf("unexpected input forwarded: %+v", gotInput)
	}

	body := decodeBody(t, rec)
	if body["message"] != "Employee created successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestEmployeeHandler_Create_ValidationErrors(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{createFn: func(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
		return nil, &employee.ValidationError{Violations: []employee.FieldViolation{
			{Field: "name", Message: "Name is required and cannot be empty"},
			{Field: "email", Message: "Invalid email format"},
		}}
	}}

	rec := performRequest(t, svc, http.MethodPost, "/api/employees",
		`{"name":"","email":"bad","position":"Engineer"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["success"] != false {
		t.Error("expected success false")
	}
	errs := body["errors"].([]any)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	first := errs[0].(map[string]any)
	if first["field"] != "name" {
		t.Errorf("expected first error on name, got %v", first["field"])
	}
	if _, hasSingle := body["error"]; hasSingle {
		t.Error("validation response must not carry a single error message")
	}
}

func TestEmployeeHandler_Create_Conflict(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{createFn: func(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
		return nil, &employee.NameConflictError{Name: "Ann Lee", Position: "Engineer"}
	}}

	rec := performRequest(t, svc, http.MethodPost, "/api/employees",
		`{"name":"Ann Lee","email":"other@x.com","position":"Manager"}`)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	msg, _ := body["error"].(string)
	if !strings.Contains(msg, `Employee "Ann Lee" already exists with position "Engineer"`) {
		t.Errorf("unexpected conflict message %q", msg)
	}
	if _, hasList := body["errors"]; hasList {
		t.Error("conflict response must not carry a violations list")
	}
}

func TestEmployeeHandler_Create_NoBody(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{createFn: func(ctx context.Context, in employee.CreateEmployeeInput) (*employee.Employee, error) {
		t.Fatal("service must not be called without a body")
		return nil, nil
	}}

	rec := performRequest(t, svc, http.MethodPost, "/api/employees", "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "No data provided" {
		t.Errorf("unexpected error message %v", body["error"])
	}
}

func TestEmployeeHandler_Get_NotFound(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{getFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
		return nil, employee.ErrEmployeeNotFound
	}}

	rec := performRequest(t, svc, http.MethodGet, "/api/employees/99", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Employee not found" {
		t.Errorf("unexpected error message %v", body["error"])
	}
}

func TestEmployeeHandler_Get_NonIntegerID(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{getFn: func(ctx context.Context, id int64) (*employee.Employee, error) {
		t.Fatal("service must not be called for a non-integer id")
		return nil, nil
	}}

	rec := performRequest(t, svc, http.MethodGet, "/api/employees/abc", "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestEmployeeHandler_Update_Success(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{updateFn: func(ctx context.Context, in employee.UpdateEmployeeInput) (*employee.Employee, error) {
		if in.ID != 1 {
			t.Errorf("expected id 1, got %d", in.ID)
		}
		updated := sampleEmployee()
		updated.Position = in.Position
		return updated, nil
	}}

	rec := performRequest(t, svc, http.MethodPut, "/api/employees/1",
		`{"name":"Ann Lee","email":"ann@x.com","position":"Staff Engineer"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Employee updated successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Parallel()

	deleted := map[int64]bool{}
	svc := &stubUseCase{deleteFn: func(ctx context.Context, id int64) error {
		if deleted[id] {
			return employee.ErrEmployeeNotFound
		}
		deleted[id] = true
		return nil
	}}

	rec := performRequest(t, svc, http.MethodDelete, "/api/employees/1", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != "Employee deleted successfully" {
		t.Errorf("unexpected message %v", body["message"])
	}

	rec = performRequest(t, svc, http.MethodDelete, "/api/employees/1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on second delete, got %d", rec.Code)
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	svc := &stubUseCase{}
	rec := performRequest(t, svc, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
