package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_ListEmployees(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/employees" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"data":[{"id":1,"name":"Ann Lee","email":"ann@x.com","position":"Engineer","created_at":"2025-03-01T09:00:00Z"}],"count":1}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	employees, err := client.ListEmployees(context.Background())
	if err != nil {
		t.Fatalf("ListEmployees returned error: %v", err)
	}
	if len(employees) != 1 {
		t.Fatalf("expected 1 employee, got %d", len(employees))
	}
	if employees[0].Email != "ann@x.com" {
		t.Errorf("unexpected email %q", employees[0].Email)
	}
	if employees[0].CreatedAt.IsZero() {
		t.Error("expected created_at to be parsed")
	}
}

func TestClient_CreateEmployee_ValidationError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"errors": []map[string]string{
				{"field": "name", "message": "Name is required and cannot be empty"},
				{"field": "email", "message": "Invalid email format"},
			},
		})
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.CreateEmployee(context.Background(), EmployeeInput{Email: "bad"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %d", len(verr.Fields))
	}
	if verr.Fields[1].Field != "email" {
		t.Errorf("unexpected second field %q", verr.Fields[1].Field)
	}
}

func TestClient_CreateEmployee_Conflict(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"success":false,"error":"Employee with this email already exists"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	_, err := client.CreateEmployee(context.Background(), EmployeeInput{Name: "Ann", Email: "ann@x.com", Position: "Engineer"})

	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.Message != "Employee with this email already exists" {
		t.Errorf("unexpected message %q", conflict.Message)
	}
}

func TestClient_DeleteEmployee_NotFound(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"Employee not found"}`))
	}))
	defer srv.Close()

	client := New(srv.URL)
	err := client.DeleteEmployee(context.Background(), 99)

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New(srv.URL)
	_, err := client.ListEmployees(context.Background())
	if err == nil {
		t.Fatal("expected connectivity error")
	}

	var verr *ValidationError
	var conflict *ConflictError
	if errors.As(err, &verr) || errors.As(err, &conflict) {
		t.Fatalf("connectivity failure must not map to a typed API error: %v", err)
	}
}

func TestConflictField(t *testing.T) {
	t.Parallel()

	nameMsg := `Employee "Ann Lee" already exists with position "Engineer". Each employee can only have one position.`
	if got := ConflictField(nameMsg); got != "name" {
		t.Errorf("expected name, got %q", got)
	}

	if got := ConflictField("Employee with this email already exists"); got != "email" {
		t.Errorf("expected email, got %q", got)
	}

	if got := ConflictField("something else entirely"); got != "" {
		t.Errorf("expected empty mapping, got %q", got)
	}
}
