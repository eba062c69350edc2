package handler

import (
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
)

// employeeJSON は従業員レコードのワイヤ表現です。
type employeeJSON struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Position  string `json:"position"`
	CreatedAt string `json:"created_at"`
}

// employeePayload は作成・更新リクエストのボディです。
type employeePayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// fieldErrorJSON はフィールド単位のバリデーション違反のワイヤ表現です。
type fieldErrorJSON struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// listResponse / dataResponse / messageResponse / errorResponse /
// validationResponse はレスポンスエンベロープです。errors のリストと
// 単一 error は排他で、クライアントは形で区別します。
type listResponse struct {
	Success bool           `json:"success"`
	Data    []employeeJSON `json:"data"`
	Count   int            `json:"count"`
}

type dataResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    employeeJSON `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type validationResponse struct {
	Success bool             `json:"success"`
	Errors  []fieldErrorJSON `json:"errors"`
}

func toEmployeeJSON(e *employee.Employee) employeeJSON {
	return employeeJSON{
		ID:        e.ID,
		Name:      e.Name,
		Email:     e.Email,
		Position:  e.Position,
		CreatedAt: e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toEmployeeJSONList(employees []*employee.Employee) []employeeJSON {
	result := make([]employeeJSON, 0, len(employees))
	for _, e := range employees {
		result = append(result, toEmployeeJSON(e))
	}
	return result
}
