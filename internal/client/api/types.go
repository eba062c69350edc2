package api

import "time"

// Employee は API が返す従業員レコードです。
type Employee struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Position  string    `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// EmployeeInput は作成・更新リクエストのボディです。
type EmployeeInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Position string `json:"position"`
}

// FieldError はサーバーが返すフィールド単位のバリデーション違反です。
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
