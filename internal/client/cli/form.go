package cli

import (
	"regexp"
	"strings"

	"github.com/ogurasousui/employee-directory/internal/client/api"
)

// 送信前の形式チェックに使うパターンです。一意性の判定はサーバーだけが
// 行い、クライアントはサーバーが返した重複エラーを表示するのみです。
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateForm は送信前のローカル検証を行います。必須チェックとメール
// 形式のみを確認し、違反があればネットワーク呼び出しの前に返します。
func ValidateForm(name, email, position string) []api.FieldError {
	var fieldErrors []api.FieldError

	trimmedName := strings.TrimSpace(name)
	trimmedEmail := strings.TrimSpace(email)
	trimmedPosition := strings.TrimSpace(position)

	if trimmedName == "" {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "name", Message: "Name is required and cannot be empty"})
	}
	if trimmedEmail == "" {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "email", Message: "Email is required and cannot be empty"})
	} else if !emailPattern.MatchString(trimmedEmail) {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if trimmedPosition == "" {
		fieldErrors = append(fieldErrors, api.FieldError{Field: "position", Message: "Position is required and cannot be empty"})
	}

	return fieldErrors
}
