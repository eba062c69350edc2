package api

import (
	"strings"
)

// ValidationError は 400 応答のフィールド違反リストです。
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// ConflictError は 409 応答の単一メッセージです。
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// NotFoundError は 404 応答です。
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// ConflictField は重複メッセージを表示先フィールドに対応付けます。
// "employee"+"position" を含むメッセージは氏名重複、"email" を含む
// メッセージはメール重複とみなします。どちらでもなければ空文字を返し、
// 呼び出し側は汎用通知として扱います。
func ConflictField(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "employee") && strings.Contains(lower, "position"):
		return "name"
	case strings.Contains(lower, "email"):
		return "email"
	default:
		return ""
	}
}
