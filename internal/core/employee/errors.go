package employee

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmployeeNotFound は従業員が存在しない場合に返却されます。
	ErrEmployeeNotFound = errors.New("employee not found")
	// ErrEmailAlreadyExists はメールアドレス重複時に返却されます。
	ErrEmailAlreadyExists = errors.New("employee with this email already exists")
	// ErrNameAlreadyExists は氏名重複時に返却されます。
	ErrNameAlreadyExists = errors.New("employee name already exists")
	// ErrInvalidID はIDが不正な場合に返却されます。
	ErrInvalidID = errors.New("invalid employee id")
)

// FieldViolation はフィールド単位のバリデーション違反です。
type FieldViolation struct {
	Field   string
	Message string
}

// ValidationError は同時に検出された全フィールド違反を保持します。
// 違反は短絡せずすべて収集されます。
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Message)
	}
	return strings.Join(msgs, "; ")
}

// NameConflictError は氏名重複の詳細を保持します。既存レコードの役職名を
// 含むメッセージを組み立てるため、センチネルとは別に定義しています。
type NameConflictError struct {
	Name     string
	Position string
}

func (e *NameConflictError) Error() string {
	return fmt.Sprintf("Employee %q already exists with position %q. Each employee can only have one position.", e.Name, e.Position)
}

func (e *NameConflictError) Unwrap() error {
	return ErrNameAlreadyExists
}
