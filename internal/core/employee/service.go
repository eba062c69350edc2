package employee

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。重複チェックと
// 書き込みを同一トランザクションで実行するために利用します。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const maxFieldLength = 100

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Service は従業員に関するユースケースをまとめます。
type Service struct {
	repo  Repository
	clock Clock
	tx    TransactionManager
}

// UseCase は従業員ユースケースの公開インターフェースです。
type UseCase interface {
	CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error)
	GetEmployee(ctx context.Context, id int64) (*Employee, error)
	ListEmployees(ctx context.Context) ([]*Employee, error)
	UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error
}

// NewService は Service を生成します。
func NewService(repo Repository, clock Clock, tx TransactionManager) *Service {
	if clock == nil {
		clock = realClock{}
	}
	if tx == nil {
		tx = noopTransactionManager{}
	}
	return &Service{repo: repo, clock: clock, tx: tx}
}

// CreateEmployeeInput は従業員作成時の入力です。
type CreateEmployeeInput struct {
	Name     string
	Email    string
	Position string
}

// UpdateEmployeeInput は従業員更新時の入力です。作成時と同じ検証を行い、
// 重複チェックのみ自分自身を除外します。
type UpdateEmployeeInput struct {
	ID       int64
	Name     string
	Email    string
	Position string
}

// CreateEmployee は新しい従業員を作成します。フィールド検証違反は
// ValidationError としてまとめて返し、重複は単一エラーで返します。
func (s *Service) CreateEmployee(ctx context.Context, in CreateEmployeeInput) (*Employee, error) {
	if violations := validateFields(in.Name, in.Email, in.Position); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	name := strings.TrimSpace(in.Name)
	email := normalizeEmail(in.Email)
	position := strings.TrimSpace(in.Position)

	var created *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if err := s.ensureEmailNotExists(txCtx, email, 0); err != nil {
			return err
		}
		if err := s.ensureNameNotExists(txCtx, name, 0); err != nil {
			return err
		}

		emp := &Employee{
			Name:      name,
			Email:     email,
			Position:  position,
			CreatedAt: s.clock.Now(),
		}

		result, err := s.repo.Create(txCtx, emp)
		if err != nil {
			return err
		}

		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateEmployee は従業員情報を更新します。ID と CreatedAt は変更されません。
func (s *Service) UpdateEmployee(ctx context.Context, in UpdateEmployeeInput) (*Employee, error) {
	if in.ID <= 0 {
		return nil, ErrEmployeeNotFound
	}

	var updated *Employee
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, in.ID)
		if err != nil {
			return err
		}

		if violations := validateFields(in.Name, in.Email, in.Position); len(violations) > 0 {
			return &ValidationError{Violations: violations}
		}

		name := strings.TrimSpace(in.Name)
		email := normalizeEmail(in.Email)
		position := strings.TrimSpace(in.Position)

		if err := s.ensureEmailNotExists(txCtx, email, existing.ID); err != nil {
			return err
		}
		if err := s.ensureNameNotExists(txCtx, name, existing.ID); err != nil {
			return err
		}

		existing.Name = name
		existing.Email = email
		existing.Position = position

		result, err := s.repo.Update(txCtx, existing)
		if err != nil {
			return err
		}

		updated = result
		return nil
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

// DeleteEmployee は従業員を削除します。
func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrEmployeeNotFound
	}

	return s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		return s.repo.Delete(txCtx, id)
	})
}

// GetEmployee は ID で従業員を取得します。
func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	if id <= 0 {
		return nil, ErrEmployeeNotFound
	}

	var result *Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		result = found
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}

// ListEmployees は従業員の一覧をストアの並び順で取得します。
func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	var employees []*Employee
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		found, err := s.repo.List(txCtx)
		if err != nil {
			return err
		}
		employees = found
		return nil
	}); err != nil {
		return nil, err
	}

	return employees, nil
}

func (s *Service) ensureEmailNotExists(ctx context.Context, email string, excludeID int64) error {
	found, err := s.repo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if found != nil && found.ID != excludeID {
		return ErrEmailAlreadyExists
	}
	return nil
}

func (s *Service) ensureNameNotExists(ctx context.Context, name string, excludeID int64) error {
	found, err := s.repo.FindByName(ctx, name)
	if err != nil && !errors.Is(err, ErrEmployeeNotFound) {
		return err
	}
	if found != nil && found.ID != excludeID {
		return &NameConflictError{Name: name, Position: found.Position}
	}
	return nil
}

// validateFields は全フィールドを検証し、違反を検出順にすべて返します。
func validateFields(name, email, position string) []FieldViolation {
	var violations []FieldViolation

	trimmedName := strings.TrimSpace(name)
	trimmedEmail := strings.TrimSpace(email)
	trimmedPosition := strings.TrimSpace(position)

	if trimmedName == "" {
		violations = append(violations, FieldViolation{Field: "name", Message: "Name is required and cannot be empty"})
	}
	if trimmedEmail == "" {
		violations = append(violations, FieldViolation{Field: "email", Message: "Email is required and cannot be empty"})
	}
	if trimmedPosition == "" {
		violations = append(violations, FieldViolation{Field: "position", Message: "Position is required and cannot be empty"})
	}

	if trimmedEmail != "" && !emailPattern.MatchString(trimmedEmail) {
		violations = append(violations, FieldViolation{Field: "email", Message: "Invalid email format"})
	}

	if utf8.RuneCountInString(trimmedName) > maxFieldLength {
		violations = append(violations, FieldViolation{Field: "name", Message: "Name must be 100 characters or less"})
	}
	if utf8.RuneCountInString(trimmedPosition) > maxFieldLength {
		violations = append(violations, FieldViolation{Field: "position", Message: "Position must be 100 characters or less"})
	}

	return violations
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
