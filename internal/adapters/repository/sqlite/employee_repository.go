package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/employee-directory/internal/core/employee"
	sqlitedrv "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// createdAtLayout は created_at カラムの保存形式です。
const createdAtLayout = time.RFC3339Nano

// EmployeeRepository は SQLite を利用した従業員永続化の実装です。
// 単一ファイル運用向けで、一意性はテーブルの UNIQUE 制約で保証されます。
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

// Create は従業員を新規作成し、採番済みレコードを返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	result, err := r.db.ExecContext(ctx, `
        INSERT INTO employees (name, email, position, created_at)
        VALUES (?, ?, ?, ?)
    `,
		e.Name,
		e.Email,
		e.Position,
		e.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return nil, translateSQLiteError(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: last insert id: %w", err)
	}

	return r.FindByID(ctx, id)
}

// Update は従業員情報を更新します。id と created_at は変更されません。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	result, err := r.db.ExecContext(ctx, `
        UPDATE employees
           SET name = ?, email = ?, position = ?
         WHERE id = ?
    `,
		e.Name,
		e.Email,
		e.Position,
		e.ID,
	)
	if err != nil {
		return nil, translateSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return nil, employee.ErrEmployeeNotFound
	}

	return r.FindByID(ctx, e.ID)
}

// Delete は従業員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return translateSQLiteError(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: rows affected: %w", err)
	}
	if affected == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で従業員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE id = ?
         LIMIT 1
    `, id)
	return scanEmployee(row)
}

// FindByEmail はメールアドレスで従業員を検索します。email は小文字で
// 保存されるため、完全一致で大文字小文字を区別しない検索になります。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE email = ?
         LIMIT 1
    `, email)
	return scanEmployee(row)
}

// FindByName は氏名で従業員を検索します。
func (r *EmployeeRepository) FindByName(ctx context.Context, name string) (*employee.Employee, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE name = ?
         LIMIT 1
    `, name)
	return scanEmployee(row)
}

// List は従業員の一覧を登録順で取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, translateSQLiteError(err)
	}
	defer func() { _ = rows.Close() }()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translateSQLiteError(err)
	}

	return employees, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row rowScanner) (*employee.Employee, error) {
	var (
		id        int64
		name      string
		email     string
		position  string
		createdAt string
	)

	if err := row.Scan(&id, &name, &email, &position, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	parsed, err := time.Parse(createdAtLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("sqlite: parse created_at %q: %w", createdAt, err)
	}

	return &employee.Employee{
		ID:        id,
		Name:      name,
		Email:     email,
		Position:  position,
		CreatedAt: parsed.UTC(),
	}, nil
}

func translateSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var sqliteErr *sqlitedrv.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		msg := err.Error()
		switch {
		case strings.Contains(msg, "employees.name"):
			return employee.ErrNameAlreadyExists
		case strings.Contains(msg, "employees.email"):
			return employee.ErrEmailAlreadyExists
		}
	}

	return err
}
