package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/employee-directory/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-directory/internal/platform/db/postgres"
)

const (
	uniqueViolationCode = "23505"

	nameUniqueConstraint  = "employees_name_key"
	emailUniqueConstraint = "employees_email_key"
)

// EmployeeRepository は PostgreSQL を利用した従業員永続化の実装です。
// name / email の一意性はテーブルの一意制約で保証されます。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// Create は従業員を新規作成し、採番済みレコードを返します。
func (r *EmployeeRepository) Create(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        INSERT INTO employees (name, email, position, created_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id, name, email, position, created_at
    `,
		e.Name,
		e.Email,
		e.Position,
		e.CreatedAt,
	)

	created, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return created, nil
}

// Update は従業員情報を更新します。id と created_at は変更されません。
func (r *EmployeeRepository) Update(ctx context.Context, e *employee.Employee) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET name = $1,
               email = $2,
               position = $3
         WHERE id = $4
        RETURNING id, name, email, position, created_at
    `,
		e.Name,
		e.Email,
		e.Position,
		e.ID,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return updated, nil
}

// Delete は従業員を削除します。
func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// FindByID は ID で従業員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return found, nil
}

// FindByEmail はメールアドレスで従業員を検索します。email は小文字で
// 保存されるため、完全一致で大文字小文字を区別しない検索になります。
func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE email = $1
         LIMIT 1
    `, email)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return found, nil
}

// FindByName は氏名で従業員を検索します。
func (r *EmployeeRepository) FindByName(ctx context.Context, name string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         WHERE name = $1
         LIMIT 1
    `, name)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translatePgError(err)
	}
	return found, nil
}

// List は従業員の一覧を登録順で取得します。
func (r *EmployeeRepository) List(ctx context.Context) ([]*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, name, email, position, created_at
          FROM employees
         ORDER BY id
    `)
	if err != nil {
		return nil, translatePgError(err)
	}
	defer rows.Close()

	employees := make([]*employee.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, translatePgError(err)
		}
		employees = append(employees, emp)
	}

	if err := rows.Err(); err != nil {
		return nil, translatePgError(err)
	}

	return employees, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id        int64
		name      string
		email     string
		position  string
		createdAt time.Time
	)

	if err := row.Scan(&id, &name, &email, &position, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:        id,
		Name:      name,
		Email:     email,
		Position:  position,
		CreatedAt: createdAt.UTC(),
	}, nil
}

func translatePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		switch pgErr.ConstraintName {
		case nameUniqueConstraint:
			return employee.ErrNameAlreadyExists
		case emailUniqueConstraint:
			return employee.ErrEmailAlreadyExists
		}
	}

	return err
}
