package employee

import "context"

// Repository は従業員永続化の抽象です。実装は name / email の一意制約を
// ストア側で保証し、違反を ErrNameAlreadyExists / ErrEmailAlreadyExists に
// 変換して返します。
type Repository interface {
	Create(ctx context.Context, employee *Employee) (*Employee, error)
	Update(ctx context.Context, employee *Employee) (*Employee, error)
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindByName(ctx context.Context, name string) (*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
}
