package employee

import "time"

// Employee は従業員エンティティです。ID と CreatedAt はストアが設定し、以後変更されません。
type Employee struct {
	ID        int64
	Name      string
	Email     string
	Position  string
	CreatedAt time.Time
}
