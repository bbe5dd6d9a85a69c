package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// DefaultTimeout 单次数据库操作超时
const DefaultTimeout = 5 * time.Second

// Repo 通用仓储, 每次调用从连接池取连接, 结束即归还
type Repo[T any] struct {
	Db      *gorm.DB
	Timeout time.Duration
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db, Timeout: DefaultTimeout}
}

// WithTx 返回绑定到事务的副本
func (r Repo[T]) WithTx(tx *gorm.DB) Repo[T] {
	return Repo[T]{Db: tx, Timeout: r.Timeout}
}

// session 带超时的会话, 调用方必须 cancel
func (r Repo[T]) session(ctx context.Context) (*gorm.DB, context.CancelFunc) {
	if r.Timeout <= 0 {
		return r.Db.WithContext(ctx), func() {}
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	return r.Db.WithContext(ctx), cancel
}

// IsExist 条件是否命中
func (r Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var count int64
	err := db.Model(new(T)).Where(where, args...).Limit(1).Count(&count).Error
	return count > 0, err
}

// FindByWhere 查询单条, 未命中返回 nil, nil
func (r Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	db, cancel := r.session(ctx)
	defer cancel()

	var item T
	err := db.Where(where, args...).Take(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Transaction 事务, fn 返回错误或 panic 时回滚
func (r Repo[T]) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	db, cancel := r.session(ctx)
	defer cancel()
	return db.Transaction(fn)
}
