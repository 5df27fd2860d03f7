package repository

import (
	"context"

	"github.com/tinoe0404/eTuckshop-sub000/internal/domain/model"
)

// UserRepository describes persistence operations for customers.
type UserRepository interface {
	Create(ctx context.Context, phone, name, pinHash string) (*model.User, error)
	GetByPhone(ctx context.Context, phone string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}
