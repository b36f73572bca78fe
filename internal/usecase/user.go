package usecase

import (
	"bookreview/internal/entity"
	"context"
)

//go:generate mockgen -source=user.go -destination=../store/mocks/user_mock.go -package=mocks

type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByUsername(ctx context.Context, username string) (entity.User, error)
}
