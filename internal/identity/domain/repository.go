package domain

import "context"

type UserRepository interface {
	Save(ctx context.Context, user *User) error
	// GetByUsername 用户不存在时返回 (nil, nil)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}
