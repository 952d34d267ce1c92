package application

import (
	"context"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// PasswordHasher is satisfied by helpers.PasswordHasher.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenIssuer is satisfied by helpers.JWTManager.
type TokenIssuer interface {
	Issue(userID string) (string, time.Time, error)
}

// JobPublisher is satisfied by helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// TaskIndexer is satisfied by the Elasticsearch task index.
type TaskIndexer interface {
	Index(ctx context.Context, t *entity.Task) error
	Remove(ctx context.Context, id string) error
	Search(ctx context.Context, ownerID, q string, size int) ([]string, error)
}
