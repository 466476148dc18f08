package redisstore

import (
	"context"
	"errors"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/fantasy-matchups/internal/platform/logging"
	"github.com/riskibarqy/fantasy-matchups/internal/usecase"
)

const (
	defaultSnapshotKey = "fantasy-matchups:player-directory:v1"
	defaultSnapshotTTL = time.Hour
)

// snapshotClient is the subset of redis.Cmdable the snapshot needs.
type snapshotClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// PlayerDirectorySnapshot shares the provider's player directory between
// instances. Redis failures are logged and the upstream source is used.
type PlayerDirectorySnapshot struct {
	client snapshotClient
	source usecase.PlayerDirectorySource
	key    string
	ttl    time.Duration
	logger *logging.Logger
}

func NewPlayerDirectorySnapshot(client snapshotClient, source usecase.PlayerDirectorySource, key string, ttl time.Duration, logger *logging.Logger) *PlayerDirectorySnapshot {
	if logger == nil {
		logger = logging.Default()
	}
	if key == "" {
		key = defaultSnapshotKey
	}
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}

	return &PlayerDirectorySnapshot{
		client: client,
		source: source,
		key:    key,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *PlayerDirectorySnapshot) FetchPlayerDirectory(ctx context.Context) (usecase.PlayerDirectory, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	switch {
	case err == nil:
		var directory usecase.PlayerDirectory
		if decodeErr := sonic.Unmarshal(raw, &directory); decodeErr == nil && len(directory) > 0 {
			s.logger.DebugContext(ctx, "player directory served from redis snapshot", "players", len(directory))
			return directory, nil
		} else if decodeErr != nil {
			s.logger.WarnContext(ctx, "decode player directory snapshot failed", "key", s.key, "error", decodeErr)
		}
	case errors.Is(err, redis.Nil):
	default:
		s.logger.WarnContext(ctx, "read player directory snapshot failed", "key", s.key, "error", err)
	}

	directory, err := s.source.FetchPlayerDirectory(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := sonic.Marshal(directory)
	if err != nil {
		s.logger.WarnContext(ctx, "encode player directory snapshot failed", "error", err)
		return directory, nil
	}
	if err := s.client.Set(ctx, s.key, payload, s.ttl).Err(); err != nil {
		s.logger.WarnContext(ctx, "write player directory snapshot failed", "key", s.key, "error", err)
	}

	return directory, nil
}
