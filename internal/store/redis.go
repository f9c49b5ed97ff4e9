package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/redis/go-redis/v9"
)

// Hash fields of a member document
const (
	fieldName         = "name"
	fieldCar          = "car"
	fieldIsActive     = "isActive"
	fieldValidPayment = "validPayment"
	fieldNotes        = "notes"
)

// RedisGateway keeps each member as a hash at users:<id>.
// The set "users" indexes every id so ReadAll does not need SCAN.
type RedisGateway struct {
	client redis.UniversalClient
}

// NewRedisClient connects to redis and verifies the connection with a ping
func NewRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Addr},
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping 실패: %w", err)
	}

	slog.Info("Redis 연결 성공", "addr", cfg.Addr, "db", cfg.DB)
	return client, nil
}

func NewRedisGateway(client redis.UniversalClient) *RedisGateway {
	return &RedisGateway{
		client: client,
	}
}

func documentKey(id string) string {
	return Collection + ":" + id
}

func (g *RedisGateway) Create(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error) {
	key := documentKey(id)
	fields := map[string]any{
		fieldName:         name,
		fieldCar:          car,
		fieldIsActive:     formatBool(isActive),
		fieldValidPayment: formatBool(validPayment),
		fieldNotes:        notes,
	}

	// Replace the whole hash so stray legacy fields do not survive an overwrite
	_, err := g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fields)
		pipe.SAdd(ctx, Collection, id)
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Error("회원 문서 생성 실패", "id", id, "error", err)
		return "", fmt.Errorf("create member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

func (g *RedisGateway) Read(ctx context.Context, id string) (*model.Member, error) {
	values, err := g.client.HGetAll(ctx, documentKey(id)).Result()
	if err != nil {
		logger.FromContext(ctx).Error("회원 문서 조회 실패", "id", id, "error", err)
		return nil, fmt.Errorf("read member id=%s: %w: %w", id, ErrStore, err)
	}
	if len(values) == 0 {
		return nil, nil
	}

	member := decodeMember(id, values)
	return &member, nil
}

func (g *RedisGateway) ReadAll(ctx context.Context) ([]model.Member, error) {
	ids, err := g.client.SMembers(ctx, Collection).Result()
	if err != nil {
		logger.FromContext(ctx).Error("회원 목록 인덱스 조회 실패", "error", err)
		return nil, fmt.Errorf("read all members: %w: %w", ErrStore, err)
	}
	if len(ids) == 0 {
		return []model.Member{}, nil
	}

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = g.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, id := range ids {
			cmds[i] = pipe.HGetAll(ctx, documentKey(id))
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Error("회원 전체 조회 실패", "error", err)
		return nil, fmt.Errorf("read all members: %w: %w", ErrStore, err)
	}

	members := make([]model.Member, 0, len(ids))
	for i, cmd := range cmds {
		values := cmd.Val()
		// Skip ids whose hash vanished between SMEMBERS and HGETALL
		if len(values) == 0 {
			continue
		}
		members = append(members, decodeMember(ids[i], values))
	}

	return members, nil
}

// ReadByPaymentStatus filters client-side; hashes carry no secondary index.
func (g *RedisGateway) ReadByPaymentStatus(ctx context.Context, validPayment bool) ([]model.Member, error) {
	all, err := g.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(all))
	for _, m := range all {
		if m.ValidPayment == validPayment {
			members = append(members, m)
		}
	}
	return members, nil
}

func (g *RedisGateway) Update(ctx context.Context, id string, patch model.MemberPatch) (string, error) {
	log := logger.FromContext(ctx)
	key := documentKey(id)

	exists, err := g.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error("회원 존재 여부 확인 실패", "id", id, "error", err)
		return "", fmt.Errorf("update member id=%s: %w: %w", id, ErrStore, err)
	}
	if exists == 0 {
		log.Warn("수정할 회원이 존재하지 않습니다", "id", id)
		return "", fmt.Errorf("update member id=%s: %w", id, ErrNotFound)
	}

	fields := patchFields(patch)
	if len(fields) == 0 {
		return id, nil
	}

	if err := g.client.HSet(ctx, key, fields).Err(); err != nil {
		log.Error("회원 문서 수정 실패", "id", id, "error", err)
		return "", fmt.Errorf("update member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

func (g *RedisGateway) Delete(ctx context.Context, id string) (string, error) {
	log := logger.FromContext(ctx)
	key := documentKey(id)

	exists, err := g.client.Exists(ctx, key).Result()
	if err != nil {
		log.Error("회원 존재 여부 확인 실패", "id", id, "error", err)
		return "", fmt.Errorf("delete member id=%s: %w: %w", id, ErrStore, err)
	}
	if exists == 0 {
		log.Warn("삭제할 회원이 존재하지 않습니다", "id", id)
		return "", fmt.Errorf("delete member id=%s: %w", id, ErrNotFound)
	}

	_, err = g.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.SRem(ctx, Collection, id)
		return nil
	})
	if err != nil {
		log.Error("회원 문서 삭제 실패", "id", id, "error", err)
		return "", fmt.Errorf("delete member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

func (g *RedisGateway) HealthCheck(ctx context.Context) error {
	if err := g.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

// decodeMember is the ingestion boundary for redis documents: flags written by
// older clients may be "1", "TRUE" or "yes".
func decodeMember(id string, values map[string]string) model.Member {
	return model.Member{
		ID:           id,
		Name:         values[fieldName],
		Car:          values[fieldCar],
		IsActive:     NormalizeBool(values[fieldIsActive]),
		ValidPayment: NormalizeBool(values[fieldValidPayment]),
		Notes:        values[fieldNotes],
	}
}

func patchFields(patch model.MemberPatch) map[string]any {
	fields := make(map[string]any, 5)
	if patch.Name != nil {
		fields[fieldName] = *patch.Name
	}
	if patch.Car != nil {
		fields[fieldCar] = *patch.Car
	}
	if patch.IsActive != nil {
		fields[fieldIsActive] = formatBool(*patch.IsActive)
	}
	if patch.ValidPayment != nil {
		fields[fieldValidPayment] = formatBool(*patch.ValidPayment)
	}
	if patch.Notes != nil {
		fields[fieldNotes] = *patch.Notes
	}
	return fields
}
