package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormGateway keeps member documents in the relational database (Oracle, SQLite).
type GormGateway struct {
	db *gorm.DB
}

func NewGormGateway(db *gorm.DB) *GormGateway {
	return &GormGateway{
		db: db,
	}
}

func (g *GormGateway) Create(ctx context.Context, id, name, car string, isActive, validPayment bool, notes string) (string, error) {
	member := model.NewMember(id, name, car, isActive, validPayment, notes)

	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(member).Error
	if err != nil {
		logger.FromContext(ctx).Error("회원 문서 생성 실패", "id", id, "error", err)
		return "", fmt.Errorf("create member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

func (g *GormGateway) Read(ctx context.Context, id string) (*model.Member, error) {
	var member model.Member
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.FromContext(ctx).Error("회원 문서 조회 실패", "id", id, "error", err)
		return nil, fmt.Errorf("read member id=%s: %w: %w", id, ErrStore, err)
	}

	return &member, nil
}

func (g *GormGateway) ReadAll(ctx context.Context) ([]model.Member, error) {
	var members []model.Member
	if err := g.db.WithContext(ctx).Find(&members).Error; err != nil {
		logger.FromContext(ctx).Error("회원 전체 조회 실패", "error", err)
		return nil, fmt.Errorf("read all members: %w: %w", ErrStore, err)
	}

	return members, nil
}

func (g *GormGateway) ReadByPaymentStatus(ctx context.Context, validPayment bool) ([]model.Member, error) {
	var members []model.Member
	err := g.db.WithContext(ctx).
		Where("valid_payment = ?", validPayment).
		Find(&members).Error
	if err != nil {
		logger.FromContext(ctx).Error("결제 상태별 회원 조회 실패", "valid_payment", validPayment, "error", err)
		return nil, fmt.Errorf("read members by payment status=%t: %w: %w", validPayment, ErrStore, err)
	}

	return members, nil
}

// Update probes for the document before patching it. A delete landing between
// the probe and the patch is not guarded against.
func (g *GormGateway) Update(ctx context.Context, id string, patch model.MemberPatch) (string, error) {
	log := logger.FromContext(ctx)

	exists, err := g.isExist(ctx, id)
	if err != nil {
		log.Error("회원 존재 여부 확인 실패", "id", id, "error", err)
		return "", fmt.Errorf("update member id=%s: %w: %w", id, ErrStore, err)
	}
	if !exists {
		log.Warn("수정할 회원이 존재하지 않습니다", "id", id)
		return "", fmt.Errorf("update member id=%s: %w", id, ErrNotFound)
	}

	if patch.IsEmpty() {
		return id, nil
	}

	err = g.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Updates(patch.Columns()).Error
	if err != nil {
		log.Error("회원 문서 수정 실패", "id", id, "error", err)
		return "", fmt.Errorf("update member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

// Delete has the same probe-then-write window as Update.
func (g *GormGateway) Delete(ctx context.Context, id string) (string, error) {
	log := logger.FromContext(ctx)

	exists, err := g.isExist(ctx, id)
	if err != nil {
		log.Error("회원 존재 여부 확인 실패", "id", id, "error", err)
		return "", fmt.Errorf("delete member id=%s: %w: %w", id, ErrStore, err)
	}
	if !exists {
		log.Warn("삭제할 회원이 존재하지 않습니다", "id", id)
		return "", fmt.Errorf("delete member id=%s: %w", id, ErrNotFound)
	}

	if err := g.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Member{}).Error; err != nil {
		log.Error("회원 문서 삭제 실패", "id", id, "error", err)
		return "", fmt.Errorf("delete member id=%s: %w: %w", id, ErrStore, err)
	}

	return id, nil
}

func (g *GormGateway) HealthCheck(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return fmt.Errorf("데이터베이스 인스턴스 가져오기 실패: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStore, err)
	}
	return nil
}

func (g *GormGateway) isExist(ctx context.Context, id string) (bool, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&model.Member{}).
		Where("id = ?", id).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
