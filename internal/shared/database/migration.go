package database

import (
	"fmt"
	"log/slog"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/config"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"

	"gorm.io/gorm"
)

// Models returns every model managed by migrations.
// 중요: 의존성 순서대로 (FK 참조 순서)
func Models(cfg *config.Config) []interface{} {
	models := []interface{}{
		&model.Operator{},
	}
	// Member records live in redis when STORE_DRIVER=redis
	if cfg.Store.Driver != config.StoreDriverRedis {
		models = append(models, &model.Member{})
	}
	return models
}

// Migrate executes database migration based on configuration
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if !cfg.Database.IsAutoMigrate {
		slog.Info("⏭️  데이터베이스 마이그레이션 비활성화됨",
			"auto_migrate", false, "env", cfg.App.Env,
		)
		return nil
	}

	slog.Warn("🔧 데이터베이스 마이그레이션 시작 - 모든 테이블이 삭제되고 재생성됩니다!",
		"auto_migrate", true, "env", cfg.App.Env,
	)

	// Safety check: prevent accidental data loss in production
	if !cfg.IsDevelopment() {
		return fmt.Errorf("🚨 %s 환경에서는 DB_AUTO_MIGRATE=true를 사용할 수 없습니다! 데이터 손실 방지를 위해 차단됨", cfg.App.Env)
	}

	models := Models(cfg)

	// Step 1: Drop all tables, reverse dependency order
	slog.Info("🗑️  기존 테이블 삭제 중...")
	for i := len(models) - 1; i >= 0; i-- {
		m := models[i]
		if !db.Migrator().HasTable(m) {
			continue
		}
		if err := db.Migrator().DropTable(m); err != nil {
			slog.Debug("테이블 삭제 실패", "model", fmt.Sprintf("%T", m), "error", err)
		} else {
			slog.Debug("테이블 삭제 성공", "model", fmt.Sprintf("%T", m))
		}
	}

	// Step 2: Create tables
	slog.Info("📦 새 테이블 생성 중...")
	if err := runAutoMigrate(db, models); err != nil {
		return fmt.Errorf("테이블 생성 실패: %w", err)
	}

	slog.Info("✅ 마이그레이션 완료!")
	return nil
}

// runAutoMigrate creates tables based on model definitions
func runAutoMigrate(db *gorm.DB, models []interface{}) error {
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("%T 마이그레이션 실패: %w", m, err)
		}
		slog.Debug("테이블 생성됨", "model", fmt.Sprintf("%T", m))
	}

	return nil
}
