package auth

import (
	"context"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"gorm.io/gorm"
)

// OperatorRepository reads and writes back office accounts.
// The *gorm.DB is passed per call so callers can run it inside a transaction.
type OperatorRepository struct{}

func NewOperatorRepository() *OperatorRepository {
	return &OperatorRepository{}
}

func (r *OperatorRepository) IsExist(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&model.Operator{}).
		Where("email = ?", email).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *OperatorRepository) Create(ctx context.Context, db *gorm.DB, operator *model.Operator) error {
	return db.WithContext(ctx).Create(operator).Error
}

func (r *OperatorRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Operator, error) {
	var operator model.Operator
	err := db.WithContext(ctx).Where("email = ?", email).First(&operator).Error
	if err != nil {
		return nil, err
	}
	return &operator, nil
}
