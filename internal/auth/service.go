package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/model"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/session"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/carwash-cms/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db                 *gorm.DB
	operatorRepository *OperatorRepository
	tokenManager       token.Manager
	notifier           *session.Notifier
}

func NewAuthService(db *gorm.DB, operatorRepository *OperatorRepository, tokenManager token.Manager, notifier *session.Notifier) *AuthService {
	return &AuthService{
		db:                 db,
		operatorRepository: operatorRepository,
		tokenManager:       tokenManager,
		notifier:           notifier,
	}
}

// Login verifies the credentials, issues tokens and announces the new session.
// Session listeners run before Login returns, so the member cache is loaded by then.
func (a *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	// 1. Find operator by email
	operator, err := a.operatorRepository.FindByEmail(ctx, a.db, request.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Warn("로그인 실패 - operator email not found", "email", logger.MaskEmail(request.Email))
			return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword) // Security: don't reveal if email exists
		}
		log.Error("로그인 실패 - 알 수 없는 오류", "error", err)
		return nil, fmt.Errorf("로그인 실패: %w", err)
	}

	// 2. Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(request.Password)); err != nil {
		log.Warn("로그인 실패 - invalid password", "email", logger.MaskEmail(request.Email))
		return nil, fmt.Errorf("error %w", ErrInCorrectEmailPassword)
	}

	// 3. Generate JWT tokens
	operatorID := strconv.FormatUint(uint64(operator.ID), 10)
	accessToken, err := a.tokenManager.GenerateAccessToken(operatorID, operator.Email)
	if err != nil {
		log.Error("access token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := a.tokenManager.GenerateRefreshToken(operatorID, operator.Email)
	if err != nil {
		log.Error("refresh token 생성 실패", "error", err)
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	// 4. Start the session
	a.notifier.Publish(ctx, session.Event{
		OperatorID:    operatorID,
		Email:         operator.Email,
		Authenticated: true,
	})

	log.Info("로그인 성공", "email", logger.MaskEmail(request.Email))

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Logout ends the operator's session. Issued tokens stay valid until they expire.
func (a *AuthService) Logout(ctx context.Context, operatorID, email string) {
	a.notifier.Publish(ctx, session.Event{
		OperatorID: operatorID,
		Email:      email,
	})

	logger.FromContext(ctx).Info("로그아웃", "email", logger.MaskEmail(email))
}

func (a *AuthService) Signup(ctx context.Context, request *SignupRequest) error {
	log := logger.FromContext(ctx)
	return database.WithTransaction(ctx, a.db, func(tx *gorm.DB) error {
		exists, err := a.operatorRepository.IsExist(ctx, tx, request.Email)
		if err != nil {
			log.Error("Failed to check operator existence", "error", err)
			return fmt.Errorf("check operator existence: %w", err)
		}
		if exists {
			log.Warn("Operator already exists", "email", logger.MaskEmail(request.Email))
			return fmt.Errorf("error %w", ErrOperatorAlreadyExists)
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password", "error", err)
			return fmt.Errorf("hash password: %w", err)
		}

		operator := model.NewOperator(request.Name, request.Email, string(hashedPassword))
		if err := a.operatorRepository.Create(ctx, tx, operator); err != nil {
			log.Error("Failed to create operator", "error", err)
			return fmt.Errorf("create operator: %w", err)
		}

		log.Info("Operator created successfully", "email", logger.MaskEmail(request.Email))
		return nil
	})
}
