package biz

import (
	"context"
	"strings"
	"time"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Player 玩家账号
type Player struct {
	PlayerID     string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// PlayerRepo 玩家仓库接口
type PlayerRepo interface {
	CreatePlayer(ctx context.Context, p *Player) error
	// GetPlayer 不存在时返回 nil, nil
	GetPlayer(ctx context.Context, playerID string) (*Player, error)
	GetPlayerByUsername(ctx context.Context, username string) (*Player, error)
}

// PlayerUsecase 玩家账号业务逻辑
type PlayerUsecase struct {
	repo  PlayerRepo
	clock Clock
	log   *log.Helper
}

// NewPlayerUsecase 创建玩家账号业务逻辑实例
func NewPlayerUsecase(repo PlayerRepo, clock Clock, logger log.Logger) *PlayerUsecase {
	return &PlayerUsecase{
		repo:  repo,
		clock: clock,
		log:   log.NewHelper(logger),
	}
}

// Register 注册新玩家
func (uc *PlayerUsecase) Register(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeUsernameRequired)
	}
	if len(password) < constants.MinPasswordLength {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodePasswordTooShort)
	}

	existing, err := uc.repo.GetPlayerByUsername(ctx, username)
	if err != nil {
		uc.log.Errorf("Failed to check username %q: %v", username, err)
		return nil, err
	}
	if existing != nil {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeUsernameTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.log.Errorf("Failed to hash password for %q: %v", username, err)
		return nil, err
	}

	player := &Player{
		PlayerID:     uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    uc.clock.Now(),
	}
	if err := uc.repo.CreatePlayer(ctx, player); err != nil {
		uc.log.Errorf("Failed to create player %q: %v", username, err)
		return nil, err
	}

	uc.log.Infof("Registered player %s (%s)", player.PlayerID, username)
	return player, nil
}

// Login 校验用户名密码
// 用户名不存在与密码错误返回同一个错误码，不泄露账号是否存在
func (uc *PlayerUsecase) Login(ctx context.Context, username, password string) (*Player, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeUsernameRequired)
	}

	player, err := uc.repo.GetPlayerByUsername(ctx, username)
	if err != nil {
		uc.log.Errorf("Failed to get player %q: %v", username, err)
		return nil, err
	}
	if player == nil {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeInvalidCredentials)
	}
	if bcrypt.CompareHashAndPassword([]byte(player.PasswordHash), []byte(password)) != nil {
		return nil, pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeInvalidCredentials)
	}

	return player, nil
}
