package auth

import (
	"context"

	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/constants"
	"github.com/BDGamer-org/SayIt-GuessIt-GetRich/internal/errors"

	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	khttp "github.com/go-kratos/kratos/v2/transport/http"
)

// 定义 context key
type contextKey string

const (
	// PlayerIDKey 玩家ID的context key（字符串 UUID）
	PlayerIDKey contextKey = "player_id"
)

// WithPlayerID 把玩家ID写入context
func WithPlayerID(ctx context.Context, playerID string) context.Context {
	return context.WithValue(ctx, PlayerIDKey, playerID)
}

// GetPlayerIDFromContext 从context中获取玩家ID（字符串 UUID）
func GetPlayerIDFromContext(ctx context.Context) (string, bool) {
	playerID, ok := ctx.Value(PlayerIDKey).(string)
	return playerID, ok && playerID != ""
}

// RequirePlayerID 从 HTTP 请求头中提取玩家ID
// 客户端登录后在每个请求上携带 X-Player-ID，缺失时按参数校验错误返回 400
func RequirePlayerID(ctx khttp.Context) (string, error) {
	playerID := ctx.Header().Get(constants.PlayerIDHeader)
	if playerID == "" {
		return "", pkgErrors.NewBizErrorWithLang(ctx, errors.ErrCodeMissingPlayerID)
	}
	return playerID, nil
}
