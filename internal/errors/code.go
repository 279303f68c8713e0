package errors

import (
	pkgErrors "github.com/gaoyong06/go-pkg/errors"
	i18nPkg "github.com/gaoyong06/go-pkg/middleware/i18n"
)

func init() {
	// 初始化全局错误管理器（使用项目特定的配置）
	pkgErrors.InitGlobalErrorManager("i18n", i18nPkg.Language)
}

// 游戏服务错误码定义
// 错误码格式：SSMMEE (6位数字)，其中 SS=21 表示 wordgame-service
// 模块划分：
//   01: 套餐模块
//   02: 体力模块
//   03: 订单模块
//   04: 支付回调模块
//   05: 玩家账号模块

// 套餐模块 (210100-210199)
const (
	// ErrCodePlanNotFound 套餐不存在错误
	ErrCodePlanNotFound = 210101
	// ErrCodePlanRequired 套餐ID缺失错误
	ErrCodePlanRequired = 210102
)

// 体力模块 (210200-210299)
const (
	// ErrCodeNoLives 体力不足错误
	ErrCodeNoLives = 210201
	// ErrCodeLifeConflict 体力并发更新冲突错误
	ErrCodeLifeConflict = 210202
)

// 订单模块 (210300-210399)
const (
	// ErrCodeOrderNotFound 订单不存在错误
	ErrCodeOrderNotFound = 210301
	// ErrCodeOrderCreateFailed 订单创建失败错误
	ErrCodeOrderCreateFailed = 210302
	// ErrCodeOrderNoRequired 订单号缺失错误
	ErrCodeOrderNoRequired = 210303
)

// 支付回调模块 (210400-210499)
const (
	// ErrCodeCheckoutFailed 支付服务商下单失败错误
	ErrCodeCheckoutFailed = 210401
	// ErrCodeWebhookSignature 回调签名校验失败错误
	ErrCodeWebhookSignature = 210402
	// ErrCodeWebhookPayload 回调报文格式错误
	ErrCodeWebhookPayload = 210403
)

// 玩家账号模块 (210500-210599)
const (
	// ErrCodeMissingPlayerID 玩家身份头缺失错误
	ErrCodeMissingPlayerID = 210501
	// ErrCodePlayerNotFound 玩家不存在错误
	ErrCodePlayerNotFound = 210502
	// ErrCodeUsernameRequired 用户名为空错误
	ErrCodeUsernameRequired = 210503
	// ErrCodePasswordTooShort 密码长度不足错误
	ErrCodePasswordTooShort = 210504
	// ErrCodeUsernameTaken 用户名已被使用错误
	ErrCodeUsernameTaken = 210505
	// ErrCodeInvalidCredentials 用户名或密码错误
	ErrCodeInvalidCredentials = 210506
)

// HTTPStatus 错误码到 HTTP 状态码的映射
// 框架错误码 (100-599) 原样返回；未列出的 21xxxx 错误码按 400 处理，其余按 500 处理
// 身份头缺失属于请求格式问题，按校验错误返回 400
func HTTPStatus(code int) int {
	switch code {
	case ErrCodePlanNotFound, ErrCodeOrderNotFound, ErrCodePlayerNotFound:
		return 404
	case ErrCodeNoLives:
		return 403
	case ErrCodeInvalidCredentials:
		return 401
	case ErrCodeUsernameTaken:
		return 409
	case ErrCodeLifeConflict, ErrCodeCheckoutFailed, ErrCodeOrderCreateFailed:
		return 500
	}
	if code >= 100 && code < 600 {
		return code
	}
	if code >= 210000 && code < 220000 {
		return 400
	}
	return 500
}
