package biz

import "time"

// Clock 时间能力抽象
// 体力恢复/会员有效期/回调防重放都依赖当前时间，统一注入便于测试注入固定时间
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// NewClock 创建系统时钟
func NewClock() Clock {
	return systemClock{}
}
