package conf

import (
	"fmt"
	"time"
)

type Bootstrap struct {
	Server   *Server   `yaml:"server" json:"server"`
	Data     *Data     `yaml:"data" json:"data"`
	Provider *Provider `yaml:"provider" json:"provider"`
	Game     *Game     `yaml:"game" json:"game"`
	Log      *Log      `yaml:"log" json:"log"`
}

type Server struct {
	Http struct {
		Addr    string `yaml:"addr" json:"addr"`
		Timeout string `yaml:"timeout" json:"timeout"`
	} `yaml:"http" json:"http"`
}

type Data struct {
	Database struct {
		Driver          string `yaml:"driver" json:"driver"`
		Source          string `yaml:"source" json:"source"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" json:"conn_max_lifetime"`
	} `yaml:"database" json:"database"`
	Redis struct {
		Addr         string `yaml:"addr" json:"addr"`
		Password     string `yaml:"password" json:"password"`
		Db           int32  `yaml:"db" json:"db"`
		ReadTimeout  string `yaml:"read_timeout" json:"read_timeout"`
		WriteTimeout string `yaml:"write_timeout" json:"write_timeout"`
	} `yaml:"redis" json:"redis"`
}

// Provider 外部银行卡支付服务商配置
type Provider struct {
	// Endpoint 服务商 API 地址
	Endpoint string `yaml:"endpoint" json:"endpoint"`
	// ApiKey 服务商 API 密钥
	ApiKey string `yaml:"api_key" json:"api_key"`
	// WebhookSecret 回调签名共享密钥
	WebhookSecret string `yaml:"webhook_secret" json:"webhook_secret"`
	// SuccessURL 支付完成后的跳转地址
	SuccessURL string `yaml:"success_url" json:"success_url"`
	// Timeout 调用服务商的超时时间
	Timeout string `yaml:"timeout" json:"timeout"`
}

// Game 游戏玩法配置 (体力参数与付费套餐表)
type Game struct {
	Lives struct {
		RegenCap         int    `yaml:"regen_cap" json:"regen_cap"`
		StorageCeiling   int    `yaml:"storage_ceiling" json:"storage_ceiling"`
		RecoveryInterval string `yaml:"recovery_interval" json:"recovery_interval"`
	} `yaml:"lives" json:"lives"`
	Plans []*Plan `yaml:"plans" json:"plans"`
}

// Plan 付费套餐静态配置
type Plan struct {
	PlanID         string `yaml:"plan_id" json:"plan_id"`
	Title          string `yaml:"title" json:"title"`
	RewardType     string `yaml:"reward_type" json:"reward_type"` // lives, membership
	LivesGain      int    `yaml:"lives_gain" json:"lives_gain"`
	MembershipType string `yaml:"membership_type" json:"membership_type"` // monthly, lifetime
	MembershipDays int    `yaml:"membership_days" json:"membership_days"`
	AmountCents    int64  `yaml:"amount_cents" json:"amount_cents"`
	Currency       string `yaml:"currency" json:"currency"`
}

type Log struct {
	Level      string `yaml:"level" json:"level"`
	Format     string `yaml:"format" json:"format"`
	Output     string `yaml:"output" json:"output"`
	FilePath   string `yaml:"file_path" json:"file_path"`
	MaxSize    int    `yaml:"max_size" json:"max_size"`
	MaxAge     int    `yaml:"max_age" json:"max_age"`
	MaxBackups int    `yaml:"max_backups" json:"max_backups"`
	Compress   bool   `yaml:"compress" json:"compress"`
}

// Validate validates the configuration
func (b *Bootstrap) Validate() error {
	if b.Server == nil {
		return fmt.Errorf("server configuration is required")
	}
	if b.Server.Http.Addr == "" {
		return fmt.Errorf("server.http.addr is required")
	}
	if b.Data == nil {
		return fmt.Errorf("data configuration is required")
	}
	if b.Data.Database.Source == "" {
		return fmt.Errorf("data.database.source is required")
	}
	if b.Provider == nil {
		return fmt.Errorf("provider configuration is required")
	}
	if b.Provider.Endpoint == "" {
		return fmt.Errorf("provider.endpoint is required")
	}
	if b.Provider.WebhookSecret == "" {
		return fmt.Errorf("provider.webhook_secret is required")
	}
	if b.Game == nil || len(b.Game.Plans) == 0 {
		return fmt.Errorf("game.plans is required")
	}
	if b.Game.Lives.RecoveryInterval != "" {
		if _, err := time.ParseDuration(b.Game.Lives.RecoveryInterval); err != nil {
			return fmt.Errorf("game.lives.recovery_interval is invalid: %w", err)
		}
	}
	if b.Log == nil {
		return fmt.Errorf("log configuration is required")
	}
	return nil
}
