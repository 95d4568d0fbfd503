package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server     ServerConfig          `mapstructure:"server"`      // 服务器配置
	Postgres   PostgresConfig        `mapstructure:"postgres"`    // PostgreSQL配置
	Generation GenerationConfig      `mapstructure:"generation"`  // 生成服务配置
	Scheduler  SchedulerConfig       `mapstructure:"scheduler"`   // 页面级定时生成配置
	Content    ContentConfig         `mapstructure:"content"`     // 内容管线参数
	Feeds      map[string]FeedConfig `mapstructure:"feeds"`       // 各运动数据源独立配置
	MarketOdds MarketOddsConfig      `mapstructure:"market_odds"` // 预测市场赔率源配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port       int    `mapstructure:"port"`        // 服务端口
	Mode       string `mapstructure:"mode"`        // Gin运行模式：debug/release/test
	AdminToken string `mapstructure:"admin_token"` // 管理端Bearer Token（仅区分管理员/普通用户）
}

// PostgresConfig PostgreSQL数据库配置
type PostgresConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// GenerationConfig 外部文本生成服务配置（chat/completions 兼容接口）
type GenerationConfig struct {
	BaseURL string `mapstructure:"base_url"` // 生成服务基础地址
	Model   string `mapstructure:"model"`    // 模型名称
	APIKey  string `mapstructure:"api_key"`  // 认证密钥（建议走 .env）
	Timeout int    `mapstructure:"timeout"`  // 单次请求超时（秒）
	Proxy   string `mapstructure:"proxy"`    // 代理地址
}

// SchedulerConfig 页面级定时生成配置
type SchedulerConfig struct {
	Enabled      bool `mapstructure:"enabled"`       // 是否启动定时器
	TickInterval int  `mapstructure:"tick_interval"` // 检查间隔（秒），默认60
}

// ContentConfig 内容管线参数
type ContentConfig struct {
	WindowDays   int    `mapstructure:"window_days"`   // 补齐窗口天数（默认3天）
	GraceDays    int    `mapstructure:"grace_days"`    // 精选可见宽限天数（默认2天）
	FallbackText string `mapstructure:"fallback_text"` // 槽位停用时的静态兜底解释
}

// FeedConfig 单个运动数据源的独立配置
type FeedConfig struct {
	BaseURL    string `mapstructure:"base_url"`    // 数据源API基础地址
	Timeout    int    `mapstructure:"timeout"`     // 请求超时（秒）
	RetryCount int    `mapstructure:"retry_count"` // 重试次数
	AuthToken  string `mapstructure:"auth_token"`  // 数据源认证Token
	Proxy      string `mapstructure:"proxy"`       // 代理地址
}

// MarketOddsConfig 预测市场赔率源配置（Polymarket Gamma API）
type MarketOddsConfig struct {
	BaseURL string `mapstructure:"base_url"` // Gamma API基础地址
	Timeout int    `mapstructure:"timeout"`  // 请求超时（秒）
	Proxy   string `mapstructure:"proxy"`    // 代理地址
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("POSTGRES_DSN"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("GENERATION_API_KEY"); v != "" {
		cfg.Generation.APIKey = v
	}
	if v := os.Getenv("GENERATION_PROXY"); v != "" {
		cfg.Generation.Proxy = v
	}
	if v := os.Getenv("ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	// 各数据源Token：FEED_NFL_AUTH_TOKEN / FEED_CFB_AUTH_TOKEN …
	for name, feed := range cfg.Feeds {
		if v := os.Getenv(fmt.Sprintf("FEED_%s_AUTH_TOKEN", strings.ToUpper(name))); v != "" {
			feed.AuthToken = v
			cfg.Feeds[name] = feed
		}
	}
}

// applyDefaults 补齐未配置项的默认值
func applyDefaults(cfg *Config) {
	if cfg.Scheduler.TickInterval <= 0 {
		cfg.Scheduler.TickInterval = 60
	}
	if cfg.Content.WindowDays <= 0 {
		cfg.Content.WindowDays = 3
	}
	if cfg.Content.GraceDays <= 0 {
		cfg.Content.GraceDays = 2
	}
	if cfg.Content.FallbackText == "" {
		cfg.Content.FallbackText = "Our analysis for this matchup is being updated. Check back soon."
	}
	if cfg.Generation.Timeout <= 0 {
		cfg.Generation.Timeout = 60
	}
}
