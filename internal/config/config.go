package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig            `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig          `mapstructure:"database"` // 数据库配置
	Log      LogConfig               `mapstructure:"log"`      // 日志配置
	Scoring  ScoringConfig           `mapstructure:"scoring"`  // 评分阈值
	Sync     SyncConfig              `mapstructure:"sync"`     // 采集/重算调度配置
	Sources  map[string]SourceConfig `mapstructure:"sources"`  // 各数据源独立配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig 数据库配置，driver 为 postgres 或 sqlite
type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"`
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
	LogSQL          bool          `mapstructure:"log_sql"`           // 是否打印SQL
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug/info/warn/error
	Format string `mapstructure:"format"` // text/json
}

// ScoringConfig 评分相关配置
type ScoringConfig struct {
	MinScore       int    `mapstructure:"min_score"`        // 低于该分数的帖子直接丢弃
	HighValueScore int    `mapstructure:"high_value_score"` // 高价值机会阈值
	RescoreRubric  string `mapstructure:"rescore_rubric"`   // 重算使用的评分口径 generic/microsaas
}

// SyncConfig 调度配置
type SyncConfig struct {
	Cron           string   `mapstructure:"cron"`            // 采集Cron表达式，空则不调度
	RescoreCron    string   `mapstructure:"rescore_cron"`    // 重算Cron表达式，空则不调度
	EnabledSources []string `mapstructure:"enabled_sources"` // 启用的数据源列表
}

// SourceConfig 单个数据源的独立配置
type SourceConfig struct {
	BaseURL      string   `mapstructure:"base_url"`     // API基础地址
	Timeout      int      `mapstructure:"timeout"`      // 请求超时（秒）
	RetryCount   int      `mapstructure:"retry_count"`  // 重试次数
	Proxy        string   `mapstructure:"proxy"`        // 代理地址
	AuthToken    string   `mapstructure:"auth_token"`   // Bearer Token / API Key
	Queries      []string `mapstructure:"queries"`      // 搜索关键词
	Subreddits   []string `mapstructure:"subreddits"`   // Reddit 子版块
	Tags         []string `mapstructure:"tags"`         // StackOverflow 标签
	Repositories []string `mapstructure:"repositories"` // GitHub 仓库 owner/name
	Labels       []string `mapstructure:"labels"`       // GitHub 标签
	MaxResults   int      `mapstructure:"max_results"`  // 每个查询最多拉取条数
	MinVotes     int      `mapstructure:"min_votes"`    // 最低赞同数/分数
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:painradar.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.log_sql", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("scoring.min_score", 40)
	v.SetDefault("scoring.high_value_score", 70)
	v.SetDefault("scoring.rescore_rubric", "microsaas")

	v.SetDefault("sync.cron", "")
	v.SetDefault("sync.rescore_cron", "")
	v.SetDefault("sync.enabled_sources", []string{"reddit", "hackernews", "stackoverflow", "github"})
}

// LoadConfig 加载配置文件（config/config.yaml，可用 CONFIG_PATH 指定目录），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	dir := os.Getenv("CONFIG_PATH")
	if dir == "" {
		dir = "./config"
	}
	return LoadFrom(dir)
}

// LoadFrom 从指定目录读取 config.yaml；文件不存在时仅使用默认值
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// 2. 读取 config.yaml
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	v.SetTypeByDefaultValue(true)
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if cfg.Sources == nil {
		cfg.Sources = map[string]SourceConfig{}
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	tokens := map[string]string{
		"twitter":       "TWITTER_BEARER_TOKEN",
		"github":        "GITHUB_TOKEN",
		"stackoverflow": "STACKEXCHANGE_KEY",
	}
	for source, env := range tokens {
		if v := os.Getenv(env); v != "" {
			s := cfg.Sources[source]
			s.AuthToken = v
			cfg.Sources[source] = s
		}
	}
	if v := os.Getenv("DATABASE_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("MIN_OPPORTUNITY_SCORE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scoring.MinScore = n
		}
	}
}

// Source 获取数据源配置，未配置时返回零值并补默认超时
func (c *Config) Source(name string) SourceConfig {
	s := c.Sources[name]
	if s.Timeout <= 0 {
		s.Timeout = 30
	}
	if s.MaxResults <= 0 {
		s.MaxResults = 25
	}
	return s
}
