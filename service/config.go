package service

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rushteam/carrec/config"
	_ "github.com/rushteam/carrec/config/builders"
	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/logging"
	"github.com/rushteam/carrec/store"
)

// Config 是服务配置：
//
//	store:
//	  type: redis            # memory / redis
//	  addr: 127.0.0.1:6379
//	  db: 0
//	  key_prefix: carrec
//	log:
//	  level: info
//	  format: json
//	pagination:
//	  default_limit: 100
//	  max_limit: 500
//	timeout: 2s
//	pipeline: configs/similar.yaml   # 可选，召回之后的 Node 列表（.yaml / .json），须含一个 rank.similarity
type Config struct {
	Store      StoreConfig      `yaml:"store"`
	Log        logging.Config   `yaml:"log"`
	Pagination PaginationConfig `yaml:"pagination"`
	Timeout    time.Duration    `yaml:"timeout"`
	Pipeline   string           `yaml:"pipeline"`
}

type StoreConfig struct {
	Type      string `yaml:"type"`
	Addr      string `yaml:"addr"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"key_prefix"`
}

type PaginationConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// DefaultConfig 返回内存存储、limit=100、超时 2s 的默认配置；
// 日志默认值可由 LOG_LEVEL / LOG_FORMAT / LOG_CALLER 覆盖。
func DefaultConfig() *Config {
	return &Config{
		Store:      StoreConfig{Type: "memory"},
		Log:        logging.ConfigFromEnv(),
		Pagination: PaginationConfig{DefaultLimit: 100},
		Timeout:    2 * time.Second,
	}
}

// LoadConfig 从 YAML 文件加载配置，未给出的字段取 DefaultConfig 的值。
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Type {
	case "memory":
	case "redis":
		if c.Store.Addr == "" {
			return fmt.Errorf("store.addr is required for redis")
		}
	default:
		return fmt.Errorf("unsupported store type: %q", c.Store.Type)
	}
	if c.Pagination.DefaultLimit < 0 || c.Pagination.MaxLimit < 0 {
		return fmt.Errorf("pagination limits must not be negative")
	}
	if c.Pagination.MaxLimit > 0 && c.Pagination.DefaultLimit > c.Pagination.MaxLimit {
		return fmt.Errorf("pagination.default_limit %d exceeds max_limit %d",
			c.Pagination.DefaultLimit, c.Pagination.MaxLimit)
	}
	return nil
}

// DefaultOffset / DefaultLimit / MaxLimit / DefaultTimeout 让 Config 满足 core.RankConfig。
func (c *Config) DefaultOffset() int            { return 0 }
func (c *Config) DefaultLimit() int             { return c.Pagination.DefaultLimit }
func (c *Config) MaxLimit() int                 { return c.Pagination.MaxLimit }
func (c *Config) DefaultTimeout() time.Duration { return c.Timeout }

var _ core.RankConfig = (*Config)(nil)

// OpenStore 按配置创建存储实例。
func OpenStore(cfg StoreConfig) (core.InventoryStore, error) {
	switch cfg.Type {
	case "", "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(cfg.Addr, cfg.DB, store.WithKeyPrefix(cfg.KeyPrefix))
	default:
		return nil, fmt.Errorf("unsupported store type: %q", cfg.Type)
	}
}

// NewFromConfig 初始化日志、打开存储、加载 Pipeline 并创建服务。
func NewFromConfig(cfg *Config) (*InventoryService, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Init(cfg.Log)

	opts := []Option{WithRankConfig(cfg), WithLogger(logging.WithComponent("service"))}
	if cfg.Pipeline != "" {
		pcfg, err := pipeline.LoadFromFile(cfg.Pipeline)
		if err != nil {
			return nil, fmt.Errorf("load pipeline %s: %w", cfg.Pipeline, err)
		}
		p, err := pcfg.BuildPipeline(config.DefaultFactory())
		if err != nil {
			return nil, fmt.Errorf("build pipeline %s: %w", cfg.Pipeline, err)
		}
		opts = append(opts, WithPipeline(p))
	}

	s, err := OpenStore(cfg.Store)
	if err != nil {
		return nil, err
	}
	svc, err := New(s, opts...)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("pipeline %s: %w", cfg.Pipeline, err)
	}
	svc.logger.Info().
		Str("store", s.Name()).
		Int("default_limit", cfg.DefaultLimit()).
		Int("max_limit", cfg.MaxLimit()).
		Msg("inventory service ready")
	return svc, nil
}
