package core

import "time"

// RankConfig 提供相似车辆请求的默认参数。
type RankConfig interface {
	// DefaultOffset 返回默认的候选跳过数
	DefaultOffset() int

	// DefaultLimit 返回默认的最大返回条数
	DefaultLimit() int

	// MaxLimit 返回允许的最大 limit，0 表示不限制
	MaxLimit() int

	// DefaultTimeout 返回整个请求的默认超时时间
	DefaultTimeout() time.Duration
}

// DefaultRankConfig 是默认的配置实现。
type DefaultRankConfig struct{}

func (c *DefaultRankConfig) DefaultOffset() int { return 0 }

func (c *DefaultRankConfig) DefaultLimit() int { return 100 }

func (c *DefaultRankConfig) MaxLimit() int { return 0 }

func (c *DefaultRankConfig) DefaultTimeout() time.Duration { return 2 * time.Second }
