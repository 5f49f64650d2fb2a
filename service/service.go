// Package service 组合存储与 Pipeline，对外提供车辆目录的业务操作：
// 相似车辆、条件搜索、随机挑选、用户行为记录，以及公司/门店/车辆/用户的写入。
//
//	svc, err := service.New(store.NewMemoryStore())
//	cars, err := svc.SimilarCars(ctx, companyID, branchID, carID, svc.DefaultPage())
package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/pkg/logging"
	"github.com/rushteam/carrec/rank"
)

// InventoryService 是车辆目录的业务入口，可并发使用。
type InventoryService struct {
	store   core.InventoryStore
	similar *pipeline.Pipeline
	cfg     core.RankConfig
	logger  zerolog.Logger
	now     func() time.Time

	rndMu sync.Mutex
	rnd   *rand.Rand
}

// Option 配置 InventoryService。
type Option func(*InventoryService)

// WithPipeline 设置相似车辆的 Pipeline（召回节点之后的部分）。
// 召回节点 recall.inventory 总是由 service 拼接在最前面；
// Pipeline 必须恰好包含一个 rank.similarity，且不能自带召回节点，否则 New 返回 INVALID_INPUT。
func WithPipeline(p *pipeline.Pipeline) Option {
	return func(s *InventoryService) {
		if p != nil {
			s.similar = p
		}
	}
}

// WithRankConfig 设置分页默认值与超时。
func WithRankConfig(cfg core.RankConfig) Option {
	return func(s *InventoryService) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *InventoryService) { s.logger = l }
}

// WithRand 设置 LuckyCar 使用的随机源（测试中固定种子）。
func WithRand(r *rand.Rand) Option {
	return func(s *InventoryService) { s.rnd = r }
}

// WithClock 设置用户行为的时间来源。
func WithClock(now func() time.Time) Option {
	return func(s *InventoryService) {
		if now != nil {
			s.now = now
		}
	}
}

// New 创建服务。相似车辆 Pipeline 不合法时返回错误。
func New(store core.InventoryStore, opts ...Option) (*InventoryService, error) {
	s := &InventoryService{
		store: store,
		similar: &pipeline.Pipeline{
			Name:  "similar_cars",
			Nodes: []pipeline.Node{&rank.SimilarityNode{}},
		},
		cfg:    &core.DefaultRankConfig{},
		logger: logging.WithComponent("service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validatePipeline(s.similar); err != nil {
		return nil, err
	}
	return s, nil
}

// validatePipeline 检查相似车辆 Pipeline：排序只能由 rank.similarity 完成一次，
// 否则目标车辆会留在结果里，Limit 也不会生效。
func validatePipeline(p *pipeline.Pipeline) error {
	var ranks int
	for i, n := range p.Nodes {
		switch {
		case n == nil:
			return pipelineErr(fmt.Sprintf("%s: node #%d is nil", p.Name, i))
		case n.Kind() == pipeline.KindRecall:
			return pipelineErr(fmt.Sprintf("%s: recall node %s is not allowed, recall.inventory is added by the service", p.Name, n.Name()))
		}
		if _, ok := n.(*rank.SimilarityNode); ok {
			ranks++
		}
	}
	if ranks != 1 {
		return pipelineErr(fmt.Sprintf("%s: expected exactly one rank.similarity node, got %d", p.Name, ranks))
	}
	return nil
}

func pipelineErr(msg string) error {
	return core.NewDomainError(core.ModulePipeline, core.ErrorCodeInvalidInput, msg)
}

// Store 返回底层存储。
func (s *InventoryService) Store() core.InventoryStore { return s.store }

// Close 释放底层存储。
func (s *InventoryService) Close() error { return s.store.Close() }

// Page 是分页参数：Offset 跳过的条数，Limit 最大返回条数。
// 负值按 0 处理；Limit 为 0 时结果为空。
type Page struct {
	Offset int
	Limit  int
}

// DefaultPage 返回配置中的默认分页（默认 offset=0, limit=100）。
func (s *InventoryService) DefaultPage() Page {
	return Page{Offset: s.cfg.DefaultOffset(), Limit: s.cfg.DefaultLimit()}
}

func (s *InventoryService) normalize(p Page) Page {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if maxLimit := s.cfg.MaxLimit(); maxLimit > 0 && p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

func (s *InventoryService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if d := s.cfg.DefaultTimeout(); d > 0 {
		return context.WithTimeout(ctx, d)
	}
	return context.WithCancel(ctx)
}

func (s *InventoryService) intN(n int) int {
	if s.rnd == nil {
		return rand.IntN(n)
	}
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return s.rnd.IntN(n)
}
