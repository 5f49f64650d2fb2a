package similarity

import (
	"sort"

	"github.com/rushteam/carrec/core"
)

// ErrNoTarget 表示缺少目标车辆。没有参照点时相似度排序无意义，不可重试。
var ErrNoTarget = core.NewDomainError(core.ModuleSimilarity, core.ErrorCodePreconditionFailed, "similarity: target car is required")

// Scored 是带相似度分数的候选车辆。
type Scored struct {
	Car   core.Car
	Score float64
	Index int // 在入参 candidates 中的下标
}

// Rank 返回按相似度降序排列的候选车辆，见 RankScored。
func Rank(target *core.Car, candidates []core.Car, offset, limit int) ([]core.Car, error) {
	scored, err := RankScored(target, candidates, offset, limit)
	if err != nil {
		return nil, err
	}
	out := make([]core.Car, len(scored))
	for i, s := range scored {
		out[i] = s.Car
	}
	return out, nil
}

// RankScored 对候选池按与 target 的相似度排序：
//
//  1. 跳过候选池前 offset 个候选，并剔除 target 本身（ID 非 0 且相同的记录）
//  2. 文档集合 = [target] + 剩余候选（保持原顺序），构建 TF-IDF
//  3. 以 target 向量与每个候选向量的点积作为分数
//  4. 按分数稳定降序排序，同分保持输入顺序
//  5. 截取前 limit 个
//
// target 是文档 0，不进入排序结果。字段相同但 ID 不同的候选是另一辆车，会保留；
// target 未入库（ID 为 0）时不做身份剔除。
// 负数的 offset / limit 按 0 处理。不修改入参。
func RankScored(target *core.Car, candidates []core.Car, offset, limit int) ([]Scored, error) {
	if target == nil {
		return nil, ErrNoTarget
	}
	offset = max(offset, 0)
	limit = max(limit, 0)
	if offset >= len(candidates) || limit == 0 {
		return []Scored{}, nil
	}

	// pool 保存候选在 candidates 中的下标
	pool := make([]int, 0, len(candidates)-offset)
	for i := offset; i < len(candidates); i++ {
		if isTarget(target, candidates[i]) {
			continue
		}
		pool = append(pool, i)
	}
	if len(pool) == 0 {
		return []Scored{}, nil
	}

	docs := make([][]string, 0, len(pool)+1)
	docs = append(docs, Tokenize(Signature(*target)))
	for _, idx := range pool {
		docs = append(docs, Tokenize(Signature(candidates[idx])))
	}
	vectors := FitTransform(docs)

	ranked := make([]Scored, len(pool))
	for i, idx := range pool {
		ranked[i] = Scored{
			Car:   candidates[idx],
			Score: Dot(vectors[0], vectors[i+1]),
			Index: idx,
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// isTarget 判断候选是否就是 target 这条记录；target 未入库（ID 为 0）时恒为 false。
func isTarget(target *core.Car, c core.Car) bool {
	return target.ID != 0 && c.ID == target.ID
}
