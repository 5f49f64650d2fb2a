package rerank

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pipeline"
)

// Diversity 是一个多样性 ReRank：同一分组最多保留 MaxPerGroup 辆，保持原有顺序。
// 分组字段取车辆属性：make（默认）/ model / color / fuel_type / transmission。
// 分组值为空的车辆不受限制。
type Diversity struct {
	Field       string // 默认 "make"
	MaxPerGroup int    // 默认 1
}

func (n *Diversity) Name() string {
	return "rerank.diversity"
}

func (n *Diversity) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Diversity) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	field := n.Field
	if field == "" {
		field = "make"
	}
	maxPer := n.MaxPerGroup
	if maxPer <= 0 {
		maxPer = 1
	}

	seen := make(map[string]int, 32)
	out := make([]*core.Item, 0, len(items))

	for _, it := range items {
		if it == nil {
			continue
		}
		group, err := GroupValue(it.Car, field)
		if err != nil {
			return nil, err
		}
		if group == "" {
			out = append(out, it)
			continue
		}
		if seen[group] >= maxPer {
			continue
		}
		seen[group]++
		out = append(out, it)
	}

	return out, nil
}

// GroupValue 返回车辆在分组字段上的取值（小写），用于去重比较。
func GroupValue(c core.Car, field string) (string, error) {
	var v string
	switch field {
	case "make":
		v = c.Make
	case "model":
		v = c.Model
	case "color":
		v = c.Color
	case "fuel_type":
		v = string(c.FuelType)
	case "transmission":
		v = string(c.Transmission)
	default:
		return "", fmt.Errorf("rerank.diversity: unsupported field %q", field)
	}
	return strings.ToLower(strings.TrimSpace(v)), nil
}
