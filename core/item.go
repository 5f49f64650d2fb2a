package core

import "github.com/rushteam/carrec/pkg/utils"

// Item 是推荐链路中的统一承载结构：车辆、分数、标签。
// Labels 用于解释与观测；Score 用于排序决策。
type Item struct {
	ID     int64
	Score  float64
	Car    Car
	Labels map[string]utils.Label
}

func NewItem(car Car) *Item {
	return &Item{
		ID:     car.ID,
		Car:    car,
		Labels: make(map[string]utils.Label),
	}
}

// ItemsFromCars 按输入顺序把车辆包装为 Item。
func ItemsFromCars(cars []Car) []*Item {
	out := make([]*Item, 0, len(cars))
	for _, c := range cars {
		out = append(out, NewItem(c))
	}
	return out
}

// CarsFromItems 按链路输出顺序取回车辆，跳过 nil。
func CarsFromItems(items []*Item) []Car {
	out := make([]Car, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		out = append(out, it.Car)
	}
	return out
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}
