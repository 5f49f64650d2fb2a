package filter

import (
	"context"

	"github.com/rushteam/carrec/core"
)

// CarQuery 是车辆检索条件，零值字段表示不限制。
// 范围条件均为闭区间。
type CarQuery struct {
	Make         string            `json:"make,omitempty"`
	Model        string            `json:"model,omitempty"`
	YearMin      int               `json:"year_min,omitempty"`
	YearMax      int               `json:"year_max,omitempty"`
	PriceMin     float64           `json:"price_min,omitempty"`
	PriceMax     float64           `json:"price_max,omitempty"`
	FuelType     core.FuelType     `json:"fuel_type,omitempty"`
	Transmission core.Transmission `json:"transmission,omitempty"`
	Color        string            `json:"color,omitempty"`
	SeatsMin     int               `json:"seats_min,omitempty"`
	SeatsMax     int               `json:"seats_max,omitempty"`
}

// IsZero 判断是否没有任何条件。
func (q CarQuery) IsZero() bool {
	return q == CarQuery{}
}

// Match 判断车辆是否满足全部条件。
func (q CarQuery) Match(c core.Car) bool {
	switch {
	case q.Make != "" && c.Make != q.Make:
		return false
	case q.Model != "" && c.Model != q.Model:
		return false
	case q.YearMin != 0 && c.Year < q.YearMin:
		return false
	case q.YearMax != 0 && c.Year > q.YearMax:
		return false
	case q.PriceMin != 0 && c.Price < q.PriceMin:
		return false
	case q.PriceMax != 0 && c.Price > q.PriceMax:
		return false
	case q.FuelType != "" && c.FuelType != q.FuelType:
		return false
	case q.Transmission != "" && c.Transmission != q.Transmission:
		return false
	case q.Color != "" && c.Color != q.Color:
		return false
	case q.SeatsMin != 0 && c.Seats < q.SeatsMin:
		return false
	case q.SeatsMax != 0 && c.Seats > q.SeatsMax:
		return false
	}
	return true
}

// AttributeFilter 过滤掉不满足 CarQuery 的车辆。
type AttributeFilter struct {
	Query CarQuery
}

func (f *AttributeFilter) Name() string {
	return "filter.attribute"
}

func (f *AttributeFilter) ShouldFilter(
	_ context.Context,
	_ *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	if item == nil {
		return true, nil
	}
	return !f.Query.Match(item.Car), nil
}
