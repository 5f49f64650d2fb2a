// Package similarity 实现基于内容的相似车辆排序：
// 车辆 -> 特征签名 -> TF-IDF 向量 -> 余弦相似度 -> 稳定降序排序。
//
// 每次调用都重新构建词表与向量，不持有任何跨请求状态，可并发调用。
package similarity

import (
	"strconv"
	"strings"

	"github.com/rushteam/carrec/core"
)

// Signature 按固定顺序拼接车辆字段：
//
//	make price year kilometers fuel_type transmission color seats
//
// 数值不带千分位，价格取最短十进制表示（20000、20000.5）；枚举取文本值。
// model 不参与签名。
func Signature(c core.Car) string {
	var b strings.Builder
	b.Grow(64)
	b.WriteString(c.Make)
	b.WriteByte(' ')
	b.WriteString(FormatPrice(c.Price))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(c.Year))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(c.Kilometers))
	b.WriteByte(' ')
	b.WriteString(string(c.FuelType))
	b.WriteByte(' ')
	b.WriteString(string(c.Transmission))
	b.WriteByte(' ')
	b.WriteString(c.Color)
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(c.Seats))
	return b.String()
}

// FormatPrice 返回价格的规范文本形式。
// 数值原样作为 token，相差 1 的价格也是完全不同的 token。
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
