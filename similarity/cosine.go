package similarity

import "math"

// Dot 计算两个稀疏向量的点积，按下标升序归并。
func Dot(a, b TermVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			dot += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// Cosine 计算余弦相似度。对已 L2 归一化的向量等于 Dot；零向量返回 0。
func Cosine(a, b TermVector) float64 {
	na := norm(a)
	nb := norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

func norm(v TermVector) float64 {
	var s float64
	for _, w := range v.Weights {
		s += w * w
	}
	return math.Sqrt(s)
}
