package similarity

import (
	"math"
	"sort"
	"strings"
)

// Tokenize 按空白切分并转小写。
func Tokenize(doc string) []string {
	fields := strings.Fields(doc)
	for i, f := range fields {
		fields[i] = strings.ToLower(f)
	}
	return fields
}

// TermVector 是按词表下标升序存储的稀疏向量。
// 下标有序保证范数与点积的累加顺序固定，结果可复现。
type TermVector struct {
	Indices []int
	Weights []float64
}

// Len 返回非零维度数。
func (v TermVector) Len() int { return len(v.Indices) }

// Vectorizer 是单次调用内的 TF-IDF 词表。
//
//	tf  = 词在文档中的出现次数
//	idf = ln((1 + n) / (1 + df)) + 1
//
// 每个文档向量做 L2 归一化。
type Vectorizer struct {
	vocab map[string]int
	idf   []float64
}

// Fit 基于文档集合构建词表和 idf。词表下标按首次出现顺序分配。
func Fit(docs [][]string) *Vectorizer {
	v := &Vectorizer{vocab: make(map[string]int)}
	var df []int
	seen := make(map[int]struct{})
	for _, tokens := range docs {
		clear(seen)
		for _, tok := range tokens {
			idx, ok := v.vocab[tok]
			if !ok {
				idx = len(v.vocab)
				v.vocab[tok] = idx
				df = append(df, 0)
			}
			if _, dup := seen[idx]; dup {
				continue
			}
			seen[idx] = struct{}{}
			df[idx]++
		}
	}

	n := float64(len(docs))
	v.idf = make([]float64, len(df))
	for i, d := range df {
		v.idf[i] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return v
}

// VocabularySize 返回词表大小。
func (v *Vectorizer) VocabularySize() int { return len(v.vocab) }

// IDF 返回 token 的 idf，不在词表中时返回 0。
func (v *Vectorizer) IDF(token string) float64 {
	idx, ok := v.vocab[token]
	if !ok {
		return 0
	}
	return v.idf[idx]
}

// Transform 把文档转换为归一化的 TF-IDF 向量，忽略词表外的 token。
func (v *Vectorizer) Transform(tokens []string) TermVector {
	counts := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		if idx, ok := v.vocab[tok]; ok {
			counts[idx]++
		}
	}

	vec := TermVector{
		Indices: make([]int, 0, len(counts)),
		Weights: make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		vec.Indices = append(vec.Indices, idx)
	}
	sort.Ints(vec.Indices)

	var norm float64
	for _, idx := range vec.Indices {
		w := counts[idx] * v.idf[idx]
		vec.Weights = append(vec.Weights, w)
		norm += w * w
	}
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i := range vec.Weights {
		vec.Weights[i] /= norm
	}
	return vec
}

// FitTransform 等价于 Fit 后对每个文档 Transform，返回与 docs 同序的向量。
func FitTransform(docs [][]string) []TermVector {
	v := Fit(docs)
	out := make([]TermVector, len(docs))
	for i, tokens := range docs {
		out[i] = v.Transform(tokens)
	}
	return out
}
