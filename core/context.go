package core

// RecommendContext 承载一次“相似车辆”请求的范围与分页信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// CompanyID / BranchID 决定候选池范围，由调用方校验归属关系
	CompanyID int64
	BranchID  int64

	// Target 是已解析的目标车辆；排序节点要求非空
	Target *Car

	// Offset 在组装候选集之前跳过的候选数；Limit 是最终返回的最大条数
	Offset int
	Limit  int

	// Params 请求级参数，供 filter.expr 中的 params.xxx 引用
	Params map[string]any
}
