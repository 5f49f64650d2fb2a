// Package store 提供 core.InventoryStore 的实现：MemoryStore（测试/开发）与 RedisStore（生产）。
//
//	var s core.InventoryStore = store.NewMemoryStore()
package store

// 各类记录的 ID 序列名，同时用作 Redis key 的一段。
const (
	kindCompany     = "company"
	kindBranch      = "branch"
	kindCar         = "car"
	kindUser        = "user"
	kindInteraction = "interaction"
)
