package core

import "context"

// InventoryStore 是库存存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 相似度排序只接收已物化的 []Car，从不接触存储句柄
//
// 实现：
//   - store.MemoryStore（测试/开发）
//   - store.RedisStore（生产）
type InventoryStore interface {
	// Name 返回存储后端名称（用于日志）
	Name() string

	// Get* 按 ID 读取，不存在时返回 ErrStoreNotFound
	GetCompany(ctx context.Context, id int64) (*Company, error)
	GetBranch(ctx context.Context, id int64) (*Branch, error)
	GetCar(ctx context.Context, id int64) (*Car, error)
	GetUser(ctx context.Context, id int64) (*User, error)

	// Save* 写入记录；ID 为 0 时由存储分配，并回写到入参
	SaveCompany(ctx context.Context, c *Company) error
	SaveBranch(ctx context.Context, b *Branch) error
	SaveCar(ctx context.Context, c *Car) error
	SaveUser(ctx context.Context, u *User) error

	// Delete* 删除记录，不存在时返回 ErrStoreNotFound；不级联
	DeleteCompany(ctx context.Context, id int64) error
	DeleteBranch(ctx context.Context, id int64) error
	DeleteCar(ctx context.Context, id int64) error

	// ListCompanies 返回全部公司，按 ID 升序
	ListCompanies(ctx context.Context) ([]Company, error)

	// ListBranches 返回公司下的门店，companyID 为 0 时返回全部，按 ID 升序
	ListBranches(ctx context.Context, companyID int64) ([]Branch, error)

	// ListCars 返回 company/branch 范围内的全部车辆，按 ID 升序
	ListCars(ctx context.Context, companyID, branchID int64) ([]Car, error)

	// CountCars 返回 company/branch 范围内的车辆数
	CountCars(ctx context.Context, companyID, branchID int64) (int, error)

	// SaveInteraction 写入用户行为；ID 为 0 时由存储分配
	SaveInteraction(ctx context.Context, in *Interaction) error

	// GetInteraction 按 ID 读取用户行为
	GetInteraction(ctx context.Context, id int64) (*Interaction, error)

	// DeleteInteraction 删除用户行为，不存在时返回 ErrStoreNotFound
	DeleteInteraction(ctx context.Context, id int64) error

	// ListInteractions 按查询条件返回用户行为，按 ID 升序
	ListInteractions(ctx context.Context, q InteractionQuery) ([]Interaction, error)

	// Close 关闭连接/释放资源
	Close() error
}

// InteractionQuery 是用户行为的查询条件，零值字段表示不限制。
type InteractionQuery struct {
	CompanyID int64
	BranchID  int64
	CarID     int64
	UserID    int64
	Offset    int
	Limit     int // <= 0 表示不限制
}

// Match 判断一条行为记录是否满足查询条件（不含分页）。
func (q InteractionQuery) Match(in Interaction) bool {
	if q.CompanyID != 0 && in.CompanyID != q.CompanyID {
		return false
	}
	if q.BranchID != 0 && in.BranchID != q.BranchID {
		return false
	}
	if q.CarID != 0 && in.CarID != q.CarID {
		return false
	}
	if q.UserID != 0 && in.UserID != q.UserID {
		return false
	}
	return true
}

// Store 错误定义（使用统一的 DomainError）
var (
	// ErrStoreNotFound 表示记录不存在
	ErrStoreNotFound = NewDomainError(ModuleStore, ErrorCodeNotFound, "store: record not found")

	// ErrStoreUnavailable 表示存储后端不可达
	ErrStoreUnavailable = NewDomainError(ModuleStore, ErrorCodeUnavailable, "store: backend unavailable")
)
