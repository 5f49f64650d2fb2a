package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pkg/conv"
)

// RedisStore 是 Redis 实现的 InventoryStore。
//
// Key 布局（prefix 默认 "carrec"）：
//
//	{prefix}:{kind}:{id}                   记录 JSON
//	{prefix}:seq:{kind}                    ID 序列（INCR）
//	{prefix}:companies                     公司索引，ZSET，score = member = company id
//	{prefix}:branches                      门店索引，ZSET，score = member = branch id
//	{prefix}:cars:{companyID}:{branchID}   门店车辆索引，ZSET，score = member = car id
//	{prefix}:interactions                  用户行为索引，ZSET，score = member = interaction id
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOption 配置 RedisStore。
type RedisOption func(*RedisStore)

// WithKeyPrefix 设置 key 前缀，便于多个环境共用一个 Redis。
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// NewRedisStore 连接 Redis 并 Ping 一次，失败时返回错误。
func NewRedisStore(addr string, db int, opts ...RedisOption) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %v", core.ErrStoreUnavailable, addr, err)
	}
	return NewRedisStoreWithClient(client, opts...), nil
}

// NewRedisStoreWithClient 使用已有的 *redis.Client 创建存储。
func NewRedisStoreWithClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	r := &RedisStore{client: client, prefix: "carrec"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) Name() string { return "redis" }

func (r *RedisStore) recordKey(kind string, id int64) string {
	return r.prefix + ":" + kind + ":" + strconv.FormatInt(id, 10)
}

func (r *RedisStore) seqKey(kind string) string {
	return r.prefix + ":seq:" + kind
}

func (r *RedisStore) carIndexKey(companyID, branchID int64) string {
	return r.prefix + ":cars:" + strconv.FormatInt(companyID, 10) + ":" + strconv.FormatInt(branchID, 10)
}

func (r *RedisStore) companyIndexKey() string {
	return r.prefix + ":companies"
}

func (r *RedisStore) branchIndexKey() string {
	return r.prefix + ":branches"
}

func (r *RedisStore) interactionIndexKey() string {
	return r.prefix + ":interactions"
}

// bumpSeq 把序列推高到 id（只增不减），用于显式指定 ID 的写入。
var bumpSeq = redis.NewScript(`
local cur = tonumber(redis.call('GET', KEYS[1]) or '0')
local id = tonumber(ARGV[1])
if id > cur then
  redis.call('SET', KEYS[1], ARGV[1])
end
return id
`)

func (r *RedisStore) assignID(ctx context.Context, kind string, id int64) (int64, error) {
	if id == 0 {
		return r.client.Incr(ctx, r.seqKey(kind)).Result()
	}
	if err := bumpSeq.Run(ctx, r.client, []string{r.seqKey(kind)}, id).Err(); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *RedisStore) getJSON(ctx context.Context, key string, v any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return core.ErrStoreNotFound
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func (r *RedisStore) setJSON(ctx context.Context, kind string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, r.recordKey(kind, id), data, 0).Err()
}

// saveIndexed 在一个事务内写入记录 JSON 并登记到 index。
func (r *RedisStore) saveIndexed(ctx context.Context, kind, index string, id int64, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(kind, id), data, 0)
		pipe.ZAdd(ctx, index, redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
		return nil
	})
	return err
}

// deleteIndexed 删除记录并移出 index，记录不存在时返回 ErrStoreNotFound。
func (r *RedisStore) deleteIndexed(ctx context.Context, kind, index string, id int64) error {
	var del *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		del = pipe.Del(ctx, r.recordKey(kind, id))
		pipe.ZRem(ctx, index, strconv.FormatInt(id, 10))
		return nil
	})
	if err != nil {
		return err
	}
	if del.Val() == 0 {
		return core.ErrStoreNotFound
	}
	return nil
}

func (r *RedisStore) GetCompany(ctx context.Context, id int64) (*core.Company, error) {
	var c core.Company
	if err := r.getJSON(ctx, r.recordKey(kindCompany, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RedisStore) GetBranch(ctx context.Context, id int64) (*core.Branch, error) {
	var b core.Branch
	if err := r.getJSON(ctx, r.recordKey(kindBranch, id), &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *RedisStore) GetCar(ctx context.Context, id int64) (*core.Car, error) {
	var c core.Car
	if err := r.getJSON(ctx, r.recordKey(kindCar, id), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *RedisStore) GetUser(ctx context.Context, id int64) (*core.User, error) {
	var u core.User
	if err := r.getJSON(ctx, r.recordKey(kindUser, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *RedisStore) SaveCompany(ctx context.Context, c *core.Company) error {
	id, err := r.assignID(ctx, kindCompany, c.ID)
	if err != nil {
		return err
	}
	c.ID = id
	return r.saveIndexed(ctx, kindCompany, r.companyIndexKey(), id, c)
}

func (r *RedisStore) SaveBranch(ctx context.Context, b *core.Branch) error {
	id, err := r.assignID(ctx, kindBranch, b.ID)
	if err != nil {
		return err
	}
	b.ID = id
	return r.saveIndexed(ctx, kindBranch, r.branchIndexKey(), id, b)
}

func (r *RedisStore) SaveUser(ctx context.Context, u *core.User) error {
	id, err := r.assignID(ctx, kindUser, u.ID)
	if err != nil {
		return err
	}
	u.ID = id
	return r.setJSON(ctx, kindUser, id, u)
}

// SaveCar 写入车辆并维护门店索引；车辆换门店时从旧索引移除。
func (r *RedisStore) SaveCar(ctx context.Context, c *core.Car) error {
	var prev *core.Car
	if c.ID != 0 {
		old, err := r.GetCar(ctx, c.ID)
		switch {
		case err == nil:
			prev = old
		case !errors.Is(err, core.ErrStoreNotFound):
			return err
		}
	}

	id, err := r.assignID(ctx, kindCar, c.ID)
	if err != nil {
		return err
	}
	c.ID = id
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}

	member := strconv.FormatInt(id, 10)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.recordKey(kindCar, id), data, 0)
		if prev != nil && (prev.CompanyID != c.CompanyID || prev.BranchID != c.BranchID) {
			pipe.ZRem(ctx, r.carIndexKey(prev.CompanyID, prev.BranchID), member)
		}
		pipe.ZAdd(ctx, r.carIndexKey(c.CompanyID, c.BranchID), redis.Z{Score: float64(id), Member: member})
		return nil
	})
	return err
}

// ListCompanies 返回全部公司，按 ID 升序。
func (r *RedisStore) ListCompanies(ctx context.Context) ([]core.Company, error) {
	ids, err := r.client.ZRange(ctx, r.companyIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return mgetJSON[core.Company](ctx, r, kindCompany, ids)
}

func (r *RedisStore) DeleteCompany(ctx context.Context, id int64) error {
	return r.deleteIndexed(ctx, kindCompany, r.companyIndexKey(), id)
}

// ListBranches 返回 companyID 下的门店，companyID 为 0 时返回全部，按 ID 升序。
func (r *RedisStore) ListBranches(ctx context.Context, companyID int64) ([]core.Branch, error) {
	ids, err := r.client.ZRange(ctx, r.branchIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	all, err := mgetJSON[core.Branch](ctx, r, kindBranch, ids)
	if err != nil || companyID == 0 {
		return all, err
	}
	out := make([]core.Branch, 0, len(all))
	for _, b := range all {
		if b.CompanyID == companyID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *RedisStore) DeleteBranch(ctx context.Context, id int64) error {
	return r.deleteIndexed(ctx, kindBranch, r.branchIndexKey(), id)
}

func (r *RedisStore) DeleteCar(ctx context.Context, id int64) error {
	c, err := r.GetCar(ctx, id)
	if err != nil {
		return err
	}
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.recordKey(kindCar, id))
		pipe.ZRem(ctx, r.carIndexKey(c.CompanyID, c.BranchID), strconv.FormatInt(id, 10))
		return nil
	})
	return err
}

func (r *RedisStore) ListCars(ctx context.Context, companyID, branchID int64) ([]core.Car, error) {
	ids, err := r.client.ZRange(ctx, r.carIndexKey(companyID, branchID), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	return mgetJSON[core.Car](ctx, r, kindCar, ids)
}

func (r *RedisStore) CountCars(ctx context.Context, companyID, branchID int64) (int, error) {
	n, err := r.client.ZCard(ctx, r.carIndexKey(companyID, branchID)).Result()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *RedisStore) SaveInteraction(ctx context.Context, in *core.Interaction) error {
	id, err := r.assignID(ctx, kindInteraction, in.ID)
	if err != nil {
		return err
	}
	in.ID = id
	return r.saveIndexed(ctx, kindInteraction, r.interactionIndexKey(), id, in)
}

func (r *RedisStore) DeleteInteraction(ctx context.Context, id int64) error {
	return r.deleteIndexed(ctx, kindInteraction, r.interactionIndexKey(), id)
}

func (r *RedisStore) GetInteraction(ctx context.Context, id int64) (*core.Interaction, error) {
	var in core.Interaction
	if err := r.getJSON(ctx, r.recordKey(kindInteraction, id), &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (r *RedisStore) ListInteractions(ctx context.Context, q core.InteractionQuery) ([]core.Interaction, error) {
	ids, err := r.client.ZRange(ctx, r.interactionIndexKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	all, err := mgetJSON[core.Interaction](ctx, r, kindInteraction, ids)
	if err != nil {
		return nil, err
	}
	out := make([]core.Interaction, 0, len(all))
	for _, in := range all {
		if q.Match(in) {
			out = append(out, in)
		}
	}
	return conv.Paginate(out, q.Offset, q.Limit), nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// mgetJSON 按 ids 顺序批量读取记录，索引中残留但记录已删除的 id 被跳过。
func mgetJSON[T any](ctx context.Context, r *RedisStore, kind string, ids []string) ([]T, error) {
	out := make([]T, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.prefix + ":" + kind + ":" + id
	}
	vals, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var rec T
		if err := json.Unmarshal([]byte(s), &rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// 确保 RedisStore 实现了 core.InventoryStore 接口
var _ core.InventoryStore = (*RedisStore)(nil)
