package service

import (
	"context"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/carrec/config"
	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/filter"
	"github.com/rushteam/carrec/pipeline"
	"github.com/rushteam/carrec/rank"
	"github.com/rushteam/carrec/recall"
	"github.com/rushteam/carrec/store"
)

type fixture struct {
	svc          *InventoryService
	company      int64
	branch       int64
	otherCompany int64
	otherBranch  int64
	user         int64
}

func baseCar() core.Car {
	return core.Car{
		Make: "Toyota", Model: "Corolla", Price: 20000, Year: 2022, Kilometers: 10000,
		FuelType: core.FuelPetrol, Transmission: core.TransmissionManual, Color: "Red", Seats: 5,
	}
}

// seed 写入：门店 1 的车辆 1..5（1 为目标，2 为同款，3 贵一千，4 换品牌，5 差异最大），
// 以及另一家公司门店中的车辆 6。
func seed(t *testing.T, s core.InventoryStore, opts ...Option) fixture {
	t.Helper()
	ctx := context.Background()
	svc, err := New(s, opts...)
	require.NoError(t, err)

	co, err := svc.CreateCompany(ctx, "Acme Motors")
	require.NoError(t, err)
	br, err := svc.CreateBranch(ctx, co.ID, "Downtown", "Main St")
	require.NoError(t, err)
	co2, err := svc.CreateCompany(ctx, "Other Motors")
	require.NoError(t, err)
	br2, err := svc.CreateBranch(ctx, co2.ID, "Uptown", "High St")
	require.NoError(t, err)

	pricier := baseCar()
	pricier.Price = 21000
	honda := baseCar()
	honda.Make = "Honda"
	far := baseCar()
	far.Make, far.Color, far.FuelType, far.Seats = "Kia", "White", core.FuelDiesel, 8

	for _, c := range []core.Car{baseCar(), baseCar(), pricier, honda, far} {
		_, err := svc.CreateCar(ctx, co.ID, br.ID, c)
		require.NoError(t, err)
	}
	_, err = svc.CreateCar(ctx, co2.ID, br2.ID, baseCar())
	require.NoError(t, err)

	u, err := svc.CreateUser(ctx, core.User{FullName: "Sam Lee", Email: "sam@example.com", IsActive: true, CompanyID: co.ID, BranchID: br.ID})
	require.NoError(t, err)

	return fixture{svc: svc, company: co.ID, branch: br.ID, otherCompany: co2.ID, otherBranch: br2.ID, user: u.ID}
}

func carIDs(cars []core.Car) []int64 {
	out := make([]int64, 0, len(cars))
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}

func TestSimilarCars(t *testing.T) {
	f := seed(t, store.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name string
		page Page
		want []int64
	}{
		{name: "default page", page: f.svc.DefaultPage(), want: []int64{2, 3, 4, 5}},
		{name: "limit", page: Page{Limit: 2}, want: []int64{2, 3}},
		{name: "offset applies to pool", page: Page{Offset: 2, Limit: 100}, want: []int64{3, 4, 5}},
		{name: "offset past pool", page: Page{Offset: 10, Limit: 100}, want: []int64{}},
		{name: "zero limit", page: Page{Limit: 0}, want: []int64{}},
		{name: "negative values clamp", page: Page{Offset: -3, Limit: -1}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.SimilarCars(ctx, f.company, f.branch, 1, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, carIDs(got))
		})
	}
}

func TestSimilarCars_Errors(t *testing.T) {
	f := seed(t, store.NewMemoryStore())
	ctx := context.Background()
	page := f.svc.DefaultPage()

	_, err := f.svc.SimilarCars(ctx, f.company, f.branch, 99, page)
	assert.True(t, core.IsNotFound(err), "missing car: %v", err)

	_, err = f.svc.SimilarCars(ctx, 99, f.branch, 1, page)
	assert.True(t, core.IsNotFound(err), "missing company: %v", err)

	_, err = f.svc.SimilarCars(ctx, f.company, f.otherBranch, 1, page)
	assert.True(t, core.IsInvalidInput(err), "branch of another company: %v", err)

	// 车辆 6 属于另一家门店
	_, err = f.svc.SimilarCars(ctx, f.company, f.branch, 6, page)
	assert.True(t, core.IsInvalidInput(err), "car of another branch: %v", err)
}

func TestSimilarCars_MaxLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Pagination.MaxLimit = 1
	f := seed(t, store.NewMemoryStore(), WithRankConfig(cfg))

	got, err := f.svc.SimilarCars(context.Background(), f.company, f.branch, 1, Page{Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, carIDs(got))
}

func TestSearchCars(t *testing.T) {
	f := seed(t, store.NewMemoryStore())
	ctx := context.Background()

	tests := []struct {
		name  string
		query filter.CarQuery
		page  Page
		want  []int64
	}{
		{name: "all", page: Page{Limit: 100}, want: []int64{1, 2, 3, 4, 5}},
		{name: "make", query: filter.CarQuery{Make: "Toyota"}, page: Page{Limit: 100}, want: []int64{1, 2, 3}},
		{name: "price max", query: filter.CarQuery{PriceMax: 20000}, page: Page{Limit: 100}, want: []int64{1, 2, 4, 5}},
		{name: "seats min", query: filter.CarQuery{SeatsMin: 6}, page: Page{Limit: 100}, want: []int64{5}},
		{name: "paged after filter", query: filter.CarQuery{Make: "Toyota"}, page: Page{Offset: 1, Limit: 1}, want: []int64{2}},
		{name: "zero limit", page: Page{}, want: []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.SearchCars(ctx, f.company, f.branch, tt.query, tt.page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, carIDs(got))
		})
	}

	_, err := f.svc.SearchCars(ctx, f.company, 99, filter.CarQuery{}, Page{Limit: 10})
	assert.True(t, core.IsNotFound(err))
}

func TestLuckyCar(t *testing.T) {
	f := seed(t, store.NewMemoryStore(), WithRand(rand.New(rand.NewPCG(1, 2))))
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 50; i++ {
		c, err := f.svc.LuckyCar(ctx, f.company, f.branch)
		require.NoError(t, err)
		assert.Equal(t, f.branch, c.BranchID)
		seen[c.ID] = true
	}
	assert.Greater(t, len(seen), 1)

	empty, err := f.svc.CreateBranch(ctx, f.company, "Empty", "")
	require.NoError(t, err)
	_, err = f.svc.LuckyCar(ctx, f.company, empty.ID)
	assert.True(t, core.IsNotFound(err))
}

func TestInteractions(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	f := seed(t, store.NewMemoryStore(), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	view, err := f.svc.RecordInteraction(ctx, core.Interaction{
		CarID: 1, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView,
	})
	require.NoError(t, err)
	assert.NotZero(t, view.ID)
	assert.True(t, now.Equal(view.Timestamp))

	_, err = f.svc.RecordInteraction(ctx, core.Interaction{
		CarID: 2, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionLike,
	})
	require.NoError(t, err)

	invalid := []struct {
		name  string
		in    core.Interaction
		check func(error) bool
	}{
		{name: "bad type", in: core.Interaction{CarID: 1, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: "Share"}, check: core.IsInvalidInput},
		{name: "missing ids", in: core.Interaction{CarID: 1, Type: core.InteractionView}, check: core.IsInvalidInput},
		{name: "unknown car", in: core.Interaction{CarID: 99, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView}, check: core.IsNotFound},
		{name: "car of other branch", in: core.Interaction{CarID: 6, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView}, check: core.IsInvalidInput},
		{name: "unknown user", in: core.Interaction{CarID: 1, UserID: 99, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView}, check: core.IsNotFound},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.RecordInteraction(ctx, tt.in)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	byBranch, err := f.svc.ListInteractions(ctx, core.InteractionQuery{CompanyID: f.company, BranchID: f.branch}, f.svc.DefaultPage())
	require.NoError(t, err)
	assert.Len(t, byBranch, 2)

	byCar, err := f.svc.ListInteractions(ctx, core.InteractionQuery{CarID: 2}, f.svc.DefaultPage())
	require.NoError(t, err)
	require.Len(t, byCar, 1)
	assert.Equal(t, core.InteractionLike, byCar[0].Type)

	paged, err := f.svc.ListInteractions(ctx, core.InteractionQuery{UserID: f.user}, Page{Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, int64(2), paged[0].CarID)

	_, err = f.svc.ListInteractions(ctx, core.InteractionQuery{UserID: 99}, f.svc.DefaultPage())
	assert.True(t, core.IsNotFound(err))

	got, err := f.svc.GetInteraction(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.CarID)
	_, err = f.svc.GetInteraction(ctx, 99)
	assert.True(t, core.IsNotFound(err))
}

func TestCatalog(t *testing.T) {
	f := seed(t, store.NewMemoryStore())
	ctx := context.Background()

	_, err := f.svc.CreateCompany(ctx, "  ")
	assert.True(t, core.IsInvalidInput(err))

	_, err = f.svc.CreateBranch(ctx, 99, "Nowhere", "")
	assert.True(t, core.IsNotFound(err))

	_, err = f.svc.CreateCar(ctx, f.company, f.otherBranch, baseCar())
	assert.True(t, core.IsInvalidInput(err))

	bare, err := f.svc.CreateCar(ctx, f.company, f.branch, core.Car{ID: 42, CompanyID: 7, Make: "Fiat"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), bare.ID)
	assert.Equal(t, f.company, bare.CompanyID)
	assert.Equal(t, core.FuelUnknown, bare.FuelType)
	assert.Equal(t, core.TransmissionUnknown, bare.Transmission)

	cars, err := f.svc.ListCars(ctx, f.company, f.branch, Page{Offset: 4, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 7}, carIDs(cars))

	_, err = f.svc.GetCar(ctx, f.company, f.branch, 6)
	assert.True(t, core.IsInvalidInput(err))

	require.NoError(t, f.svc.DeleteCar(ctx, f.company, f.branch, 7))
	_, err = f.svc.GetCar(ctx, f.company, f.branch, 7)
	assert.True(t, core.IsNotFound(err))

	_, err = f.svc.CreateUser(ctx, core.User{CompanyID: f.company, BranchID: f.branch})
	assert.True(t, core.IsInvalidInput(err))
	u, err := f.svc.GetUser(ctx, f.user)
	require.NoError(t, err)
	assert.Equal(t, "sam@example.com", u.Email)
}

func TestConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
store:
  type: redis
  addr: 127.0.0.1:6379
  db: 2
pagination:
  default_limit: 20
  max_limit: 50
timeout: 500ms
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Store.Type)
	assert.Equal(t, 2, cfg.Store.DB)
	assert.Equal(t, 20, cfg.DefaultLimit())
	assert.Equal(t, 50, cfg.MaxLimit())
	assert.Equal(t, 500*time.Millisecond, cfg.DefaultTimeout())
	assert.Equal(t, "debug", cfg.Log.Level)

	defaults, err := ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, "memory", defaults.Store.Type)
	assert.Equal(t, 100, defaults.DefaultLimit())

	invalid := []string{
		"store: {type: sqlite}",
		"store: {type: redis}",
		"pagination: {default_limit: 200, max_limit: 100}",
		"pagination: {default_limit: -1}",
	}
	for _, doc := range invalid {
		_, err := ParseConfig([]byte(doc))
		assert.Error(t, err, doc)
	}
}

func TestNewFromConfig_RedisWithPipeline(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()
	pipelinePath := filepath.Join(dir, "similar.yaml")
	require.NoError(t, os.WriteFile(pipelinePath, []byte(`
pipeline:
  name: similar_cars
  nodes:
    - type: filter
      config:
        filters:
          - type: blacklist
            car_ids: [2]
    - type: rank.similarity
`), 0o644))

	cfg := DefaultConfig()
	cfg.Store = StoreConfig{Type: "redis", Addr: mr.Addr()}
	cfg.Pipeline = pipelinePath
	cfg.Log.Level = "disabled"

	svc, err := NewFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })
	assert.Equal(t, "redis", svc.Store().Name())

	f := seed(t, svc.Store(), WithPipeline(svc.similar), WithRankConfig(cfg))
	got, err := f.svc.SimilarCars(context.Background(), f.company, f.branch, 1, f.svc.DefaultPage())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 4, 5}, carIDs(got))
	assert.True(t, mr.Exists("carrec:car:1"))

	cfg.Pipeline = filepath.Join(dir, "missing.yaml")
	_, err = NewFromConfig(cfg)
	assert.Error(t, err)
}

func TestSimilarCars_Params(t *testing.T) {
	pcfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: similar_cars
  nodes:
    - type: filter.expr
      config: {expr: 'car.price <= params.budget'}
    - type: rank.similarity
`))
	require.NoError(t, err)
	p, err := pcfg.BuildPipeline(config.DefaultFactory())
	require.NoError(t, err)

	f := seed(t, store.NewMemoryStore(), WithPipeline(p))
	ctx := context.Background()

	// 车辆 3 超出预算
	got, err := f.svc.SimilarCars(ctx, f.company, f.branch, 1, Page{Limit: 10},
		WithParams(map[string]any{"budget": 20000.0}))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4, 5}, carIDs(got))

	got, err = f.svc.SimilarCars(ctx, f.company, f.branch, 1, Page{Limit: 2},
		WithParams(map[string]any{"budget": 50000.0}))
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, carIDs(got))

	// 缺少参数时表达式求值失败
	_, err = f.svc.SimilarCars(ctx, f.company, f.branch, 1, Page{Limit: 10})
	assert.Error(t, err)
}

func TestNew_RejectsInvalidPipeline(t *testing.T) {
	expr, err := filter.NewExprFilter(`car.seats >= 1`)
	require.NoError(t, err)
	onlyFilter := &filter.FilterNode{Filters: []filter.Filter{expr}}

	tests := []struct {
		name  string
		nodes []pipeline.Node
	}{
		{name: "no nodes", nodes: nil},
		{name: "filter only", nodes: []pipeline.Node{onlyFilter}},
		{name: "two rankers", nodes: []pipeline.Node{&rank.SimilarityNode{}, &rank.SimilarityNode{}}},
		{name: "own recall", nodes: []pipeline.Node{&recall.Static{}, &rank.SimilarityNode{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(store.NewMemoryStore(), WithPipeline(&pipeline.Pipeline{Name: "similar_cars", Nodes: tt.nodes}))
			require.Error(t, err)
			assert.True(t, core.IsInvalidInput(err))
			assert.Equal(t, core.ModulePipeline, core.GetDomainError(err).Module)
		})
	}

	_, err = New(store.NewMemoryStore(), WithPipeline(&pipeline.Pipeline{
		Name:  "similar_cars",
		Nodes: []pipeline.Node{onlyFilter, &rank.SimilarityNode{}},
	}))
	assert.NoError(t, err)
}

func TestNewFromConfig_PipelineFiles(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"filter_only.yaml": `
pipeline:
  name: similar_cars
  nodes:
    - type: filter.expr
      config: {expr: 'car.seats >= 1'}
`,
		"similar.json": `{"pipeline": {"name": "similar_cars", "nodes": [
  {"type": "filter", "config": {"filters": [{"type": "blacklist", "car_ids": [3]}]}},
  {"type": "rank.similarity"}
]}}`,
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	cfg := DefaultConfig()
	cfg.Log.Level = "disabled"

	cfg.Pipeline = filepath.Join(dir, "filter_only.yaml")
	_, err := NewFromConfig(cfg)
	require.Error(t, err)
	assert.True(t, core.IsInvalidInput(err))

	cfg.Pipeline = filepath.Join(dir, "similar.json")
	svc, err := NewFromConfig(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	f := seed(t, svc.Store(), WithPipeline(svc.similar))
	got, err := f.svc.SimilarCars(context.Background(), f.company, f.branch, 1, Page{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, carIDs(got))
}

func TestDefaultConfig_LogFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "console")

	cfg := DefaultConfig()
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)

	// 配置文件优先于环境变量
	cfg, err := ParseConfig([]byte("log: {level: error}"))
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestCatalog_CompaniesAndBranches(t *testing.T) {
	f := seed(t, store.NewMemoryStore())
	ctx := context.Background()

	cos, err := f.svc.ListCompanies(ctx, f.svc.DefaultPage())
	require.NoError(t, err)
	require.Len(t, cos, 2)
	cos, err = f.svc.ListCompanies(ctx, Page{Offset: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, cos, 1)
	assert.Equal(t, "Other Motors", cos[0].Name)
	cos, err = f.svc.ListCompanies(ctx, Page{})
	require.NoError(t, err)
	assert.Empty(t, cos)

	co, err := f.svc.UpdateCompany(ctx, f.company, " Acme Group ")
	require.NoError(t, err)
	assert.Equal(t, "Acme Group", co.Name)
	co, err = f.svc.GetCompany(ctx, f.company)
	require.NoError(t, err)
	assert.Equal(t, "Acme Group", co.Name)
	_, err = f.svc.UpdateCompany(ctx, 99, "Ghost")
	assert.True(t, core.IsNotFound(err))
	_, err = f.svc.UpdateCompany(ctx, f.company, " ")
	assert.True(t, core.IsInvalidInput(err))

	airport, err := f.svc.CreateBranch(ctx, f.company, "Airport", "Terminal 1")
	require.NoError(t, err)

	branchIDs := func(companyID int64) []int64 {
		t.Helper()
		bs, err := f.svc.ListBranches(ctx, companyID, f.svc.DefaultPage())
		require.NoError(t, err)
		ids := make([]int64, 0, len(bs))
		for _, b := range bs {
			ids = append(ids, b.ID)
		}
		return ids
	}
	assert.Equal(t, []int64{f.branch, airport.ID}, branchIDs(f.company))
	assert.Equal(t, []int64{f.branch, f.otherBranch, airport.ID}, branchIDs(0))
	_, err = f.svc.ListBranches(ctx, 99, f.svc.DefaultPage())
	assert.True(t, core.IsNotFound(err))

	br, err := f.svc.UpdateBranch(ctx, f.company, airport.ID, "", "Terminal 2")
	require.NoError(t, err)
	assert.Equal(t, "Airport", br.Name)
	assert.Equal(t, "Terminal 2", br.Location)
	_, err = f.svc.UpdateBranch(ctx, f.company, f.otherBranch, "Mine", "")
	assert.True(t, core.IsInvalidInput(err))

	// 仍有车辆或门店时不能删除
	err = f.svc.DeleteBranch(ctx, f.company, f.branch)
	assert.True(t, core.IsPreconditionFailed(err))
	err = f.svc.DeleteCompany(ctx, f.company)
	assert.True(t, core.IsPreconditionFailed(err))

	require.NoError(t, f.svc.DeleteBranch(ctx, f.company, airport.ID))
	_, err = f.svc.GetBranch(ctx, f.company, airport.ID)
	assert.True(t, core.IsNotFound(err))
	assert.True(t, core.IsNotFound(f.svc.DeleteBranch(ctx, f.company, airport.ID)))

	require.NoError(t, f.svc.DeleteCar(ctx, f.otherCompany, f.otherBranch, 6))
	require.NoError(t, f.svc.DeleteBranch(ctx, f.otherCompany, f.otherBranch))
	require.NoError(t, f.svc.DeleteCompany(ctx, f.otherCompany))
	_, err = f.svc.GetCompany(ctx, f.otherCompany)
	assert.True(t, core.IsNotFound(err))
	assert.True(t, core.IsNotFound(f.svc.DeleteCompany(ctx, f.otherCompany)))
}

func TestInteractions_UpdateDelete(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	f := seed(t, newRedisStore(t), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	view, err := f.svc.RecordInteraction(ctx, core.Interaction{
		CarID: 1, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView,
	})
	require.NoError(t, err)

	like := core.Interaction{CarID: 2, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionLike}
	updated, err := f.svc.UpdateInteraction(ctx, view.ID, like)
	require.NoError(t, err)
	assert.Equal(t, view.ID, updated.ID)
	assert.Equal(t, int64(2), updated.CarID)
	assert.True(t, now.Equal(updated.Timestamp))

	got, err := f.svc.GetInteraction(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, core.InteractionLike, got.Type)

	later := like
	later.Timestamp = now.Add(time.Hour)
	updated, err = f.svc.UpdateInteraction(ctx, view.ID, later)
	require.NoError(t, err)
	assert.True(t, later.Timestamp.Equal(updated.Timestamp))

	invalid := []struct {
		name  string
		id    int64
		in    core.Interaction
		check func(error) bool
	}{
		{name: "unknown id", id: 99, in: like, check: core.IsNotFound},
		{name: "bad type", id: view.ID, in: core.Interaction{CarID: 1, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: "Share"}, check: core.IsInvalidInput},
		{name: "car of other branch", id: view.ID, in: core.Interaction{CarID: 6, UserID: f.user, CompanyID: f.company, BranchID: f.branch, Type: core.InteractionView}, check: core.IsInvalidInput},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateInteraction(ctx, tt.id, tt.in)
			require.Error(t, err)
			assert.True(t, tt.check(err), "unexpected error: %v", err)
		})
	}

	require.NoError(t, f.svc.DeleteInteraction(ctx, view.ID))
	assert.True(t, core.IsNotFound(f.svc.DeleteInteraction(ctx, view.ID)))
	_, err = f.svc.GetInteraction(ctx, view.ID)
	assert.True(t, core.IsNotFound(err))
	left, err := f.svc.ListInteractions(ctx, core.InteractionQuery{UserID: f.user}, f.svc.DefaultPage())
	require.NoError(t, err)
	assert.Empty(t, left)
}

func newRedisStore(t *testing.T) core.InventoryStore {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := store.NewRedisStore(mr.Addr(), 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}
