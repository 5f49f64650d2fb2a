package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rushteam/carrec/core"
	"github.com/rushteam/carrec/pkg/conv"
)

func (s *InventoryService) CreateCompany(ctx context.Context, name string) (*core.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("company name is required")
	}
	c := &core.Company{Name: name}
	if err := s.store.SaveCompany(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *InventoryService) GetCompany(ctx context.Context, companyID int64) (*core.Company, error) {
	return s.existingCompany(ctx, companyID)
}

// UpdateCompany 修改公司名称，名称去空白后不能为空。
func (s *InventoryService) UpdateCompany(ctx context.Context, companyID int64, name string) (*core.Company, error) {
	c, err := s.existingCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("company name is required")
	}
	c.Name = name
	if err := s.store.SaveCompany(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteCompany 删除没有门店的公司，仍有门店时返回 PRECONDITION_FAILED。
func (s *InventoryService) DeleteCompany(ctx context.Context, companyID int64) error {
	if _, err := s.existingCompany(ctx, companyID); err != nil {
		return err
	}
	branches, err := s.store.ListBranches(ctx, companyID)
	if err != nil {
		return err
	}
	if len(branches) > 0 {
		return preconditionFailed(fmt.Sprintf("company %d still has %d branches", companyID, len(branches)))
	}
	if err := s.store.DeleteCompany(ctx, companyID); err != nil {
		return storeErr(err, "company", companyID)
	}
	s.logger.Debug().Int64("company_id", companyID).Msg("company deleted")
	return nil
}

// ListCompanies 返回公司列表，按 ID 升序分页。
func (s *InventoryService) ListCompanies(ctx context.Context, page Page) ([]core.Company, error) {
	page = s.normalize(page)
	if page.Limit == 0 {
		return []core.Company{}, nil
	}
	cos, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, err
	}
	return conv.Paginate(cos, page.Offset, page.Limit), nil
}

// CreateBranch 在已存在的公司下创建门店。
func (s *InventoryService) CreateBranch(ctx context.Context, companyID int64, name, location string) (*core.Branch, error) {
	if _, err := s.existingCompany(ctx, companyID); err != nil {
		return nil, err
	}
	b := &core.Branch{CompanyID: companyID, Name: name, Location: location}
	if err := s.store.SaveBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *InventoryService) GetBranch(ctx context.Context, companyID, branchID int64) (*core.Branch, error) {
	return s.existingBranch(ctx, branchID, companyID)
}

// UpdateBranch 修改门店名称与地址，空字符串表示保留原值。
func (s *InventoryService) UpdateBranch(ctx context.Context, companyID, branchID int64, name, location string) (*core.Branch, error) {
	b, err := s.existingBranch(ctx, branchID, companyID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		b.Name = name
	}
	if location != "" {
		b.Location = location
	}
	if err := s.store.SaveBranch(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// DeleteBranch 删除没有车辆的门店，仍有车辆时返回 PRECONDITION_FAILED。
func (s *InventoryService) DeleteBranch(ctx context.Context, companyID, branchID int64) error {
	b, err := s.existingBranch(ctx, branchID, companyID)
	if err != nil {
		return err
	}
	n, err := s.store.CountCars(ctx, b.CompanyID, branchID)
	if err != nil {
		return err
	}
	if n > 0 {
		return preconditionFailed(fmt.Sprintf("branch %d still has %d cars", branchID, n))
	}
	if err := s.store.DeleteBranch(ctx, branchID); err != nil {
		return storeErr(err, "branch", branchID)
	}
	s.logger.Debug().Int64("branch_id", branchID).Msg("branch deleted")
	return nil
}

// ListBranches 返回公司下的门店，companyID 为 0 时返回全部，按 ID 升序分页。
func (s *InventoryService) ListBranches(ctx context.Context, companyID int64, page Page) ([]core.Branch, error) {
	page = s.normalize(page)
	if companyID != 0 {
		if _, err := s.existingCompany(ctx, companyID); err != nil {
			return nil, err
		}
	}
	if page.Limit == 0 {
		return []core.Branch{}, nil
	}
	branches, err := s.store.ListBranches(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return conv.Paginate(branches, page.Offset, page.Limit), nil
}

// CreateCar 把车辆登记到门店库存，ID 与归属字段由服务端决定。
func (s *InventoryService) CreateCar(ctx context.Context, companyID, branchID int64, car core.Car) (*core.Car, error) {
	if err := s.validateScope(ctx, companyID, branchID); err != nil {
		return nil, err
	}
	car.ID = 0
	car.CompanyID = companyID
	car.BranchID = branchID
	if car.FuelType == "" {
		car.FuelType = core.FuelUnknown
	}
	if car.Transmission == "" {
		car.Transmission = core.TransmissionUnknown
	}
	if err := s.store.SaveCar(ctx, &car); err != nil {
		return nil, err
	}
	s.logger.Debug().Int64("car_id", car.ID).Int64("branch_id", branchID).Msg("car created")
	return &car, nil
}

func (s *InventoryService) GetCar(ctx context.Context, companyID, branchID, carID int64) (*core.Car, error) {
	return s.existingCar(ctx, carID, branchID, companyID)
}

// ListCars 返回门店车辆，按 ID 升序分页。
func (s *InventoryService) ListCars(ctx context.Context, companyID, branchID int64, page Page) ([]core.Car, error) {
	page = s.normalize(page)
	if err := s.validateScope(ctx, companyID, branchID); err != nil {
		return nil, err
	}
	if page.Limit == 0 {
		return []core.Car{}, nil
	}
	cars, err := s.store.ListCars(ctx, companyID, branchID)
	if err != nil {
		return nil, err
	}
	return conv.Paginate(cars, page.Offset, page.Limit), nil
}

func (s *InventoryService) DeleteCar(ctx context.Context, companyID, branchID, carID int64) error {
	if _, err := s.existingCar(ctx, carID, branchID, companyID); err != nil {
		return err
	}
	if err := s.store.DeleteCar(ctx, carID); err != nil {
		return storeErr(err, "car", carID)
	}
	return nil
}

// CreateUser 创建用户，email 必填；给出公司/门店时校验其存在与归属。
func (s *InventoryService) CreateUser(ctx context.Context, u core.User) (*core.User, error) {
	if strings.TrimSpace(u.Email) == "" {
		return nil, invalidInput("user email is required")
	}
	switch {
	case u.BranchID != 0:
		if u.CompanyID == 0 {
			return nil, invalidInput("company_id is required with branch_id")
		}
		if err := s.validateScope(ctx, u.CompanyID, u.BranchID); err != nil {
			return nil, err
		}
	case u.CompanyID != 0:
		if _, err := s.existingCompany(ctx, u.CompanyID); err != nil {
			return nil, err
		}
	}
	u.ID = 0
	if err := s.store.SaveUser(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *InventoryService) GetUser(ctx context.Context, userID int64) (*core.User, error) {
	return s.existingUser(ctx, userID, 0, 0)
}
