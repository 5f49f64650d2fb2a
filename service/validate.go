package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rushteam/carrec/core"
)

func notFound(what string) error {
	return core.NewDomainError(core.ModuleInventory, core.ErrorCodeNotFound, what+" not found")
}

func invalidInput(msg string) error {
	return core.NewDomainError(core.ModuleInventory, core.ErrorCodeInvalidInput, msg)
}

func preconditionFailed(msg string) error {
	return core.NewDomainError(core.ModuleInventory, core.ErrorCodePreconditionFailed, msg)
}

// storeErr 把存储层的 ErrStoreNotFound 转为业务层的 NOT_FOUND，其余错误附加上下文返回。
func storeErr(err error, what string, id int64) error {
	if errors.Is(err, core.ErrStoreNotFound) {
		return notFound(what)
	}
	return fmt.Errorf("get %s %d: %w", what, id, err)
}

func (s *InventoryService) existingCompany(ctx context.Context, companyID int64) (*core.Company, error) {
	c, err := s.store.GetCompany(ctx, companyID)
	if err != nil {
		return nil, storeErr(err, "company", companyID)
	}
	return c, nil
}

// existingBranch 校验门店存在；companyID 非 0 时还要求门店属于该公司。
func (s *InventoryService) existingBranch(ctx context.Context, branchID, companyID int64) (*core.Branch, error) {
	b, err := s.store.GetBranch(ctx, branchID)
	if err != nil {
		return nil, storeErr(err, "branch", branchID)
	}
	if companyID != 0 && b.CompanyID != companyID {
		return nil, invalidInput("branch does not belong to the specified company")
	}
	return b, nil
}

// existingCar 校验车辆存在；branchID / companyID 非 0 时校验归属。
func (s *InventoryService) existingCar(ctx context.Context, carID, branchID, companyID int64) (*core.Car, error) {
	c, err := s.store.GetCar(ctx, carID)
	if err != nil {
		return nil, storeErr(err, "car", carID)
	}
	if err := checkCarScope(c, branchID, companyID); err != nil {
		return nil, err
	}
	return c, nil
}

func checkCarScope(c *core.Car, branchID, companyID int64) error {
	if branchID != 0 && c.BranchID != branchID {
		return invalidInput("car does not belong to the specified branch")
	}
	if companyID != 0 && c.CompanyID != companyID {
		return invalidInput("car does not belong to the specified company")
	}
	return nil
}

func (s *InventoryService) existingUser(ctx context.Context, userID, branchID, companyID int64) (*core.User, error) {
	u, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user", userID)
	}
	if branchID != 0 && u.BranchID != branchID {
		return nil, invalidInput("user does not belong to the specified branch")
	}
	if companyID != 0 && u.CompanyID != companyID {
		return nil, invalidInput("user does not belong to the specified company")
	}
	return u, nil
}

// validateScope 校验公司存在且门店属于该公司。
func (s *InventoryService) validateScope(ctx context.Context, companyID, branchID int64) error {
	if _, err := s.existingCompany(ctx, companyID); err != nil {
		return err
	}
	_, err := s.existingBranch(ctx, branchID, companyID)
	return err
}
