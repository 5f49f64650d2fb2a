package service

import (
	"context"

	"github.com/rushteam/carrec/core"
)

// RecordInteraction 记录一次用户行为（View / Like）。
// 公司、门店、车辆、用户必须存在且归属一致；Timestamp 为空时取当前时间。
// 行为只做记录，不影响相似车辆的排序。
func (s *InventoryService) RecordInteraction(ctx context.Context, in core.Interaction) (*core.Interaction, error) {
	if err := s.validateInteraction(ctx, in); err != nil {
		return nil, err
	}

	in.ID = 0
	if in.Timestamp.IsZero() {
		in.Timestamp = s.now().UTC()
	}
	if err := s.store.SaveInteraction(ctx, &in); err != nil {
		return nil, err
	}
	s.logger.Debug().
		Int64("interaction_id", in.ID).
		Int64("car_id", in.CarID).
		Int64("user_id", in.UserID).
		Str("type", string(in.Type)).
		Msg("interaction recorded")
	return &in, nil
}

// UpdateInteraction 用 in 覆盖已有行为记录，校验规则与 RecordInteraction 相同；
// in.Timestamp 为空时保留原时间。
func (s *InventoryService) UpdateInteraction(ctx context.Context, id int64, in core.Interaction) (*core.Interaction, error) {
	old, err := s.GetInteraction(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInteraction(ctx, in); err != nil {
		return nil, err
	}
	in.ID = id
	if in.Timestamp.IsZero() {
		in.Timestamp = old.Timestamp
	}
	if err := s.store.SaveInteraction(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *InventoryService) DeleteInteraction(ctx context.Context, id int64) error {
	if err := s.store.DeleteInteraction(ctx, id); err != nil {
		return storeErr(err, "interaction", id)
	}
	s.logger.Debug().Int64("interaction_id", id).Msg("interaction deleted")
	return nil
}

// validateInteraction 要求类型合法，公司、门店、车辆、用户都存在且归属一致。
func (s *InventoryService) validateInteraction(ctx context.Context, in core.Interaction) error {
	if _, err := core.ParseInteractionType(string(in.Type)); err != nil {
		return err
	}
	if in.CompanyID == 0 || in.BranchID == 0 || in.CarID == 0 || in.UserID == 0 {
		return invalidInput("company_id, branch_id, car_id and user_id are required")
	}
	if err := s.validateScope(ctx, in.CompanyID, in.BranchID); err != nil {
		return err
	}
	if _, err := s.existingCar(ctx, in.CarID, in.BranchID, in.CompanyID); err != nil {
		return err
	}
	_, err := s.existingUser(ctx, in.UserID, in.BranchID, in.CompanyID)
	return err
}

func (s *InventoryService) GetInteraction(ctx context.Context, id int64) (*core.Interaction, error) {
	in, err := s.store.GetInteraction(ctx, id)
	if err != nil {
		return nil, storeErr(err, "interaction", id)
	}
	return in, nil
}

// ListInteractions 按门店、车辆或用户查询行为记录，按 ID 升序分页。
// 查询中给出的门店/车辆/用户必须存在。
func (s *InventoryService) ListInteractions(ctx context.Context, q core.InteractionQuery, page Page) ([]core.Interaction, error) {
	page = s.normalize(page)
	switch {
	case q.BranchID != 0:
		if _, err := s.existingBranch(ctx, q.BranchID, q.CompanyID); err != nil {
			return nil, err
		}
	case q.CompanyID != 0:
		if _, err := s.existingCompany(ctx, q.CompanyID); err != nil {
			return nil, err
		}
	}
	if q.CarID != 0 {
		if _, err := s.existingCar(ctx, q.CarID, q.BranchID, q.CompanyID); err != nil {
			return nil, err
		}
	}
	if q.UserID != 0 {
		if _, err := s.existingUser(ctx, q.UserID, q.BranchID, q.CompanyID); err != nil {
			return nil, err
		}
	}
	if page.Limit == 0 {
		return []core.Interaction{}, nil
	}
	q.Offset, q.Limit = page.Offset, page.Limit
	return s.store.ListInteractions(ctx, q)
}
