package usecases

import (
	"context"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/authorization"
	"assetdesk/internal/shared/errors"
)

type ListEquipmentQuery struct {
	Category   *string
	Department *string
	Status     *int
	Page       int
	PageSize   int

	RequesterRole authorization.Permission
	RequesterDep  string
	IncludeAll    bool
}

type ListEquipmentResult struct {
	Items []*equipment.Equipment
	Total int64
}

// ListEquipmentUseCase pages through assets with the same role scoping
// as the order listing: no department-wide bit, no other departments.
type ListEquipmentUseCase struct {
	equipment equipment.Repository
}

func NewListEquipmentUseCase(equipmentRepo equipment.Repository) *ListEquipmentUseCase {
	return &ListEquipmentUseCase{equipment: equipmentRepo}
}

func (uc *ListEquipmentUseCase) Execute(ctx context.Context, query ListEquipmentQuery) (*ListEquipmentResult, error) {
	filter := equipment.Filter{
		Category:   query.Category,
		Department: query.Department,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}

	if query.Status != nil {
		status := equipment.Status(*query.Status)
		if !status.IsValid() {
			return nil, errors.NewValidationError("unknown equipment status")
		}
		filter.Status = &status
	}

	if !authorization.Has(query.RequesterRole, authorization.PermHigher) &&
		!authorization.Has(query.RequesterRole, authorization.PermSuper) {
		filter.Department = &query.RequesterDep
	}
	if query.IncludeAll && authorization.Has(query.RequesterRole, authorization.PermSuper) {
		filter.IncludeDeleted = true
	}

	items, total, err := uc.equipment.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ListEquipmentResult{Items: items, Total: total}, nil
}

type EquipmentDetailResult struct {
	Equipment *equipment.Equipment
	Detail    *equipment.ComputerDetail
	Trail     []*equipment.EditEntry
}

// GetEquipmentUseCase returns an asset with its hardware subrecord and
// edit trail. The subrecord is nil for non-computer assets.
type GetEquipmentUseCase struct {
	equipment equipment.Repository
	details   equipment.DetailRepository
	edits     equipment.EditHistoryRepository
}

func NewGetEquipmentUseCase(
	equipmentRepo equipment.Repository,
	details equipment.DetailRepository,
	edits equipment.EditHistoryRepository,
) *GetEquipmentUseCase {
	return &GetEquipmentUseCase{equipment: equipmentRepo, details: details, edits: edits}
}

func (uc *GetEquipmentUseCase) Execute(ctx context.Context, id uint) (*EquipmentDetailResult, error) {
	eq, err := uc.equipment.GetByID(ctx, id)
	if err != nil || eq.DelFlag {
		return nil, errors.NewNotFoundError("equipment not found")
	}

	detail, err := uc.details.GetByEquipment(ctx, id)
	if err != nil {
		detail = nil
	}
	trail, err := uc.edits.ListByEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	return &EquipmentDetailResult{Equipment: eq, Detail: detail, Trail: trail}, nil
}

// EquipmentOptionsUseCase feeds the filter dropdowns.
type EquipmentOptionsUseCase struct {
	equipment equipment.Repository
}

func NewEquipmentOptionsUseCase(equipmentRepo equipment.Repository) *EquipmentOptionsUseCase {
	return &EquipmentOptionsUseCase{equipment: equipmentRepo}
}

func (uc *EquipmentOptionsUseCase) Execute(ctx context.Context) (map[string][]string, error) {
	options := make(map[string][]string, 2)
	for _, column := range []string{"category", "department"} {
		values, err := uc.equipment.DistinctValues(ctx, column)
		if err != nil {
			return nil, err
		}
		options[column] = values
	}
	return options, nil
}
