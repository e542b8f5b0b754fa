package usecases

import (
	"context"
	"sort"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/organization"
	"assetdesk/internal/shared/errors"
)

type Slice struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// DepartmentStatsUseCase counts assets per department. When a
// department id is given, the count rolls its whole subtree up, so a
// division sees the totals of its sections.
type DepartmentStatsUseCase struct {
	equipment   equipment.Repository
	departments organization.Repository
}

func NewDepartmentStatsUseCase(equipmentRepo equipment.Repository, departments organization.Repository) *DepartmentStatsUseCase {
	return &DepartmentStatsUseCase{equipment: equipmentRepo, departments: departments}
}

func (uc *DepartmentStatsUseCase) Execute(ctx context.Context, departmentID *uint) ([]Slice, error) {
	var scope []string
	if departmentID != nil {
		names, err := uc.departments.DescendantNames(ctx, *departmentID)
		if err != nil {
			return nil, err
		}
		if len(names) == 0 {
			return nil, errors.NewNotFoundError("department not found")
		}
		scope = names
	}

	counts, err := uc.equipment.CountByDepartment(ctx, scope)
	if err != nil {
		return nil, err
	}
	return sortedSlices(counts), nil
}

// CategoryStatsUseCase counts assets per category across the register.
type CategoryStatsUseCase struct {
	equipment equipment.Repository
}

func NewCategoryStatsUseCase(equipmentRepo equipment.Repository) *CategoryStatsUseCase {
	return &CategoryStatsUseCase{equipment: equipmentRepo}
}

func (uc *CategoryStatsUseCase) Execute(ctx context.Context) ([]Slice, error) {
	counts, err := uc.equipment.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return sortedSlices(counts), nil
}

type AgeSplit struct {
	Years  int   `json:"years"`
	Older  int64 `json:"older"`
	Within int64 `json:"within"`
}

// AgeStatsUseCase splits the register around a purchase-age threshold,
// the usual input for replacement budgeting.
type AgeStatsUseCase struct {
	equipment equipment.Repository
}

func NewAgeStatsUseCase(equipmentRepo equipment.Repository) *AgeStatsUseCase {
	return &AgeStatsUseCase{equipment: equipmentRepo}
}

func (uc *AgeStatsUseCase) Execute(ctx context.Context, years int) (*AgeSplit, error) {
	if years <= 0 || years > 30 {
		return nil, errors.NewValidationError("years must be between 1 and 30")
	}

	older, within, err := uc.equipment.CountByPurchasingAge(ctx, years)
	if err != nil {
		return nil, err
	}
	return &AgeSplit{Years: years, Older: older, Within: within}, nil
}

func sortedSlices(counts map[string]int64) []Slice {
	slices := make([]Slice, 0, len(counts))
	for label, count := range counts {
		slices = append(slices, Slice{Label: label, Count: count})
	}
	sort.Slice(slices, func(i, j int) bool {
		if slices[i].Count != slices[j].Count {
			return slices[i].Count > slices[j].Count
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}
