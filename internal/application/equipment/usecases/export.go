package usecases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/authorization"
)

var exportHeader = []string{
	"id", "category", "brand", "model", "serial", "price",
	"purchasing_time", "guarantee_years", "status", "user", "owner",
	"department", "remark",
}

// ExportEquipmentUseCase streams the asset register as CSV. The same
// role scoping applies as on the list view.
type ExportEquipmentUseCase struct {
	equipment equipment.Repository
}

func NewExportEquipmentUseCase(equipmentRepo equipment.Repository) *ExportEquipmentUseCase {
	return &ExportEquipmentUseCase{equipment: equipmentRepo}
}

func (uc *ExportEquipmentUseCase) Execute(ctx context.Context, role authorization.Permission, requesterDep string, w io.Writer) error {
	filter := equipment.Filter{}
	if !authorization.Has(role, authorization.PermHigher) && !authorization.Has(role, authorization.PermSuper) {
		filter.Department = &requesterDep
	}

	items, _, err := uc.equipment.List(ctx, filter)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, eq := range items {
		purchased := ""
		if eq.PurchasingTime != nil {
			purchased = eq.PurchasingTime.Format("2006-01-02")
		}
		record := []string{
			strconv.FormatUint(uint64(eq.ID), 10),
			eq.Category,
			eq.Brand,
			eq.ModelNumber,
			eq.SerialNumber,
			strconv.Itoa(eq.Price),
			purchased,
			strconv.Itoa(eq.Guarantee),
			eq.Status.String(),
			eq.User,
			eq.Owner,
			eq.Department,
			eq.Remark,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
