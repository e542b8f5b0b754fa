package usecases

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// ExportStatsUseCase writes the department and category breakdowns as
// one CSV, section by section, for spreadsheet-driven reporting.
type ExportStatsUseCase struct {
	departments *DepartmentStatsUseCase
	categories  *CategoryStatsUseCase
}

func NewExportStatsUseCase(departments *DepartmentStatsUseCase, categories *CategoryStatsUseCase) *ExportStatsUseCase {
	return &ExportStatsUseCase{departments: departments, categories: categories}
}

func (uc *ExportStatsUseCase) Execute(ctx context.Context, w io.Writer) error {
	byDepartment, err := uc.departments.Execute(ctx, nil)
	if err != nil {
		return err
	}
	byCategory, err := uc.categories.Execute(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	write := func(record ...string) error {
		return cw.Write(record)
	}

	if err := write("section", "label", "count"); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, s := range byDepartment {
		if err := write("department", s.Label, strconv.FormatInt(s.Count, 10)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	for _, s := range byCategory {
		if err := write("category", s.Label, strconv.FormatInt(s.Count, 10)); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
