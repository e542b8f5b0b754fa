package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	statisticsusecases "assetdesk/internal/application/statistics/usecases"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// StatisticsHandler serves the dashboard aggregations.
type StatisticsHandler struct {
	byDepartment *statisticsusecases.DepartmentStatsUseCase
	byCategory   *statisticsusecases.CategoryStatsUseCase
	byAge        *statisticsusecases.AgeStatsUseCase
	export       *statisticsusecases.ExportStatsUseCase
	codec        *id.Codec
	logger       logger.Interface
}

func NewStatisticsHandler(
	byDepartment *statisticsusecases.DepartmentStatsUseCase,
	byCategory *statisticsusecases.CategoryStatsUseCase,
	byAge *statisticsusecases.AgeStatsUseCase,
	export *statisticsusecases.ExportStatsUseCase,
	codec *id.Codec,
	logger logger.Interface,
) *StatisticsHandler {
	return &StatisticsHandler{
		byDepartment: byDepartment,
		byCategory:   byCategory,
		byAge:        byAge,
		export:       export,
		codec:        codec,
		logger:       logger.Named("statistics-handler"),
	}
}

// Department aggregates asset counts per department. With an id the
// count rolls up that department's whole subtree.
func (h *StatisticsHandler) Department(c *gin.Context) {
	var deptID *uint
	if raw := c.Query("id"); raw != "" {
		decoded, err := h.codec.Decode(raw)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid department id"))
			return
		}
		deptID = &decoded
	}

	slices, err := h.byDepartment.Execute(c.Request.Context(), deptID)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, slices)
}

func (h *StatisticsHandler) Category(c *gin.Context) {
	slices, err := h.byCategory.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, slices)
}

func (h *StatisticsHandler) Age(c *gin.Context) {
	years, err := strconv.Atoi(c.DefaultQuery("years", "5"))
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid years"))
		return
	}

	split, err := h.byAge.Execute(c.Request.Context(), years)
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, split)
}

func (h *StatisticsHandler) Export(c *gin.Context) {
	filename := fmt.Sprintf("statistics-%s.csv", time.Now().Format(dateLayout))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.export.Execute(c.Request.Context(), c.Writer); err != nil {
		h.logger.Errorw("statistics export failed", "error", err)
	}
}
