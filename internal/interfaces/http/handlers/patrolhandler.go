package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	patrolusecases "assetdesk/internal/application/patrol/usecases"
	"assetdesk/internal/domain/patrol"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// PatrolHandler serves scheduled inspection rounds.
type PatrolHandler struct {
	create *patrolusecases.CreatePlanUseCase
	check  *patrolusecases.CheckOffUseCase
	cancel *patrolusecases.CancelPlanUseCase
	list   *patrolusecases.ListPlansUseCase
	detail *patrolusecases.PlanDetailUseCase
	codec  *id.Codec
	logger logger.Interface
}

func NewPatrolHandler(
	create *patrolusecases.CreatePlanUseCase,
	check *patrolusecases.CheckOffUseCase,
	cancel *patrolusecases.CancelPlanUseCase,
	list *patrolusecases.ListPlansUseCase,
	detail *patrolusecases.PlanDetailUseCase,
	codec *id.Codec,
	logger logger.Interface,
) *PatrolHandler {
	return &PatrolHandler{
		create: create,
		check:  check,
		cancel: cancel,
		list:   list,
		detail: detail,
		codec:  codec,
		logger: logger.Named("patrol-handler"),
	}
}

type createPlanRequest struct {
	InspectorID  string   `json:"inspector_id" binding:"required"`
	EquipmentIDs []string `json:"equipment_ids" binding:"required,min=1"`
	StartTime    string   `json:"start_time" binding:"required"`
	EndTime      string   `json:"end_time" binding:"required"`
}

func (h *PatrolHandler) Create(c *gin.Context) {
	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	inspector, err := h.codec.Decode(req.InspectorID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid inspector id"))
		return
	}

	eids := make([]uint, 0, len(req.EquipmentIDs))
	for _, raw := range req.EquipmentIDs {
		eid, err := h.codec.Decode(raw)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid equipment id", err.Error()))
			return
		}
		eids = append(eids, eid)
	}

	result, err := h.create.Execute(c.Request.Context(), patrolusecases.CreatePlanCommand{
		InspectorID:  inspector,
		EquipmentIDs: eids,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"patrol_id": result.PatrolID})
}

type checkOffRequest struct {
	PlanID      string `json:"plan_id" binding:"required"`
	DetailID    uint   `json:"detail_id" binding:"required"`
	EquipmentID string `json:"equipment_id" binding:"required"`
}

// CheckOff marks one scanned item done. The inspector identity comes
// from the session, never from the payload.
func (h *PatrolHandler) CheckOff(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req checkOffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	planID, err := h.codec.Decode(req.PlanID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid plan id"))
		return
	}
	eid, err := h.codec.Decode(req.EquipmentID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid equipment id", err.Error()))
		return
	}

	result, err := h.check.Execute(c.Request.Context(), patrolusecases.CheckOffCommand{
		PlanID:      planID,
		DetailID:    req.DetailID,
		EquipmentID: eid,
		InspectorID: claims.UID,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"remaining": result.Remaining, "completed": result.Completed})
}

type cancelPlanRequest struct {
	PlanID string `json:"plan_id" binding:"required"`
}

func (h *PatrolHandler) Cancel(c *gin.Context) {
	var req cancelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	planID, err := h.codec.Decode(req.PlanID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid plan id"))
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), patrolusecases.CancelPlanCommand{
		PlanID: planID,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type planRow struct {
	ID         string `json:"id"`
	PatrolID   string `json:"patrol_id"`
	Inspector  string `json:"inspector_id"`
	Total      int    `json:"total"`
	Unfinished int    `json:"unfinished"`
	Status     int    `json:"status"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

func (h *PatrolHandler) toPlanRow(plan *patrol.Plan) planRow {
	return planRow{
		ID:         h.codec.Encode(plan.ID),
		PatrolID:   plan.PatrolID,
		Inspector:  h.codec.Encode(plan.PID),
		Total:      plan.Total,
		Unfinished: plan.Unfinished,
		Status:     int(plan.Status),
		StartTime:  plan.StartTime,
		EndTime:    plan.EndTime,
	}
}

func (h *PatrolHandler) List(c *gin.Context) {
	pg := utils.ParsePagination(c)

	query := patrolusecases.ListPlansQuery{Page: pg.Page, PageSize: pg.PageSize}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid status"))
			return
		}
		query.Status = &status
	}
	if raw := c.Query("inspector_id"); raw != "" {
		inspector, err := h.codec.Decode(raw)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid inspector id"))
			return
		}
		query.InspectorID = &inspector
	}

	result, err := h.list.Execute(c.Request.Context(), query)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]planRow, 0, len(result.Plans))
	for _, plan := range result.Plans {
		rows = append(rows, h.toPlanRow(plan))
	}
	utils.OK(c, utils.PageData{TotalPage: pg.TotalPages(result.Total), TableData: rows})
}

type planDetailRow struct {
	DetailID    uint   `json:"detail_id"`
	EquipmentID string `json:"equipment_id"`
	Checked     int    `json:"checked"`
}

func (h *PatrolHandler) Detail(c *gin.Context) {
	patrolID := c.Query("patrol_id")
	if patrolID == "" {
		utils.Fail(c, errors.NewValidationError("patrol id is required"))
		return
	}

	result, err := h.detail.Execute(c.Request.Context(), patrolID)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	items := make([]planDetailRow, 0, len(result.Details))
	for _, detail := range result.Details {
		items = append(items, planDetailRow{
			DetailID:    detail.ID,
			EquipmentID: h.codec.Encode(detail.EID),
			Checked:     detail.Checked,
		})
	}
	utils.OK(c, gin.H{
		"plan":    h.toPlanRow(result.Plan),
		"details": items,
	})
}
