package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	equipmentusecases "assetdesk/internal/application/equipment/usecases"
	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

const dateLayout = "2006-01-02"

// EquipmentHandler serves the asset register. Database ids never leave
// the process as plain integers; every external id goes through the
// opaque codec.
type EquipmentHandler struct {
	create  *equipmentusecases.CreateEquipmentUseCase
	update  *equipmentusecases.UpdateEquipmentUseCase
	remove  *equipmentusecases.DeleteEquipmentUseCase
	list    *equipmentusecases.ListEquipmentUseCase
	get     *equipmentusecases.GetEquipmentUseCase
	options *equipmentusecases.EquipmentOptionsUseCase
	export  *equipmentusecases.ExportEquipmentUseCase
	codec   *id.Codec
	logger  logger.Interface
}

func NewEquipmentHandler(
	create *equipmentusecases.CreateEquipmentUseCase,
	update *equipmentusecases.UpdateEquipmentUseCase,
	remove *equipmentusecases.DeleteEquipmentUseCase,
	list *equipmentusecases.ListEquipmentUseCase,
	get *equipmentusecases.GetEquipmentUseCase,
	options *equipmentusecases.EquipmentOptionsUseCase,
	export *equipmentusecases.ExportEquipmentUseCase,
	codec *id.Codec,
	logger logger.Interface,
) *EquipmentHandler {
	return &EquipmentHandler{
		create:  create,
		update:  update,
		remove:  remove,
		list:    list,
		get:     get,
		options: options,
		export:  export,
		codec:   codec,
		logger:  logger.Named("equipment-handler"),
	}
}

type computerDetailPayload struct {
	IPAddress string `json:"ip_address"`
	CPU       string `json:"cpu"`
	GPU       string `json:"gpu"`
	Disk      string `json:"disk"`
	Memory    string `json:"memory"`
	MainBoard string `json:"main_board"`
	Monitor   string `json:"monitor"`
	Remark    string `json:"remark"`
}

func (p *computerDetailPayload) toInput() *equipmentusecases.ComputerDetailInput {
	if p == nil {
		return nil
	}
	return &equipmentusecases.ComputerDetailInput{
		IPAddress: p.IPAddress,
		CPU:       p.CPU,
		GPU:       p.GPU,
		Disk:      p.Disk,
		Memory:    p.Memory,
		MainBoard: p.MainBoard,
		Monitor:   p.Monitor,
		Remark:    p.Remark,
	}
}

type createEquipmentRequest struct {
	Category       string                 `json:"category" binding:"required"`
	Brand          string                 `json:"brand"`
	ModelNumber    string                 `json:"model_number"`
	SerialNumber   string                 `json:"serial_number"`
	Price          int                    `json:"price" binding:"omitempty,min=0"`
	PurchasingTime string                 `json:"purchasing_time"`
	Guarantee      int                    `json:"guarantee" binding:"omitempty,min=0"`
	Remark         string                 `json:"remark"`
	User           string                 `json:"user"`
	Owner          string                 `json:"owner"`
	Department     string                 `json:"department" binding:"required"`
	Detail         *computerDetailPayload `json:"detail"`
}

func (h *EquipmentHandler) Create(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req createEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	purchased, err := parseDate(req.PurchasingTime)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	result, err := h.create.Execute(c.Request.Context(), equipmentusecases.CreateEquipmentCommand{
		Category:       req.Category,
		Brand:          req.Brand,
		ModelNumber:    req.ModelNumber,
		SerialNumber:   req.SerialNumber,
		Price:          req.Price,
		PurchasingTime: purchased,
		Guarantee:      req.Guarantee,
		Remark:         req.Remark,
		User:           req.User,
		Owner:          req.Owner,
		Department:     req.Department,
		Detail:         req.Detail.toInput(),
		Editor:         claims.Name,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"id": h.codec.Encode(result.ID)})
}

type updateEquipmentRequest struct {
	ID             string                 `json:"id" binding:"required"`
	Category       *string                `json:"category"`
	Brand          *string                `json:"brand"`
	ModelNumber    *string                `json:"model_number"`
	SerialNumber   *string                `json:"serial_number"`
	Price          *int                   `json:"price"`
	PurchasingTime *string                `json:"purchasing_time"`
	Guarantee      *int                   `json:"guarantee"`
	Remark         *string                `json:"remark"`
	Status         *int                   `json:"status"`
	User           *string                `json:"user"`
	Owner          *string                `json:"owner"`
	Department     *string                `json:"department"`
	Detail         *computerDetailPayload `json:"detail"`
}

func (h *EquipmentHandler) Update(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req updateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	eid, err := h.codec.Decode(req.ID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid equipment id", err.Error()))
		return
	}

	cmd := equipmentusecases.UpdateEquipmentCommand{
		ID:           eid,
		Category:     req.Category,
		Brand:        req.Brand,
		ModelNumber:  req.ModelNumber,
		SerialNumber: req.SerialNumber,
		Price:        req.Price,
		Guarantee:    req.Guarantee,
		Remark:       req.Remark,
		Status:       req.Status,
		User:         req.User,
		Owner:        req.Owner,
		Department:   req.Department,
		Detail:       req.Detail.toInput(),
		Editor:       claims.Name,
	}
	if req.PurchasingTime != nil {
		purchased, err := parseDate(*req.PurchasingTime)
		if err != nil {
			utils.Fail(c, err)
			return
		}
		cmd.PurchasingTime = purchased
	}

	if err := h.update.Execute(c.Request.Context(), cmd); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

func (h *EquipmentHandler) Delete(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	eid, err := utils.ParseOpaqueQuery(c, h.codec, "id", "equipment")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	if err := h.remove.Execute(c.Request.Context(), equipmentusecases.DeleteEquipmentCommand{
		ID:     eid,
		Editor: claims.Name,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type equipmentRow struct {
	ID             string `json:"id"`
	Category       string `json:"category"`
	Brand          string `json:"brand"`
	ModelNumber    string `json:"model_number"`
	SerialNumber   string `json:"serial_number"`
	Price          int    `json:"price"`
	PurchasingTime string `json:"purchasing_time"`
	Guarantee      int    `json:"guarantee"`
	Remark         string `json:"remark"`
	Status         int    `json:"status"`
	User           string `json:"user"`
	Owner          string `json:"owner"`
	Department     string `json:"department"`
	Deleted        bool   `json:"deleted"`
}

func (h *EquipmentHandler) rowFrom(eq *equipment.Equipment) equipmentRow {
	row := equipmentRow{
		ID:           h.codec.Encode(eq.ID),
		Category:     eq.Category,
		Brand:        eq.Brand,
		ModelNumber:  eq.ModelNumber,
		SerialNumber: eq.SerialNumber,
		Price:        eq.Price,
		Guarantee:    eq.Guarantee,
		Remark:       eq.Remark,
		Status:       int(eq.Status),
		User:         eq.User,
		Owner:        eq.Owner,
		Department:   eq.Department,
		Deleted:      eq.DelFlag,
	}
	if eq.PurchasingTime != nil {
		row.PurchasingTime = eq.PurchasingTime.Format(dateLayout)
	}
	return row
}

func (h *EquipmentHandler) List(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	pg := utils.ParsePagination(c)

	query := equipmentusecases.ListEquipmentQuery{
		Page:          pg.Page,
		PageSize:      pg.PageSize,
		RequesterRole: claims.Rol,
		RequesterDep:  claims.Dep,
		IncludeAll:    c.Query("all") == "1",
	}
	if category := c.Query("category"); category != "" {
		query.Category = &category
	}
	if department := c.Query("department"); department != "" {
		query.Department = &department
	}
	if raw := c.Query("status"); raw != "" {
		status, err := strconv.Atoi(raw)
		if err != nil {
			utils.Fail(c, errors.NewValidationError("invalid status"))
			return
		}
		query.Status = &status
	}

	result, err := h.list.Execute(c.Request.Context(), query)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]equipmentRow, 0, len(result.Items))
	for _, item := range result.Items {
		rows = append(rows, h.rowFrom(item))
	}
	utils.OK(c, utils.PageData{TotalPage: pg.TotalPages(result.Total), TableData: rows})
}

type editHistoryRow struct {
	Content   string `json:"content"`
	Editor    string `json:"editor"`
	CreatedAt string `json:"created_at"`
}

func (h *EquipmentHandler) Detail(c *gin.Context) {
	eid, err := utils.ParseOpaqueQuery(c, h.codec, "id", "equipment")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	result, err := h.get.Execute(c.Request.Context(), eid)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	payload := gin.H{"equipment": h.rowFrom(result.Equipment)}
	if result.Detail != nil {
		payload["detail"] = computerDetailPayload{
			IPAddress: result.Detail.IPAddress,
			CPU:       result.Detail.CPU,
			GPU:       result.Detail.GPU,
			Disk:      result.Detail.Disk,
			Memory:    result.Detail.Memory,
			MainBoard: result.Detail.MainBoard,
			Monitor:   result.Detail.Monitor,
			Remark:    result.Detail.Remark,
		}
	}
	trail := make([]editHistoryRow, 0, len(result.Trail))
	for _, entry := range result.Trail {
		trail = append(trail, editHistoryRow{
			Content:   entry.Content,
			Editor:    entry.Edit,
			CreatedAt: entry.CreatedAt.Format(time.DateTime),
		})
	}
	payload["trail"] = trail
	utils.OK(c, payload)
}

func (h *EquipmentHandler) Options(c *gin.Context) {
	options, err := h.options.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, options)
}

// Export streams the register as CSV. The session guard accepts the
// token as a query parameter here because download links cannot set
// headers.
func (h *EquipmentHandler) Export(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	filename := fmt.Sprintf("equipment-%s.csv", time.Now().Format(dateLayout))
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.export.Execute(c.Request.Context(), claims.Rol, claims.Dep, c.Writer); err != nil {
		h.logger.Errorw("equipment export failed", "error", err)
	}
}

func parseDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, errors.NewValidationError("invalid purchasing time", err.Error())
	}
	return &parsed, nil
}
