package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"assetdesk/internal/application/notification"
	workorderusecases "assetdesk/internal/application/workorder/usecases"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/id"
	"assetdesk/internal/shared/logger"
	"assetdesk/internal/shared/utils"
)

// MaintenanceHandler serves the work order lifecycle. The report,
// arrival, fix, appraisal and cancel endpoints are public: reporters
// and field workers hold no account, so captchas and name-plus-phone
// checks stand in for authentication there.
type MaintenanceHandler struct {
	report   *workorderusecases.ReportOrderUseCase
	dispatch *workorderusecases.DispatchOrderUseCase
	arrival  *workorderusecases.ArrivalUseCase
	onsite   *workorderusecases.OnSiteFixUseCase
	remote   *workorderusecases.RemoteFixUseCase
	evaluate *workorderusecases.EvaluateOrderUseCase
	cancel   *workorderusecases.CancelOrderUseCase
	resend   *workorderusecases.ResendNotificationUseCase
	list     *workorderusecases.ListOrdersUseCase
	options  *workorderusecases.OrderOptionsUseCase
	flow     *workorderusecases.OrderFlowUseCase
	captcha  *notification.CaptchaService
	codec    *id.Codec
	logger   logger.Interface
}

func NewMaintenanceHandler(
	report *workorderusecases.ReportOrderUseCase,
	dispatch *workorderusecases.DispatchOrderUseCase,
	arrival *workorderusecases.ArrivalUseCase,
	onsite *workorderusecases.OnSiteFixUseCase,
	remote *workorderusecases.RemoteFixUseCase,
	evaluate *workorderusecases.EvaluateOrderUseCase,
	cancel *workorderusecases.CancelOrderUseCase,
	resend *workorderusecases.ResendNotificationUseCase,
	list *workorderusecases.ListOrdersUseCase,
	options *workorderusecases.OrderOptionsUseCase,
	flow *workorderusecases.OrderFlowUseCase,
	captcha *notification.CaptchaService,
	codec *id.Codec,
	logger logger.Interface,
) *MaintenanceHandler {
	return &MaintenanceHandler{
		report:   report,
		dispatch: dispatch,
		arrival:  arrival,
		onsite:   onsite,
		remote:   remote,
		evaluate: evaluate,
		cancel:   cancel,
		resend:   resend,
		list:     list,
		options:  options,
		flow:     flow,
		captcha:  captcha,
		codec:    codec,
		logger:   logger.Named("maintenance-handler"),
	}
}

type reportOrderRequest struct {
	EquipmentID string `json:"equipment_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone" binding:"required,phone"`
	Captcha     string `json:"captcha" binding:"required"`
	Content     string `json:"content" binding:"required"`
	Reason      string `json:"reason"`
}

// Report files a fault from the QR code form on the asset tag.
func (h *MaintenanceHandler) Report(c *gin.Context) {
	var req reportOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	eid, err := h.codec.Decode(req.EquipmentID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid equipment id", err.Error()))
		return
	}

	result, err := h.report.Execute(c.Request.Context(), workorderusecases.ReportOrderCommand{
		EID:     eid,
		Name:    req.Name,
		Phone:   req.Phone,
		Captcha: req.Captcha,
		Content: req.Content,
		Reason:  req.Reason,
	})
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"order_id": result.OrderID})
}

// Captcha texts a one-time code to the given phone. The case is the
// order id for order actions, otherwise the phone itself for a fresh
// fault report.
func (h *MaintenanceHandler) Captcha(c *gin.Context) {
	phone := c.Query("phone")
	if phone == "" {
		utils.Fail(c, errors.NewValidationError("phone is required"))
		return
	}
	eid, err := utils.ParseOpaqueQuery(c, h.codec, "equipment_id", "equipment")
	if err != nil {
		utils.Fail(c, err)
		return
	}

	caseID := c.Query("order_id")
	if caseID == "" {
		caseID = phone
	}

	if err := h.captcha.Issue(c.Request.Context(), caseID, eid, phone); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type dispatchRequest struct {
	OrderID  string `json:"order_id" binding:"required"`
	WorkerID string `json:"worker_id" binding:"required"`
	Remark   string `json:"remark"`
}

func (h *MaintenanceHandler) Dispatch(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	oid, err := h.codec.Decode(req.OrderID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid order id", err.Error()))
		return
	}
	worker, err := h.codec.Decode(req.WorkerID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid worker id"))
		return
	}

	result, err := h.dispatch.Execute(c.Request.Context(), workorderusecases.DispatchOrderCommand{
		OrderID:  oid,
		WorkerID: worker,
		Remark:   req.Remark,
		Operator: claims.Name,
	})
	if err != nil {
		// A notification timeout rides on HTTP 200: the dispatch itself
		// is committed and the client just retries the email.
		utils.Fail(c, err)
		return
	}
	utils.OK(c, gin.H{"worker_name": result.WorkerName})
}

type arrivalRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required,phone"`
}

func (h *MaintenanceHandler) Arrival(c *gin.Context) {
	var req arrivalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.arrival.Execute(c.Request.Context(), workorderusecases.ArrivalCommand{
		OrderID: req.OrderID,
		Name:    req.Name,
		Phone:   req.Phone,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type onsiteFixRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required,phone"`
	Content string `json:"content" binding:"required"`
}

func (h *MaintenanceHandler) Fix(c *gin.Context) {
	var req onsiteFixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.onsite.Execute(c.Request.Context(), workorderusecases.OnSiteFixCommand{
		OrderID: req.OrderID,
		Name:    req.Name,
		Phone:   req.Phone,
		Content: req.Content,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type remoteFixRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// RemoteFix closes an order without a site visit, from the console.
func (h *MaintenanceHandler) RemoteFix(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	var req remoteFixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	oid, err := h.codec.Decode(req.OrderID)
	if err != nil {
		utils.Fail(c, errors.NewValidationError("invalid order id", err.Error()))
		return
	}

	if err := h.remote.Execute(c.Request.Context(), workorderusecases.RemoteFixCommand{
		OrderID:  oid,
		Operator: claims.Name,
		Content:  req.Content,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type appraisalRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Captcha string `json:"captcha" binding:"required"`
	Rank    int    `json:"rank"`
	Remark  string `json:"remark"`
	Name    string `json:"name"`
}

func (h *MaintenanceHandler) Appraisal(c *gin.Context) {
	var req appraisalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.evaluate.Execute(c.Request.Context(), workorderusecases.EvaluateOrderCommand{
		OrderID: req.OrderID,
		Captcha: req.Captcha,
		Rank:    req.Rank,
		Remark:  req.Remark,
		Name:    req.Name,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type cancelOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Captcha string `json:"captcha" binding:"required"`
	Name    string `json:"name"`
	Remark  string `json:"remark"`
}

func (h *MaintenanceHandler) Cancel(c *gin.Context) {
	var req cancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), workorderusecases.CancelOrderCommand{
		OrderID: req.OrderID,
		Captcha: req.Captcha,
		Name:    req.Name,
		Remark:  req.Remark,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type resendRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (h *MaintenanceHandler) Resend(c *gin.Context) {
	var req resendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Fail(c, errors.NewInvalidFormFieldsError(utils.BindingErrors(err)...))
		return
	}

	if err := h.resend.Execute(c.Request.Context(), workorderusecases.ResendNotificationCommand{
		OrderID: req.OrderID,
	}); err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OKEmpty(c)
}

type orderRow struct {
	ID         string `json:"id"`
	OrderID    string `json:"order_id"`
	Status     string `json:"status"`
	Worker     string `json:"worker"`
	Equipment  string `json:"equipment"`
	Department string `json:"department"`
	Content    string `json:"content"`
	Reason     string `json:"reason"`
	Rank       *int   `json:"rank"`
	Deleted    bool   `json:"deleted"`
	UpdatedAt  string `json:"updated_at"`
}

func (h *MaintenanceHandler) List(c *gin.Context) {
	claims := claimsFrom(c)
	if claims == nil {
		utils.Fail(c, errors.NewInvalidTokenError("no session"))
		return
	}

	pg := utils.ParsePagination(c)

	query := workorderusecases.ListOrdersQuery{
		Page:          pg.Page,
		PageSize:      pg.PageSize,
		RequesterRole: claims.Rol,
		RequesterDep:  claims.Dep,
		IncludeAll:    c.Query("all") == "1",
	}
	if department := c.Query("department"); department != "" {
		query.Department = &department
	}
	if equipment := c.Query("equipment"); equipment != "" {
		query.Equipment = &equipment
	}
	if status := c.Query("status"); status != "" {
		query.Status = &status
	}

	result, err := h.list.Execute(c.Request.Context(), query)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]orderRow, 0, len(result.Orders))
	for _, order := range result.Orders {
		rows = append(rows, orderRow{
			ID:         h.codec.Encode(order.ID),
			OrderID:    order.OrderID,
			Status:     string(order.Status),
			Worker:     order.Name,
			Equipment:  order.Equipment,
			Department: order.Department,
			Content:    order.Content,
			Reason:     order.Reason,
			Rank:       order.Rank,
			Deleted:    order.DelFlag,
			UpdatedAt:  order.UpdatedAt.Format(time.DateTime),
		})
	}
	utils.OK(c, utils.PageData{TotalPage: pg.TotalPages(result.Total), TableData: rows})
}

func (h *MaintenanceHandler) Options(c *gin.Context) {
	options, err := h.options.Execute(c.Request.Context())
	if err != nil {
		utils.Fail(c, err)
		return
	}
	utils.OK(c, options)
}

type flowRow struct {
	Status    string `json:"status"`
	Name      string `json:"name"`
	Remark    string `json:"remark"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// Flow returns the audit trail for one order, newest last.
func (h *MaintenanceHandler) Flow(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		utils.Fail(c, errors.NewValidationError("order id is required"))
		return
	}

	entries, err := h.flow.Execute(c.Request.Context(), orderID)
	if err != nil {
		utils.Fail(c, err)
		return
	}

	rows := make([]flowRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, flowRow{
			Status:    string(entry.Status),
			Name:      entry.Name,
			Remark:    entry.Remark,
			Content:   entry.Content,
			CreatedAt: entry.CreatedAt.Format(time.DateTime),
		})
	}
	utils.OK(c, rows)
}

