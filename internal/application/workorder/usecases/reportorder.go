package usecases

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/domain/workorder"
	"assetdesk/internal/shared/constants"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

type ReportOrderCommand struct {
	EID     uint
	Name    string
	Phone   string
	Captcha string
	Content string
	Reason  string
}

type ReportOrderResult struct {
	OrderID string
}

// ReportOrderUseCase files a new work order from the unauthenticated
// mobile form and moves the equipment to under repair.
type ReportOrderUseCase struct {
	orders    workorder.Repository
	history   workorder.HistoryRepository
	equipment equipment.Repository
	edits     equipment.EditHistoryRepository
	sequence  *workorder.SequenceGenerator
	captcha   CaptchaVerifier
	txMgr     TransactionManager
	sanitizer *bluemonday.Policy
	logger    logger.Interface
	now       func() time.Time
}

func NewReportOrderUseCase(
	orders workorder.Repository,
	history workorder.HistoryRepository,
	equipmentRepo equipment.Repository,
	edits equipment.EditHistoryRepository,
	sequence *workorder.SequenceGenerator,
	captcha CaptchaVerifier,
	txMgr TransactionManager,
	logger logger.Interface,
) *ReportOrderUseCase {
	return &ReportOrderUseCase{
		orders:    orders,
		history:   history,
		equipment: equipmentRepo,
		edits:     edits,
		sequence:  sequence,
		captcha:   captcha,
		txMgr:     txMgr,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
		now:       time.Now,
	}
}

func (uc *ReportOrderUseCase) Execute(ctx context.Context, cmd ReportOrderCommand) (*ReportOrderResult, error) {
	if err := uc.validateCommand(&cmd); err != nil {
		return nil, err
	}

	if err := uc.captcha.Verify(ctx, cmd.Phone, cmd.Captcha); err != nil {
		return nil, err
	}

	eq, err := uc.equipment.GetByID(ctx, cmd.EID)
	if err != nil {
		return nil, errors.NewNotFoundError("equipment not found")
	}
	if eq.DelFlag {
		return nil, errors.NewNotFoundError("equipment not found")
	}
	if eq.Status != equipment.StatusInUse {
		return nil, errors.NewConflictStatusError("equipment is not in service")
	}

	prefix := workorder.OrderPrefix(uc.now())
	seqKey := constants.OrderSeqKey(prefix)

	orderID, seq, err := uc.sequence.Next(ctx, seqKey, prefix, uc.orders.CountByOrderIDPrefix)
	if err != nil {
		return nil, err
	}

	// A lost insert race surfaces as a duplicate order id; the caller
	// submits again.
	created, err := uc.tryCreate(ctx, orderID, &cmd, eq)
	if stderrors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, errors.NewRepetitionOrderIDError()
	}
	if err != nil {
		return nil, err
	}

	// The counter is advisory; losing this write only costs the next
	// caller one COUNT query.
	if err := uc.sequence.Commit(ctx, seqKey, seq, 24*time.Hour); err != nil {
		uc.logger.Warnw("failed to store order sequence counter", "error", err)
	}

	uc.logger.Infow("work order reported", "order_id", created.OrderID, "eid", cmd.EID)
	return &ReportOrderResult{OrderID: created.OrderID}, nil
}

func (uc *ReportOrderUseCase) tryCreate(ctx context.Context, orderID string, cmd *ReportOrderCommand, eq *equipment.Equipment) (*workorder.WorkOrder, error) {
	order, err := workorder.NewWorkOrder(orderID, eq.ID, eq.Category, eq.Department, cmd.Content, cmd.Reason)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	order.Name = cmd.Name

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.orders.Create(txCtx, order); err != nil {
			return err
		}

		moved, err := uc.equipment.UpdateStatusWhen(txCtx, eq.ID, equipment.StatusInUse, equipment.StatusUnderRepair)
		if err != nil {
			return err
		}
		if !moved {
			return errors.NewConflictStatusError("equipment state changed while reporting")
		}

		if err := uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     eq.ID,
			Content: "sent for repair",
			Edit:    cmd.Name,
		}); err != nil {
			return err
		}

		return uc.history.Append(txCtx, &workorder.HistoryEntry{
			OID:     order.ID,
			Status:  workorder.StatusReported,
			Name:    cmd.Name,
			Phone:   cmd.Phone,
			Content: cmd.Content,
		})
	})
	if txErr != nil {
		return nil, txErr
	}
	return order, nil
}

func (uc *ReportOrderUseCase) validateCommand(cmd *ReportOrderCommand) error {
	if cmd.EID == 0 {
		return errors.NewValidationError("equipment is required")
	}
	if cmd.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if cmd.Phone == "" {
		return errors.NewValidationError("phone is required")
	}
	cmd.Content = strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Content))
	cmd.Reason = strings.TrimSpace(uc.sanitizer.Sanitize(cmd.Reason))
	if cmd.Content == "" {
		return errors.NewValidationError("content is required")
	}
	if len(cmd.Content) > 255 {
		return errors.NewValidationError("content exceeds maximum length of 255 characters")
	}
	if cmd.Reason == "" {
		return errors.NewValidationError("reason is required")
	}
	return nil
}
