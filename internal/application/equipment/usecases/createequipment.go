package usecases

import (
	"context"
	"time"

	"assetdesk/internal/domain/equipment"
	"assetdesk/internal/shared/errors"
	"assetdesk/internal/shared/logger"
)

// TransactionManager mirrors the database transaction boundary without
// pulling gorm into the application layer.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// VersionStamper bumps the cache-busting stamp for the equipment list
// after a write.
type VersionStamper interface {
	Bump(ctx context.Context, entity string) error
}

type ComputerDetailInput struct {
	IPAddress string
	CPU       string
	GPU       string
	Disk      string
	Memory    string
	MainBoard string
	Monitor   string
	Remark    string
}

type CreateEquipmentCommand struct {
	Category       string
	Brand          string
	ModelNumber    string
	SerialNumber   string
	Price          int
	PurchasingTime *time.Time
	Guarantee      int
	Remark         string
	User           string
	Owner          string
	Department     string

	// Detail is only set for computer-class assets.
	Detail *ComputerDetailInput

	// Editor is the operator's name, recorded on the asset and in the
	// edit trail.
	Editor string
}

type CreateEquipmentResult struct {
	ID uint
}

// CreateEquipmentUseCase registers an asset and opens its edit trail.
type CreateEquipmentUseCase struct {
	equipment equipment.Repository
	details   equipment.DetailRepository
	edits     equipment.EditHistoryRepository
	txMgr     TransactionManager
	version   VersionStamper
	logger    logger.Interface
}

func NewCreateEquipmentUseCase(
	equipmentRepo equipment.Repository,
	details equipment.DetailRepository,
	edits equipment.EditHistoryRepository,
	txMgr TransactionManager,
	version VersionStamper,
	logger logger.Interface,
) *CreateEquipmentUseCase {
	return &CreateEquipmentUseCase{
		equipment: equipmentRepo,
		details:   details,
		edits:     edits,
		txMgr:     txMgr,
		version:   version,
		logger:    logger,
	}
}

func (uc *CreateEquipmentUseCase) Execute(ctx context.Context, cmd CreateEquipmentCommand) (*CreateEquipmentResult, error) {
	eq, err := equipment.NewEquipment(cmd.Category, cmd.Department, cmd.Editor)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	eq.Brand = cmd.Brand
	eq.ModelNumber = cmd.ModelNumber
	eq.SerialNumber = cmd.SerialNumber
	eq.Price = cmd.Price
	eq.PurchasingTime = cmd.PurchasingTime
	eq.Guarantee = cmd.Guarantee
	eq.Remark = cmd.Remark
	eq.User = cmd.User
	eq.Owner = cmd.Owner

	txErr := uc.txMgr.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.equipment.Create(txCtx, eq); err != nil {
			return err
		}
		if cmd.Detail != nil {
			if err := uc.details.Upsert(txCtx, detailFromInput(eq.ID, cmd.Detail)); err != nil {
				return err
			}
		}
		return uc.edits.Append(txCtx, &equipment.EditEntry{
			EID:     eq.ID,
			Content: "registered",
			Edit:    cmd.Editor,
		})
	})
	if txErr != nil {
		return nil, txErr
	}

	if err := uc.version.Bump(ctx, "equipment"); err != nil {
		uc.logger.Warnw("failed to bump equipment version stamp", "error", err)
	}

	uc.logger.Infow("equipment registered", "eid", eq.ID, "category", eq.Category, "department", eq.Department)
	return &CreateEquipmentResult{ID: eq.ID}, nil
}

func detailFromInput(eid uint, in *ComputerDetailInput) *equipment.ComputerDetail {
	return &equipment.ComputerDetail{
		EID:       eid,
		IPAddress: in.IPAddress,
		CPU:       in.CPU,
		GPU:       in.GPU,
		Disk:      in.Disk,
		Memory:    in.Memory,
		MainBoard: in.MainBoard,
		Monitor:   in.Monitor,
		Remark:    in.Remark,
	}
}
