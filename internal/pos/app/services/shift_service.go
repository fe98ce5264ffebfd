package services

import (
	"context"
	"fmt"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
	"sembrador-pos/internal/xpkg/logger"
	"sembrador-pos/pkg/money"
)

type ShiftService struct {
	shiftRepo     core.IShiftRepo
	messageBroker core.IBroker
	mylog         logger.Logger
}

func NewShiftService(shiftRepo core.IShiftRepo, messageBroker core.IBroker, mylog logger.Logger) *ShiftService {
	return &ShiftService{
		shiftRepo:     shiftRepo,
		messageBroker: messageBroker,
		mylog:         mylog,
	}
}

// Open starts a new shift on the register, force-closing any previous open
// one. The opening cash amount is parsed strictly; negative or non-numeric
// input is rejected, never coerced to zero.
func (s *ShiftService) Open(ctx context.Context, req dto.OpenShiftRequest) (models.Shift, error) {
	mylog := s.mylog.Action("open_shift")

	if req.RegisterID == "" {
		return models.Shift{}, fmt.Errorf("register_id: %w", core.ErrFieldIsEmpty)
	}
	openingCents, err := money.ParseCents(req.OpeningCash.String())
	if err != nil {
		return models.Shift{}, fmt.Errorf("opening_cash: %w", err)
	}

	shift, err := s.shiftRepo.Open(ctx, req.RegisterID, openingCents)
	if err != nil {
		mylog.Error("Failed to open shift", err, "register_id", req.RegisterID)
		return models.Shift{}, err
	}

	s.publish(ctx, core.EventShiftOpened, shift)
	mylog.Info("Shift opened", "shift_id", shift.ID, "register_id", shift.RegisterID,
		"opening_cash_cents", shift.OpeningCashCents)
	return shift, nil
}

// Current returns the open shift for the register, nil when there is none.
func (s *ShiftService) Current(ctx context.Context, registerID string) (*models.Shift, error) {
	if registerID == "" {
		return nil, fmt.Errorf("register_id: %w", core.ErrFieldIsEmpty)
	}
	return s.shiftRepo.Current(ctx, registerID)
}

// Close transitions the shift to CLOSED. Repeat closes are no-ops. The
// optional closing cash and notes are recorded only on the actual transition.
func (s *ShiftService) Close(ctx context.Context, shiftID string, req dto.CloseShiftRequest) (models.Shift, error) {
	mylog := s.mylog.Action("close_shift")

	if shiftID == "" {
		return models.Shift{}, fmt.Errorf("shift_id: %w", core.ErrFieldIsEmpty)
	}

	var closingCents *int64
	if req.ClosingCash.String() != "" {
		cents, err := money.ParseCents(req.ClosingCash.String())
		if err != nil {
			return models.Shift{}, fmt.Errorf("closing_cash: %w", err)
		}
		closingCents = &cents
	}

	shift, err := s.shiftRepo.Close(ctx, shiftID, closingCents, req.Notes)
	if err != nil {
		mylog.Error("Failed to close shift", err, "shift_id", shiftID)
		return models.Shift{}, err
	}

	s.publish(ctx, core.EventShiftClosed, shift)
	mylog.Info("Shift closed", "shift_id", shift.ID, "register_id", shift.RegisterID)
	return shift, nil
}

// Summary reads the shift plus cash totals over its paid orders.
func (s *ShiftService) Summary(ctx context.Context, shiftID string) (dto.ShiftSummary, error) {
	if shiftID == "" {
		return dto.ShiftSummary{}, fmt.Errorf("shift_id: %w", core.ErrFieldIsEmpty)
	}
	return s.shiftRepo.Summary(ctx, shiftID)
}

// publish sends a shift event when a broker is configured. Event delivery is
// best-effort; the shift state is already committed.
func (s *ShiftService) publish(ctx context.Context, key string, shift models.Shift) {
	if !s.messageBroker.Enabled() {
		return
	}
	if err := s.messageBroker.Publish(ctx, key, shift); err != nil {
		s.mylog.Action("publish_failed").Error("Failed to publish shift event", err,
			"routing_key", key, "shift_id", shift.ID)
	}
}
