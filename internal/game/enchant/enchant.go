// Package enchant resolves equipment enhancement.
//
// Enhance flow:
//  1. Validate the materials against the target (type, grade, level, ownership)
//  2. Look up the cost row for (grade, current level)
//  3. Check the payer can afford the cost
//  4. Roll NextN(10000) against the row success rate
//  5. Level up on success, drop by the row downgrade on failure
//
// Every check runs before anything changes. Materials are consumed and the
// cost is charged on both outcomes; the Outcome says what to apply, the
// caller applies it to the ledger.
package enchant

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/udisondev/chronicle/internal/data"
	"github.com/udisondev/chronicle/internal/game/combat"
	"github.com/udisondev/chronicle/internal/ledger"
	"github.com/udisondev/chronicle/internal/model"
	"github.com/udisondev/chronicle/internal/random"
)

// CostTable maps (grade, current level) to the cost of the next level.
// *data.Tables implements it.
type CostTable interface {
	EnhancementCost(grade, level int32) (data.EnhancementCostRow, bool)
}

// Resolver enhances equipment. Cost goes from the payer to Beneficiary.
type Resolver struct {
	Costs       CostTable
	Beneficiary ledger.Address
	Currency    ledger.Currency
}

// Request is one enhancement attempt.
type Request struct {
	Target    model.Equipment
	Materials []model.Equipment
	Payer     ledger.Address
	Balance   decimal.Decimal // баланс плательщика в валюте резолвера
}

// Transfer is the currency movement an attempt causes.
type Transfer struct {
	From     ledger.Address
	To       ledger.Address
	Currency ledger.Currency
	Amount   decimal.Decimal
}

// Outcome describes the result of an enhancement attempt.
type Outcome struct {
	// Success is true if the level went up.
	Success bool
	// Item is the target after the attempt. ItemID never changes.
	Item          model.Equipment
	PreviousLevel int32
	// Consumed lists the material item ids, removed on both outcomes.
	Consumed []uuid.UUID
	Transfer Transfer
	RateBps  int
	Roll     int
}

// Enhance validates req and rolls once. On error nothing was rolled.
func (r Resolver) Enhance(req Request, src random.Source) (Outcome, error) {
	if err := ValidateMaterials(req.Target, req.Materials); err != nil {
		return Outcome{}, err
	}

	row, ok := r.Costs.EnhancementCost(req.Target.Grade, req.Target.Level)
	if !ok {
		return Outcome{}, fmt.Errorf("%w: grade %d level %d", model.ErrMaxLevelReached, req.Target.Grade, req.Target.Level)
	}

	cost := r.Currency.Normalize(decimal.NewFromInt(row.Cost))
	if req.Balance.LessThan(cost) {
		return Outcome{}, fmt.Errorf("%w: balance %s %s, cost %s", model.ErrInsufficientFunds, req.Balance, r.Currency, cost)
	}

	roll := src.NextN(combat.RatioScale)
	success := roll < row.SuccessRateBps

	item := req.Target.Clone()
	if success {
		item.Level++
	} else {
		item.Level = max(0, item.Level-row.DowngradeOnFailure)
	}

	consumed := make([]uuid.UUID, 0, len(req.Materials))
	for _, m := range req.Materials {
		consumed = append(consumed, m.ItemID)
	}

	slog.Debug("enhancement resolved",
		"itemID", item.ItemID,
		"grade", item.Grade,
		"from", req.Target.Level,
		"to", item.Level,
		"success", success,
		"roll", roll,
		"rateBps", row.SuccessRateBps)

	return Outcome{
		Success:       success,
		Item:          item,
		PreviousLevel: req.Target.Level,
		Consumed:      consumed,
		Transfer: Transfer{
			From:     req.Payer,
			To:       r.Beneficiary,
			Currency: r.Currency,
			Amount:   cost,
		},
		RateBps: row.SuccessRateBps,
		Roll:    roll,
	}, nil
}

// ValidateMaterials checks that materials may feed target: at least one,
// no duplicates, not the target itself, not equipped, and the same sub
// type, grade and level as the target.
func ValidateMaterials(target model.Equipment, materials []model.Equipment) error {
	if !target.SubType.IsEquipment() {
		return fmt.Errorf("%w: %s is not equipment", model.ErrInvalidItem, target.ItemID)
	}
	if len(materials) == 0 {
		return fmt.Errorf("%w: no materials", model.ErrInvalidMaterial)
	}

	seen := make(map[uuid.UUID]bool, len(materials))
	for _, m := range materials {
		switch {
		case m.ItemID == target.ItemID:
			return fmt.Errorf("%w: %s is the target", model.ErrInvalidMaterial, m.ItemID)
		case seen[m.ItemID]:
			return fmt.Errorf("%w: %s listed twice", model.ErrInvalidMaterial, m.ItemID)
		case m.Equipped:
			return fmt.Errorf("%w: %s is equipped", model.ErrInvalidMaterial, m.ItemID)
		case m.SubType != target.SubType:
			return fmt.Errorf("%w: %s is %s, target is %s", model.ErrInvalidMaterial, m.ItemID, m.SubType, target.SubType)
		case m.Grade != target.Grade:
			return fmt.Errorf("%w: %s grade %d, target grade %d", model.ErrInvalidMaterial, m.ItemID, m.Grade, target.Grade)
		case m.Level != target.Level:
			return fmt.Errorf("%w: %s level %d, target level %d", model.ErrInvalidMaterial, m.ItemID, m.Level, target.Level)
		}
		seen[m.ItemID] = true
	}
	return nil
}
