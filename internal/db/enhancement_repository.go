package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/udisondev/chronicle/internal/game/enchant"
	"github.com/udisondev/chronicle/internal/ledger"
)

// EnhancementRecord is one stored enhancement attempt.
type EnhancementRecord struct {
	ID            uuid.UUID
	ItemID        uuid.UUID
	AvatarAddress ledger.Address
	BlockIndex    int64
	Success       bool
	PreviousLevel int32
	Level         int32
	RateBps       int
	Roll          int
	Cost          decimal.Decimal
	Currency      string
	Beneficiary   ledger.Address
	CreatedAt     time.Time
}

// NewEnhancementRecord builds a record from a resolver outcome.
func NewEnhancementRecord(avatar ledger.Address, blockIndex int64, o enchant.Outcome) EnhancementRecord {
	return EnhancementRecord{
		ID:            uuid.New(),
		ItemID:        o.Item.ItemID,
		AvatarAddress: avatar,
		BlockIndex:    blockIndex,
		Success:       o.Success,
		PreviousLevel: o.PreviousLevel,
		Level:         o.Item.Level,
		RateBps:       o.RateBps,
		Roll:          o.Roll,
		Cost:          o.Transfer.Amount,
		Currency:      o.Transfer.Currency.Ticker,
		Beneficiary:   o.Transfer.To,
	}
}

// EnhancementRepository хранит историю заточек.
type EnhancementRepository struct {
	db *pgxpool.Pool
}

// NewEnhancementRepository создаёт новый EnhancementRepository.
func NewEnhancementRepository(db *pgxpool.Pool) *EnhancementRepository {
	return &EnhancementRepository{db: db}
}

// Save вставляет запись о попытке заточки.
func (r *EnhancementRepository) Save(ctx context.Context, rec *EnhancementRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	query := `
		INSERT INTO enhancements (id, item_id, avatar_address, block_index, success,
		                          previous_level, level, rate_bps, roll, cost, currency, beneficiary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11, $12)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		rec.ID, rec.ItemID, rec.AvatarAddress.String(), rec.BlockIndex, rec.Success,
		rec.PreviousLevel, rec.Level, rec.RateBps, rec.Roll, rec.Cost.String(), rec.Currency,
		rec.Beneficiary.String(),
	).Scan(&rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving enhancement %s: %w", rec.ID, err)
	}
	return nil
}

// ListByItem возвращает историю заточек предмета в порядке блоков.
func (r *EnhancementRepository) ListByItem(ctx context.Context, itemID uuid.UUID) ([]EnhancementRecord, error) {
	query := `
		SELECT id, item_id, avatar_address, block_index, success, previous_level, level,
		       rate_bps, roll, cost::text, currency, beneficiary, created_at
		FROM enhancements
		WHERE item_id = $1
		ORDER BY block_index, created_at
	`
	rows, err := r.db.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("querying enhancements for item %s: %w", itemID, err)
	}
	defer rows.Close()

	var out []EnhancementRecord
	for rows.Next() {
		rec, err := scanEnhancement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning enhancement row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enhancement rows: %w", err)
	}
	return out, nil
}

func scanEnhancement(row pgx.Row) (EnhancementRecord, error) {
	var (
		rec                 EnhancementRecord
		avatar, beneficiary string
		cost                string
	)
	err := row.Scan(
		&rec.ID, &rec.ItemID, &avatar, &rec.BlockIndex, &rec.Success, &rec.PreviousLevel, &rec.Level,
		&rec.RateBps, &rec.Roll, &cost, &rec.Currency, &beneficiary, &rec.CreatedAt,
	)
	if err != nil {
		return EnhancementRecord{}, err
	}
	if rec.AvatarAddress, err = ledger.ParseAddress(avatar); err != nil {
		return EnhancementRecord{}, err
	}
	if rec.Beneficiary, err = ledger.ParseAddress(beneficiary); err != nil {
		return EnhancementRecord{}, err
	}
	if rec.Cost, err = decimal.NewFromString(cost); err != nil {
		return EnhancementRecord{}, fmt.Errorf("parsing cost %q: %w", cost, err)
	}
	return rec, nil
}
