package db

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/chronicle/internal/game/battle"
	"github.com/udisondev/chronicle/internal/game/event"
	"github.com/udisondev/chronicle/internal/ledger"
)

// Replay is a stored battle. Log holds the canonical encoding; it is kept
// as bytea rather than jsonb because jsonb reorders keys.
type Replay struct {
	ID            uuid.UUID
	AvatarAddress ledger.Address
	StageID       int32
	Seed          int32
	Outcome       string
	ClearedWaves  int
	Turns         int
	PlayerLevel   int32
	PlayerExp     int64
	Log           []byte
	CreatedAt     time.Time
}

// NewReplay builds a Replay from a finished run.
func NewReplay(avatar ledger.Address, stageID, seed int32, res *battle.Result) (Replay, error) {
	encoded, err := res.Log.Encode()
	if err != nil {
		return Replay{}, fmt.Errorf("encoding replay log: %w", err)
	}
	return Replay{
		ID:            uuid.New(),
		AvatarAddress: avatar,
		StageID:       stageID,
		Seed:          seed,
		Outcome:       res.Outcome.String(),
		ClearedWaves:  res.ClearedWaves,
		Turns:         res.Turns,
		PlayerLevel:   res.Player.Level,
		PlayerExp:     res.Player.Exp,
		Log:           encoded,
	}, nil
}

// Events decodes the stored log.
func (r Replay) Events() (*event.Log, error) {
	return event.Decode(r.Log)
}

// Matches reports whether a re-run produced the same canonical log.
func (r Replay) Matches(l *event.Log) (bool, error) {
	encoded, err := l.Encode()
	if err != nil {
		return false, err
	}
	return bytes.Equal(r.Log, encoded), nil
}

// ReplayRepository хранит прогоны боёв.
type ReplayRepository struct {
	db *pgxpool.Pool
}

// NewReplayRepository создаёт новый ReplayRepository.
func NewReplayRepository(db *pgxpool.Pool) *ReplayRepository {
	return &ReplayRepository{db: db}
}

// Save вставляет прогон. Нулевой ID заменяется новым UUID.
func (r *ReplayRepository) Save(ctx context.Context, rp *Replay) error {
	if rp.ID == uuid.Nil {
		rp.ID = uuid.New()
	}

	query := `
		INSERT INTO replays (id, avatar_address, stage_id, seed, outcome, cleared_waves, turns,
		                     player_level, player_exp, log)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query,
		rp.ID, rp.AvatarAddress.String(), rp.StageID, rp.Seed, rp.Outcome,
		rp.ClearedWaves, rp.Turns, rp.PlayerLevel, rp.PlayerExp, rp.Log,
	).Scan(&rp.CreatedAt)
	if err != nil {
		return fmt.Errorf("saving replay %s: %w", rp.ID, err)
	}
	return nil
}

// Get возвращает прогон по ID или ErrNotFound.
func (r *ReplayRepository) Get(ctx context.Context, id uuid.UUID) (Replay, error) {
	query := `
		SELECT id, avatar_address, stage_id, seed, outcome, cleared_waves, turns,
		       player_level, player_exp, log, created_at
		FROM replays
		WHERE id = $1
	`
	rp, err := scanReplay(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Replay{}, fmt.Errorf("replay %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Replay{}, fmt.Errorf("querying replay %s: %w", id, err)
	}
	return rp, nil
}

// ListByAvatar возвращает последние прогоны аватара, новые первыми.
func (r *ReplayRepository) ListByAvatar(ctx context.Context, avatar ledger.Address, limit int) ([]Replay, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, avatar_address, stage_id, seed, outcome, cleared_waves, turns,
		       player_level, player_exp, log, created_at
		FROM replays
		WHERE avatar_address = $1
		ORDER BY created_at DESC, id
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, avatar.String(), limit)
	if err != nil {
		return nil, fmt.Errorf("querying replays for %s: %w", avatar, err)
	}
	defer rows.Close()

	var out []Replay
	for rows.Next() {
		rp, err := scanReplay(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning replay row: %w", err)
		}
		out = append(out, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating replay rows: %w", err)
	}
	return out, nil
}

func scanReplay(row pgx.Row) (Replay, error) {
	var (
		rp     Replay
		avatar string
	)
	err := row.Scan(
		&rp.ID, &avatar, &rp.StageID, &rp.Seed, &rp.Outcome, &rp.ClearedWaves, &rp.Turns,
		&rp.PlayerLevel, &rp.PlayerExp, &rp.Log, &rp.CreatedAt,
	)
	if err != nil {
		return Replay{}, err
	}
	if rp.AvatarAddress, err = ledger.ParseAddress(avatar); err != nil {
		return Replay{}, err
	}
	return rp, nil
}
