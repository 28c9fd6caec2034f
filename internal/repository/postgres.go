package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/immxrtalbeast/yoom/internal/domain"
	"github.com/immxrtalbeast/yoom/internal/repository/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresCallRepository struct {
	db *gorm.DB
}

func NewPostgresCallRepository(db *gorm.DB) *PostgresCallRepository {
	return &PostgresCallRepository{db: db}
}

func (r *PostgresCallRepository) GetOrCreate(ctx context.Context, call *domain.Call) (*domain.Call, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if call == nil {
		return nil, false, errors.New("call is nil")
	}

	callModel, err := toModelCall(call)
	if err != nil {
		return nil, false, err
	}

	var (
		stored  model.Call
		created bool
	)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(callModel)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0

		return tx.First(&stored, "type = ? AND id = ?", call.Type, call.ID).Error
	})
	if err != nil {
		return nil, false, err
	}

	result, err := toDomainCall(&stored)
	if err != nil {
		return nil, false, err
	}
	return result, created, nil
}

func (r *PostgresCallRepository) GetByID(ctx context.Context, callType string, id string) (*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var call model.Call
	err := r.db.WithContext(ctx).First(&call, "type = ? AND id = ?", callType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCallNotFound
		}
		return nil, err
	}

	return toDomainCall(&call)
}

func (r *PostgresCallRepository) ListByCreator(ctx context.Context, userID string, limit int) ([]*domain.Call, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Where("created_by = ? AND starts_at IS NOT NULL", userID).
		Order("starts_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var calls []model.Call
	if err := query.Find(&calls).Error; err != nil {
		return nil, err
	}

	result := make([]*domain.Call, 0, len(calls))
	for i := range calls {
		call, err := toDomainCall(&calls[i])
		if err != nil {
			return nil, err
		}
		result = append(result, call)
	}

	return result, nil
}

type PostgresRecordingRepository struct {
	db *gorm.DB
}

func NewPostgresRecordingRepository(db *gorm.DB) *PostgresRecordingRepository {
	return &PostgresRecordingRepository{db: db}
}

func (r *PostgresRecordingRepository) Create(ctx context.Context, recording *domain.Recording) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if recording == nil {
		return errors.New("recording is nil")
	}

	rec := &model.Recording{
		CallType:  recording.CallType,
		CallID:    recording.CallID,
		Filename:  recording.Filename,
		URL:       recording.URL,
		StartTime: recording.StartTime.UTC(),
		EndTime:   recording.EndTime.UTC(),
	}

	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRecordingExists
		}
		return err
	}
	return nil
}

func (r *PostgresRecordingRepository) ListByCall(ctx context.Context, callType string, callID string) ([]*domain.Recording, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var recs []model.Recording
	err := r.db.WithContext(ctx).
		Where("call_type = ? AND call_id = ?", callType, callID).
		Order("start_time ASC").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Recording, 0, len(recs))
	for _, rec := range recs {
		result = append(result, &domain.Recording{
			CallType:  rec.CallType,
			CallID:    rec.CallID,
			Filename:  rec.Filename,
			URL:       rec.URL,
			StartTime: rec.StartTime.UTC(),
			EndTime:   rec.EndTime.UTC(),
		})
	}
	return result, nil
}

func toModelCall(call *domain.Call) (*model.Call, error) {
	custom := "{}"
	if len(call.Custom) > 0 {
		raw, err := json.Marshal(call.Custom)
		if err != nil {
			return nil, err
		}
		custom = string(raw)
	}

	now := time.Now().UTC()
	createdAt := call.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := call.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	return &model.Call{
		Type:      call.Type,
		ID:        call.ID,
		CreatedBy: call.CreatedBy,
		StartsAt:  optionalTime(call.StartsAt),
		EndedAt:   optionalTime(call.EndedAt),
		Custom:    custom,
		CreatedAt: createdAt.UTC(),
		UpdatedAt: updatedAt.UTC(),
	}, nil
}

func toDomainCall(call *model.Call) (*domain.Call, error) {
	result := &domain.Call{
		ID:        call.ID,
		Type:      call.Type,
		CreatedBy: call.CreatedBy,
		CreatedAt: call.CreatedAt.UTC(),
		UpdatedAt: call.UpdatedAt.UTC(),
	}
	if call.StartsAt != nil {
		result.StartsAt = call.StartsAt.UTC()
	}
	if call.EndedAt != nil {
		result.EndedAt = call.EndedAt.UTC()
	}
	if call.Custom != "" && call.Custom != "{}" {
		if err := json.Unmarshal([]byte(call.Custom), &result.Custom); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	utc := t.UTC()
	return &utc
}
