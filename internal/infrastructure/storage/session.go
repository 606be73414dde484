package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/GigzPumpking/cmpm-121-demo-3/internal/cache"
	"github.com/GigzPumpking/cmpm-121-demo-3/internal/domain"
	"github.com/GigzPumpking/cmpm-121-demo-3/pkg/logger"
)

// SessionRepository переносит состояние сессии в BlobStore и обратно:
// три блоба - mementos, playerInventory, trail.
type SessionRepository struct {
	blobs BlobStore
}

func NewSessionRepository(blobs BlobStore) *SessionRepository {
	return &SessionRepository{blobs: blobs}
}

// Save пишет все три блоба одной операцией хранилища.
func (r *SessionRepository) Save(ctx context.Context, state domain.SessionState) error {
	mementos, err := EncodeMementos(state.Mementos)
	if err != nil {
		return fmt.Errorf("encode mementos: %w", err)
	}
	inventory, err := cache.ToMemento(state.Inventory)
	if err != nil {
		return fmt.Errorf("encode inventory: %w", err)
	}
	trail, err := encodeTrail(state.Trail)
	if err != nil {
		return fmt.Errorf("encode trail: %w", err)
	}

	blobs := map[string][]byte{
		domain.BlobMementos:        mementos,
		domain.BlobPlayerInventory: []byte(inventory),
		domain.BlobTrail:           trail,
	}
	if err := r.blobs.PutAll(ctx, blobs); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load читает сессию. Отсутствующий блоб - пустое значение (первый запуск).
// Нечитаемый блоб пишется в лог и тоже считается пустым: сессия не должна падать из-за мусора.
// Ошибка возвращается только если само хранилище недоступно.
func (r *SessionRepository) Load(ctx context.Context) (domain.SessionState, error) {
	var state domain.SessionState

	// 1. Mementos
	blob, err := r.get(ctx, domain.BlobMementos)
	if err != nil {
		return state, err
	}
	if blob != nil {
		mementos, err := DecodeMementos(blob)
		if err != nil {
			logger.Log.WithError(err).WithField("blob", domain.BlobMementos).Warn("discarding unreadable blob")
		} else {
			state.Mementos = mementos
		}
	}

	// 2. Инвентарь игрока
	blob, err = r.get(ctx, domain.BlobPlayerInventory)
	if err != nil {
		return state, err
	}
	if blob != nil {
		tokens, err := cache.FromMemento(string(blob))
		if err != nil {
			logger.Log.WithError(err).WithField("blob", domain.BlobPlayerInventory).Warn("discarding unreadable blob")
		} else {
			state.Inventory = tokens
		}
	}

	// 3. След игрока
	blob, err = r.get(ctx, domain.BlobTrail)
	if err != nil {
		return state, err
	}
	if blob != nil {
		trail, err := decodeTrail(blob)
		if err != nil {
			logger.Log.WithError(err).WithField("blob", domain.BlobTrail).Warn("discarding unreadable blob")
		} else {
			state.Trail = trail
		}
	}

	return state, nil
}

// Clear удаляет все блобы сессии.
func (r *SessionRepository) Clear(ctx context.Context) error {
	for _, key := range []string{domain.BlobMementos, domain.BlobPlayerInventory, domain.BlobTrail} {
		if err := r.blobs.Delete(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	return nil
}

func (r *SessionRepository) get(ctx context.Context, key string) ([]byte, error) {
	blob, err := r.blobs.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return blob, nil
}

func encodeTrail(trail []domain.LatLng) ([]byte, error) {
	if trail == nil {
		trail = []domain.LatLng{}
	}
	return json.Marshal(trail)
}

func decodeTrail(blob []byte) ([]domain.LatLng, error) {
	var trail []domain.LatLng
	if err := json.Unmarshal(blob, &trail); err != nil {
		return nil, err
	}
	return trail, nil
}
