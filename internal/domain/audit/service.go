package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	Store StoreAPI
	now   func() time.Time
}

func New(store StoreAPI) *Service {
	return &Service{Store: store, now: time.Now}
}

// Record stores one event. before and after are marshalled to JSON when set.
func (s *Service) Record(ctx context.Context, actorID, action, entityType, entityID, requestID, ip string, before, after any) error {
	if s == nil || s.Store == nil {
		return nil
	}
	var beforeJSON, afterJSON []byte
	if before != nil {
		payload, err := json.Marshal(before)
		if err != nil {
			return err
		}
		beforeJSON = payload
	}
	if after != nil {
		payload, err := json.Marshal(after)
		if err != nil {
			return err
		}
		afterJSON = payload
	}

	return s.Store.Insert(ctx, Event{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		RequestID:  requestID,
		IP:         ip,
		CreatedAt:  s.now().UTC(),
		Before:     beforeJSON,
		After:      afterJSON,
	})
}

func (s *Service) Count(ctx context.Context, filter Filter) (int, error) {
	return s.Store.Count(ctx, filter)
}

func (s *Service) List(ctx context.Context, filter Filter, includeDetails bool, limit, offset int) ([]Event, error) {
	return s.Store.List(ctx, filter, includeDetails, limit, offset)
}
