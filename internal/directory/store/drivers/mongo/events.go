package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
)

type eventsRepo struct {
	s *Store
}

func (r *eventsRepo) ListEvents(ctx context.Context, f store.EventFilter) ([]domain.Event, error) {
	filter := bson.D{}
	if f.MasjidID != "" {
		filter = append(filter, bson.E{Key: "masjid_id", Value: f.MasjidID})
	}

	sortDir := -1 // newest first for a plain listing
	if f.Upcoming {
		filter = append(filter, bson.E{Key: "date", Value: bson.D{{Key: "$gte", Value: f.After}}})
		sortDir = 1 // soonest first when asking what's next
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: sortDir}}).
		SetLimit(int64(limit))

	return findMany[domain.Event](ctx, r.s.col(ColEvents), filter, opts)
}

func (r *eventsRepo) CreateEvent(ctx context.Context, e domain.Event) error {
	return insertOne(ctx, r.s.col(ColEvents), e)
}
