package mongo

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openummah/masjidhub/internal/directory/domain"
	"github.com/openummah/masjidhub/internal/directory/store"
)

type mosquesRepo struct {
	s *Store
}

func (r *mosquesRepo) GetMosqueByID(ctx context.Context, id string) (domain.Mosque, error) {
	return findOne[domain.Mosque](ctx, r.s.col(ColMosques), bson.D{{Key: "_id", Value: id}})
}

func (r *mosquesRepo) SearchMosques(ctx context.Context, f store.MosqueFilter) ([]domain.Mosque, error) {
	filter := bson.D{{Key: "is_approved", Value: true}}

	if f.Name != "" {
		pattern := regexp.QuoteMeta(f.Name)
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "name", Value: bson.D{{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"}}}},
			bson.D{{Key: "address", Value: bson.D{{Key: "$regex", Value: pattern}, {Key: "$options", Value: "i"}}}},
		}})
	}
	if f.City != "" {
		filter = append(filter, bson.E{Key: "city", Value: bson.D{
			{Key: "$regex", Value: regexp.QuoteMeta(f.City)},
			{Key: "$options", Value: "i"},
		}})
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	// listings are public; the owning account stays out of them
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetProjection(bson.D{{Key: "admin_id", Value: 0}})

	return findMany[domain.Mosque](ctx, r.s.col(ColMosques), filter, opts)
}

func (r *mosquesRepo) CreateMosque(ctx context.Context, m domain.Mosque) error {
	return insertOne(ctx, r.s.col(ColMosques), m)
}

func (r *mosquesRepo) UpdateMosque(ctx context.Context, m domain.Mosque) error {
	return updateFields(ctx, r.s.col(ColMosques), m.ID, bson.D{
		{Key: "name", Value: m.Name},
		{Key: "address", Value: m.Address},
		{Key: "city", Value: m.City},
		{Key: "state", Value: m.State},
		{Key: "country", Value: m.Country},
		{Key: "postal_code", Value: m.PostalCode},
		{Key: "latitude", Value: m.Latitude},
		{Key: "longitude", Value: m.Longitude},
		{Key: "contact_info", Value: m.ContactInfo},
		{Key: "imam", Value: m.Imam},
		{Key: "images", Value: m.Images},
		{Key: "is_approved", Value: m.IsApproved},
		{Key: "updated_at", Value: time.Now().UTC()},
	})
}
