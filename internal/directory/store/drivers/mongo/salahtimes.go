package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/openummah/masjidhub/internal/directory/domain"
)

type salahTimesRepo struct {
	s *Store
}

func (r *salahTimesRepo) GetSalahTimes(ctx context.Context, masjidID string, date time.Time) (domain.SalahTimes, error) {
	return findOne[domain.SalahTimes](ctx, r.s.col(ColSalahTimes), bson.D{
		{Key: "masjid_id", Value: masjidID},
		{Key: "date", Value: date},
	})
}

// UpsertSalahTimes replaces the day's schedule in place. The unique
// (masjid_id, date) index makes concurrent upserts for the same day safe.
func (r *salahTimesRepo) UpsertSalahTimes(ctx context.Context, s domain.SalahTimes) error {
	filter := bson.D{
		{Key: "masjid_id", Value: s.MasjidID},
		{Key: "date", Value: s.Date},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "fajr", Value: s.Fajr},
			{Key: "dhuhr", Value: s.Dhuhr},
			{Key: "asr", Value: s.Asr},
			{Key: "maghrib", Value: s.Maghrib},
			{Key: "isha", Value: s.Isha},
			{Key: "jumuah", Value: s.Jumuah},
			{Key: "updated_at", Value: s.UpdatedAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: s.ID},
			{Key: "masjid_id", Value: s.MasjidID},
			{Key: "date", Value: s.Date},
			{Key: "created_at", Value: s.CreatedAt},
		}},
	}

	_, err := r.s.col(ColSalahTimes).UpdateOne(ctx, filter, update, options.UpdateOne().SetUpsert(true))
	return wrapErr(err)
}
