package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/openummah/masjidhub/internal/directory/domain"
)

type usersRepo struct {
	s *Store
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return findOne[domain.User](ctx, r.s.col(ColUsers), bson.D{{Key: "_id", Value: id}})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return findOne[domain.User](ctx, r.s.col(ColUsers), bson.D{{Key: "email", Value: email}})
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	return insertOne(ctx, r.s.col(ColUsers), u)
}

func (r *usersRepo) SetMasjidID(ctx context.Context, userID, masjidID string) error {
	return updateFields(ctx, r.s.col(ColUsers), userID, bson.D{
		{Key: "masjid_id", Value: masjidID},
		{Key: "updated_at", Value: time.Now().UTC()},
	})
}
