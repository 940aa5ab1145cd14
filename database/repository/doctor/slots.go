package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"

	"go.mongodb.org/mongo-driver/bson"
)

// ReserveSlot pushes key onto bookedSlots in a single conditional update. The
// filter only matches while the key is absent, so two concurrent reservations
// of the same key cannot both match.
func (r *MongoDoctorRepo) ReserveSlot(ctx context.Context, id, key string) (bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":          id,
		"bookedSlots": bson.M{"$ne": key},
	}
	update := bson.M{
		"$push": bson.M{"bookedSlots": key},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to reserve slot %q for doctor %s: %w", key, id, err)
	}
	return result.MatchedCount == 1, nil
}

// ReleaseSlot pulls key from bookedSlots.
func (r *MongoDoctorRepo) ReleaseSlot(ctx context.Context, id, key string) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{
		"$pull": bson.M{"bookedSlots": key},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update); err != nil {
		return fmt.Errorf("failed to release slot %q for doctor %s: %w", key, id, err)
	}
	return nil
}
