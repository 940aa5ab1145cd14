package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "appointments"

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo(db *mongo.Database) *MongoAppointmentRepo {
	return &MongoAppointmentRepo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the listing indexes and the partial unique index that
// allows one active appointment per doctor slot.
func (r *MongoAppointmentRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	activeSlot := options.Index().
		SetName("active_doctor_slot").
		SetUnique(true).
		SetPartialFilterExpression(bson.M{"cancelled": false})

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "slotKey", Value: 1}}, Options: activeSlot},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
