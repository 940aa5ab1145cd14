package doctorRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now
	if doctor.BookedSlots == nil {
		doctor.BookedSlots = []string{}
	}

	_, err := r.coll.InsertOne(ctx, doctor)
	return database.WrapWriteError("failed to create doctor", err)
}

// GetByID retrieves a doctor by its unique ID.
func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

// GetByEmail retrieves a doctor by email.
func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoDoctorRepo) findOne(ctx context.Context, filter bson.M) (*models.Doctor, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor: %w", err)
	}
	return &doctor, nil
}

// List returns doctors matching filter, oldest first.
func (r *MongoDoctorRepo) List(ctx context.Context, filter models.DoctorFilter) ([]models.Doctor, error) {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	query := bson.M{}
	if filter.Speciality != "" {
		query["speciality"] = filter.Speciality
	}
	if filter.AvailableOnly {
		query["availability"] = true
	}

	cursor, err := r.coll.Find(ctx, query, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, fmt.Errorf("failed to decode doctors: %w", err)
	}
	return doctors, nil
}

// Update applies the non-nil fields of update with $set.
func (r *MongoDoctorRepo) Update(ctx context.Context, id string, update models.DoctorUpdate) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if update.AddressLine1 != nil {
		set["address.line1"] = *update.AddressLine1
	}
	if update.AddressLine2 != nil {
		set["address.line2"] = *update.AddressLine2
	}
	if update.FeeStructure != nil {
		set["feeStructure"] = *update.FeeStructure
	}
	if update.Availability != nil {
		set["availability"] = *update.Availability
	}
	if update.About != nil {
		set["about"] = *update.About
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}

// Count returns the number of doctors.
func (r *MongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return n, nil
}
