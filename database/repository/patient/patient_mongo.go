package patientRepo

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

const CollectionName = "patients"

// MongoPatientRepo implements PatientRepository using MongoDB.
type MongoPatientRepo struct {
	coll *mongo.Collection
}

func NewMongoPatientRepo(db *mongo.Database) *MongoPatientRepo {
	return &MongoPatientRepo{coll: db.Collection(CollectionName)}
}

// EnsureIndexes creates the id and email unique indexes.
func (r *MongoPatientRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create patient indexes: %w", err)
	}
	return nil
}

func (r *MongoPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now

	_, err := r.coll.InsertOne(ctx, patient)
	return database.WrapWriteError("failed to create patient", err)
}

func (r *MongoPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *MongoPatientRepo) GetByEmail(ctx context.Context, email string) (*models.Patient, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoPatientRepo) findOne(ctx context.Context, filter bson.M) (*models.Patient, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	var patient models.Patient
	if err := r.coll.FindOne(ctx, filter).Decode(&patient); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch patient: %w", err)
	}
	return &patient, nil
}

func (r *MongoPatientRepo) GetByIDs(ctx context.Context, ids []string) (map[string]models.Patient, error) {
	result := make(map[string]models.Patient, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	ctx, cancel := database.NewContext(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch patients: %w", err)
	}
	defer cursor.Close(ctx)

	var patients []models.Patient
	if err := cursor.All(ctx, &patients); err != nil {
		return nil, fmt.Errorf("failed to decode patients: %w", err)
	}
	for _, p := range patients {
		result[p.ID] = p
	}
	return result, nil
}

func (r *MongoPatientRepo) Update(ctx context.Context, id string, update models.PatientUpdate) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.DOB != nil {
		set["dob"] = *update.DOB
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Image != nil {
		set["image"] = *update.Image
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update patient with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("patient with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}

func (r *MongoPatientRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return n, nil
}
