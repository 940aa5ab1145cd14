package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"medibook/database"
	"medibook/models"

	"go.mongodb.org/mongo-driver/bson"
)

// MarkCancelled flips cancelled with a filter that only matches active
// appointments, so concurrent cancels resolve to exactly one winner.
func (r *MongoAppointmentRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "cancelled": false}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"cancelled": true}})
	if err != nil {
		return false, fmt.Errorf("failed to cancel appointment %s: %w", id, err)
	}
	return result.MatchedCount == 1, nil
}

func (r *MongoAppointmentRepo) MarkCompleted(ctx context.Context, id string) error {
	return r.set(ctx, id, bson.M{"completed": true})
}

func (r *MongoAppointmentRepo) MarkPaid(ctx context.Context, id string, receipt models.PaymentReceipt) error {
	return r.set(ctx, id, bson.M{
		"payment":   true,
		"orderId":   receipt.OrderID,
		"paymentId": receipt.PaymentID,
		"signature": receipt.Signature,
	})
}

func (r *MongoAppointmentRepo) SetOrderID(ctx context.Context, id, orderID string) error {
	return r.set(ctx, id, bson.M{"orderId": orderID})
}

func (r *MongoAppointmentRepo) set(ctx context.Context, id string, fields bson.M) error {
	ctx, cancel := database.NewContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update appointment with id %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s: %w", id, database.ErrNotFound)
	}
	return nil
}
