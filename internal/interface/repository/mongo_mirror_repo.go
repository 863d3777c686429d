package repository

import (
	"context"

	"valet-booking-service/internal/domain/entity"
	"valet-booking-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingMirror implements the BookingMirror interface. The mirror is a
// best-effort replica of the local cache: every write converges by booking
// id, so repeated sync attempts are harmless.
type MongoBookingMirror struct {
	bookings *mongo.Collection
	invoices *mongo.Collection
}

// NewMongoBookingMirror creates a new MongoDB booking mirror
func NewMongoBookingMirror(db *mongo.Database) repository.BookingMirror {
	bookings := db.Collection("bookings")
	invoices := db.Collection("invoices")

	// Create indexes for better performance
	ctx := context.Background()

	statusIndex := mongo.IndexModel{
		Keys: bson.M{"status": 1},
	}
	dateIndex := mongo.IndexModel{
		Keys: bson.M{"date": 1},
	}
	bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{statusIndex, dateIndex})

	invoiceBookingIndex := mongo.IndexModel{
		Keys:    bson.M{"bookingId": 1},
		Options: options.Index().SetUnique(true),
	}
	invoices.Indexes().CreateOne(ctx, invoiceBookingIndex)

	return &MongoBookingMirror{
		bookings: bookings,
		invoices: invoices,
	}
}

// FetchAll returns every remote booking record
func (r *MongoBookingMirror) FetchAll(ctx context.Context) ([]entity.Booking, error) {
	cursor, err := r.bookings.Find(ctx, bson.M{}, &options.FindOptions{
		Sort: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []entity.Booking
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Upsert creates or replaces a remote booking record by id
func (r *MongoBookingMirror) Upsert(ctx context.Context, booking *entity.Booking) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.bookings.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking, opts)
	return err
}

// Delete removes a remote booking record
func (r *MongoBookingMirror) Delete(ctx context.Context, id string) error {
	_, err := r.bookings.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// UpsertInvoice creates or replaces a remote invoice record by id
func (r *MongoBookingMirror) UpsertInvoice(ctx context.Context, invoice *entity.Invoice) error {
	opts := options.Replace().SetUpsert(true)
	_, err := r.invoices.ReplaceOne(ctx, bson.M{"_id": invoice.ID}, invoice, opts)
	return err
}
