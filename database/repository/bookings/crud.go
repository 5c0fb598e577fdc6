package bookingsRepo

import (
	"context"
	"errors"
	"time"

	"stayflow/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a confirmed booking record.
func (r *mongoBookingRepo) Create(ctx context.Context, record models.BookingRecord) error {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	_, err := r.bookings.InsertOne(ctx, record)
	return err
}

// GetByID returns a booking record by its supplier booking ID.
func (r *mongoBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.BookingRecord, error) {
	var record models.BookingRecord
	err := r.bookings.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByAgencyReference fetches all bookings placed under one agency reference.
func (r *mongoBookingRepo) ListByAgencyReference(ctx context.Context, agencyRef string) ([]models.BookingRecord, error) {
	cursor, err := r.bookings.Find(ctx, bson.M{"agencyReference": agencyRef})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CreateCancellation records the outcome of a cancel attempt.
func (r *mongoBookingRepo) CreateCancellation(ctx context.Context, outcome models.CancellationOutcome) error {
	if outcome.CreatedAt.IsZero() {
		outcome.CreatedAt = time.Now()
	}
	_, err := r.cancellations.InsertOne(ctx, outcome)
	return err
}

// GetCancellation returns the cancellation outcome for a booking, if any.
func (r *mongoBookingRepo) GetCancellation(ctx context.Context, bookingID string) (*models.CancellationOutcome, error) {
	var outcome models.CancellationOutcome
	err := r.cancellations.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&outcome)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &outcome, nil
}
