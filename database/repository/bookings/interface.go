package bookingsRepo

import (
	"context"

	"stayflow/database"
	"stayflow/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository archives confirmed bookings and their cancellation
// outcomes. Records are immutable once written; a cancellation is a separate
// document, never an update of the booking.
type BookingRepository interface {
	Create(ctx context.Context, record models.BookingRecord) error
	GetByID(ctx context.Context, bookingID string) (*models.BookingRecord, error)
	ListByAgencyReference(ctx context.Context, agencyRef string) ([]models.BookingRecord, error)
	CreateCancellation(ctx context.Context, outcome models.CancellationOutcome) error
	GetCancellation(ctx context.Context, bookingID string) (*models.CancellationOutcome, error)
}

type mongoBookingRepo struct {
	bookings      *mongo.Collection
	cancellations *mongo.Collection
}

// NewMongoBookingRepo returns a BookingRepository backed by MongoDB.
func NewMongoBookingRepo() BookingRepository {
	db := database.MongoClient.Database("stayflow")
	return &mongoBookingRepo{
		bookings:      db.Collection("bookings"),
		cancellations: db.Collection("cancellations"),
	}
}
