package service

import (
	"context"
	"time"

	"github.com/CreativeDT/McLeod-BE/internal/model"
)

// Repo is the data-access surface the booking service depends on.
type Repo interface {
	GetCarrierByName(ctx context.Context, name string) (model.Carrier, error)
	ListCarriers(ctx context.Context) ([]model.Carrier, error)

	ListUnbookedTrucks(ctx context.Context, carrierID, truckType string) ([]model.Truck, error)
	ListTruckTypes(ctx context.Context) ([]string, error)
	CountTrucksByType(ctx context.Context) ([]model.TruckTypeCount, error)

	ListBookedTruckIDs(ctx context.Context, carrierID, scheduleDate string) ([]string, error)
	InsertBooking(ctx context.Context, b model.Booking) error

	GetLaneByID(ctx context.Context, laneID string) (model.Lane, error)
	GetLaneByRoute(ctx context.Context, origin, destination string) (model.Lane, error)
	ListLaneIDs(ctx context.Context) ([]string, error)
	ListOrigins(ctx context.Context) ([]string, error)
	ListDestinations(ctx context.Context) ([]string, error)
	ListDestinationsByOrigin(ctx context.Context, origin string) ([]string, error)

	GetPrediction(ctx context.Context, laneID, carrierID, date string) (model.Prediction, error)

	CountInsights(ctx context.Context) (model.Insights, error)
}

// Cache is the read-through cache surface (backed by Redis in production).
type Cache interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
}
