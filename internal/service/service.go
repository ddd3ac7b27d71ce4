package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/CreativeDT/McLeod-BE/internal/maps"
	"github.com/CreativeDT/McLeod-BE/internal/metrics"
	"github.com/CreativeDT/McLeod-BE/internal/model"
	"github.com/CreativeDT/McLeod-BE/internal/repository"
)

var (
	// ErrInvalidRequest means a required booking field was missing or empty.
	ErrInvalidRequest = errors.New("missing required fields")
	// ErrCoordsNotFound means a lane city is not in the coordinate table.
	ErrCoordsNotFound = errors.New("coordinates not available")
)

// Allocation outcomes. NoCapacity outcomes are business results, not errors;
// a store failure is returned as an error instead.
const (
	OutcomeAllocated    = metrics.OutcomeAllocated
	OutcomeAlternatives = metrics.OutcomeAlternatives
	OutcomeNoCapacity   = metrics.OutcomeNoCapacity
)

type Service struct {
	repo   Repo
	cache  Cache
	mapbox *maps.Client
	sink   *metrics.Sink
	log    zerolog.Logger
}

func NewService(repo Repo, cache Cache, mapbox *maps.Client, sink *metrics.Sink, log zerolog.Logger) *Service {
	return &Service{repo: repo, cache: cache, mapbox: mapbox, sink: sink, log: log}
}

// BookingRequest carries the nine required fields of a shipment booking.
type BookingRequest struct {
	UserID       string  `json:"user_id"`
	CarrierName  string  `json:"carrier_name"`
	LaneID       string  `json:"lane_id"`
	Origin       string  `json:"origin"`
	Destination  string  `json:"destination"`
	ScheduleDate string  `json:"schedule_date"`
	Weight       float64 `json:"weight"`
	Volume       float64 `json:"volume"`
	TruckType    string  `json:"truck_type"`
}

func (r BookingRequest) validate() error {
	for _, s := range []string{
		r.UserID, r.CarrierName, r.LaneID, r.Origin,
		r.Destination, r.ScheduleDate, r.TruckType,
	} {
		if s == "" {
			return ErrInvalidRequest
		}
	}
	if r.Weight <= 0 || r.Volume <= 0 {
		return ErrInvalidRequest
	}
	return nil
}

// AlternativeCarrier names another carrier with spare capacity of the
// requested truck type on the requested date.
type AlternativeCarrier struct {
	CarrierName          string `json:"carrier_name"`
	AvailableTrucksCount int    `json:"available_trucks_count"`
}

// AllocationResult is the outcome of a booking attempt. TruckID and
// ShipmentID are set only for OutcomeAllocated; Alternatives only for
// OutcomeAlternatives.
type AllocationResult struct {
	Outcome      string
	TruckID      string
	ShipmentID   string
	Alternatives []AlternativeCarrier
}

// AvailableTrucks resolves which trucks a carrier can offer: trucks of the
// requested type with base status unbooked, minus trucks already held by a
// Confirmed or Pending booking on the schedule date. Order follows the truck
// query (ascending truck_id).
func (s *Service) AvailableTrucks(ctx context.Context, carrierID, truckType, scheduleDate string) ([]string, error) {
	trucks, err := s.repo.ListUnbookedTrucks(ctx, carrierID, truckType)
	if err != nil {
		return nil, err
	}
	bookedIDs, err := s.repo.ListBookedTruckIDs(ctx, carrierID, scheduleDate)
	if err != nil {
		return nil, err
	}

	booked := make(map[string]struct{}, len(bookedIDs))
	for _, id := range bookedIDs {
		booked[id] = struct{}{}
	}

	available := make([]string, 0, len(trucks))
	for _, t := range trucks {
		if _, taken := booked[t.TruckID]; !taken {
			available = append(available, t.TruckID)
		}
	}
	return available, nil
}

// BookShipment allocates a truck for the requested carrier and writes a
// Confirmed booking, or reports which other carriers still have capacity.
// At most one booking is written per call. The reserve step is an atomic
// conditional insert; when a concurrent request wins the same truck, the
// next available truck is tried.
func (s *Service) BookShipment(ctx context.Context, req BookingRequest) (AllocationResult, error) {
	if err := req.validate(); err != nil {
		return AllocationResult{}, err
	}

	carrier, err := s.repo.GetCarrierByName(ctx, req.CarrierName)
	if err != nil {
		return AllocationResult{}, err
	}

	available, err := s.AvailableTrucks(ctx, carrier.CarrierID, req.TruckType, req.ScheduleDate)
	if err != nil {
		s.sink.RecordAllocation(metrics.OutcomeFailed)
		return AllocationResult{}, err
	}

	for _, truckID := range available {
		b := s.newBooking(carrier.CarrierID, truckID, req)
		err := s.repo.InsertBooking(ctx, b)
		if errors.Is(err, repository.ErrTruckConflict) {
			s.log.Debug().Str("truck_id", truckID).Str("schedule_date", req.ScheduleDate).
				Msg("truck taken concurrently, trying next")
			continue
		}
		if err != nil {
			s.sink.RecordAllocation(metrics.OutcomeFailed)
			return AllocationResult{}, err
		}
		s.sink.RecordBooking()
		s.sink.RecordAllocation(OutcomeAllocated)
		s.log.Info().Str("shipment_id", b.ShipmentID).Str("truck_id", truckID).
			Str("carrier_id", carrier.CarrierID).Str("schedule_date", req.ScheduleDate).
			Msg("shipment booked")
		return AllocationResult{Outcome: OutcomeAllocated, TruckID: truckID, ShipmentID: b.ShipmentID}, nil
	}

	// Requested carrier is out of capacity. Report other carriers that can
	// still serve the same truck type on the same date. Read-only from here.
	carriers, err := s.repo.ListCarriers(ctx)
	if err != nil {
		s.sink.RecordAllocation(metrics.OutcomeFailed)
		return AllocationResult{}, err
	}

	var alternatives []AlternativeCarrier
	for _, c := range carriers {
		if c.CarrierID == carrier.CarrierID {
			continue
		}
		ids, err := s.AvailableTrucks(ctx, c.CarrierID, req.TruckType, req.ScheduleDate)
		if err != nil {
			s.sink.RecordAllocation(metrics.OutcomeFailed)
			return AllocationResult{}, err
		}
		if len(ids) > 0 {
			alternatives = append(alternatives, AlternativeCarrier{
				CarrierName:          c.Name,
				AvailableTrucksCount: len(ids),
			})
		}
	}

	if len(alternatives) > 0 {
		s.sink.RecordAllocation(OutcomeAlternatives)
		return AllocationResult{Outcome: OutcomeAlternatives, Alternatives: alternatives}, nil
	}
	s.sink.RecordAllocation(OutcomeNoCapacity)
	return AllocationResult{Outcome: OutcomeNoCapacity}, nil
}

func (s *Service) newBooking(carrierID, truckID string, req BookingRequest) model.Booking {
	now := time.Now()
	return model.Booking{
		ID:            uuid.New(),
		ShipmentID:    newShipmentID(now),
		UserID:        req.UserID,
		CarrierID:     carrierID,
		TruckID:       truckID,
		LaneID:        req.LaneID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		BookingDate:   now.Format("2006-01-02"),
		BookingTime:   now.Format("15:04:05"),
		ScheduleDate:  req.ScheduleDate,
		Weight:        req.Weight,
		Volume:        req.Volume,
		TruckType:     req.TruckType,
		BookingStatus: model.BookingConfirmed,
		SuggestedDate: nil,
		CreatedAt:     now,
	}
}

// newShipmentID builds a time-based shipment token.
func newShipmentID(now time.Time) string {
	return fmt.Sprintf("SHP_%d", now.UnixMilli())
}

// CarrierByName resolves a carrier's id and SCAC code from its display name.
func (s *Service) CarrierByName(ctx context.Context, name string) (model.Carrier, error) {
	return s.repo.GetCarrierByName(ctx, name)
}

// Insights reports record counts across the reference collections.
func (s *Service) Insights(ctx context.Context) (model.Insights, error) {
	return s.repo.CountInsights(ctx)
}

// TruckTypeCounts reports how many trucks exist per truck type.
func (s *Service) TruckTypeCounts(ctx context.Context) ([]model.TruckTypeCount, error) {
	return s.repo.CountTrucksByType(ctx)
}
