package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/CreativeDT/McLeod-BE/internal/balance"
	"github.com/CreativeDT/McLeod-BE/internal/repository"
	"github.com/CreativeDT/McLeod-BE/internal/units"
)

const cacheTTL = 5 * time.Minute

// LaneDetails is a lane with its distance converted for display.
type LaneDetails struct {
	LaneID        string  `json:"lane_id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	DistanceMiles float64 `json:"distance_miles"`
}

// LaneDetails looks up a lane by its origin/destination pair. City names are
// normalized to title case before matching.
func (s *Service) LaneDetails(ctx context.Context, origin, destination string) (LaneDetails, error) {
	origin, destination = titleCase(origin), titleCase(destination)

	key := fmt.Sprintf("lane:%s:%s:details", origin, destination)
	if raw, err := s.cache.Get(ctx, key); err == nil {
		var ld LaneDetails
		if err := json.Unmarshal([]byte(raw), &ld); err == nil {
			return ld, nil
		}
	}

	lane, err := s.repo.GetLaneByRoute(ctx, origin, destination)
	if err != nil {
		return LaneDetails{}, err
	}
	ld := LaneDetails{
		LaneID:        lane.LaneID,
		Origin:        lane.Origin,
		Destination:   lane.Destination,
		DistanceMiles: units.KmToMiles(lane.Distance),
	}

	if b, err := json.Marshal(ld); err == nil {
		if err := s.cache.Set(ctx, key, b, cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("cache set failed")
		}
	}
	return ld, nil
}

// LanePrediction is the single-carrier supply/demand forecast for a lane.
type LanePrediction struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DistanceMiles float64        `json:"distance_miles"`
	TotalTrucks   int            `json:"total_trucks"`
	Available     int            `json:"available"`
	Booked        int            `json:"booked"`
	Status        balance.Status `json:"status"`
	LaneID        string         `json:"lane_id"`
	CarrierName   string         `json:"carrier_name"`
	Date          string         `json:"date"`
}

// LanePrediction classifies one carrier's predicted balance on a lane for a
// date. A missing prediction record counts as zero capacity and zero demand.
func (s *Service) LanePrediction(ctx context.Context, laneID, carrierName, date string) (LanePrediction, error) {
	carrier, err := s.repo.GetCarrierByName(ctx, carrierName)
	if err != nil {
		return LanePrediction{}, err
	}
	lane, err := s.repo.GetLaneByID(ctx, laneID)
	if err != nil {
		return LanePrediction{}, err
	}

	pred, err := s.repo.GetPrediction(ctx, laneID, carrier.CarrierID, date)
	if err != nil && !errors.Is(err, repository.ErrPredictionNotFound) {
		return LanePrediction{}, err
	}

	fig := balance.Classify(pred.PredictedAvailable, pred.PredictedBooked)
	return LanePrediction{
		Origin:        lane.Origin,
		Destination:   lane.Destination,
		DistanceMiles: units.KmToMiles(lane.Distance),
		TotalTrucks:   fig.Total,
		Available:     fig.Available,
		Booked:        fig.Booked,
		Status:        fig.Status,
		LaneID:        laneID,
		CarrierName:   carrierName,
		Date:          date,
	}, nil
}

// AggregatedLanePrediction is the lane-wide forecast across every carrier.
type AggregatedLanePrediction struct {
	Origin         string                   `json:"origin"`
	Destination    string                   `json:"destination"`
	Predictions    []balance.CarrierFigures `json:"predictions"`
	TotalTrucks    int                      `json:"total_trucks"`
	TotalAvailable int                      `json:"total_available"`
	TotalBooked    int                      `json:"total_booked"`
	OverallStatus  balance.Status           `json:"overall_status"`
}

// AggregatedLanePrediction classifies every known carrier on the lane and
// applies the same classification to the summed totals.
func (s *Service) AggregatedLanePrediction(ctx context.Context, laneID, date string) (AggregatedLanePrediction, error) {
	lane, err := s.repo.GetLaneByID(ctx, laneID)
	if err != nil {
		return AggregatedLanePrediction{}, err
	}
	carriers, err := s.repo.ListCarriers(ctx)
	if err != nil {
		return AggregatedLanePrediction{}, err
	}

	entries := make([]balance.CarrierFigures, 0, len(carriers))
	for _, c := range carriers {
		pred, err := s.repo.GetPrediction(ctx, laneID, c.CarrierID, date)
		if err != nil && !errors.Is(err, repository.ErrPredictionNotFound) {
			return AggregatedLanePrediction{}, err
		}
		entries = append(entries, balance.CarrierFigures{
			Carrier:  c.Name,
			SCACCode: c.SCACCode,
			Figures:  balance.Classify(pred.PredictedAvailable, pred.PredictedBooked),
		})
	}

	agg := balance.AggregateCarriers(entries)
	return AggregatedLanePrediction{
		Origin:         lane.Origin,
		Destination:    lane.Destination,
		Predictions:    agg.Breakdown,
		TotalTrucks:    agg.TotalTrucks,
		TotalAvailable: agg.TotalAvailable,
		TotalBooked:    agg.TotalBooked,
		OverallStatus:  agg.Overall,
	}, nil
}

// DropdownData backs the booking form: every selectable value in one payload.
type DropdownData struct {
	CarrierNames    []string `json:"carrier_names"`
	TruckTypes      []string `json:"truck_types"`
	AllOrigins      []string `json:"all_origins"`
	AllDestinations []string `json:"all_destinations"`
	LaneIDs         []string `json:"lane_ids"`
}

const dropdownCacheKey = "dropdown:data"

// DropdownData assembles the booking-form reference lists, cache-aside.
func (s *Service) DropdownData(ctx context.Context) (DropdownData, error) {
	if raw, err := s.cache.Get(ctx, dropdownCacheKey); err == nil {
		var dd DropdownData
		if err := json.Unmarshal([]byte(raw), &dd); err == nil {
			return dd, nil
		}
	}

	var dd DropdownData
	var err error
	if dd.CarrierNames, err = s.CarrierNames(ctx); err != nil {
		return DropdownData{}, err
	}
	// Raw stored values, not display-formatted ones: the booking form posts
	// these back and the truck query matches them verbatim.
	if dd.TruckTypes, err = s.repo.ListTruckTypes(ctx); err != nil {
		return DropdownData{}, err
	}
	if dd.AllOrigins, err = s.Origins(ctx); err != nil {
		return DropdownData{}, err
	}
	if dd.AllDestinations, err = s.Destinations(ctx); err != nil {
		return DropdownData{}, err
	}
	if dd.LaneIDs, err = s.LaneIDs(ctx); err != nil {
		return DropdownData{}, err
	}

	if b, err := json.Marshal(dd); err == nil {
		if err := s.cache.Set(ctx, dropdownCacheKey, b, cacheTTL); err != nil {
			s.log.Warn().Err(err).Msg("cache set failed")
		}
	}
	return dd, nil
}

func (s *Service) CarrierNames(ctx context.Context) ([]string, error) {
	carriers, err := s.repo.ListCarriers(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(carriers))
	for _, c := range carriers {
		names = append(names, c.Name)
	}
	return names, nil
}

// TruckTypes returns the distinct truck types formatted for display
// (underscores become spaces, words title-cased).
func (s *Service) TruckTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.ListTruckTypes(ctx)
	if err != nil {
		return nil, err
	}
	formatted := make([]string, 0, len(types))
	for _, t := range types {
		formatted = append(formatted, formatTruckType(t))
	}
	return formatted, nil
}

func (s *Service) Origins(ctx context.Context) ([]string, error) {
	origins, err := s.repo.ListOrigins(ctx)
	if err != nil {
		return nil, err
	}
	return titleCaseSorted(origins), nil
}

func (s *Service) Destinations(ctx context.Context) ([]string, error) {
	destinations, err := s.repo.ListDestinations(ctx)
	if err != nil {
		return nil, err
	}
	return titleCaseSorted(destinations), nil
}

func (s *Service) LaneIDs(ctx context.Context) ([]string, error) {
	return s.repo.ListLaneIDs(ctx)
}

// DestinationsByOrigin lists every destination reachable from an origin,
// sorted alphabetically.
func (s *Service) DestinationsByOrigin(ctx context.Context, origin string) ([]string, error) {
	dests, err := s.repo.ListDestinationsByOrigin(ctx, titleCase(origin))
	if err != nil {
		return nil, err
	}
	sort.Strings(dests)
	return dests, nil
}
