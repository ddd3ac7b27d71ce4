package model

import (
	"time"

	"github.com/google/uuid"
)

// Truck base status. A truck whose base status is not "unbooked" is never
// offered for allocation regardless of bookings.
const TruckStatusUnbooked = "unbooked"

// Booking statuses. Confirmed and Pending bookings count against a truck's
// availability for the booked schedule date.
const (
	BookingConfirmed = "Confirmed"
	BookingPending   = "Pending"
	BookingCancelled = "Cancelled"
)

type Carrier struct {
	CarrierID string `db:"carrier_id" json:"carrier_id"`
	Name      string `db:"name" json:"name"`
	SCACCode  string `db:"scac_code" json:"scac_code"`
}

type Truck struct {
	TruckID   string `db:"truck_id" json:"truck_id"`
	CarrierID string `db:"carrier_id" json:"carrier_id"`
	TruckType string `db:"truck_type" json:"truck_type"`
	Status    string `db:"status" json:"status"`
}

// Booking is a confirmed or pending shipment reservation. ScheduleDate is the
// date of service; BookingDate/BookingTime record when the booking was
// created. Dates are kept as "2006-01-02" strings so matching against client
// input is exact.
type Booking struct {
	ID            uuid.UUID `db:"id" json:"id"`
	ShipmentID    string    `db:"shipment_id" json:"shipment_id"`
	UserID        string    `db:"user_id" json:"user_id"`
	CarrierID     string    `db:"carrier_id" json:"carrier_id"`
	TruckID       string    `db:"truck_id" json:"truck_id"`
	LaneID        string    `db:"lane_id" json:"lane_id"`
	Origin        string    `db:"origin" json:"origin"`
	Destination   string    `db:"destination" json:"destination"`
	BookingDate   string    `db:"booking_date" json:"booking_date"`
	BookingTime   string    `db:"booking_time" json:"booking_time"`
	ScheduleDate  string    `db:"schedule_date" json:"schedule_date"`
	Weight        float64   `db:"weight" json:"weight"`
	Volume        float64   `db:"volume" json:"volume"`
	TruckType     string    `db:"truck_type" json:"truck_type"`
	BookingStatus string    `db:"booking_status" json:"booking_status"`
	SuggestedDate *string   `db:"suggested_date" json:"suggested_date"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Lane distances are stored in kilometers and converted to miles for display.
type Lane struct {
	LaneID      string  `db:"lane_id" json:"lane_id"`
	Origin      string  `db:"origin" json:"origin"`
	Destination string  `db:"destination" json:"destination"`
	Distance    float64 `db:"distance" json:"distance"`
}

// Prediction is a precomputed supply/demand forecast for a
// (lane, carrier, date) triple. Read-only input to this service.
type Prediction struct {
	LaneID             string `db:"lane_id" json:"lane_id"`
	CarrierID          string `db:"carrier_id" json:"carrier_id"`
	Date               string `db:"date" json:"date"`
	PredictedAvailable int    `db:"predicted_available_truck_count_assumption" json:"predicted_available_truck_count_assumption"`
	PredictedBooked    int    `db:"predicted_booking_count_assumption" json:"predicted_booking_count_assumption"`
}

type TruckTypeCount struct {
	TruckType string `json:"truck_type"`
	Count     int    `json:"count"`
}

type Insights struct {
	CarrierCount    int64 `json:"carrier_count"`
	TruckCount      int64 `json:"truck_count"`
	LaneCount       int64 `json:"lane_count"`
	HistoricalCount int64 `json:"historical_data"`
}
