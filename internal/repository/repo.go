package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/CreativeDT/McLeod-BE/internal/model"

	"github.com/lib/pq"
)

var (
	ErrCarrierNotFound    = errors.New("carrier not found")
	ErrLaneNotFound       = errors.New("lane not found")
	ErrPredictionNotFound = errors.New("prediction not found")
	// ErrTruckConflict means another booking claimed the truck for the same
	// schedule date between availability check and insert.
	ErrTruckConflict = errors.New("truck already booked for schedule date")
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// ---------- carriers ----------

func (r *Repo) GetCarrierByName(ctx context.Context, name string) (model.Carrier, error) {
	var c model.Carrier
	row := r.db.QueryRowContext(ctx,
		`SELECT carrier_id, name, scac_code FROM carrier_partners WHERE name = $1`, name)
	if err := row.Scan(&c.CarrierID, &c.Name, &c.SCACCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Carrier{}, ErrCarrierNotFound
		}
		return model.Carrier{}, fmt.Errorf("get carrier by name: %w", err)
	}
	return c, nil
}

func (r *Repo) ListCarriers(ctx context.Context) ([]model.Carrier, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT carrier_id, name, scac_code FROM carrier_partners ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list carriers: %w", err)
	}
	defer rows.Close()

	var res []model.Carrier
	for rows.Next() {
		var c model.Carrier
		if err := rows.Scan(&c.CarrierID, &c.Name, &c.SCACCode); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

// ---------- trucks ----------

// ListUnbookedTrucks returns a carrier's trucks of the given type whose base
// status is unbooked, ordered by truck_id so allocation is deterministic.
func (r *Repo) ListUnbookedTrucks(ctx context.Context, carrierID, truckType string) ([]model.Truck, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT truck_id, carrier_id, truck_type, status
        FROM trucks
        WHERE carrier_id = $1 AND truck_type = $2 AND status = $3
        ORDER BY truck_id
    `, carrierID, truckType, model.TruckStatusUnbooked)
	if err != nil {
		return nil, fmt.Errorf("list unbooked trucks: %w", err)
	}
	defer rows.Close()

	var res []model.Truck
	for rows.Next() {
		var t model.Truck
		if err := rows.Scan(&t.TruckID, &t.CarrierID, &t.TruckType, &t.Status); err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	return res, rows.Err()
}

func (r *Repo) ListTruckTypes(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT DISTINCT truck_type FROM trucks ORDER BY truck_type`)
}

func (r *Repo) CountTrucksByType(ctx context.Context) ([]model.TruckTypeCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT truck_type, COUNT(*) FROM trucks GROUP BY truck_type ORDER BY truck_type`)
	if err != nil {
		return nil, fmt.Errorf("count trucks by type: %w", err)
	}
	defer rows.Close()

	var res []model.TruckTypeCount
	for rows.Next() {
		var tc model.TruckTypeCount
		if err := rows.Scan(&tc.TruckType, &tc.Count); err != nil {
			return nil, err
		}
		res = append(res, tc)
	}
	return res, rows.Err()
}

// ---------- bookings ----------

// ListBookedTruckIDs returns the truck IDs already held by Confirmed or
// Pending bookings for the carrier on the schedule date.
func (r *Repo) ListBookedTruckIDs(ctx context.Context, carrierID, scheduleDate string) ([]string, error) {
	return r.listStrings(ctx, `
        SELECT truck_id FROM bookings
        WHERE carrier_id = $1 AND schedule_date = $2
          AND booking_status IN ($3, $4)
    `, carrierID, scheduleDate, model.BookingConfirmed, model.BookingPending)
}

// InsertBooking writes the booking only if no Confirmed/Pending booking holds
// the same truck on the same schedule date. The check and the write are one
// statement, and a partial unique index backs it up, so two concurrent
// requests cannot double-book a truck. Returns ErrTruckConflict when the
// truck was taken.
func (r *Repo) InsertBooking(ctx context.Context, b model.Booking) error {
	res, err := r.db.ExecContext(ctx, `
        INSERT INTO bookings (
            id, shipment_id, user_id, carrier_id, truck_id, lane_id,
            origin, destination, booking_date, booking_time, schedule_date,
            weight, volume, truck_type, booking_status, suggested_date, created_at
        )
        SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
        WHERE NOT EXISTS (
            SELECT 1 FROM bookings
            WHERE truck_id = $5 AND schedule_date = $11
              AND booking_status IN ('Confirmed', 'Pending')
        )
    `, b.ID, b.ShipmentID, b.UserID, b.CarrierID, b.TruckID, b.LaneID,
		b.Origin, b.Destination, b.BookingDate, b.BookingTime, b.ScheduleDate,
		b.Weight, b.Volume, b.TruckType, b.BookingStatus, b.SuggestedDate, b.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrTruckConflict
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTruckConflict
	}
	return nil
}

// ---------- lanes ----------

func (r *Repo) GetLaneByID(ctx context.Context, laneID string) (model.Lane, error) {
	return r.getLane(ctx,
		`SELECT lane_id, origin, destination, distance FROM lanes WHERE lane_id = $1`, laneID)
}

func (r *Repo) GetLaneByRoute(ctx context.Context, origin, destination string) (model.Lane, error) {
	return r.getLane(ctx,
		`SELECT lane_id, origin, destination, distance FROM lanes WHERE origin = $1 AND destination = $2`,
		origin, destination)
}

func (r *Repo) getLane(ctx context.Context, query string, args ...interface{}) (model.Lane, error) {
	var l model.Lane
	row := r.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&l.LaneID, &l.Origin, &l.Destination, &l.Distance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Lane{}, ErrLaneNotFound
		}
		return model.Lane{}, fmt.Errorf("get lane: %w", err)
	}
	return l, nil
}

func (r *Repo) ListLaneIDs(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT lane_id FROM lanes ORDER BY lane_id`)
}

func (r *Repo) ListOrigins(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT DISTINCT origin FROM lanes`)
}

func (r *Repo) ListDestinations(ctx context.Context) ([]string, error) {
	return r.listStrings(ctx, `SELECT DISTINCT destination FROM lanes`)
}

func (r *Repo) ListDestinationsByOrigin(ctx context.Context, origin string) ([]string, error) {
	return r.listStrings(ctx,
		`SELECT destination FROM lanes WHERE origin = $1 ORDER BY destination`, origin)
}

// ---------- predictions ----------

func (r *Repo) GetPrediction(ctx context.Context, laneID, carrierID, date string) (model.Prediction, error) {
	var p model.Prediction
	row := r.db.QueryRowContext(ctx, `
        SELECT lane_id, carrier_id, date,
               predicted_available_truck_count_assumption,
               predicted_booking_count_assumption
        FROM predicted_lane_statuses
        WHERE lane_id = $1 AND carrier_id = $2 AND date = $3
    `, laneID, carrierID, date)
	if err := row.Scan(&p.LaneID, &p.CarrierID, &p.Date, &p.PredictedAvailable, &p.PredictedBooked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Prediction{}, ErrPredictionNotFound
		}
		return model.Prediction{}, fmt.Errorf("get prediction: %w", err)
	}
	return p, nil
}

// ---------- insights ----------

func (r *Repo) CountInsights(ctx context.Context) (model.Insights, error) {
	var ins model.Insights
	row := r.db.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM carrier_partners),
            (SELECT COUNT(*) FROM trucks),
            (SELECT COUNT(*) FROM lanes),
            (SELECT COUNT(*) FROM historical_lane_statuses)
    `)
	if err := row.Scan(&ins.CarrierCount, &ins.TruckCount, &ins.LaneCount, &ins.HistoricalCount); err != nil {
		return model.Insights{}, fmt.Errorf("count insights: %w", err)
	}
	return ins, nil
}

func (r *Repo) listStrings(ctx context.Context, query string, args ...interface{}) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var res []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		res = append(res, s)
	}
	return res, rows.Err()
}
