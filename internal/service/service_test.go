package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/CreativeDT/McLeod-BE/internal/balance"
	"github.com/CreativeDT/McLeod-BE/internal/maps"
	"github.com/CreativeDT/McLeod-BE/internal/metrics"
	"github.com/CreativeDT/McLeod-BE/internal/model"
	"github.com/CreativeDT/McLeod-BE/internal/repository"
)

var errCacheMiss = errors.New("cache: miss")

type fakeRepo struct {
	carriers    []model.Carrier
	trucks      []model.Truck
	bookings    []model.Booking
	lanes       []model.Lane
	predictions []model.Prediction

	// conflictTrucks simulates losing the reserve race for specific trucks.
	conflictTrucks map[string]bool
	// failWith, when set, is returned by every query.
	failWith error

	historical int
	inserted   []model.Booking
}

func (f *fakeRepo) GetCarrierByName(ctx context.Context, name string) (model.Carrier, error) {
	if f.failWith != nil {
		return model.Carrier{}, f.failWith
	}
	for _, c := range f.carriers {
		if c.Name == name {
			return c, nil
		}
	}
	return model.Carrier{}, repository.ErrCarrierNotFound
}

func (f *fakeRepo) ListCarriers(ctx context.Context) ([]model.Carrier, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.carriers, nil
}

func (f *fakeRepo) ListUnbookedTrucks(ctx context.Context, carrierID, truckType string) ([]model.Truck, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var res []model.Truck
	for _, t := range f.trucks {
		if t.CarrierID == carrierID && t.TruckType == truckType && t.Status == model.TruckStatusUnbooked {
			res = append(res, t)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].TruckID < res[j].TruckID })
	return res, nil
}

func (f *fakeRepo) ListTruckTypes(ctx context.Context) ([]string, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	seen := map[string]struct{}{}
	var res []string
	for _, t := range f.trucks {
		if _, ok := seen[t.TruckType]; !ok {
			seen[t.TruckType] = struct{}{}
			res = append(res, t.TruckType)
		}
	}
	sort.Strings(res)
	return res, nil
}

func (f *fakeRepo) CountTrucksByType(ctx context.Context) ([]model.TruckTypeCount, error) {
	counts := map[string]int{}
	for _, t := range f.trucks {
		counts[t.TruckType]++
	}
	var res []model.TruckTypeCount
	for tt, n := range counts {
		res = append(res, model.TruckTypeCount{TruckType: tt, Count: n})
	}
	sort.Slice(res, func(i, j int) bool { return res[i].TruckType < res[j].TruckType })
	return res, nil
}

func (f *fakeRepo) ListBookedTruckIDs(ctx context.Context, carrierID, scheduleDate string) ([]string, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var res []string
	for _, b := range f.bookings {
		if b.CarrierID == carrierID && b.ScheduleDate == scheduleDate &&
			(b.BookingStatus == model.BookingConfirmed || b.BookingStatus == model.BookingPending) {
			res = append(res, b.TruckID)
		}
	}
	return res, nil
}

func (f *fakeRepo) InsertBooking(ctx context.Context, b model.Booking) error {
	if f.failWith != nil {
		return f.failWith
	}
	if f.conflictTrucks[b.TruckID] {
		return repository.ErrTruckConflict
	}
	for _, existing := range f.bookings {
		if existing.TruckID == b.TruckID && existing.ScheduleDate == b.ScheduleDate &&
			(existing.BookingStatus == model.BookingConfirmed || existing.BookingStatus == model.BookingPending) {
			return repository.ErrTruckConflict
		}
	}
	f.bookings = append(f.bookings, b)
	f.inserted = append(f.inserted, b)
	return nil
}

func (f *fakeRepo) GetLaneByID(ctx context.Context, laneID string) (model.Lane, error) {
	if f.failWith != nil {
		return model.Lane{}, f.failWith
	}
	for _, l := range f.lanes {
		if l.LaneID == laneID {
			return l, nil
		}
	}
	return model.Lane{}, repository.ErrLaneNotFound
}

func (f *fakeRepo) GetLaneByRoute(ctx context.Context, origin, destination string) (model.Lane, error) {
	for _, l := range f.lanes {
		if l.Origin == origin && l.Destination == destination {
			return l, nil
		}
	}
	return model.Lane{}, repository.ErrLaneNotFound
}

func (f *fakeRepo) ListLaneIDs(ctx context.Context) ([]string, error) {
	var res []string
	for _, l := range f.lanes {
		res = append(res, l.LaneID)
	}
	return res, nil
}

func (f *fakeRepo) ListOrigins(ctx context.Context) ([]string, error) {
	var res []string
	for _, l := range f.lanes {
		res = append(res, l.Origin)
	}
	return res, nil
}

func (f *fakeRepo) ListDestinations(ctx context.Context) ([]string, error) {
	var res []string
	for _, l := range f.lanes {
		res = append(res, l.Destination)
	}
	return res, nil
}

func (f *fakeRepo) ListDestinationsByOrigin(ctx context.Context, origin string) ([]string, error) {
	var res []string
	for _, l := range f.lanes {
		if l.Origin == origin {
			res = append(res, l.Destination)
		}
	}
	sort.Strings(res)
	return res, nil
}

func (f *fakeRepo) GetPrediction(ctx context.Context, laneID, carrierID, date string) (model.Prediction, error) {
	if f.failWith != nil {
		return model.Prediction{}, f.failWith
	}
	for _, p := range f.predictions {
		if p.LaneID == laneID && p.CarrierID == carrierID && p.Date == date {
			return p, nil
		}
	}
	return model.Prediction{}, repository.ErrPredictionNotFound
}

func (f *fakeRepo) CountInsights(ctx context.Context) (model.Insights, error) {
	return model.Insights{
		CarrierCount:    int64(len(f.carriers)),
		TruckCount:      int64(len(f.trucks)),
		LaneCount:       int64(len(f.lanes)),
		HistoricalCount: int64(f.historical),
	}, nil
}

type fakeCache struct {
	storage map[string]string
	sets    int
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if f.storage == nil {
		f.storage = make(map[string]string)
	}
	f.sets++
	if b, ok := value.([]byte); ok {
		f.storage[key] = string(b)
	}
	return nil
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if v, ok := f.storage[key]; ok {
		return v, nil
	}
	return "", errCacheMiss
}

func newTestService(repo *fakeRepo) *Service {
	sink, _ := metrics.NewSink(prometheus.NewRegistry())
	return &Service{
		repo:   repo,
		cache:  &fakeCache{},
		mapbox: maps.NewClient("test-token"),
		sink:   sink,
		log:    zerolog.Nop(),
	}
}

func validRequest() BookingRequest {
	return BookingRequest{
		UserID:       "U1",
		CarrierName:  "Carrier A",
		LaneID:       "L1",
		Origin:       "Nashville",
		Destination:  "Memphis",
		ScheduleDate: "2024-06-01",
		Weight:       12.5,
		Volume:       40,
		TruckType:    "Dry Van",
	}
}

func fleetFixture() *fakeRepo {
	return &fakeRepo{
		carriers: []model.Carrier{
			{CarrierID: "C001", Name: "Carrier A", SCACCode: "LGCA"},
			{CarrierID: "C002", Name: "Carrier B", SCACCode: "LGCB"},
		},
		trucks: []model.Truck{
			{TruckID: "T1", CarrierID: "C001", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
			{TruckID: "T2", CarrierID: "C001", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
			{TruckID: "T3", CarrierID: "C002", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
			{TruckID: "T4", CarrierID: "C002", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
			{TruckID: "T5", CarrierID: "C002", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
		},
		lanes: []model.Lane{
			{LaneID: "L1", Origin: "Nashville", Destination: "Memphis", Distance: 340},
		},
	}
}

func TestAvailableTrucks(t *testing.T) {
	cases := []struct {
		name     string
		bookings []model.Booking
		trucks   []model.Truck
		want     []string
	}{
		{
			name: "booked truck excluded for its date",
			bookings: []model.Booking{
				{TruckID: "T1", CarrierID: "C001", ScheduleDate: "2024-06-01", BookingStatus: model.BookingConfirmed},
			},
			want: []string{"T2"},
		},
		{
			name: "booking on another date does not exclude",
			bookings: []model.Booking{
				{TruckID: "T1", CarrierID: "C001", ScheduleDate: "2024-06-02", BookingStatus: model.BookingConfirmed},
			},
			want: []string{"T1", "T2"},
		},
		{
			name: "pending booking excludes",
			bookings: []model.Booking{
				{TruckID: "T1", CarrierID: "C001", ScheduleDate: "2024-06-01", BookingStatus: model.BookingPending},
			},
			want: []string{"T2"},
		},
		{
			name: "cancelled booking does not exclude",
			bookings: []model.Booking{
				{TruckID: "T1", CarrierID: "C001", ScheduleDate: "2024-06-01", BookingStatus: model.BookingCancelled},
			},
			want: []string{"T1", "T2"},
		},
		{
			name: "truck with non-unbooked base status excluded",
			trucks: []model.Truck{
				{TruckID: "T1", CarrierID: "C001", TruckType: "Dry Van", Status: "maintenance"},
				{TruckID: "T2", CarrierID: "C001", TruckType: "Dry Van", Status: model.TruckStatusUnbooked},
			},
			want: []string{"T2"},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			repo := fleetFixture()
			if c.trucks != nil {
				repo.trucks = c.trucks
			}
			repo.bookings = c.bookings
			svc := newTestService(repo)

			got, err := svc.AvailableTrucks(context.Background(), "C001", "Dry Van", "2024-06-01")
			if err != nil {
				t.Fatalf("AvailableTrucks returned error: %v", err)
			}
			if len(got) != len(c.want) {
				t.Fatalf("AvailableTrucks = %v, want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("AvailableTrucks = %v, want %v", got, c.want)
				}
			}
		})
	}
}

func TestBookShipmentAllocatesFirstTruck(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	res, err := svc.BookShipment(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("BookShipment returned error: %v", err)
	}
	if res.Outcome != OutcomeAllocated {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeAllocated)
	}
	if res.TruckID != "T1" {
		t.Errorf("allocated truck = %q, want lowest truck_id T1", res.TruckID)
	}
	if !strings.HasPrefix(res.ShipmentID, "SHP_") {
		t.Errorf("shipment id %q missing SHP_ prefix", res.ShipmentID)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("bookings written = %d, want exactly 1", len(repo.inserted))
	}
	b := repo.inserted[0]
	if b.BookingStatus != model.BookingConfirmed {
		t.Errorf("booking status = %q, want Confirmed", b.BookingStatus)
	}
	if b.SuggestedDate != nil {
		t.Errorf("suggested date = %v, want nil", b.SuggestedDate)
	}
	if b.ScheduleDate != "2024-06-01" {
		t.Errorf("schedule date = %q", b.ScheduleDate)
	}
}

func TestBookShipmentConflictFallsThroughToNextTruck(t *testing.T) {
	repo := fleetFixture()
	repo.conflictTrucks = map[string]bool{"T1": true}
	svc := newTestService(repo)

	res, err := svc.BookShipment(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("BookShipment returned error: %v", err)
	}
	if res.Outcome != OutcomeAllocated || res.TruckID != "T2" {
		t.Fatalf("got outcome=%q truck=%q, want allocation of T2 after T1 conflict", res.Outcome, res.TruckID)
	}
	if len(repo.inserted) != 1 {
		t.Fatalf("bookings written = %d, want exactly 1", len(repo.inserted))
	}
}

func TestBookShipmentSuggestsAlternatives(t *testing.T) {
	repo := fleetFixture()
	// Carrier A fully booked for the date; Carrier B keeps 3 trucks free.
	repo.bookings = []model.Booking{
		{TruckID: "T1", CarrierID: "C001", ScheduleDate: "2024-06-01", BookingStatus: model.BookingConfirmed},
		{TruckID: "T2", CarrierID: "C001", ScheduleDate: "2024-06-01", BookingStatus: model.BookingPending},
	}
	svc := newTestService(repo)

	res, err := svc.BookShipment(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("BookShipment returned error: %v", err)
	}
	if res.Outcome != OutcomeAlternatives {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeAlternatives)
	}
	if len(res.Alternatives) != 1 {
		t.Fatalf("alternatives = %v, want one entry", res.Alternatives)
	}
	alt := res.Alternatives[0]
	if alt.CarrierName != "Carrier B" || alt.AvailableTrucksCount != 3 {
		t.Errorf("alternative = %+v, want Carrier B with count 3", alt)
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("bookings written = %d, want 0 on no-capacity path", len(repo.inserted))
	}
}

func TestBookShipmentNoCapacityAnywhere(t *testing.T) {
	repo := fleetFixture()
	req := validRequest()
	req.TruckType = "Reefer" // no carrier owns one
	svc := newTestService(repo)

	res, err := svc.BookShipment(context.Background(), req)
	if err != nil {
		t.Fatalf("BookShipment returned error: %v", err)
	}
	if res.Outcome != OutcomeNoCapacity {
		t.Fatalf("outcome = %q, want %q", res.Outcome, OutcomeNoCapacity)
	}
	if len(res.Alternatives) != 0 || len(repo.inserted) != 0 {
		t.Fatalf("expected no alternatives and no writes, got %+v / %d writes", res.Alternatives, len(repo.inserted))
	}
}

func TestBookShipmentValidation(t *testing.T) {
	mutations := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"missing user_id", func(r *BookingRequest) { r.UserID = "" }},
		{"missing carrier_name", func(r *BookingRequest) { r.CarrierName = "" }},
		{"missing lane_id", func(r *BookingRequest) { r.LaneID = "" }},
		{"missing origin", func(r *BookingRequest) { r.Origin = "" }},
		{"missing destination", func(r *BookingRequest) { r.Destination = "" }},
		{"missing schedule_date", func(r *BookingRequest) { r.ScheduleDate = "" }},
		{"missing truck_type", func(r *BookingRequest) { r.TruckType = "" }},
		{"zero weight", func(r *BookingRequest) { r.Weight = 0 }},
		{"zero volume", func(r *BookingRequest) { r.Volume = 0 }},
	}

	for _, m := range mutations {
		t.Run(m.name, func(t *testing.T) {
			repo := fleetFixture()
			svc := newTestService(repo)
			req := validRequest()
			m.mutate(&req)

			_, err := svc.BookShipment(context.Background(), req)
			if !errors.Is(err, ErrInvalidRequest) {
				t.Fatalf("err = %v, want ErrInvalidRequest", err)
			}
			if len(repo.inserted) != 0 {
				t.Fatalf("bookings written = %d, want 0", len(repo.inserted))
			}
		})
	}
}

func TestBookShipmentUnknownCarrier(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)
	req := validRequest()
	req.CarrierName = "Carrier Z"

	_, err := svc.BookShipment(context.Background(), req)
	if !errors.Is(err, repository.ErrCarrierNotFound) {
		t.Fatalf("err = %v, want ErrCarrierNotFound", err)
	}
}

func TestBookShipmentQueryFailure(t *testing.T) {
	repo := fleetFixture()
	repo.failWith = errors.New("connection reset")
	svc := newTestService(repo)

	_, err := svc.BookShipment(context.Background(), validRequest())
	if err == nil {
		t.Fatal("expected error when the store fails")
	}
	if len(repo.inserted) != 0 {
		t.Fatalf("bookings written = %d, want 0 on failure", len(repo.inserted))
	}
}

func TestLanePredictionDefaultsToZero(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	lp, err := svc.LanePrediction(context.Background(), "L1", "Carrier A", "2024-06-01")
	if err != nil {
		t.Fatalf("LanePrediction returned error: %v", err)
	}
	if lp.TotalTrucks != 0 || lp.Booked != 0 || lp.Available != 0 {
		t.Errorf("figures = %+v, want all zero", lp)
	}
	if lp.Status != balance.Balanced {
		t.Errorf("status = %q, want Balanced", lp.Status)
	}
}

func TestLanePredictionWithRecord(t *testing.T) {
	repo := fleetFixture()
	repo.predictions = []model.Prediction{
		{LaneID: "L1", CarrierID: "C001", Date: "2024-06-01", PredictedAvailable: 8, PredictedBooked: 11},
	}
	svc := newTestService(repo)

	lp, err := svc.LanePrediction(context.Background(), "L1", "Carrier A", "2024-06-01")
	if err != nil {
		t.Fatalf("LanePrediction returned error: %v", err)
	}
	if lp.Status != balance.Overbooked || lp.Available != -3 {
		t.Errorf("got status=%q available=%d, want Overbooked with -3", lp.Status, lp.Available)
	}
	if lp.Origin != "Nashville" || lp.Destination != "Memphis" {
		t.Errorf("lane cities = %s/%s", lp.Origin, lp.Destination)
	}
	if lp.DistanceMiles != 211.27 {
		t.Errorf("distance_miles = %v, want 211.27", lp.DistanceMiles)
	}
}

func TestAggregatedLanePrediction(t *testing.T) {
	repo := fleetFixture()
	// Carrier A overbooked by 2, Carrier B underbooked by 2: lane balances.
	repo.predictions = []model.Prediction{
		{LaneID: "L1", CarrierID: "C001", Date: "2024-06-01", PredictedAvailable: 4, PredictedBooked: 6},
		{LaneID: "L1", CarrierID: "C002", Date: "2024-06-01", PredictedAvailable: 7, PredictedBooked: 5},
	}
	svc := newTestService(repo)

	agg, err := svc.AggregatedLanePrediction(context.Background(), "L1", "2024-06-01")
	if err != nil {
		t.Fatalf("AggregatedLanePrediction returned error: %v", err)
	}
	if len(agg.Predictions) != 2 {
		t.Fatalf("breakdown size = %d, want 2", len(agg.Predictions))
	}
	if agg.Predictions[0].Status != balance.Overbooked || agg.Predictions[1].Status != balance.Underbooked {
		t.Errorf("per-carrier statuses = %q/%q", agg.Predictions[0].Status, agg.Predictions[1].Status)
	}
	if agg.TotalTrucks != 11 || agg.TotalBooked != 11 || agg.TotalAvailable != 0 {
		t.Errorf("totals = %d/%d/%d, want 11/11/0", agg.TotalTrucks, agg.TotalBooked, agg.TotalAvailable)
	}
	if agg.OverallStatus != balance.Balanced {
		t.Errorf("overall = %q, want Balanced from summed totals", agg.OverallStatus)
	}
}

func TestAggregatedLanePredictionUnknownLane(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	_, err := svc.AggregatedLanePrediction(context.Background(), "L404", "2024-06-01")
	if !errors.Is(err, repository.ErrLaneNotFound) {
		t.Fatalf("err = %v, want ErrLaneNotFound", err)
	}
}

func TestDropdownDataIsCached(t *testing.T) {
	repo := fleetFixture()
	cache := &fakeCache{}
	svc := newTestService(repo)
	svc.cache = cache

	first, err := svc.DropdownData(context.Background())
	if err != nil {
		t.Fatalf("DropdownData returned error: %v", err)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}

	// Break the repo: the second call must be served from cache.
	repo.failWith = errors.New("db down")
	second, err := svc.DropdownData(context.Background())
	if err != nil {
		t.Fatalf("cached DropdownData returned error: %v", err)
	}
	if len(second.CarrierNames) != len(first.CarrierNames) {
		t.Errorf("cached payload differs: %v vs %v", second.CarrierNames, first.CarrierNames)
	}
}

func TestDropdownTruckTypesBookRoundTrip(t *testing.T) {
	// The dropdown must expose stored truck types verbatim: the booking form
	// posts the selected value back and the truck query matches it exactly.
	repo := fleetFixture()
	for i := range repo.trucks {
		repo.trucks[i].TruckType = "dry_van"
	}
	svc := newTestService(repo)

	dd, err := svc.DropdownData(context.Background())
	if err != nil {
		t.Fatalf("DropdownData returned error: %v", err)
	}
	if len(dd.TruckTypes) != 1 || dd.TruckTypes[0] != "dry_van" {
		t.Fatalf("dropdown truck types = %v, want raw [dry_van]", dd.TruckTypes)
	}

	req := validRequest()
	req.TruckType = dd.TruckTypes[0]
	res, err := svc.BookShipment(context.Background(), req)
	if err != nil {
		t.Fatalf("BookShipment returned error: %v", err)
	}
	if res.Outcome != OutcomeAllocated {
		t.Fatalf("outcome = %q, want allocation for the dropdown's own value", res.Outcome)
	}

	// The display endpoint still formats.
	types, err := svc.TruckTypes(context.Background())
	if err != nil {
		t.Fatalf("TruckTypes returned error: %v", err)
	}
	if len(types) != 1 || types[0] != "Dry Van" {
		t.Fatalf("display truck types = %v, want [Dry Van]", types)
	}
}

func TestLaneMap(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	lm, err := svc.LaneMap(context.Background(), "L1", false)
	if err != nil {
		t.Fatalf("LaneMap returned error: %v", err)
	}
	want := "https://api.mapbox.com/directions/v5/mapbox/driving/-86.7816,36.1627;-90.049,35.1495?geometries=geojson&access_token=test-token"
	if lm.MapboxURL != want {
		t.Errorf("mapbox_url = %q, want %q", lm.MapboxURL, want)
	}
	if lm.Route != nil {
		t.Errorf("route = %v, want none without include_route", lm.Route)
	}
}

func TestLaneMapWithRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"routes":[{"geometry":{"coordinates":[[-86.78,36.16],[-90.05,35.15]]}}]}`))
	}))
	defer srv.Close()

	repo := fleetFixture()
	svc := newTestService(repo)
	svc.mapbox = maps.NewClient("test-token", maps.WithBaseURL(srv.URL))

	lm, err := svc.LaneMap(context.Background(), "L1", true)
	if err != nil {
		t.Fatalf("LaneMap returned error: %v", err)
	}
	if len(lm.Route) != 2 {
		t.Fatalf("route = %v, want 2 points", lm.Route)
	}
	if lm.Route[0] != (maps.RoutePoint{Lat: 36.16, Lon: -86.78}) {
		t.Errorf("first point = %+v", lm.Route[0])
	}
}

func TestLaneMapUnknownLane(t *testing.T) {
	svc := newTestService(fleetFixture())

	_, err := svc.LaneMap(context.Background(), "L404", false)
	if !errors.Is(err, repository.ErrLaneNotFound) {
		t.Fatalf("err = %v, want ErrLaneNotFound", err)
	}
}

func TestOriginMapCanonicalizesCity(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	om, err := svc.OriginMap(context.Background(), "  nashville ")
	if err != nil {
		t.Fatalf("OriginMap returned error: %v", err)
	}
	if om.Origin.City != "Nashville" || om.Origin.Latitude != 36.1627 {
		t.Errorf("origin = %+v, want canonical Nashville record", om.Origin)
	}
	if len(om.Destinations) != 1 || om.Destinations[0].City != "Memphis" {
		t.Errorf("destinations = %+v, want Memphis with coords", om.Destinations)
	}
}

func TestInsights(t *testing.T) {
	repo := fleetFixture()
	repo.historical = 7
	svc := newTestService(repo)

	ins, err := svc.Insights(context.Background())
	if err != nil {
		t.Fatalf("Insights returned error: %v", err)
	}
	if ins.CarrierCount != 2 || ins.TruckCount != 5 || ins.LaneCount != 1 {
		t.Errorf("counts = %+v", ins)
	}
	if ins.HistoricalCount != 7 {
		t.Errorf("historical count = %d, want 7", ins.HistoricalCount)
	}
}

func TestLaneDetailsNormalizesCities(t *testing.T) {
	repo := fleetFixture()
	svc := newTestService(repo)

	ld, err := svc.LaneDetails(context.Background(), "  nashville ", "MEMPHIS")
	if err != nil {
		t.Fatalf("LaneDetails returned error: %v", err)
	}
	if ld.LaneID != "L1" {
		t.Errorf("lane = %q, want L1", ld.LaneID)
	}
	if ld.DistanceMiles != 211.27 {
		t.Errorf("distance_miles = %v, want 211.27", ld.DistanceMiles)
	}
}
