package services

import (
	"errors"
	"sync"
	"testing"

	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
)

// seedTrip creates a route, bus and trip and returns the trip with its
// freshly fanned-out tickets.
func seedTrip(t *testing.T, fleet FleetService, trips TripService, admin *models.User) *models.Trip {
	t.Helper()
	route, err := fleet.CreateRoute(admin, RouteInput{Name: "r", Origin: "a", Destination: "b"})
	if err != nil {
		t.Fatalf("create route: %v", err)
	}
	bus, err := fleet.CreateBus(admin, BusInput{NumPlate: "ABC-123"})
	if err != nil {
		t.Fatalf("create bus: %v", err)
	}
	trip, err := trips.CreateTrip(admin, TripInput{Name: "t", BeginAt: beginAt(), RouteID: route.ID, BusID: bus.ID})
	if err != nil {
		t.Fatalf("create trip: %v", err)
	}
	return trip
}

func TestReserveTicket(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	p1 := createUser(t, db, "passenger1", models.RolePassenger)
	p2 := createUser(t, db, "passenger2", models.RolePassenger)

	trip := seedTrip(t, fleet, trips, admin)
	target := trip.Tickets[2]

	reserved, err := tickets.Reserve(p1, target.ID)
	if err != nil {
		t.Fatalf("first reserve: %v", err)
	}
	if !reserved.Reserved {
		t.Error("ticket not flagged reserved")
	}
	if reserved.PassengerID == nil || *reserved.PassengerID != p1.ID {
		t.Errorf("ticket passenger = %v, want %d", reserved.PassengerID, p1.ID)
	}
	if reserved.SeatID != target.SeatID || reserved.TripID != target.TripID {
		t.Error("structural refs changed by reservation")
	}

	// A second passenger is rejected and the ticket is untouched.
	if _, err := tickets.Reserve(p2, target.ID); !errors.Is(err, apperr.ErrAlreadyReserved) {
		t.Fatalf("second reserve: err = %v, want ErrAlreadyReserved", err)
	}
	var after models.Ticket
	if err := db.First(&after, target.ID).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if after.PassengerID == nil || *after.PassengerID != p1.ID {
		t.Errorf("ticket owner changed to %v, want %d", after.PassengerID, p1.ID)
	}
}

func TestReserveIsMonotonic(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	p1 := createUser(t, db, "passenger1", models.RolePassenger)

	trip := seedTrip(t, fleet, trips, admin)
	target := trip.Tickets[0]

	if _, err := tickets.Reserve(p1, target.ID); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	// Even the reserving passenger cannot claim again.
	if _, err := tickets.Reserve(p1, target.ID); !errors.Is(err, apperr.ErrAlreadyReserved) {
		t.Fatalf("re-reserve by owner: err = %v, want ErrAlreadyReserved", err)
	}
}

func TestReserveRace(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	p1 := createUser(t, db, "passenger1", models.RolePassenger)
	p2 := createUser(t, db, "passenger2", models.RolePassenger)

	trip := seedTrip(t, fleet, trips, admin)
	target := trip.Tickets[0]

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, p := range []*models.User{p1, p2} {
		wg.Add(1)
		go func(slot int, caller *models.User) {
			defer wg.Done()
			_, results[slot] = tickets.Reserve(caller, target.ID)
		}(i, p)
	}
	wg.Wait()

	var wins, losses int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, apperr.ErrAlreadyReserved):
			losses++
		default:
			t.Fatalf("unexpected error under race: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("wins = %d, losses = %d; want exactly one of each", wins, losses)
	}

	var after models.Ticket
	if err := db.First(&after, target.ID).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if !after.Reserved || after.PassengerID == nil {
		t.Fatal("ticket not reserved after race")
	}
	if *after.PassengerID != p1.ID && *after.PassengerID != p2.ID {
		t.Errorf("ticket owned by stranger %d", *after.PassengerID)
	}
}

func TestReservePolicy(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	driver := createUser(t, db, "driver1", models.RoleDriver)

	trip := seedTrip(t, fleet, trips, admin)
	target := trip.Tickets[0]

	if _, err := tickets.Reserve(admin, target.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("admin reserve: err = %v, want ErrForbidden", err)
	}
	if _, err := tickets.Reserve(driver, target.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("driver reserve: err = %v, want ErrForbidden", err)
	}
	if _, err := tickets.Reserve(nil, target.ID); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("anonymous reserve: err = %v, want ErrUnauthenticated", err)
	}
}

func TestReserveMissingTicket(t *testing.T) {
	db := openTestDB(t)
	tickets := NewTicketService(db)
	p1 := createUser(t, db, "passenger1", models.RolePassenger)

	if _, err := tickets.Reserve(p1, 9999); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("reserve missing ticket: err = %v, want ErrNotFound", err)
	}
}

func TestReserveDeletedTicket(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	p1 := createUser(t, db, "passenger1", models.RolePassenger)

	trip := seedTrip(t, fleet, trips, admin)
	target := trip.Tickets[0]

	if err := db.Delete(&models.Ticket{}, target.ID).Error; err != nil {
		t.Fatalf("delete ticket: %v", err)
	}

	// A ticket that is gone reads as missing, not as taken.
	if _, err := tickets.Reserve(p1, target.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("reserve deleted ticket: err = %v, want ErrNotFound", err)
	}
}

func TestTicketReadPolicy(t *testing.T) {
	db := openTestDB(t)
	fleet := NewFleetService(db)
	trips := NewTripService(db)
	tickets := NewTicketService(db)
	admin := createUser(t, db, "admin1", models.RoleAdmin)
	driver := createUser(t, db, "driver1", models.RoleDriver)
	passenger := createUser(t, db, "passenger1", models.RolePassenger)

	trip := seedTrip(t, fleet, trips, admin)

	listed, err := tickets.ListTickets(passenger)
	if err != nil {
		t.Fatalf("passenger list tickets: %v", err)
	}
	if len(listed) != models.SeatsPerBus {
		t.Errorf("passenger sees %d tickets, want %d", len(listed), models.SeatsPerBus)
	}

	// Admins and drivers are denied outright, not given empty lists.
	if _, err := tickets.ListTickets(admin); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("admin list tickets: err = %v, want ErrForbidden", err)
	}
	if _, err := tickets.ListTickets(driver); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("driver list tickets: err = %v, want ErrForbidden", err)
	}
	if _, err := tickets.ListTickets(nil); !errors.Is(err, apperr.ErrUnauthenticated) {
		t.Errorf("anonymous list tickets: err = %v, want ErrUnauthenticated", err)
	}

	if _, err := tickets.GetTicket(passenger, trip.Tickets[0].ID); err != nil {
		t.Errorf("passenger ticket detail: %v", err)
	}
	if _, err := tickets.GetTicket(admin, trip.Tickets[0].ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("admin ticket detail: err = %v, want ErrForbidden", err)
	}
}
