package services

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
	"bus_booking/internal/policy"
)

// FleetService owns the admin-managed reference data: routes, buses and the
// seat inventory that bus creation fans out.
type FleetService struct {
	DB *gorm.DB
}

func NewFleetService(db *gorm.DB) FleetService {
	return FleetService{DB: db}
}

type RouteInput struct {
	Name        string
	Origin      string
	Destination string
}

func (s FleetService) CreateRoute(caller *models.User, in RouteInput) (*models.Route, error) {
	if err := policy.Allow(caller, policy.ResourceRoute, policy.ActionCreate); err != nil {
		return nil, err
	}
	if in.Name == "" || in.Origin == "" || in.Destination == "" {
		return nil, fmt.Errorf("%w: name, origin and destination are required", apperr.ErrValidation)
	}

	route := models.Route{
		Name:        in.Name,
		Origin:      in.Origin,
		Destination: in.Destination,
		CreatedByID: caller.ID,
	}
	if err := s.DB.Create(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

func (s FleetService) ListRoutes(caller *models.User) ([]models.Route, error) {
	if err := policy.Allow(caller, policy.ResourceRoute, policy.ActionList); err != nil {
		return nil, err
	}
	var routes []models.Route
	if err := s.DB.Find(&routes).Error; err != nil {
		return nil, err
	}
	return routes, nil
}

func (s FleetService) GetRoute(caller *models.User, id uint) (*models.Route, error) {
	if err := policy.Allow(caller, policy.ResourceRoute, policy.ActionDetail); err != nil {
		return nil, err
	}
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &route, nil
}

type RouteUpdate struct {
	Name        *string
	Origin      *string
	Destination *string
}

func (s FleetService) UpdateRoute(caller *models.User, id uint, in RouteUpdate) (*models.Route, error) {
	if err := policy.Allow(caller, policy.ResourceRoute, policy.ActionUpdate); err != nil {
		return nil, err
	}
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		route.Name = *in.Name
	}
	if in.Origin != nil {
		route.Origin = *in.Origin
	}
	if in.Destination != nil {
		route.Destination = *in.Destination
	}
	if err := s.DB.Save(&route).Error; err != nil {
		return nil, err
	}
	return &route, nil
}

// DeleteRoute removes a route together with every trip scheduled on it and
// those trips' tickets.
func (s FleetService) DeleteRoute(caller *models.User, id uint) error {
	if err := policy.Allow(caller, policy.ResourceRoute, policy.ActionDelete); err != nil {
		return err
	}
	var route models.Route
	if err := s.DB.First(&route, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := deleteTripsWhere(tx, "route_id = ?", route.ID); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&route).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// deleteTripsWhere removes the matching trips and their tickets inside the
// caller's transaction.
func deleteTripsWhere(tx *gorm.DB, query string, arg interface{}) error {
	var tripIDs []uint
	if err := tx.Model(&models.Trip{}).Where(query, arg).Pluck("id", &tripIDs).Error; err != nil {
		return err
	}
	if len(tripIDs) == 0 {
		return nil
	}
	if err := tx.Where("trip_id IN ?", tripIDs).Delete(&models.Ticket{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", tripIDs).Delete(&models.Trip{}).Error
}

type BusInput struct {
	NumPlate string
	DriverID *uint
}

// CreateBus creates a bus plus its full seat inventory in one transaction:
// a failure on any seat rolls the bus back too.
func (s FleetService) CreateBus(caller *models.User, in BusInput) (*models.Bus, error) {
	if err := policy.Allow(caller, policy.ResourceBus, policy.ActionCreate); err != nil {
		return nil, err
	}
	if in.NumPlate == "" {
		return nil, fmt.Errorf("%w: num_plate is required", apperr.ErrValidation)
	}
	if err := s.checkDriverRef(s.DB, in.DriverID, 0); err != nil {
		return nil, err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	bus := models.Bus{
		NumPlate:    in.NumPlate,
		DriverID:    in.DriverID,
		CreatedByID: caller.ID,
	}
	if err := tx.Create(&bus).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	for number := 1; number <= models.SeatsPerBus; number++ {
		seat := models.Seat{
			Number:      number,
			BusID:       bus.ID,
			CreatedByID: caller.ID,
		}
		if err := tx.Create(&seat).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Seats").First(&bus, bus.ID).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"bus_id": bus.ID, "seats": len(bus.Seats)}).Info("bus created")
	return &bus, nil
}

func (s FleetService) ListBuses(caller *models.User) ([]models.Bus, error) {
	if err := policy.Allow(caller, policy.ResourceBus, policy.ActionList); err != nil {
		return nil, err
	}
	var buses []models.Bus
	if err := s.DB.Preload("Seats").Find(&buses).Error; err != nil {
		return nil, err
	}
	return buses, nil
}

func (s FleetService) GetBus(caller *models.User, id uint) (*models.Bus, error) {
	if err := policy.Allow(caller, policy.ResourceBus, policy.ActionDetail); err != nil {
		return nil, err
	}
	var bus models.Bus
	if err := s.DB.Preload("Seats").First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &bus, nil
}

type BusUpdate struct {
	NumPlate *string
	DriverID *uint
}

func (s FleetService) UpdateBus(caller *models.User, id uint, in BusUpdate) (*models.Bus, error) {
	if err := policy.Allow(caller, policy.ResourceBus, policy.ActionUpdate); err != nil {
		return nil, err
	}
	var bus models.Bus
	if err := s.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if in.NumPlate != nil {
		bus.NumPlate = *in.NumPlate
	}
	if in.DriverID != nil {
		if err := s.checkDriverRef(s.DB, in.DriverID, bus.ID); err != nil {
			return nil, err
		}
		bus.DriverID = in.DriverID
	}
	if err := s.DB.Save(&bus).Error; err != nil {
		return nil, err
	}
	return &bus, nil
}

// DeleteBus removes a bus along with its seats, the trips scheduled on it
// and every ticket hanging off either.
func (s FleetService) DeleteBus(caller *models.User, id uint) error {
	if err := policy.Allow(caller, policy.ResourceBus, policy.ActionDelete); err != nil {
		return err
	}
	var bus models.Bus
	if err := s.DB.First(&bus, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := deleteTripsWhere(tx, "bus_id = ?", bus.ID); err != nil {
		tx.Rollback()
		return err
	}

	var seatIDs []uint
	if err := tx.Model(&models.Seat{}).Where("bus_id = ?", bus.ID).Pluck("id", &seatIDs).Error; err != nil {
		tx.Rollback()
		return err
	}
	if len(seatIDs) > 0 {
		if err := tx.Where("seat_id IN ?", seatIDs).Delete(&models.Ticket{}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Where("bus_id = ?", bus.ID).Delete(&models.Seat{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&bus).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ListSeats is passenger-only by policy; seats are never writable through
// the API.
func (s FleetService) ListSeats(caller *models.User) ([]models.Seat, error) {
	if err := policy.Allow(caller, policy.ResourceSeat, policy.ActionList); err != nil {
		return nil, err
	}
	var seats []models.Seat
	if err := s.DB.Find(&seats).Error; err != nil {
		return nil, err
	}
	return seats, nil
}

func (s FleetService) GetSeat(caller *models.User, id uint) (*models.Seat, error) {
	if err := policy.Allow(caller, policy.ResourceSeat, policy.ActionDetail); err != nil {
		return nil, err
	}
	var seat models.Seat
	if err := s.DB.First(&seat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &seat, nil
}

// checkDriverRef validates that an optional driver reference names an
// existing account holding the driver role and that the driver is not
// already assigned to another bus. excludeBusID lets an update keep its
// own driver; pass 0 on create.
func (s FleetService) checkDriverRef(db *gorm.DB, driverID *uint, excludeBusID uint) error {
	if driverID == nil {
		return nil
	}
	var driver models.User
	if err := db.First(&driver, *driverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: driver %d does not exist", apperr.ErrValidation, *driverID)
		}
		return err
	}
	if driver.Role != models.RoleDriver {
		return fmt.Errorf("%w: user %d does not hold the driver role", apperr.ErrValidation, *driverID)
	}
	var taken int64
	if err := db.Model(&models.Bus{}).
		Where("driver_id = ? AND id <> ?", *driverID, excludeBusID).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return fmt.Errorf("%w: driver %d is already assigned to a bus", apperr.ErrValidation, *driverID)
	}
	return nil
}
