package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
	"bus_booking/internal/policy"
)

// TripService schedules trips and fans out their tickets.
type TripService struct {
	DB *gorm.DB
}

func NewTripService(db *gorm.DB) TripService {
	return TripService{DB: db}
}

type TripInput struct {
	Name    string
	BeginAt time.Time
	RouteID uint
	BusID   uint
}

// CreateTrip binds a route and bus at a start time and, in the same
// transaction, creates one unreserved ticket per seat of the bus. Any ticket
// failure rolls the trip back.
func (s TripService) CreateTrip(caller *models.User, in TripInput) (*models.Trip, error) {
	if err := policy.Allow(caller, policy.ResourceTrip, policy.ActionCreate); err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}
	if in.BeginAt.IsZero() {
		return nil, fmt.Errorf("%w: begin_at is required", apperr.ErrValidation)
	}

	var route models.Route
	if err := s.DB.First(&route, in.RouteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: route %d", apperr.ErrNotFound, in.RouteID)
		}
		return nil, err
	}
	var bus models.Bus
	if err := s.DB.First(&bus, in.BusID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bus %d", apperr.ErrNotFound, in.BusID)
		}
		return nil, err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	trip := models.Trip{
		Name:        in.Name,
		BeginAt:     in.BeginAt,
		RouteID:     route.ID,
		BusID:       bus.ID,
		CreatedByID: caller.ID,
	}
	if err := tx.Create(&trip).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	var seats []models.Seat
	if err := tx.Where("bus_id = ?", bus.ID).Order("number").Find(&seats).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	for _, seat := range seats {
		ticket := models.Ticket{
			SeatID:      seat.ID,
			TripID:      trip.ID,
			CreatedByID: caller.ID,
		}
		if err := tx.Create(&ticket).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	if err := s.DB.Preload("Tickets").First(&trip, trip.ID).Error; err != nil {
		return nil, err
	}
	logrus.WithFields(logrus.Fields{"trip_id": trip.ID, "tickets": len(trip.Tickets)}).Info("trip created")
	return &trip, nil
}

// ListTrips is public, so it must not carry ticket rows: reservation state
// is passenger-only data. Trips reference their tickets by id alone.
func (s TripService) ListTrips(caller *models.User) ([]models.Trip, error) {
	if err := policy.Allow(caller, policy.ResourceTrip, policy.ActionList); err != nil {
		return nil, err
	}
	var trips []models.Trip
	if err := s.DB.Find(&trips).Error; err != nil {
		return nil, err
	}
	for i := range trips {
		ids, err := s.ticketIDs(trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].TicketIDs = ids
	}
	return trips, nil
}

func (s TripService) GetTrip(caller *models.User, id uint) (*models.Trip, error) {
	if err := policy.Allow(caller, policy.ResourceTrip, policy.ActionDetail); err != nil {
		return nil, err
	}
	var trip models.Trip
	if err := s.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	ids, err := s.ticketIDs(trip.ID)
	if err != nil {
		return nil, err
	}
	trip.TicketIDs = ids
	return &trip, nil
}

func (s TripService) ticketIDs(tripID uint) ([]uint, error) {
	var ids []uint
	err := s.DB.Model(&models.Ticket{}).Where("trip_id = ?", tripID).Order("id").Pluck("id", &ids).Error
	return ids, err
}

type TripUpdate struct {
	Name    *string
	BeginAt *time.Time
}

func (s TripService) UpdateTrip(caller *models.User, id uint, in TripUpdate) (*models.Trip, error) {
	if err := policy.Allow(caller, policy.ResourceTrip, policy.ActionUpdate); err != nil {
		return nil, err
	}
	var trip models.Trip
	if err := s.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	if in.Name != nil {
		trip.Name = *in.Name
	}
	if in.BeginAt != nil {
		trip.BeginAt = *in.BeginAt
	}
	if err := s.DB.Save(&trip).Error; err != nil {
		return nil, err
	}
	return &trip, nil
}

// DeleteTrip removes a trip together with its tickets.
func (s TripService) DeleteTrip(caller *models.User, id uint) error {
	if err := policy.Allow(caller, policy.ResourceTrip, policy.ActionDelete); err != nil {
		return err
	}
	var trip models.Trip
	if err := s.DB.First(&trip, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrNotFound
		}
		return err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.Ticket{}).Error; err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Delete(&trip).Error; err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}
