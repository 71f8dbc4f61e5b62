package services

import (
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"bus_booking/internal/apperr"
	"bus_booking/internal/models"
	"bus_booking/internal/policy"
)

// TicketService exposes the read side of tickets and the single mutation the
// system permits on them: the one-shot reserve transition.
type TicketService struct {
	DB *gorm.DB
}

func NewTicketService(db *gorm.DB) TicketService {
	return TicketService{DB: db}
}

func (s TicketService) ListTickets(caller *models.User) ([]models.Ticket, error) {
	if err := policy.Allow(caller, policy.ResourceTicket, policy.ActionList); err != nil {
		return nil, err
	}
	var tickets []models.Ticket
	if err := s.DB.Find(&tickets).Error; err != nil {
		return nil, err
	}
	return tickets, nil
}

func (s TicketService) GetTicket(caller *models.User, id uint) (*models.Ticket, error) {
	if err := policy.Allow(caller, policy.ResourceTicket, policy.ActionDetail); err != nil {
		return nil, err
	}
	var ticket models.Ticket
	if err := s.DB.First(&ticket, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// Reserve moves a ticket from unreserved to reserved-by-caller. The claim is
// a guarded update keyed on passenger_id still being NULL: under concurrent
// claims the row count decides the single winner, every loser (and every
// later caller, the winner included) gets ErrAlreadyReserved. Seat, trip and
// creator references are never touched.
func (s TicketService) Reserve(caller *models.User, id uint) (*models.Ticket, error) {
	if err := policy.Allow(caller, policy.ResourceTicket, policy.ActionUpdate); err != nil {
		return nil, err
	}

	tx := s.DB.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}

	res := tx.Model(&models.Ticket{}).
		Where("id = ? AND passenger_id IS NULL", id).
		Updates(map[string]interface{}{
			"reserved":     true,
			"passenger_id": caller.ID,
		})
	if res.Error != nil {
		tx.Rollback()
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Zero rows means either the ticket does not exist or someone
		// already holds it; a re-read tells the two apart.
		var existing models.Ticket
		err := tx.First(&existing, id).Error
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, apperr.ErrAlreadyReserved
	}

	var ticket models.Ticket
	if err := tx.First(&ticket, id).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"ticket_id": ticket.ID, "passenger_id": caller.ID}).Info("ticket reserved")
	return &ticket, nil
}
