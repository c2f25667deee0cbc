package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"ticketing/src/db"
	"ticketing/src/lib/mailer"
	"ticketing/src/models"
	"ticketing/src/models/scopes"
	"ticketing/src/types"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const ticketBatchSize = 100

type PurchaseService struct {
	db          *gorm.DB
	notifier    mailer.Notifier
	now         func() time.Time
	mailTimeout time.Duration
}

type PurchaseOption func(*PurchaseService)

func WithClock(now func() time.Time) PurchaseOption {
	return func(s *PurchaseService) {
		s.now = now
	}
}

func WithMailTimeout(d time.Duration) PurchaseOption {
	return func(s *PurchaseService) {
		s.mailTimeout = d
	}
}

// NewPurchaseService wires the purchase flow. A nil notifier disables
// confirmation emails.
func NewPurchaseService(db *gorm.DB, notifier mailer.Notifier, opts ...PurchaseOption) *PurchaseService {
	s := &PurchaseService{
		db:          db,
		notifier:    notifier,
		now:         time.Now,
		mailTimeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PurchaseQuote returns what a guest needs to see before buying.
func (s *PurchaseService) PurchaseQuote(ctx context.Context, eventID uint) (*types.PurchaseQuote, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Scopes(scopes.WithID(eventID)).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", eventID, ErrNotFound)
		}
		return nil, wrapPersistence("load event", err)
	}
	return &types.PurchaseQuote{
		EventID:          event.ID,
		EventTitle:       event.Title,
		AvailableTickets: event.AvailableTickets,
		TicketPrice:      event.TicketPrice,
	}, nil
}

// PurchaseTickets issues quantity tickets for the event to the guest. The
// availability check, the decrement and the inserts commit together or not
// at all.
func (s *PurchaseService) PurchaseTickets(ctx context.Context, eventID uint, body types.PurchaseRequestBody) (*models.Purchase, error) {
	body.GuestName = strings.TrimSpace(body.GuestName)
	body.GuestEmail = strings.TrimSpace(body.GuestEmail)
	if err := validateInput(&body); err != nil {
		return nil, err
	}

	var event models.Event
	var purchase models.Purchase
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx
		if db.SupportsRowLocks(tx) {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.Scopes(scopes.WithID(eventID)).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("event %d: %w", eventID, ErrNotFound)
			}
			return err
		}
		if body.Quantity > event.AvailableTickets {
			return ErrInsufficientAvailability
		}

		res := tx.
			Model(&models.Event{}).
			Where("id = ? AND available_tickets >= ?", event.ID, body.Quantity).
			UpdateColumn("available_tickets", gorm.Expr("available_tickets - ?", body.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientAvailability
		}

		purchase = models.Purchase{
			Reference:    uuid.New(),
			PurchaseDate: s.now().UTC(),
			GuestName:    body.GuestName,
			GuestEmail:   body.GuestEmail,
			TotalCost:    roundCents(float64(body.Quantity) * event.TicketPrice),
		}
		if err := tx.Omit(clause.Associations).Create(&purchase).Error; err != nil {
			return err
		}
		tickets := make([]models.Ticket, body.Quantity)
		for i := range tickets {
			tickets[i] = models.Ticket{
				PurchaseID: purchase.ID,
				EventID:    event.ID,
				Price:      event.TicketPrice,
			}
		}
		if err := tx.Omit(clause.Associations).CreateInBatches(&tickets, ticketBatchSize).Error; err != nil {
			return err
		}
		purchase.Tickets = tickets
		return nil
	})
	if err != nil {
		log.Printf("Purchase of %d ticket(s) for Event [%d] failed: %s\n", body.Quantity, eventID, err.Error())
		return nil, wrapPersistence("purchase tickets", err)
	}
	event.AvailableTickets -= body.Quantity
	log.Printf("Purchase [%d] created: event=%d qty=%d total=%.2f left=%d\n", purchase.ID, event.ID, body.Quantity, purchase.TotalCost, event.AvailableTickets)

	s.sendConfirmation(ctx, &purchase, &event)
	return &purchase, nil
}

// sendConfirmation runs after commit. Delivery failures are only logged.
func (s *PurchaseService) sendConfirmation(ctx context.Context, purchase *models.Purchase, event *models.Event) {
	if s.notifier == nil {
		return
	}
	subject, body, err := renderConfirmation(purchase, event)
	if err != nil {
		log.Printf("Could not render confirmation for Purchase [%d]: %s\n", purchase.ID, err.Error())
		return
	}
	mctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mailTimeout)
	defer cancel()
	if err := s.notifier.Send(mctx, purchase.GuestEmail, subject, body); err != nil {
		log.Printf("Could not send confirmation for Purchase [%d] to [%s]: %s\n", purchase.ID, purchase.GuestEmail, err.Error())
	}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
