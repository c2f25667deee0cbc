package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"ticketing/src/models"
	"ticketing/src/models/scopes"
	"ticketing/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HistoryService exposes past purchases and the administrative reset.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// ListPurchases returns every purchase, newest first, with its tickets and
// their events.
func (s *HistoryService) ListPurchases(ctx context.Context) ([]models.Purchase, error) {
	purchases := make([]models.Purchase, 0)
	err := s.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("tickets.id asc")
		}).
		Preload("Tickets.Event").
		Order("purchase_date desc").
		Order("id desc").
		Find(&purchases).
		Error
	if err != nil {
		return nil, wrapPersistence("list purchases", err)
	}
	return purchases, nil
}

func (s *HistoryService) GetPurchase(ctx context.Context, id uint) (*models.Purchase, error) {
	purchase, err := s.findPurchase(ctx, scopes.WithID(id))
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("purchase %d: %w", id, err)
	}
	return purchase, err
}

// GetPurchaseByReference looks a purchase up by the confirmation code handed
// to the guest.
func (s *HistoryService) GetPurchaseByReference(ctx context.Context, reference uuid.UUID) (*models.Purchase, error) {
	purchase, err := s.findPurchase(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("reference = ?", reference)
	})
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("purchase %s: %w", reference, err)
	}
	return purchase, err
}

func (s *HistoryService) findPurchase(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (*models.Purchase, error) {
	var purchase models.Purchase
	err := s.db.WithContext(ctx).
		Preload("Tickets", func(db *gorm.DB) *gorm.DB {
			return db.Order("tickets.id asc")
		}).
		Preload("Tickets.Event").
		Scopes(scope).
		First(&purchase).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, wrapPersistence("get purchase", err)
	}
	return &purchase, nil
}

// CountHistory reports how many rows ClearHistory would remove.
func (s *HistoryService) CountHistory(ctx context.Context) (*types.ClearHistoryResult, error) {
	var result types.ClearHistoryResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Ticket{}).Count(&result.Tickets).Error; err != nil {
			return err
		}
		return tx.Model(&models.Purchase{}).Count(&result.Purchases).Error
	})
	if err != nil {
		return nil, wrapPersistence("count history", err)
	}
	return &result, nil
}

// ClearHistory deletes every ticket and purchase in one transaction. Events
// and categories are left alone and available ticket counts are not restored.
func (s *HistoryService) ClearHistory(ctx context.Context) (*types.ClearHistoryResult, error) {
	var result types.ClearHistoryResult
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx = tx.Session(&gorm.Session{AllowGlobalUpdate: true})
		res := tx.Delete(&models.Ticket{})
		if res.Error != nil {
			return res.Error
		}
		result.Tickets = res.RowsAffected
		res = tx.Delete(&models.Purchase{})
		if res.Error != nil {
			return res.Error
		}
		result.Purchases = res.RowsAffected
		return nil
	})
	if err != nil {
		log.Printf("Error clearing purchase history: %s\n", err.Error())
		return nil, wrapPersistence("clear history", err)
	}
	log.Printf("Purchase history cleared: %d ticket(s), %d purchase(s)\n", result.Tickets, result.Purchases)
	return &result, nil
}
