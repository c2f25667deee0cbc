package common

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"ticketing/src/models"
	"ticketing/src/models/scopes"
	"ticketing/src/types"

	"gorm.io/gorm"
)

// CatalogService reads and maintains categories and events.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListEvents returns the events matching the filters with their category
// attached. Ordering defaults to event date ascending.
func (s *CatalogService) ListEvents(ctx context.Context, filters types.EventQueryFilters) ([]models.Event, error) {
	events := make([]models.Event, 0)
	err := s.db.WithContext(ctx).
		Model(&models.Event{}).
		Preload("Category").
		Scopes(
			scopes.TitleContains(filters.Search),
			scopes.InCategory(filters.CategoryID),
			scopes.EventDateBetween(filters.StartDate, filters.EndDate),
			scopes.WithAvailability(filters.Availability),
			scopes.OrderEvents(filters.Sort, filters.Dir),
		).
		Find(&events).
		Error
	if err != nil {
		return nil, wrapPersistence("list events", err)
	}
	return events, nil
}

func (s *CatalogService) Overview(ctx context.Context) (*types.EventsOverview, error) {
	var overview types.EventsOverview
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Event{}).Count(&overview.TotalEvents).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Category{}).Count(&overview.TotalCategories).Error; err != nil {
			return err
		}
		return tx.
			Model(&models.Event{}).
			Where("available_tickets < ?", types.LOW_TICKET_THRESHOLD).
			Count(&overview.LowTicketEvents).
			Error
	})
	if err != nil {
		return nil, wrapPersistence("events overview", err)
	}
	return &overview, nil
}

func (s *CatalogService) GetEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Preload("Category").
		Scopes(scopes.WithID(id)).
		First(&event).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil, wrapPersistence("get event", err)
	}
	return &event, nil
}

func (s *CatalogService) CreateEvent(ctx context.Context, body types.EventRequestBody) (*models.Event, error) {
	body.Title = strings.TrimSpace(body.Title)
	if err := validateInput(&body); err != nil {
		return nil, err
	}
	event := models.Event{
		Title:            body.Title,
		CategoryID:       body.CategoryID,
		EventDate:        body.EventDate.UTC(),
		TicketPrice:      roundCents(body.TicketPrice),
		AvailableTickets: body.AvailableTickets,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCategory(tx, body.CategoryID); err != nil {
			return err
		}
		return tx.Omit("Category", "Tickets").Create(&event).Error
	})
	if err != nil {
		log.Printf("Error creating event: %s\n", err.Error())
		return nil, wrapPersistence("create event", err)
	}
	return s.GetEvent(ctx, event.ID)
}

func (s *CatalogService) UpdateEvent(ctx context.Context, id uint, body types.EventRequestBody) (*models.Event, error) {
	body.Title = strings.TrimSpace(body.Title)
	if err := validateInput(&body); err != nil {
		return nil, err
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireCategory(tx, body.CategoryID); err != nil {
			return err
		}
		res := tx.
			Model(&models.Event{}).
			Scopes(scopes.WithID(id)).
			Updates(map[string]any{
				"title":             body.Title,
				"category_id":       body.CategoryID,
				"event_date":        body.EventDate.UTC(),
				"ticket_price":      roundCents(body.TicketPrice),
				"available_tickets": body.AvailableTickets,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error updating Event [%d]: %s\n", id, err.Error())
		return nil, wrapPersistence("update event", err)
	}
	return s.GetEvent(ctx, id)
}

// DeleteEvent removes an event that has never sold a ticket.
func (s *CatalogService) DeleteEvent(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sold int64
		if err := tx.Model(&models.Ticket{}).Where("event_id = ?", id).Count(&sold).Error; err != nil {
			return err
		}
		if sold > 0 {
			return ErrEventInUse
		}
		res := tx.Scopes(scopes.WithID(id)).Delete(&models.Event{})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return ErrEventInUse
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error deleting Event [%d]: %s\n", id, err.Error())
	}
	return wrapPersistence("delete event", err)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := make([]models.Category, 0)
	if err := s.db.WithContext(ctx).Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, wrapPersistence("list categories", err)
	}
	return categories, nil
}

// GetCategory returns the category with the number of events filed under it.
func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	var count int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(scopes.WithID(id)).First(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("category %d: %w", id, ErrNotFound)
			}
			return err
		}
		return tx.Model(&models.Event{}).Where("category_id = ?", id).Count(&count).Error
	})
	if err != nil {
		return nil, wrapPersistence("get category", err)
	}
	category.EventCount = &count
	return &category, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, body types.CategoryRequestBody) (*models.Category, error) {
	body.Name = strings.TrimSpace(body.Name)
	if err := validateInput(&body); err != nil {
		return nil, err
	}
	category := models.Category{
		Name:        body.Name,
		Description: strings.TrimSpace(body.Description),
	}
	if err := s.db.WithContext(ctx).Omit("Events").Create(&category).Error; err != nil {
		log.Printf("Error creating category: %s\n", err.Error())
		return nil, wrapPersistence("create category", err)
	}
	return &category, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, body types.CategoryRequestBody) (*models.Category, error) {
	body.Name = strings.TrimSpace(body.Name)
	if err := validateInput(&body); err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).
		Model(&models.Category{}).
		Scopes(scopes.WithID(id)).
		Updates(map[string]any{
			"name":        body.Name,
			"description": strings.TrimSpace(body.Description),
		})
	if res.Error != nil {
		log.Printf("Error updating Category [%d]: %s\n", id, res.Error.Error())
		return nil, wrapPersistence("update category", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("category %d: %w", id, ErrNotFound)
	}
	return s.GetCategory(ctx, id)
}

// DeleteCategory refuses to remove a category that still has events.
func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Event{}).Where("category_id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrCategoryInUse
		}
		res := tx.Scopes(scopes.WithID(id)).Delete(&models.Category{})
		if res.Error != nil {
			if errors.Is(res.Error, gorm.ErrForeignKeyViolated) {
				return ErrCategoryInUse
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("category %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		log.Printf("Error deleting Category [%d]: %s\n", id, err.Error())
	}
	return wrapPersistence("delete category", err)
}

func requireCategory(tx *gorm.DB, id uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return newValidationError("category_id", "does not exist")
	}
	return nil
}
