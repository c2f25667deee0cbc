package common

import (
	"context"
	"errors"
	"sync"
	"testing"
	"ticketing/src/models"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (n *recordingNotifier) Send(ctx context.Context, to, subject, htmlBody string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return n.err
}

func (n *recordingNotifier) Sent() []sentMail {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]sentMail(nil), n.sent...)
}

var errSMTPDown = errors.New("smtp: connection refused")

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedEvent(t *testing.T, db *gorm.DB, category *models.Category, title string, date time.Time, price float64, available int) *models.Event {
	t.Helper()
	event := &models.Event{
		Title:            title,
		CategoryID:       category.ID,
		EventDate:        date.UTC(),
		TicketPrice:      price,
		AvailableTickets: available,
	}
	require.NoError(t, db.Omit("Category", "Tickets").Create(event).Error)
	return event
}

func reloadEvent(t *testing.T, db *gorm.DB, id uint) models.Event {
	t.Helper()
	var event models.Event
	require.NoError(t, db.Where("id = ?", id).First(&event).Error)
	return event
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
