package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"ticketing/src/models"
	"ticketing/src/testutil"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seed(t *testing.T) *gorm.DB {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	category := models.Category{Name: "Music"}
	require.NoError(t, db.Create(&category).Error)
	event := models.Event{Title: "Gig", CategoryID: category.ID, EventDate: time.Now().UTC(), TicketPrice: 10, AvailableTickets: 8}
	require.NoError(t, db.Omit("Category", "Tickets").Create(&event).Error)
	purchase := models.Purchase{Reference: uuid.New(), PurchaseDate: time.Now().UTC(), GuestName: "Ada", GuestEmail: "ada@example.com", TotalCost: 20}
	require.NoError(t, db.Omit("Tickets").Create(&purchase).Error)
	tickets := []models.Ticket{
		{PurchaseID: purchase.ID, EventID: event.ID, Price: 10},
		{PurchaseID: purchase.ID, EventID: event.ID, Price: 10},
	}
	require.NoError(t, db.Omit("Purchase", "Event").Create(&tickets).Error)
	return db
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func opened(db *gorm.DB) opener {
	return func() (*gorm.DB, func(), error) { return db, func() {}, nil }
}

func TestRunClearsHistory(t *testing.T) {
	db := seed(t)
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), []string{"--yes"}, &out, opened(db)))

	assert.Contains(t, out.String(), "Found 2 tickets in 1 purchases")
	assert.Contains(t, out.String(), "Deleted 2 tickets")
	assert.Contains(t, out.String(), "Deleted 1 purchases")
	assert.Zero(t, count(t, db, &models.Ticket{}))
	assert.Zero(t, count(t, db, &models.Purchase{}))
	assert.Equal(t, int64(1), count(t, db, &models.Event{}))
}

func TestRunWithoutConfirmation(t *testing.T) {
	for _, args := range [][]string{nil, {"--dry-run", "--yes"}} {
		db := seed(t)
		var out bytes.Buffer

		require.NoError(t, run(context.Background(), args, &out, opened(db)))

		assert.Contains(t, out.String(), "Found 2 tickets in 1 purchases")
		assert.NotContains(t, out.String(), "Deleted")
		assert.Equal(t, int64(2), count(t, db, &models.Ticket{}))
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	never := func() (*gorm.DB, func(), error) {
		t.Fatal("database opened")
		return nil, nil, nil
	}

	assert.Error(t, run(context.Background(), []string{"--force"}, &out, never))
	assert.Error(t, run(context.Background(), []string{"everything"}, &out, never))

	failed := errors.New("connection refused")
	err := run(context.Background(), []string{"--yes"}, &out, func() (*gorm.DB, func(), error) { return nil, nil, failed })
	assert.ErrorIs(t, err, failed)
}
