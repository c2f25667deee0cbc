package common

import (
	"context"
	"testing"
	"ticketing/src/models"
	"ticketing/src/testutil"
	"ticketing/src/types"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type CatalogSuite struct {
	suite.Suite
	db      *gorm.DB
	svc     *CatalogService
	ctx     context.Context
	music   *models.Category
	theatre *models.Category
	jazz    *models.Event
	rock    *models.Event
	hamlet  *models.Event
	opera   *models.Event
}

func day(month time.Month, d int) time.Time {
	return time.Date(2026, month, d, 19, 0, 0, 0, time.UTC)
}

func (s *CatalogSuite) SetupTest() {
	t := s.T()
	s.db = testutil.NewSQLiteDB(t)
	s.svc = NewCatalogService(s.db)
	s.ctx = context.Background()

	s.music = seedCategory(t, s.db, "Music")
	s.theatre = seedCategory(t, s.db, "Theatre")
	s.jazz = seedEvent(t, s.db, s.music, "Jazz Night", day(time.May, 2), 30, 50)
	s.rock = seedEvent(t, s.db, s.music, "Rock Fest", day(time.June, 20), 80, 3)
	s.hamlet = seedEvent(t, s.db, s.theatre, "Hamlet", day(time.May, 15), 45, 0)
	s.opera = seedEvent(t, s.db, s.theatre, "Night at the Opera", day(time.July, 1), 120, 4)
}

func titles(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Title)
	}
	return out
}

func (s *CatalogSuite) list(filters types.EventQueryFilters) []string {
	events, err := s.svc.ListEvents(s.ctx, filters)
	s.Require().NoError(err)
	return titles(events)
}

func (s *CatalogSuite) TestListEventsDefaultOrder() {
	events, err := s.svc.ListEvents(s.ctx, types.EventQueryFilters{})
	s.Require().NoError(err)
	s.Equal([]string{"Jazz Night", "Hamlet", "Rock Fest", "Night at the Opera"}, titles(events))
	s.Require().NotNil(events[0].Category)
	s.Equal("Music", events[0].Category.Name)
}

func (s *CatalogSuite) TestListEventsSearch() {
	s.Equal([]string{"Jazz Night", "Night at the Opera"}, s.list(types.EventQueryFilters{Search: "NIGHT"}))
	s.Empty(s.list(types.EventQueryFilters{Search: "ballet"}))
}

func (s *CatalogSuite) TestListEventsSearchIsLiteral() {
	seedEvent(s.T(), s.db, s.music, "100% Jazz_Club", day(time.August, 1), 10, 10)

	s.Equal([]string{"100% Jazz_Club"}, s.list(types.EventQueryFilters{Search: "%"}))
	s.Equal([]string{"100% Jazz_Club"}, s.list(types.EventQueryFilters{Search: "_"}))
	s.Equal([]string{"100% Jazz_Club"}, s.list(types.EventQueryFilters{Search: "0% j"}))
	s.Empty(s.list(types.EventQueryFilters{Search: `\`}))
	s.Empty(s.list(types.EventQueryFilters{Search: "jazz%night"}))
}

func (s *CatalogSuite) TestListEventsAvailabilityField() {
	events, err := s.svc.ListEvents(s.ctx, types.EventQueryFilters{})
	s.Require().NoError(err)
	byTitle := map[string]types.Availability{}
	for _, e := range events {
		byTitle[e.Title] = e.Status
	}
	s.Equal(types.AVAILABILITY_AVAILABLE, byTitle["Jazz Night"])
	s.Equal(types.AVAILABILITY_LOW, byTitle["Rock Fest"])
	s.Equal(types.AVAILABILITY_SOLDOUT, byTitle["Hamlet"])
}

func (s *CatalogSuite) TestListEventsCategory() {
	id := s.theatre.ID
	s.Equal([]string{"Hamlet", "Night at the Opera"}, s.list(types.EventQueryFilters{CategoryID: &id}))
}

func (s *CatalogSuite) TestListEventsDateRange() {
	start := time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.June, 20, 0, 0, 0, 0, time.UTC)
	s.Equal([]string{"Hamlet", "Rock Fest"}, s.list(types.EventQueryFilters{StartDate: &start, EndDate: &end}))
}

func (s *CatalogSuite) TestListEventsAvailability() {
	s.Equal([]string{"Jazz Night", "Rock Fest", "Night at the Opera"}, s.list(types.EventQueryFilters{Availability: "available"}))
	s.Equal([]string{"Rock Fest", "Night at the Opera"}, s.list(types.EventQueryFilters{Availability: "Low"}))
	s.Equal([]string{"Hamlet"}, s.list(types.EventQueryFilters{Availability: "soldout"}))
	s.Len(s.list(types.EventQueryFilters{Availability: "plenty"}), 4)
}

func (s *CatalogSuite) TestListEventsSorting() {
	s.Equal([]string{"Night at the Opera", "Rock Fest", "Hamlet", "Jazz Night"}, s.list(types.EventQueryFilters{Sort: "price", Dir: "desc"}))
	s.Equal([]string{"Hamlet", "Jazz Night", "Night at the Opera", "Rock Fest"}, s.list(types.EventQueryFilters{Sort: "title"}))
	s.Equal([]string{"Night at the Opera", "Rock Fest", "Hamlet", "Jazz Night"}, s.list(types.EventQueryFilters{Sort: "date", Dir: "desc"}))
}

func (s *CatalogSuite) TestListEventsCombinedFilters() {
	id := s.music.ID
	s.Equal([]string{"Rock Fest"}, s.list(types.EventQueryFilters{CategoryID: &id, Availability: "low"}))
}

func (s *CatalogSuite) TestOverview() {
	overview, err := s.svc.Overview(s.ctx)
	s.Require().NoError(err)
	s.Equal(types.EventsOverview{TotalEvents: 4, TotalCategories: 2, LowTicketEvents: 3}, *overview)
}

func (s *CatalogSuite) TestCategoryLifecycle() {
	created, err := s.svc.CreateCategory(s.ctx, types.CategoryRequestBody{Name: "  Comedy ", Description: "Stand-up"})
	s.Require().NoError(err)
	s.Equal("Comedy", created.Name)

	updated, err := s.svc.UpdateCategory(s.ctx, created.ID, types.CategoryRequestBody{Name: "Comedy Club"})
	s.Require().NoError(err)
	s.Equal("Comedy Club", updated.Name)
	s.Empty(updated.Description)
	s.Require().NotNil(updated.EventCount)
	s.Zero(*updated.EventCount)

	s.NoError(s.svc.DeleteCategory(s.ctx, created.ID))
	_, err = s.svc.GetCategory(s.ctx, created.ID)
	s.ErrorIs(err, ErrNotFound)
	s.ErrorIs(s.svc.DeleteCategory(s.ctx, created.ID), ErrNotFound)
}

func (s *CatalogSuite) TestCategoryValidation() {
	_, err := s.svc.CreateCategory(s.ctx, types.CategoryRequestBody{Name: " "})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "name")

	_, err = s.svc.UpdateCategory(s.ctx, 999, types.CategoryRequestBody{Name: "Ghost"})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CatalogSuite) TestGetCategoryCountsEvents() {
	category, err := s.svc.GetCategory(s.ctx, s.music.ID)
	s.Require().NoError(err)
	s.Require().NotNil(category.EventCount)
	s.Equal(int64(2), *category.EventCount)
}

func (s *CatalogSuite) TestDeleteCategoryInUse() {
	err := s.svc.DeleteCategory(s.ctx, s.music.ID)
	s.ErrorIs(err, ErrCategoryInUse)
	s.Equal(int64(2), countRows(s.T(), s.db, &models.Category{}))
	s.Equal(int64(4), countRows(s.T(), s.db, &models.Event{}))
}

func (s *CatalogSuite) TestEventLifecycle() {
	local := time.Date(2026, time.August, 8, 20, 0, 0, 0, time.FixedZone("CEST", 2*3600))
	created, err := s.svc.CreateEvent(s.ctx, types.EventRequestBody{
		Title:            "Quartet",
		CategoryID:       s.music.ID,
		EventDate:        local,
		TicketPrice:      19.999,
		AvailableTickets: 40,
	})
	s.Require().NoError(err)
	s.Equal(20.0, created.TicketPrice)
	s.True(created.EventDate.Equal(local))
	s.Require().NotNil(created.Category)
	s.Equal("Music", created.Category.Name)

	updated, err := s.svc.UpdateEvent(s.ctx, created.ID, types.EventRequestBody{
		Title:            "Quartet",
		CategoryID:       s.theatre.ID,
		EventDate:        local,
		TicketPrice:      25,
		AvailableTickets: 0,
	})
	s.Require().NoError(err)
	s.Equal(s.theatre.ID, updated.CategoryID)
	s.Equal(0, updated.AvailableTickets)
	s.Equal(types.AVAILABILITY_SOLDOUT, updated.Availability())

	s.NoError(s.svc.DeleteEvent(s.ctx, created.ID))
	_, err = s.svc.GetEvent(s.ctx, created.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *CatalogSuite) TestEventValidation() {
	_, err := s.svc.CreateEvent(s.ctx, types.EventRequestBody{
		Title:            "",
		CategoryID:       s.music.ID,
		TicketPrice:      0,
		AvailableTickets: -1,
	})
	var verr *ValidationError
	s.Require().ErrorAs(err, &verr)
	s.Contains(verr.Fields, "title")
	s.Contains(verr.Fields, "event_date")
	s.Contains(verr.Fields, "ticket_price")
	s.Contains(verr.Fields, "available_tickets")

	_, err = s.svc.CreateEvent(s.ctx, types.EventRequestBody{
		Title:       "Orphan",
		CategoryID:  999,
		EventDate:   day(time.May, 1),
		TicketPrice: 10,
	})
	s.Require().ErrorAs(err, &verr)
	s.Equal("does not exist", verr.Fields["category_id"])

	_, err = s.svc.UpdateEvent(s.ctx, 999, types.EventRequestBody{
		Title:       "Ghost",
		CategoryID:  s.music.ID,
		EventDate:   day(time.May, 1),
		TicketPrice: 10,
	})
	s.ErrorIs(err, ErrNotFound)
}

func (s *CatalogSuite) TestDeleteEventWithTickets() {
	_, err := NewPurchaseService(s.db, nil).PurchaseTickets(s.ctx, s.jazz.ID, guest(1))
	s.Require().NoError(err)

	s.ErrorIs(s.svc.DeleteEvent(s.ctx, s.jazz.ID), ErrEventInUse)
	s.ErrorIs(s.svc.DeleteEvent(s.ctx, 999), ErrNotFound)
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func TestDeleteCategoryForeignKeyBackstop(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	music := seedCategory(t, db, "Music")
	seedEvent(t, db, music, "Gig", day(time.May, 1), 10, 1)

	err := db.Delete(&models.Category{}, music.ID).Error
	assert.Error(t, err)
	require.Equal(t, int64(1), countRows(t, db, &models.Category{}))
}
