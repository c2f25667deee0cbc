package boot

import (
	"context"
	"log"
	"ticketing/src/common"
	"ticketing/src/config"
	"ticketing/src/db"
	"ticketing/src/lib/mailer"

	"gorm.io/gorm"
)

type Services struct {
	Catalog   *common.CatalogService
	Purchases *common.PurchaseService
	History   *common.HistoryService
}

// InitDb connects to the configured database and brings the schema up to
// date.
func InitDb(cfg *config.Config) (*gorm.DB, error) {
	_db, err := db.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(_db); err != nil {
		log.Printf("Error migrating database: %s\n", err.Error())
		return nil, err
	}
	return _db, nil
}

func InitNotifier(ctx context.Context, cfg *config.Config) (mailer.Notifier, error) {
	n, err := mailer.NewNotifier(ctx, cfg.Mail)
	if err != nil {
		log.Printf("Error initializing %s notifier: %s\n", cfg.Mail.Provider, err.Error())
		return nil, err
	}
	log.Printf("Using %s notifier\n", cfg.Mail.Provider)
	return n, nil
}

func InitServices(_db *gorm.DB, notifier mailer.Notifier, cfg *config.Config) *Services {
	return &Services{
		Catalog:   common.NewCatalogService(_db),
		Purchases: common.NewPurchaseService(_db, notifier, common.WithMailTimeout(cfg.Mail.Timeout)),
		History:   common.NewHistoryService(_db),
	}
}
