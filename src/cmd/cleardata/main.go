// cleardata removes every purchase and ticket from the database. Events,
// categories and their remaining ticket counts are left untouched.
//
// Without --yes the command only reports what would be deleted.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"ticketing/src/boot"
	"ticketing/src/common"
	"ticketing/src/config"

	"github.com/spf13/pflag"
	"gorm.io/gorm"
)

// opener returns the database to clear and a func releasing it.
type opener func() (*gorm.DB, func(), error)

func main() {
	open := func() (*gorm.DB, func(), error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, err
		}
		db, err := boot.InitDb(cfg)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}, nil
	}
	if err := run(context.Background(), os.Args[1:], os.Stdout, open); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer, open opener) error {
	var yes, dryRun bool
	flagSet := pflag.NewFlagSet("cleardata", pflag.ContinueOnError)
	flagSet.SetOutput(out)
	flagSet.BoolVarP(&yes, "yes", "y", false, "delete without asking for confirmation")
	flagSet.BoolVar(&dryRun, "dry-run", false, "only report how many rows would be deleted")
	flagSet.Usage = func() {
		fmt.Fprintln(out, "Usage: cleardata [--yes] [--dry-run]")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Deletes all tickets and purchases. Events and categories are kept.")
		fmt.Fprintln(out)
		flagSet.PrintDefaults()
	}
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	db, release, err := open()
	if err != nil {
		return err
	}
	defer release()
	history := common.NewHistoryService(db)

	counts, err := history.CountHistory(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d tickets in %d purchases\n", counts.Tickets, counts.Purchases)
	if dryRun {
		return nil
	}
	if !yes {
		fmt.Fprintln(out, "Nothing deleted. Re-run with --yes to clear purchase history.")
		return nil
	}

	fmt.Fprintln(out, "Clearing all purchase history...")
	result, err := history.ClearHistory(ctx)
	if err != nil {
		log.Printf("Error clearing purchase history: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(out, "Deleted %d tickets\n", result.Tickets)
	fmt.Fprintf(out, "Deleted %d purchases\n", result.Purchases)
	fmt.Fprintln(out, "Purchase history cleared successfully!")
	return nil
}
