package cli

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/bookshelf/internal/config"
	"github.com/mrlokans/bookshelf/internal/database"
	"github.com/mrlokans/bookshelf/internal/database/shelves"
)

type ShelfStatsCommand struct {
	DatabasePath string
	ShelfID      uint

	out io.Writer
}

func NewShelfStatsCommand() *ShelfStatsCommand {
	return &ShelfStatsCommand{out: os.Stdout}
}

func (cmd *ShelfStatsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("shelf-stats", flag.ContinueOnError)

	var id uint
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.UintVar(&id, "id", 0, "Bookshelf ID (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s shelf-stats [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print statistics for a bookshelf as JSON.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s shelf-stats -id 1\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s shelf-stats -id 3 -db ./catalog.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if id == 0 {
		fs.Usage()
		return fmt.Errorf("bookshelf id is required")
	}
	cmd.ShelfID = id

	return nil
}

func (cmd *ShelfStatsCommand) Run() error {
	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := shelves.NewRepository(db.DB).Stats(cmd.ShelfID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.out)
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}
