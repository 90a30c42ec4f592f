package main

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/classicnews/newsdesk"
)

// runClean removes malformed records from the JSON index: entries missing
// a title, category, date, or unique id. Artifacts on disk are left
// alone.
func runClean(args []string) error {
	fs := pflag.NewFlagSet("clean", pflag.ContinueOnError)
	configPath := configFlag(fs)
	dryRun := fs.Bool("dry-run", false, "report what would be dropped without rewriting the index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger := newsdesk.NewLogger(cfg.LogLevel)
	index := newsdesk.NewIndexStore(cfg.IndexPath, logger)
	records, err := index.Load()
	if err != nil {
		return err
	}

	kept := make([]newsdesk.ArticleRecord, 0, len(records))
	dropped := 0
	for _, rec := range records {
		if rec.Title == "" || rec.Category == "" || rec.Date == "" || rec.UniqueID == "" {
			dropped++
			fmt.Printf("dropping record: title=%q category=%q id=%q\n", rec.Title, rec.Category, rec.UniqueID)
			continue
		}
		kept = append(kept, rec)
	}

	if dropped == 0 {
		fmt.Printf("index is clean: %d records\n", len(records))
		return nil
	}
	if *dryRun {
		fmt.Printf("dry run: would drop %d of %d records\n", dropped, len(records))
		return nil
	}
	if err := index.Rewrite(kept); err != nil {
		return err
	}
	fmt.Printf("dropped %d of %d records\n", dropped, len(records))
	return nil
}
