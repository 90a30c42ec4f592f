package main

import (
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/pflag"

	"github.com/classicnews/newsdesk"
)

const maxTitleWidth = 48

// runList prints the index as an aligned table. Widths are computed with
// runewidth so CJK titles line up.
func runList(args []string) error {
	fs := pflag.NewFlagSet("list", pflag.ContinueOnError)
	configPath := configFlag(fs)
	category := fs.String("category", "", "only show records in this category")
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

	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"DATE", "TIME", "CATEGORY", "TITLE", "LOCATION", "ID"})
	for _, rec := range records {
		if *category != "" && rec.Category != *category {
			continue
		}
		rows = append(rows, []string{
			rec.Date,
			rec.Time,
			rec.Category,
			runewidth.Truncate(rec.Title, maxTitleWidth, "…"),
			rec.Location,
			rec.UniqueID,
		})
	}
	if len(rows) == 1 {
		fmt.Println("no records")
		return nil
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Print(runewidth.FillRight(cell, widths[i]))
		}
		fmt.Println()
	}
	fmt.Printf("\n%d records\n", len(rows)-1)
	return nil
}
