package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/spf13/pflag"

	"github.com/classicnews/newsdesk"
)

type sampleArticle struct {
	title    string
	body     string
	location string
}

var sampleArticles = []sampleArticle{
	{
		title:    "City Council Approves Riverside Park Expansion",
		body:     "The city council voted on Tuesday to approve a major expansion of Riverside Park, adding twelve acres of green space along the waterfront.\nConstruction is expected to begin in the spring and finish within eighteen months.",
		location: "Springfield",
	},
	{
		title:    "Local Startup Raises Funding for Solar Storage",
		body:     "A homegrown energy startup announced a new funding round to scale its residential solar battery line.\nThe company plans to double its engineering team over the next year.",
		location: "Austin",
	},
	{
		title:    "Regional Rail Line Reopens After Upgrades",
		body:     "Commuters returned to the regional rail line this morning after a six-month modernization project.\nNew signaling cuts peak-hour travel times by roughly fifteen percent.",
		location: "Leeds",
	},
	{
		title:    "Museum Unveils Restored Nineteenth-Century Frescoes",
		body:     "After three years of careful restoration, the national museum opened its fresco hall to the public.\nConservators described the project as the most delicate in the museum's history.",
		location: "Florence",
	},
	{
		title:    "Coastal Cleanup Drive Draws Record Volunteers",
		body:     "More than two thousand volunteers joined this weekend's coastal cleanup, collecting several tonnes of plastic waste.\nOrganizers said participation has tripled since the drive began.",
		location: "Chennai",
	},
}

// runSeed publishes a batch of sample articles through the full pipeline,
// so the store, index, and reading surface have data to work with.
func runSeed(args []string) error {
	fs := pflag.NewFlagSet("seed", pflag.ContinueOnError)
	configPath := configFlag(fs)
	count := fs.Int("count", 10, "number of sample articles to publish")
	category := fs.String("category", "", "publish every sample into this category")
	withImages := fs.Bool("images", true, "embed a generated lead image in each article")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *category != "" && !cfg.AllowsCategory(*category) {
		return fmt.Errorf("category %q is not in the configured set", *category)
	}

	logger := newsdesk.NewLogger(cfg.LogLevel)
	pub := newsdesk.NewPublisher(cfg, logger)

	for i := 0; i < *count; i++ {
		sample := sampleArticles[i%len(sampleArticles)]
		doc := newsdesk.NewDocument()
		if err := doc.InsertText(sample.body, newsdesk.DefaultTextFormat()); err != nil {
			return err
		}
		if *withImages {
			node, err := newsdesk.NewImageNode(placeholderImage(i))
			if err != nil {
				return err
			}
			if err := doc.SetCursor(0); err != nil {
				return err
			}
			if err := doc.InsertImage(node); err != nil {
				return err
			}
		}

		cat := *category
		if cat == "" {
			cat = cfg.Categories[i%len(cfg.Categories)]
		}
		title := sample.title
		if i >= len(sampleArticles) {
			title = fmt.Sprintf("%s (%d)", sample.title, i/len(sampleArticles)+1)
		}
		rec, err := pub.Publish(doc, title, cat, sample.location)
		if err != nil {
			return fmt.Errorf("seed article %d: %w", i+1, err)
		}
		fmt.Printf("published %s [%s] %s\n", rec.UniqueID, rec.Category, rec.Title)
	}
	return nil
}

// placeholderImage builds a small solid-color lead image, varying the hue
// per article so seeded cards are distinguishable.
func placeholderImage(i int) image.Image {
	palette := []color.RGBA{
		{0xc0, 0x39, 0x2b, 0xff},
		{0x27, 0x79, 0xb3, 0xff},
		{0x27, 0xae, 0x60, 0xff},
		{0xf3, 0x9c, 0x12, 0xff},
		{0x8e, 0x44, 0xad, 0xff},
	}
	c := palette[i%len(palette)]
	img := image.NewRGBA(image.Rect(0, 0, 320, 180))
	for y := 0; y < 180; y++ {
		for x := 0; x < 320; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
