package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/classicnews/newsdesk"
	"github.com/spf13/pflag"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	case "clean":
		err = runClean(os.Args[2:])
	case "list":
		err = runList(os.Args[2:])
	case "version":
		fmt.Printf("newsdesk %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// configFlag registers the shared --config flag on a command's flag set.
func configFlag(fs *pflag.FlagSet) *string {
	return fs.String("config", newsdesk.EnvOr("NEWSDESK_CONFIG", "newsdesk.yaml"),
		"path to the YAML configuration file")
}

// loadConfig reads the config file at path, or falls back to built-in
// defaults when the file does not exist.
func loadConfig(path string) (*newsdesk.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return newsdesk.DefaultConfig(), nil
	}
	return newsdesk.LoadConfig(path)
}

func printUsage() {
	fmt.Println(`newsdesk - a news article publishing pipeline and reading surface

Usage:
  newsdesk <command> [flags]

Commands:
  serve         Start the HTTP reading surface over the published store
  seed          Publish sample articles into the store and index
  clean         Drop malformed records from the JSON index
  list          Print the index records as a table
  version       Print the newsdesk version
  help          Show this help message

Examples:
  newsdesk serve --config newsdesk.yaml
  newsdesk seed --count 20
  newsdesk list --category World`)
}
