package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catarr/catarr/internal/config"
	"github.com/catarr/catarr/pkg/title"
)

// ParseResultJSON is the JSON-friendly representation of a parsed title.
type ParseResultJSON struct {
	RawTitle string `json:"raw_title"`
	Title    string `json:"title"`
	Slug     string `json:"slug"`
	Type     string `json:"type"`
	Year     int    `json:"year,omitempty"`
	Season   int    `json:"season,omitempty"`
	Episode  int    `json:"episode,omitempty"`
	Quality  string `json:"quality"`
	Error    string `json:"error,omitempty"`
}

func toJSON(name string, id *title.ID, err error) ParseResultJSON {
	if err != nil {
		return ParseResultJSON{RawTitle: name, Error: err.Error()}
	}
	return ParseResultJSON{
		RawTitle: id.RawTitle,
		Title:    id.Title,
		Slug:     id.Slug,
		Type:     string(id.Type),
		Year:     id.Year,
		Season:   id.Season,
		Episode:  id.Episode,
		Quality:  string(id.Quality),
	}
}

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <listing-title>",
	Short: "Parse listing title (local, no server needed)",
	Long: `Parse a listing title against a configured source's rules.

Examples:
  catarr parse --source eztv "Some.Show.S01E04.720p.WEB.x264-GROUP"
  catarr parse --source movies --file titles.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().String("source", "", "Source whose rules to parse with (default: first configured)")
	parseCmd.Flags().StringP("file", "f", "", "Read listing titles from file (one per line)")
	parseCmd.Flags().String("config", "config.toml", "Path to config file")
	// Note: --json is inherited from root as persistent flag
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	sourceName, _ := cmd.Flags().GetString("source")
	inputFile, _ := cmd.Flags().GetString("file")
	configPath, _ := cmd.Flags().GetString("config")

	var names []string
	if inputFile != "" {
		read, err := readTitlesFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = read
	} else if len(args) > 0 {
		names = []string{args[0]}
	} else {
		return fmt.Errorf("usage: catarr parse <listing-title> or catarr parse --file <filename>")
	}

	cfg, err := config.LoadWithoutValidation(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	parser, err := parserForSource(cfg, sourceName)
	if err != nil {
		return err
	}

	results := make([]ParseResultJSON, 0, len(names))
	for _, name := range names {
		id, err := parser.Parse(name, "")
		results = append(results, toJSON(name, id, err))
	}

	if jsonOutput {
		if len(results) == 1 {
			printJSON(results[0])
		} else {
			printJSON(results)
		}
		return nil
	}
	for i, r := range results {
		if i > 0 {
			fmt.Println()
		}
		printParseResult(r)
	}
	return nil
}

// parserForSource builds a title parser from the named source's config,
// or from the first configured source when name is empty.
func parserForSource(cfg *config.Config, name string) (*title.Parser, error) {
	if len(cfg.Scrape.Sources) == 0 {
		return nil, errors.New("no sources configured")
	}

	src := cfg.Scrape.Sources[0]
	if name != "" {
		found := false
		for _, s := range cfg.Scrape.Sources {
			if s.Name == name {
				src, found = s, true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("source '%s' not found. Available: %s",
				name, strings.Join(sourceNames(cfg), ", "))
		}
	}

	rules, err := src.ParserRules()
	if err != nil {
		return nil, err
	}
	return title.NewParser(src.Name, title.ContentType(src.ContentType), rules), nil
}

func sourceNames(cfg *config.Config) []string {
	names := make([]string, 0, len(cfg.Scrape.Sources))
	for _, s := range cfg.Scrape.Sources {
		names = append(names, s.Name)
	}
	return names
}

// readTitlesFile reads listing titles from a file, one per line.
func readTitlesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			names = append(names, line)
		}
	}
	return names, scanner.Err()
}

func printParseResult(r ParseResultJSON) {
	if r.Error != "" {
		fmt.Printf("Title:       %s\n", r.RawTitle)
		fmt.Printf("Error:       %s\n", r.Error)
		return
	}
	fmt.Printf("Title:       %s\n", r.Title)
	fmt.Printf("Slug:        %s\n", r.Slug)
	fmt.Printf("Type:        %s\n", r.Type)
	if r.Year > 0 {
		fmt.Printf("Year:        %d\n", r.Year)
	}
	if r.Season > 0 || r.Episode > 0 {
		fmt.Printf("Season:      %d\n", r.Season)
		fmt.Printf("Episode:     %d\n", r.Episode)
	}
	fmt.Printf("Quality:     %s\n", r.Quality)
}
