// Package main is a small inspection front end for the configuration
// resolver: it prints the resolved configuration for a file, or lists
// the files a set of patterns enumerates, one path per line with a
// marker on ignored files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dshills/lintconf/internal/cascade"
	"github.com/dshills/lintconf/internal/configarray"
	"github.com/dshills/lintconf/internal/enumerate"
	"github.com/dshills/lintconf/internal/factory"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  = flag.String("config", "", "use this configuration file, layered above discovered configs")
		noEslintrc  = flag.Bool("no-eslintrc", false, "disable per-directory config discovery")
		extensions  = flag.String("ext", ".js", "comma-separated file extensions to enumerate")
		printTarget = flag.String("print-config", "", "print the resolved configuration for this file and exit")
	)
	flag.Parse()

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	f := factory.New(factory.WithCwd(cwd))

	var cascadeOpts []cascade.Option
	if *configPath != "" {
		cascadeOpts = append(cascadeOpts, cascade.WithSpecificConfigPath(*configPath))
	}
	if *noEslintrc {
		cascadeOpts = append(cascadeOpts, cascade.WithUseEslintrc(false))
	}
	c := cascade.New(f, cascadeOpts...)

	if *printTarget != "" {
		return printConfig(c, *printTarget)
	}

	patterns := flag.Args()
	if len(patterns) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: lintconf [flags] <patterns...>")
		flag.PrintDefaults()
		return 2
	}

	e := enumerate.New(c,
		enumerate.WithCwd(cwd),
		enumerate.WithExtensions(strings.Split(*extensions, ",")),
	)

	for item, err := range e.IterateFiles(patterns) {
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		switch item.Flag {
		case enumerate.FlagIgnored:
			fmt.Printf("%s (ignored)\n", item.Path)
		case enumerate.FlagWarning:
			fmt.Printf("%s (warning: ignored but named explicitly)\n", item.Path)
		default:
			fmt.Println(item.Path)
		}
	}

	return 0
}

// printConfig resolves and prints the configuration for one file.
func printConfig(c *cascade.CascadedFactory, target string) int {
	array, err := c.ConfigArrayForFile(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	config, err := array.ExtractConfig(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	out, err := json.MarshalIndent(printableConfig(config), "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

// printableConfig shapes a resolved config for JSON output, reducing
// references to their identifying fields.
func printableConfig(config *configarray.ResolvedConfig) map[string]any {
	out := map[string]any{
		"env":           config.Env,
		"globals":       config.Globals,
		"parserOptions": config.ParserOptions,
		"rules":         config.Rules,
		"settings":      config.Settings,
	}

	if config.Parser != nil {
		out["parser"] = map[string]any{"id": config.Parser.ID, "filePath": config.Parser.FilePath}
	}
	if config.Processor != nil {
		out["processor"] = config.Processor.ID
	}

	plugins := map[string]any{}
	for id, ref := range config.Plugins {
		plugins[id] = map[string]any{"filePath": ref.FilePath, "importer": ref.ImporterPath}
	}
	out["plugins"] = plugins

	if config.NoInlineConfig {
		out["noInlineConfig"] = true
	}
	if config.ReportUnusedDisableDirectives {
		out["reportUnusedDisableDirectives"] = true
	}

	return out
}
