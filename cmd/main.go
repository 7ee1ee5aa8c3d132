package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/enkerewpo/autodocs/internal/config"
	"github.com/enkerewpo/autodocs/internal/gitrepo"
	"github.com/enkerewpo/autodocs/internal/llm"
	"github.com/enkerewpo/autodocs/internal/service"
	"github.com/enkerewpo/autodocs/internal/translator"
	"github.com/enkerewpo/autodocs/pkg/log"
)

const usageText = `autodocs - auto-translate files in a Git repository

Usage:
  autodocs run <CONFIG_PATH>    Run the auto-translation using the config file
`

func main() {
	// Optional .env for local development; a missing file is fine.
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Print(usageText)
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		if len(os.Args) < 3 {
			fmt.Print(usageText)
			os.Exit(2)
		}
		runCommand(os.Args[2])
	default:
		fmt.Print(usageText)
		os.Exit(2)
	}
}

func runCommand(configPath string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("Failed to load configuration: %v", err)
	}

	llmClient, err := llm.NewClient(&llm.Config{
		APIKey:      cfg.Engine.APIKey(),
		APIURL:      cfg.Engine.URL,
		Model:       cfg.Engine.Model,
		MaxTokens:   cfg.Engine.MaxTokens,
		Temperature: cfg.Engine.Temperature,
		Timeout:     cfg.Engine.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to create translation client: %v", err)
	}

	target, err := cfg.TargetLanguageTag()
	if err != nil {
		log.Fatal("Invalid target language: %v", err)
	}

	svc := service.New(*cfg, gitrepo.New(), translator.NewLLMTranslator(llmClient, target))
	ctx := context.Background()

	if cfg.Cron != "" {
		c := cron.New()
		if err := svc.Schedule(ctx, c); err != nil {
			log.Fatal("Failed to schedule runs: %v", err)
		}
		log.Info("Scheduled translation runs on %q", cfg.Cron)
		c.Run()
		return
	}

	summary, err := svc.Run(ctx)
	if err != nil {
		log.Fatal("Run failed: %v", err)
	}

	printSummary(os.Stdout, summary)
	if summary.Failed > 0 {
		os.Exit(1)
	}
}

// printSummary writes the colored end-of-run report.
func printSummary(w io.Writer, s *service.Summary) {
	bold := color.New(color.Bold).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	fmt.Fprintf(w, "%s\n", bold("Translation summary"))
	if s.Commit != "" {
		fmt.Fprintf(w, "  commit:      %s\n", s.Commit)
	}
	fmt.Fprintf(w, "  translatable: %d\n", s.Total)
	fmt.Fprintf(w, "  translated:   %s\n", green(s.Translated))
	fmt.Fprintf(w, "  up to date:   %s\n", cyan(s.Skipped))
	fmt.Fprintf(w, "  mirrored:     %d\n", s.Copied)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  failed:       %s\n", red(s.Failed))
		for _, r := range s.Results {
			if r.Status == service.StatusFailed {
				fmt.Fprintf(w, "    %s %s: %v\n", red("✗"), r.Path, r.Err)
			}
		}
	}
}
