// Package service orchestrates one synchronization run: repo sync, tree
// walk, filtering, mirroring and incremental translation.
package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"github.com/enkerewpo/autodocs/internal/config"
	"github.com/enkerewpo/autodocs/internal/filter"
	"github.com/enkerewpo/autodocs/internal/gitrepo"
	"github.com/enkerewpo/autodocs/internal/meta"
	"github.com/enkerewpo/autodocs/internal/translator"
	"github.com/enkerewpo/autodocs/internal/walker"
	"github.com/enkerewpo/autodocs/pkg/file"
	"github.com/enkerewpo/autodocs/pkg/log"
)

// SyncService runs the translation pipeline for one configured repository.
type SyncService struct {
	cfg        config.Config
	git        gitrepo.Client
	translator translator.Translator
}

// New creates a SyncService with injected git and translation backends.
func New(cfg config.Config, git gitrepo.Client, tr translator.Translator) *SyncService {
	return &SyncService{
		cfg:        cfg,
		git:        git,
		translator: tr,
	}
}

var singleflightGroup singleflight.Group

// Schedule registers the run on the configured cron expression. Overlapping
// triggers collapse into a single in-flight run.
func (s *SyncService) Schedule(ctx context.Context, c *cron.Cron) error {
	runFunc := func() {
		_, _, _ = singleflightGroup.Do("run", func() (any, error) {
			summary, err := s.Run(ctx)
			if err != nil {
				log.Error("Scheduled run failed: %v", err)
				return nil, nil
			}
			log.Info("Scheduled run finished: %d translated, %d up to date, %d failed",
				summary.Translated, summary.Skipped, summary.Failed)
			return nil, nil
		})
	}
	_, err := c.AddFunc(s.cfg.Cron, runFunc)
	return err
}

// Run executes the pipeline once. Fatal conditions (sync, metadata parse,
// tree walk) return an error; per-file problems are captured in the Summary
// and do not stop the batch.
func (s *SyncService) Run(ctx context.Context) (*Summary, error) {
	if err := os.MkdirAll(s.cfg.Workspace, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace %s: %w", s.cfg.Workspace, err)
	}

	repoName := gitrepo.RepoName(s.cfg.Repo)
	repoPath := filepath.Join(s.cfg.Workspace, repoName)
	translatedPath := filepath.Join(s.cfg.Workspace, repoName+"-translated")
	metaPath := meta.Path(s.cfg.Workspace, repoName)

	if err := s.git.Sync(ctx, s.cfg.Repo, s.cfg.Branch, repoPath); err != nil {
		return nil, fmt.Errorf("repository sync failed: %w", err)
	}

	record, err := meta.Load(metaPath)
	if err != nil {
		return nil, err
	}

	// The commit is informational only; a rev-parse failure does not
	// block translation.
	if head, err := s.git.Head(ctx, repoPath); err != nil {
		log.Warn("Failed to resolve HEAD: %v", err)
	} else {
		record.Commit = head
		log.Info("Latest commit hash: %s", head)
	}

	files, err := walker.Walk(repoPath)
	if err != nil {
		return nil, err
	}

	opts := []filter.Option{}
	if s.cfg.Filter.LegacySuffixMatch {
		opts = append(opts, filter.WithLegacySuffixMatch())
	}
	f := filter.New(s.cfg.Filter.Target, s.cfg.Filter.Include, s.cfg.Filter.Exclude, opts...)
	translatable, passThrough := f.Split(files)

	summary := &Summary{
		Commit: record.Commit,
		Total:  len(translatable),
	}

	s.mirror(passThrough, repoPath, translatedPath, summary)

	log.Info("Got %d files to translate", len(translatable))
	for _, path := range translatable {
		result := s.processFile(ctx, path, repoPath, translatedPath, metaPath, record)
		summary.Results = append(summary.Results, result)
		switch result.Status {
		case StatusTranslated:
			summary.Translated++
		case StatusSkipped:
			summary.Skipped++
		case StatusFailed:
			summary.Failed++
			log.Error("Failed to process %s: %v", path, result.Err)
		}
	}

	if err := record.Save(metaPath); err != nil {
		log.Warn("Failed to persist metadata at end of run: %v", err)
	}

	log.Info("Translation finished, new files translated: %d, total files: %d, already translated: %d, failed: %d",
		summary.Translated, summary.Total, summary.Skipped, summary.Failed)

	return summary, nil
}

// mirror copies every pass-through file verbatim into the output tree,
// unconditionally each run. Copy failures are reported but do not stop the
// batch.
func (s *SyncService) mirror(passThrough []string, repoPath, translatedPath string, summary *Summary) {
	for _, path := range passThrough {
		outPath := file.MapToRoot(path, repoPath, translatedPath)
		if err := copyFile(path, outPath); err != nil {
			summary.Results = append(summary.Results, FileResult{
				Path:   path,
				Status: StatusFailed,
				Err:    err,
			})
			summary.Failed++
			log.Error("Failed to mirror %s: %v", path, err)
			continue
		}
		summary.Copied++
	}
}

// processFile resolves one translatable file to a terminal state:
// skipped when its stored hash matches, translated otherwise.
func (s *SyncService) processFile(ctx context.Context, path, repoPath, translatedPath, metaPath string, record *meta.TranslationMeta) FileResult {
	hash, err := meta.HashFile(path)
	if err != nil {
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}

	if record.HasTranslation(path, hash) {
		return FileResult{Path: path, Status: StatusSkipped}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Status: StatusFailed,
			Err: fmt.Errorf("failed to read file %s: %w", path, err)}
	}

	outPath := file.MapToRoot(path, repoPath, translatedPath)

	output := ""
	if len(content) > 0 {
		log.Info("Translating file %s...", file.Name(path))
		output, err = s.translator.Translate(ctx, string(content))
		if err != nil {
			return FileResult{Path: path, Status: StatusFailed,
				Err: fmt.Errorf("failed to translate %s: %w", path, err)}
		}
	}

	if err := writeFile(outPath, []byte(output)); err != nil {
		return FileResult{Path: path, Status: StatusFailed, Err: err}
	}

	// Persist immediately so a completed translation survives any later
	// failure in the same run.
	record.Record(path, hash, time.Now())
	if err := record.Save(metaPath); err != nil {
		log.Warn("Failed to persist metadata after %s: %v", path, err)
	}

	return FileResult{Path: path, Status: StatusTranslated}
}

func copyFile(src, dst string) error {
	content, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", src, err)
	}
	return writeFile(dst, content)
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}
