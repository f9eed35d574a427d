// Package answer orchestrates one question/answer exchange: validate the
// upload, stage it in a request-scoped directory, classify and summarize it,
// then answer locally or through the remote model.
package answer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/balajiselvarajk/tds-solver-project-2/internal/config"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/filetype"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/localcmd"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/models"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/redis"
	"github.com/balajiselvarajk/tds-solver-project-2/internal/summarize"

	"github.com/google/uuid"
)

// Validation failures are the only errors that surface past the service;
// everything downstream degrades into the answer string itself.
var (
	ErrInvalidFileType = errors.New("Invalid file type")
	ErrFileTooLarge    = errors.New("File too large")
)

// Upload is a pending attachment. Open must be callable exactly once; the
// service never reads content before the name passes validation.
type Upload struct {
	Name string
	Open func() (io.ReadCloser, error)
}

// ModelClient is the remote model collaborator.
type ModelClient interface {
	GenerateAnswer(ctx context.Context, question, fileInfo string) string
}

// HistoryStore records served answers, best effort.
type HistoryStore interface {
	RecordAnswer(ctx context.Context, question, fileName, source, answer string) (int64, error)
}

// Service answers assignment questions.
type Service struct {
	cfg        *config.Config
	model      ModelClient
	summarizer *summarize.Summarizer
	commands   *localcmd.Resolver
	cache      *redis.Client
	store      HistoryStore
	workDir    string
}

// NewService wires the pipeline from config. cache and store may be nil.
func NewService(cfg *config.Config, model ModelClient, cache *redis.Client, store HistoryStore) (*Service, error) {
	workDir := cfg.BasicConfig.WorkDir
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("create work dir: %w", err)
	}
	return &Service{
		cfg:        cfg,
		model:      model,
		summarizer: summarize.NewSummarizer(cfg.BasicConfig.PreviewRows, cfg.BasicConfig.MaxArchiveDepth),
		commands: localcmd.NewResolver(
			time.Duration(cfg.BasicConfig.CommandTimeout)*time.Second,
			cfg.BasicConfig.DiagnosticCommand,
			cfg.BasicConfig.FormatterCommand,
		),
		cache:   cache,
		store:   store,
		workDir: workDir,
	}, nil
}

// Answer produces exactly one answer for the question. The returned error is
// non-nil only for the two pre-processing validation failures.
func (s *Service) Answer(ctx context.Context, question string, upload *Upload) (string, error) {
	var (
		fileInfo string
		fileName string
		filePath string
		tag      filetype.Tag
	)

	if upload != nil {
		if !filetype.AllowedExtension(upload.Name) {
			return "", ErrInvalidFileType
		}
		fileName = filepath.Base(upload.Name)

		scoped := filepath.Join(s.workDir, uuid.NewString())
		if err := os.MkdirAll(scoped, 0o755); err != nil {
			return fmt.Sprintf("Error processing uploaded file: %v", err), nil
		}
		defer os.RemoveAll(scoped)

		filePath = filepath.Join(scoped, fileName)
		size, err := saveUpload(upload, filePath)
		if err != nil {
			return fmt.Sprintf("Error processing uploaded file: %v", err), nil
		}
		if size > s.cfg.BasicConfig.MaxUploadBytes {
			return "", ErrFileTooLarge
		}

		tag = filetype.Detect(filePath)
		fileInfo = s.summarizer.Describe(filePath)
	}

	if local, ok := s.commands.Resolve(ctx, question, tag, filePath); ok {
		s.record(ctx, question, fileName, models.SourceLocal, local)
		return local, nil
	}

	key := redis.AnswerKey(question, fileInfo)
	if cached, err := s.cache.GetAnswer(ctx, key); err == nil {
		s.record(ctx, question, fileName, models.SourceCache, cached)
		return cached, nil
	} else if err != redis.ErrCacheMiss {
		log.Printf("answer cache get: %v", err)
	}

	generated := s.model.GenerateAnswer(ctx, question, fileInfo)
	if !strings.HasPrefix(generated, "Error") {
		ttl := time.Duration(s.cfg.LLM.CacheTTLMinutes) * time.Minute
		if err := s.cache.SetAnswer(ctx, key, generated, ttl); err != nil {
			log.Printf("answer cache set: %v", err)
		}
	}
	s.record(ctx, question, fileName, models.SourceModel, generated)
	return generated, nil
}

func (s *Service) record(ctx context.Context, question, fileName, source, answer string) {
	if s.store == nil {
		return
	}
	if _, err := s.store.RecordAnswer(ctx, question, fileName, source, answer); err != nil {
		log.Printf("record answer: %v", err)
	}
}

func saveUpload(upload *Upload, dst string) (int64, error) {
	src, err := upload.Open()
	if err != nil {
		return 0, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("create upload file: %w", err)
	}
	size, err := io.Copy(out, src)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return 0, fmt.Errorf("save upload: %w", err)
	}
	return size, nil
}
