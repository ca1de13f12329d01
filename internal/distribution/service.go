package distribution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var ErrExportDisabled = errors.New("plan export storage is not configured")

// SnapshotReader returns the current stock of one user with derived
// fields already filled in.
type SnapshotReader interface {
	Snapshot(ctx context.Context, ownerID string, now time.Time) ([]StockItem, error)
}

// Uploader stores an exported plan and returns where it can be fetched.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type Service struct {
	reader   SnapshotReader
	uploader Uploader
	logger   *slog.Logger
	now      func() time.Time
}

// NewService wires the planner. uploader may be nil, which disables exports.
func NewService(reader SnapshotReader, uploader Uploader, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		reader:   reader,
		uploader: uploader,
		logger:   logger,
		now:      time.Now,
	}
}

// --------------------------------------------------
// Plan for the caller's current inventory
// --------------------------------------------------
func (s *Service) Plan(ctx context.Context, ownerID string) ([]PlanEntry, error) {
	items, err := s.reader.Snapshot(ctx, ownerID, s.now())
	if err != nil {
		return nil, fmt.Errorf("load inventory snapshot: %w", err)
	}

	plan, err := ComputePlan(items)
	if err != nil {
		s.logger.Warn("distribution plan rejected", "user", ownerID, "error", err)
		return nil, err
	}

	s.logger.Debug("distribution plan computed", "user", ownerID, "items", len(plan))
	return plan, nil
}

// --------------------------------------------------
// Export plan as CSV to object storage
// --------------------------------------------------
func (s *Service) Export(ctx context.Context, ownerID string) (string, error) {
	if s.uploader == nil {
		return "", ErrExportDisabled
	}

	plan, err := s.Plan(ctx, ownerID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, plan); err != nil {
		return "", fmt.Errorf("render plan csv: %w", err)
	}

	key := fmt.Sprintf(
		"plans/%s/%s-%s.csv",
		ownerID,
		s.now().UTC().Format("20060102T150405Z"),
		uuid.New().String(),
	)

	url, err := s.uploader.Upload(ctx, key, bytes.NewReader(buf.Bytes()), "text/csv")
	if err != nil {
		return "", fmt.Errorf("upload plan: %w", err)
	}

	s.logger.Info("distribution plan exported", "user", ownerID, "items", len(plan), "key", key)
	return url, nil
}
