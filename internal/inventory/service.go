package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"foodbank/internal/distribution"
	"foodbank/internal/nutrition"

	"github.com/google/uuid"
)

var ErrInvalidInput = errors.New("invalid inventory input")

type Service struct {
	repo   Repository
	lookup nutrition.Lookuper
	logger *slog.Logger
}

func NewService(repo Repository, lookup nutrition.Lookuper, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, lookup: lookup, logger: logger}
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// --------------------------------------------------
// Add item (nutrition looked up by type)
// --------------------------------------------------
func (s *Service) Add(ctx context.Context, ownerID string, in AddInput) (*Item, error) {
	foodType := strings.TrimSpace(in.Type)
	if foodType == "" {
		return nil, invalidInput("type is required")
	}

	category, err := distribution.ParseCategory(in.Category)
	if err != nil {
		return nil, invalidInput("%v", err)
	}

	if in.Quantity < 0 {
		return nil, invalidInput("quantity must not be negative")
	}

	expiration, err := distribution.ParseDate(in.ExpirationDate)
	if err != nil {
		return nil, invalidInput("expiration_date %q is not a date", in.ExpirationDate)
	}

	facts, err := s.lookup.Lookup(ctx, foodType)
	if err != nil {
		return nil, fmt.Errorf("nutrition lookup for %q: %w", foodType, err)
	}

	item := &Item{
		OwnerID:        ownerID,
		Type:           foodType,
		Category:       category,
		Quantity:       in.Quantity,
		ExpirationDate: expiration,
		Nutrition:      *facts,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("inventory item added", "user", ownerID, "item", item.ID, "type", foodType)
	return item, nil
}

func (s *Service) List(ctx context.Context, ownerID string) ([]*Item, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id, ownerID)
}

func (s *Service) UpdateWeeklyCustomers(ctx context.Context, ownerID string, weekly int) (int64, error) {
	if weekly <= 0 {
		return 0, invalidInput("weekly_customers must be positive")
	}
	return s.repo.UpdateWeeklyCustomers(ctx, ownerID, weekly)
}

// --------------------------------------------------
// Snapshot for the distribution planner
// --------------------------------------------------
func (s *Service) Snapshot(ctx context.Context, ownerID string, now time.Time) ([]distribution.StockItem, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	stock := make([]distribution.StockItem, 0, len(items))
	defaulted := 0
	for _, it := range items {
		weekly := distribution.DefaultWeeklyCustomers
		if it.WeeklyCustomers != nil {
			weekly = *it.WeeklyCustomers
		} else {
			defaulted++
		}

		stock = append(stock, distribution.StockItem{
			Name:            it.Type,
			Category:        it.Category,
			Quantity:        it.Quantity,
			ExpirationDate:  it.ExpirationDate,
			DaysUntilExpiry: distribution.DaysUntil(it.ExpirationDate, now),
			Calories:        it.Nutrition.Calories,
			Sugars:          it.Nutrition.Sugars,
			WeeklyCustomers: weekly,
		})
	}

	if defaulted > 0 {
		s.logger.Warn(
			"weekly customers not set, using default",
			"user", ownerID,
			"items", defaulted,
			"default", distribution.DefaultWeeklyCustomers,
		)
	}

	return stock, nil
}
