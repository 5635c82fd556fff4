package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"seriesshift/internal/domain/series"
	"seriesshift/internal/ports"
	"seriesshift/internal/util"
)

type ShiftService struct {
	repo   ports.DatasetRepository
	logger *zap.Logger
}

func NewShiftService(repo ports.DatasetRepository, logger *zap.Logger) *ShiftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ShiftService{
		repo:   repo,
		logger: logger,
	}
}

func (s *ShiftService) Load(ctx context.Context) (*series.Dataset, error) {
	ds, err := s.repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	return ds, nil
}

// Shift loads the dataset and moves its dates so the anchor record lands
// on target.
func (s *ShiftService) Shift(ctx context.Context, target time.Time, anchor series.Anchor) (*series.Dataset, error) {
	ds, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	offset, err := series.Offset(ds.Series, target, anchor)
	if err != nil {
		return nil, err
	}

	shifted, err := series.ShiftBy(ds, offset)
	if err != nil {
		return nil, err
	}

	s.logger.Info("shifted dataset",
		zap.String("symbol", ds.Meta.Symbol),
		zap.String("target", util.FormatDate(target)),
		zap.Stringer("anchor", anchor),
		zap.Int("offset_days", offset),
		zap.Int("records", shifted.Len()),
	)
	return shifted, nil
}

func (s *ShiftService) ShiftAndSave(ctx context.Context, target time.Time, anchor series.Anchor, out ports.DatasetRepository) (*series.Dataset, error) {
	shifted, err := s.Shift(ctx, target, anchor)
	if err != nil {
		return nil, err
	}
	if err := out.Save(ctx, shifted); err != nil {
		return nil, fmt.Errorf("save shifted dataset: %w", err)
	}
	return shifted, nil
}

// Import fetches each symbol from provider, at most limit at a time, and
// saves it to the repository returned by sink. The first failure cancels
// the remaining fetches.
func Import(ctx context.Context, logger *zap.Logger, provider ports.SeriesProvider, symbols []string, limit int, sink func(symbol string) ports.DatasetRepository) error {
	if len(symbols) == 0 {
		return errors.New("at least one symbol is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, sym := range symbols {
		sym := sym
		g.Go(func() error {
			ds, err := provider.FetchDaily(gctx, sym)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", sym, err)
			}
			if err := sink(sym).Save(gctx, ds); err != nil {
				return fmt.Errorf("save %s: %w", sym, err)
			}
			logger.Info("imported daily series", zap.String("symbol", sym), zap.Int("records", ds.Len()))
			return nil
		})
	}
	return g.Wait()
}

// Print writes one "<date>: <record>" line per entry, in series order.
func Print(w io.Writer, ds *series.Dataset) error {
	var err error
	ds.Series.Each(func(date string, r series.PriceRecord) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, "%s: %s\n", date, r)
	})
	return err
}
