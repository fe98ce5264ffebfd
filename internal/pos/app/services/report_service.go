package services

import (
	"context"
	"fmt"
	"time"

	"sembrador-pos/internal/pos/app/core"
	"sembrador-pos/internal/pos/domain/dto"
	"sembrador-pos/internal/pos/domain/models"
	"sembrador-pos/internal/xpkg/logger"
)

// ReportService serves the read-only projections: catalog listings, the
// admin dashboard and shift history. It never mutates anything.
type ReportService struct {
	catalogRepo core.ICatalogRepo
	reportRepo  core.IReportRepo
	loc         *time.Location
	mylog       logger.Logger
}

func NewReportService(catalogRepo core.ICatalogRepo, reportRepo core.IReportRepo, timezone string, mylog logger.Logger) (*ReportService, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("load reporting timezone %q: %w", timezone, err)
	}
	return &ReportService{
		catalogRepo: catalogRepo,
		reportRepo:  reportRepo,
		loc:         loc,
		mylog:       mylog,
	}, nil
}

func (s *ReportService) Registers(ctx context.Context) ([]models.Register, error) {
	return s.catalogRepo.Registers(ctx)
}

func (s *ReportService) Products(ctx context.Context) ([]models.Product, error) {
	return s.catalogRepo.Products(ctx)
}

func (s *ReportService) Stats(ctx context.Context) (dto.AdminStats, error) {
	stats, err := s.reportRepo.Stats(ctx, s.loc)
	if err != nil {
		s.mylog.Action("admin_stats_failed").Error("Failed to compute stats", err)
		return dto.AdminStats{}, err
	}
	return stats, nil
}

func (s *ReportService) History(ctx context.Context) ([]dto.ShiftHistoryEntry, error) {
	history, err := s.reportRepo.History(ctx)
	if err != nil {
		s.mylog.Action("shift_history_failed").Error("Failed to read shift history", err)
		return nil, err
	}
	return history, nil
}
