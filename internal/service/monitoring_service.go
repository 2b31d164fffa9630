// FILE: internal/service/monitoring_service.go
package service

import (
	"context"
	"time"

	"github.com/mrayan007/MonitoringLitterDetection/internal/dto"
	"github.com/mrayan007/MonitoringLitterDetection/internal/entity"
	"github.com/mrayan007/MonitoringLitterDetection/internal/pkg/logger"
	"github.com/mrayan007/MonitoringLitterDetection/internal/repository"
	"github.com/mrayan007/MonitoringLitterDetection/pkg/events"
	pktNats "github.com/mrayan007/MonitoringLitterDetection/pkg/nats"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type IMonitoringService interface {
	FetchAndStore(ctx context.Context) (*dto.IngestReport, error)
	GetEnrichedLitters(ctx context.Context) ([]dto.EnrichedLitterResponse, error)
	GetEnrichedLitterById(ctx context.Context, id uuid.UUID) (*dto.EnrichedLitterResponse, error)
}

type monitoringService struct {
	repo           repository.LitterRepository
	sensoring      ISensoringService
	geocode        IGeocodeService
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
	group          singleflight.Group
}

func NewMonitoringService(
	repo repository.LitterRepository,
	sensoring ISensoringService,
	geocode IGeocodeService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IMonitoringService {
	return &monitoringService{
		repo:           repo,
		sensoring:      sensoring,
		geocode:        geocode,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// FetchAndStore runs one finite ingestion pass. Concurrent triggers are
// collapsed into a single run sharing one report, so two callers cannot
// double-process the same upstream batch.
func (s *monitoringService) FetchAndStore(ctx context.Context) (*dto.IngestReport, error) {
	result, err, _ := s.group.Do("fetch-and-store", func() (interface{}, error) {
		return s.run(ctx)
	})
	if err != nil {
		return nil, err
	}
	return result.(*dto.IngestReport), nil
}

func (s *monitoringService) run(ctx context.Context) (*dto.IngestReport, error) {
	session, err := s.sensoring.Login(ctx)
	if err != nil {
		// Nothing persisted yet; abort the whole run.
		return nil, err
	}
	// The session must not leak, whatever happens below.
	defer s.sensoring.Logout(ctx, session)

	batch, err := s.sensoring.FetchBatch(ctx, session)
	if err != nil {
		return nil, err
	}

	report := &dto.IngestReport{Fetched: len(batch)}

	for _, item := range batch {
		id := item.Id
		if id == uuid.Nil {
			id = uuid.New()
		}

		exists, err := s.repo.Exists(ctx, id)
		if err != nil {
			s.log.Error("monitoring", "Dedupe check failed, skipping record", map[string]interface{}{
				"id":    id.String(),
				"error": err.Error(),
			})
			continue
		}
		if exists {
			report.Skipped++
			continue
		}

		litter := &entity.Litter{
			Id:          id,
			Timestamp:   item.DateTime,
			LocationLat: item.LocationLat,
			LocationLon: item.LocationLon,
			Category:    item.Category,
			Confidence:  item.Confidence,
			Temperature: item.Temperature,
			CreatedAt:   time.Now(),
		}
		if err := s.repo.CreateLitter(ctx, litter); err != nil {
			// Duplicate key here means a concurrent run won the race for
			// this id. Expected, not exceptional.
			s.log.Warn("monitoring", "Raw insert failed, skipping record", map[string]interface{}{
				"id":    id.String(),
				"error": err.Error(),
			})
			report.Skipped++
			continue
		}

		location := s.geocode.ReverseGeocode(ctx, item.LocationLat, item.LocationLon)

		enriched := &entity.EnrichedLitter{
			Id:          id,
			Timestamp:   item.DateTime,
			Category:    item.Category,
			Confidence:  item.Confidence,
			Temperature: item.Temperature,
			Location:    location,
			CreatedAt:   time.Now(),
		}
		if err := s.repo.CreateEnrichedLitter(ctx, enriched); err != nil {
			// The raw record stays durable; a missing enriched counterpart
			// is a tolerated inconsistency window.
			s.log.Error("monitoring", "Enriched insert failed", map[string]interface{}{
				"id":    id.String(),
				"error": err.Error(),
			})
		}

		report.Inserted++
	}

	if s.eventPublisher != nil && report.Inserted > 0 {
		event := events.BaseEvent{
			Type: "LITTER_INGESTED",
			Data: map[string]interface{}{
				"inserted": report.Inserted,
				"skipped":  report.Skipped,
				"time":     time.Now().Format(time.RFC822),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.log.Warn("monitoring", "Failed to publish LITTER_INGESTED event", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return report, nil
}

func (s *monitoringService) GetEnrichedLitters(ctx context.Context) ([]dto.EnrichedLitterResponse, error) {
	records, err := s.repo.GetEnrichedLitters(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EnrichedLitterResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toEnrichedLitterResponse(&records[i]))
	}
	return responses, nil
}

func (s *monitoringService) GetEnrichedLitterById(ctx context.Context, id uuid.UUID) (*dto.EnrichedLitterResponse, error) {
	record, err := s.repo.GetEnrichedLitterById(ctx, id)
	if err != nil {
		return nil, err
	}
	response := toEnrichedLitterResponse(record)
	return &response, nil
}

func toEnrichedLitterResponse(record *entity.EnrichedLitter) dto.EnrichedLitterResponse {
	return dto.EnrichedLitterResponse{
		Id:          record.Id,
		Timestamp:   record.Timestamp,
		Category:    record.Category,
		Confidence:  record.Confidence,
		Temperature: record.Temperature,
		Location:    record.Location,
	}
}
