// Package jobs runs the periodic background sweeps: flagging overdue
// invoices and raising low stock alerts.
package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"

	"github.com/twodigitsystem/vriddhi-book-sub003/internal/repositories"
	"github.com/twodigitsystem/vriddhi-book-sub003/internal/services"
)

type Scheduler struct {
	scheduler       gocron.Scheduler
	orgRepo         repositories.OrganizationRepository
	stockRepo       repositories.StockRepository
	invoiceSvc      services.InvoiceService
	notificationSvc services.NotificationService
}

func NewScheduler(orgRepo repositories.OrganizationRepository, stockRepo repositories.StockRepository, invoiceSvc services.InvoiceService, notificationSvc services.NotificationService) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:       scheduler,
		orgRepo:         orgRepo,
		stockRepo:       stockRepo,
		invoiceSvc:      invoiceSvc,
		notificationSvc: notificationSvc,
	}

	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	log.Printf("Starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) registerJobs() error {
	// Overdue sweep runs once a day, shortly after midnight
	if _, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 30, 0))),
		gocron.NewTask(s.markOverdueInvoices),
		gocron.WithName("invoice-overdue-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(1*time.Hour),
		gocron.NewTask(s.checkLowStock),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

func (s *Scheduler) markOverdueInvoices() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.forEachOrganization(ctx, func(orgID uuid.UUID) {
		updated, err := s.invoiceSvc.MarkOverdueInvoices(ctx, orgID, time.Now())
		if err != nil {
			log.Printf("Overdue sweep failed for organization %s: %v", orgID, err)
			return
		}
		if updated > 0 {
			log.Printf("Marked %d invoices overdue for organization %s", updated, orgID)
		}
	})
}

func (s *Scheduler) checkLowStock() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	s.forEachOrganization(ctx, func(orgID uuid.UUID) {
		rows, err := s.stockRepo.LowStockItems(ctx, orgID)
		if err != nil {
			log.Printf("Low stock scan failed for organization %s: %v", orgID, err)
			return
		}
		for _, row := range rows {
			if err := s.notificationSvc.SendLowStockAlert(ctx, orgID, row.Name, row.Stock, row.MinStock); err != nil {
				log.Printf("Low stock alert failed for item %s: %v", row.ItemID, err)
			}
		}
	})
}

func (s *Scheduler) forEachOrganization(ctx context.Context, fn func(orgID uuid.UUID)) {
	orgs, err := s.orgRepo.ListAll(ctx)
	if err != nil {
		log.Printf("Failed to list organizations for background sweep: %v", err)
		return
	}
	for _, org := range orgs {
		fn(org.ID)
	}
}
