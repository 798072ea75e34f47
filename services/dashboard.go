package services

import (
	"errors"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/delivery-desk/v2/core"
	"github.com/delivery-desk/v2/internal/auth"
	"github.com/delivery-desk/v2/internal/types"
)

// DashboardService fetches the read-only record sets the dashboard
// renders. These are plain read paths with no session logic of their
// own; the shared ApiClient (and through it the session guard) handles
// authorization.
type DashboardService struct {
	api   *ApiClient
	cache *core.RecordCache
}

// NewDashboardService creates the service. cache may be nil, in which
// case the offline fallback is disabled.
func NewDashboardService(api *ApiClient, cache *core.RecordCache) *DashboardService {
	return &DashboardService{api: api, cache: cache}
}

// Overview bundles the record sets the dashboard shows. FromCache is set
// when the API was unreachable and the data came from the local mirror.
type Overview struct {
	Deliveries []types.Delivery
	FuelLogs   []types.FuelLog
	Customers  []types.Customer
	FromCache  bool
}

// LoadOverview fetches deliveries, fuel logs and customers concurrently.
// On a transport failure it falls back to the local cache so the tables
// still render offline.
func (s *DashboardService) LoadOverview() (*Overview, error) {
	var overview Overview

	g := new(errgroup.Group)
	g.Go(func() error {
		return s.api.Get("/deliveries", &overview.Deliveries)
	})
	g.Go(func() error {
		return s.api.Get("/fuel-logs", &overview.FuelLogs)
	})
	g.Go(func() error {
		return s.api.Get("/customers", &overview.Customers)
	})

	if err := g.Wait(); err != nil {
		var netErr *auth.NetworkError
		if errors.As(err, &netErr) && s.cache != nil {
			if cached, cacheErr := s.loadFromCache(); cacheErr == nil {
				return cached, nil
			}
		}
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SaveDeliveries(overview.Deliveries); err != nil {
			log.Printf("Failed to cache deliveries: %v", err)
		}
		if err := s.cache.SaveCustomers(overview.Customers); err != nil {
			log.Printf("Failed to cache customers: %v", err)
		}
	}

	return &overview, nil
}

func (s *DashboardService) loadFromCache() (*Overview, error) {
	deliveries, err := s.cache.Deliveries()
	if err != nil {
		return nil, err
	}
	customers, err := s.cache.Customers()
	if err != nil {
		return nil, err
	}
	return &Overview{
		Deliveries: deliveries,
		Customers:  customers,
		FromCache:  true,
	}, nil
}

// ReportSummary fetches the aggregate counters for the reports page
func (s *DashboardService) ReportSummary() (*types.ReportSummary, error) {
	var summary types.ReportSummary
	if err := s.api.Get("/reports/summary", &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
