package main

import (
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/delivery-desk/v2/assets"
	"github.com/delivery-desk/v2/core"
	"github.com/delivery-desk/v2/internal/config"
	"github.com/delivery-desk/v2/services"
	"github.com/delivery-desk/v2/ui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	myApp := app.New()
	if icon := assets.GetTruckResource(); icon != nil {
		myApp.SetIcon(icon)
	}

	store, err := core.NewSessionStore(cfg.DataDir)
	if err != nil {
		log.Fatalf("Failed to set up session store: %v", err)
	}
	if store.Hydrate() {
		log.Println("Restored a persisted session token.")
	}

	// The guard sits on the shared HTTP client so a 401 from any
	// endpoint, not just the auth ones, forces the expiry transition.
	// The manager is bound through the closure because it is built on
	// top of the client the guard wraps.
	var manager *core.AuthManager
	var showLogin func(notice string)
	var dashboard *ui.DashboardUI

	closeDashboard := func() {
		if dashboard != nil {
			dashboard.Win.Close()
			dashboard = nil
		}
	}

	guard := core.NewSessionGuard(nil, func() bool {
		if manager == nil {
			return false
		}
		return manager.ForceExpire()
	}, func() {
		fyne.Do(func() {
			closeDashboard()
			showLogin("Your session has expired. Please sign in again.")
		})
	})

	httpClient := &http.Client{Transport: guard}
	api := services.NewApiClient(cfg.APIBaseURL, httpClient, store)
	manager = core.NewAuthManager(services.NewAuthClient(api), store)

	cache, err := core.NewRecordCache(cfg.DataDir, "")
	if err == nil {
		err = cache.Connect()
	}
	if err != nil {
		log.Printf("Record cache unavailable, offline fallback disabled: %v", err)
		cache = nil
	}
	dashboards := services.NewDashboardService(api, cache)

	showDashboard := func() {
		dashboard = ui.NewDashboardWindow(myApp, manager, store, dashboards, func() {
			dashboard = nil
			if cache != nil {
				if err := cache.Clear(); err != nil {
					log.Printf("Failed to clear record cache: %v", err)
				}
			}
			showLogin("")
		})
		dashboard.Win.Show()
	}

	showLogin = func(notice string) {
		login := ui.NewLoginWindow(myApp, manager, showDashboard)
		if notice != "" {
			login.SetNotice(notice)
		}
		login.Win.Show()
	}

	if manager.State() == core.StateAuthenticated {
		log.Println("Session token found, launching dashboard.")
		showDashboard()
	} else {
		showLogin("")
	}

	myApp.Run()

	if cache != nil {
		cache.Close()
	}
	log.Println("Application has exited.")
}
