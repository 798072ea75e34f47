package ui

import (
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/delivery-desk/v2/core"
	"github.com/delivery-desk/v2/internal/auth"
	"github.com/delivery-desk/v2/internal/types"
	"github.com/delivery-desk/v2/services"
)

var deliveryColumns = []string{"Tracking", "Customer", "Address", "Status", "Driver", "Scheduled", "COD"}
var fuelColumns = []string{"Vehicle", "Driver", "Liters", "Cost", "Filled At"}
var customerColumns = []string{"Name", "Email", "Phone", "Address", "Orders"}

// DashboardUI is the main window: record tables, reports summary and the
// entry points into the profile window and logout.
type DashboardUI struct {
	App fyne.App
	Win fyne.Window

	userLabel     *widget.Label
	noticeLabel   *widget.Label
	refreshButton *widget.Button
	profileButton *widget.Button
	logoutButton  *widget.Button
	summaryLabel  *widget.Label

	deliveryTable *widget.Table
	fuelTable     *widget.Table
	customerTable *widget.Table
	tabs          *container.AppTabs

	overview services.Overview
	summary  types.ReportSummary

	manager     *core.AuthManager
	store       *core.SessionStore
	dashboards  *services.DashboardService
	onSignedOut func()
	unsubscribe func()
}

// NewDashboardWindow builds the main window. onSignedOut runs after an
// explicit logout so the caller can bring the login window back.
func NewDashboardWindow(a fyne.App, manager *core.AuthManager, store *core.SessionStore,
	dashboards *services.DashboardService, onSignedOut func()) *DashboardUI {

	ui := &DashboardUI{
		App:         a,
		manager:     manager,
		store:       store,
		dashboards:  dashboards,
		onSignedOut: onSignedOut,
	}
	ui.Win = a.NewWindow("Delivery Desk")
	ui.Win.Resize(fyne.NewSize(860, 560))

	ui.setupUI()
	ui.loadOverview()

	// Keep the signed-in header in step with the session, including
	// profile renames and avatar changes made in the profile window.
	ui.unsubscribe = store.Subscribe(func(session *auth.Session) {
		fyne.Do(func() {
			ui.updateUserLabel(session)
		})
	})
	ui.Win.SetOnClosed(func() {
		if ui.unsubscribe != nil {
			ui.unsubscribe()
		}
	})

	ui.updateUserLabel(store.Current())
	return ui
}

// setupUI creates the header, the record tabs and the footer
func (ui *DashboardUI) setupUI() {
	ui.userLabel = widget.NewLabel("")
	ui.noticeLabel = widget.NewLabel("")
	ui.noticeLabel.Hide()

	ui.refreshButton = widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), ui.loadOverview)
	ui.profileButton = widget.NewButton("Profile", ui.openProfile)
	ui.logoutButton = widget.NewButton("Sign Out", ui.signOut)

	header := container.NewBorder(nil, nil, ui.userLabel,
		container.NewHBox(ui.refreshButton, ui.profileButton, ui.logoutButton),
		ui.noticeLabel)

	ui.deliveryTable = ui.newRecordTable(deliveryColumns, func() int { return len(ui.overview.Deliveries) }, ui.deliveryCell)
	ui.deliveryTable.SetColumnWidth(0, 110)
	ui.deliveryTable.SetColumnWidth(1, 140)
	ui.deliveryTable.SetColumnWidth(2, 200)

	ui.fuelTable = ui.newRecordTable(fuelColumns, func() int { return len(ui.overview.FuelLogs) }, ui.fuelCell)
	ui.customerTable = ui.newRecordTable(customerColumns, func() int { return len(ui.overview.Customers) }, ui.customerCell)
	ui.customerTable.SetColumnWidth(1, 180)
	ui.customerTable.SetColumnWidth(3, 200)

	ui.summaryLabel = widget.NewLabel("Loading report summary...")
	ui.summaryLabel.Wrapping = fyne.TextWrapWord

	ui.tabs = container.NewAppTabs(
		container.NewTabItem("Deliveries", ui.deliveryTable),
		container.NewTabItem("Fuel Logs", ui.fuelTable),
		container.NewTabItem("Reports", container.NewVScroll(ui.summaryLabel)),
	)

	// Customers hold contact data; the tab only exists for admins and an
	// unknown role is treated as non-admin.
	if session := ui.store.Current(); session != nil && session.User.Role.IsAdmin() {
		ui.tabs.Append(container.NewTabItem("Customers", ui.customerTable))
	}

	ui.Win.SetContent(container.NewBorder(header, nil, nil, nil, ui.tabs))
}

func (ui *DashboardUI) newRecordTable(columns []string, rowCount func() int, cell func(row, col int) string) *widget.Table {
	table := widget.NewTable(
		func() (int, int) { return rowCount() + 1, len(columns) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, obj fyne.CanvasObject) {
			label := obj.(*widget.Label)
			if id.Row == 0 {
				label.TextStyle = fyne.TextStyle{Bold: true}
				label.SetText(columns[id.Col])
				return
			}
			label.TextStyle = fyne.TextStyle{}
			label.SetText(cell(id.Row-1, id.Col))
		},
	)
	return table
}

func (ui *DashboardUI) deliveryCell(row, col int) string {
	if row >= len(ui.overview.Deliveries) {
		return ""
	}
	d := ui.overview.Deliveries[row]
	switch col {
	case 0:
		return d.TrackingCode
	case 1:
		return d.Customer
	case 2:
		return d.Address
	case 3:
		return d.Status
	case 4:
		return d.Driver
	case 5:
		return formatTimestamp(d.ScheduledAt)
	case 6:
		return fmt.Sprintf("%.2f", d.CODAmount)
	}
	return ""
}

func (ui *DashboardUI) fuelCell(row, col int) string {
	if row >= len(ui.overview.FuelLogs) {
		return ""
	}
	f := ui.overview.FuelLogs[row]
	switch col {
	case 0:
		return f.Vehicle
	case 1:
		return f.Driver
	case 2:
		return fmt.Sprintf("%.1f", f.Liters)
	case 3:
		return fmt.Sprintf("%.2f", f.Cost)
	case 4:
		return f.FilledAt.Local().Format("2006-01-02 15:04")
	}
	return ""
}

func (ui *DashboardUI) customerCell(row, col int) string {
	if row >= len(ui.overview.Customers) {
		return ""
	}
	c := ui.overview.Customers[row]
	switch col {
	case 0:
		return c.Name
	case 1:
		return c.Email
	case 2:
		return c.Phone
	case 3:
		return c.Address
	case 4:
		return fmt.Sprintf("%d", c.TotalOrders)
	}
	return ""
}

// loadOverview refreshes all record sets off the UI thread
func (ui *DashboardUI) loadOverview() {
	ui.refreshButton.Disable()

	go func() {
		overview, err := ui.dashboards.LoadOverview()
		summary, summaryErr := ui.dashboards.ReportSummary()

		fyne.Do(func() {
			ui.refreshButton.Enable()
			if err != nil {
				log.Printf("Failed to load dashboard records: %v", err)
				ui.showNotice(errorText(err))
				return
			}

			ui.overview = *overview
			if overview.FromCache {
				ui.showNotice("Offline: showing locally cached records.")
			} else {
				ui.clearNotice()
			}
			ui.deliveryTable.Refresh()
			ui.fuelTable.Refresh()
			ui.customerTable.Refresh()

			if summaryErr != nil {
				log.Printf("Failed to load report summary: %v", summaryErr)
				ui.summaryLabel.SetText("Report summary unavailable.")
			} else {
				ui.summary = *summary
				ui.summaryLabel.SetText(fmt.Sprintf(
					"Deliveries: %d total (%d delivered, %d pending, %d failed)\nCOD collected: %.2f",
					summary.Total, summary.Delivered, summary.Pending, summary.Failed, summary.CODCollected))
			}
		})
	}()
}

func (ui *DashboardUI) openProfile() {
	profile := NewProfileWindow(ui.App, ui.manager, ui.store)
	profile.Win.Show()
}

func (ui *DashboardUI) signOut() {
	if err := ui.manager.Logout(); err != nil {
		// Local state is already cleared; the remote failure is only
		// worth a mention.
		log.Printf("Remote logout failed: %v", err)
	}
	ui.onSignedOut()
	ui.Win.Close()
}

func (ui *DashboardUI) updateUserLabel(session *auth.Session) {
	if session == nil {
		ui.userLabel.SetText("Signed out")
		return
	}
	name := session.User.Name
	if name == "" {
		// Right after startup only the token is hydrated; the profile
		// arrives with the first authenticated call.
		name = "…"
	}
	role := string(session.User.Role)
	if role == "" {
		ui.userLabel.SetText("Signed in as " + name)
		return
	}
	ui.userLabel.SetText(fmt.Sprintf("Signed in as %s (%s)", name, role))
}

func (ui *DashboardUI) showNotice(message string) {
	ui.noticeLabel.SetText(message)
	ui.noticeLabel.Show()
}

func (ui *DashboardUI) clearNotice() {
	ui.noticeLabel.SetText("")
	ui.noticeLabel.Hide()
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Local().Format("2006-01-02 15:04")
}
