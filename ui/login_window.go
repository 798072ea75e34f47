package ui

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/delivery-desk/v2/core"
)

// LoginUI holds the widgets of the sign-in window
type LoginUI struct {
	Win fyne.Window

	identifierEntry *widget.Entry
	passwordEntry   *widget.Entry
	statusLabel     *widget.Label
	loginButton     *widget.Button
}

// NewLoginWindow creates the login window. The manager does the work;
// this window only collects input and renders errors inline. onSuccess
// runs after a completed sign-in, before the window closes.
func NewLoginWindow(a fyne.App, manager *core.AuthManager, onSuccess func()) *LoginUI {
	ui := &LoginUI{}
	ui.Win = a.NewWindow("Delivery Desk - Sign In")

	ui.identifierEntry = widget.NewEntry()
	ui.identifierEntry.SetPlaceHolder("Email or username")

	ui.passwordEntry = widget.NewPasswordEntry()
	ui.passwordEntry.SetPlaceHolder("Password")

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Wrapping = fyne.TextWrapWord

	ui.loginButton = widget.NewButton("Sign In", func() {
		ui.statusLabel.SetText("Signing in...")

		err := manager.Login(ui.identifierEntry.Text, ui.passwordEntry.Text)
		if err != nil {
			log.Printf("Login failed: %v", err)
			ui.statusLabel.SetText(errorText(err))
			manager.Acknowledge()
			return
		}

		ui.statusLabel.SetText("")
		onSuccess()
		ui.Win.Close()
	})

	form := container.NewVBox(
		widget.NewLabel("Sign in to Delivery Desk"),
		ui.identifierEntry,
		ui.passwordEntry,
		ui.loginButton,
		ui.statusLabel,
	)

	ui.Win.SetContent(form)
	ui.Win.Resize(fyne.NewSize(320, 220))
	ui.Win.SetFixedSize(true)
	ui.Win.CenterOnScreen()
	return ui
}

// SetNotice shows a message above the form, e.g. after a forced expiry
func (ui *LoginUI) SetNotice(message string) {
	ui.statusLabel.SetText(message)
}
