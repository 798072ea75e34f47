package ui

import (
	"io"
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/delivery-desk/v2/core"
	"github.com/delivery-desk/v2/internal/upload"
)

// ProfileUI holds the widgets of the account window: rename, password
// change and avatar upload.
type ProfileUI struct {
	Win fyne.Window

	nameEntry    *widget.Entry
	nameStatus   *widget.Label
	saveButton   *widget.Button
	currentEntry *widget.Entry
	newEntry     *widget.Entry
	confirmEntry *widget.Entry
	passStatus   *widget.Label
	passButton   *widget.Button
	avatarStatus *widget.Label
	avatarButton *widget.Button
}

// NewProfileWindow builds the account window. Every mutation goes
// through the manager; each button disables itself until its own call
// settles so a double click cannot fire a duplicate request.
func NewProfileWindow(a fyne.App, manager *core.AuthManager, store *core.SessionStore) *ProfileUI {
	ui := &ProfileUI{}
	ui.Win = a.NewWindow("Delivery Desk - Account")

	ui.nameEntry = widget.NewEntry()
	if session := store.Current(); session != nil {
		ui.nameEntry.SetText(session.User.Name)
	}
	ui.nameStatus = widget.NewLabel("")
	ui.nameStatus.Wrapping = fyne.TextWrapWord
	ui.saveButton = widget.NewButton("Save Name", func() {
		ui.saveButton.Disable()
		defer ui.saveButton.Enable()

		if err := manager.UpdateProfile(ui.nameEntry.Text); err != nil {
			log.Printf("Profile update failed: %v", err)
			ui.nameStatus.SetText(errorText(err))
			return
		}
		ui.nameStatus.SetText("Profile updated.")
	})
	nameCard := widget.NewCard("Display Name", "", container.NewVBox(ui.nameEntry, ui.saveButton, ui.nameStatus))

	ui.currentEntry = widget.NewPasswordEntry()
	ui.currentEntry.SetPlaceHolder("Current password")
	ui.newEntry = widget.NewPasswordEntry()
	ui.newEntry.SetPlaceHolder("New password")
	ui.confirmEntry = widget.NewPasswordEntry()
	ui.confirmEntry.SetPlaceHolder("Confirm new password")
	ui.passStatus = widget.NewLabel("")
	ui.passStatus.Wrapping = fyne.TextWrapWord
	ui.passButton = widget.NewButton("Change Password", func() {
		ui.passButton.Disable()
		defer ui.passButton.Enable()

		err := manager.ChangePassword(ui.currentEntry.Text, ui.newEntry.Text, ui.confirmEntry.Text)
		if err != nil {
			log.Printf("Password change failed: %v", err)
			ui.passStatus.SetText(errorText(err))
			return
		}
		ui.currentEntry.SetText("")
		ui.newEntry.SetText("")
		ui.confirmEntry.SetText("")
		ui.passStatus.SetText("Password changed.")
	})
	passCard := widget.NewCard("Password", "",
		container.NewVBox(ui.currentEntry, ui.newEntry, ui.confirmEntry, ui.passButton, ui.passStatus))

	ui.avatarStatus = widget.NewLabel("")
	ui.avatarStatus.Wrapping = fyne.TextWrapWord
	ui.avatarButton = widget.NewButton("Choose Image...", func() {
		picker := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil || reader == nil {
				return
			}
			defer reader.Close()

			data, readErr := io.ReadAll(reader)
			if readErr != nil {
				log.Printf("Failed to read avatar file: %v", readErr)
				ui.avatarStatus.SetText("Could not read the selected file.")
				return
			}

			ui.avatarButton.Disable()
			defer ui.avatarButton.Enable()

			candidate := candidateFromFile(reader.URI().Name(), data)
			if uploadErr := manager.UploadAvatar(candidate); uploadErr != nil {
				log.Printf("Avatar upload failed: %v", uploadErr)
				ui.avatarStatus.SetText(errorText(uploadErr))
				return
			}
			ui.avatarStatus.SetText("Avatar updated.")
		}, ui.Win)
		picker.SetFilter(storage.NewExtensionFileFilter([]string{".jpg", ".jpeg", ".png", ".gif", ".webp"}))
		picker.Show()
	})
	avatarCard := widget.NewCard("Avatar", "JPEG, PNG, GIF or WebP up to 5 MB",
		container.NewVBox(ui.avatarButton, ui.avatarStatus))

	ui.Win.SetContent(container.NewVBox(nameCard, passCard, avatarCard))
	ui.Win.Resize(fyne.NewSize(380, 520))
	ui.Win.CenterOnScreen()
	return ui
}

// candidateFromFile builds an upload candidate from a picked file. The
// MIME type is sniffed from the content rather than trusted from the
// extension.
func candidateFromFile(name string, data []byte) upload.Candidate {
	return upload.Candidate{
		Filename:  name,
		Bytes:     data,
		MIMEType:  http.DetectContentType(data),
		SizeBytes: int64(len(data)),
	}
}
