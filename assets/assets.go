package assets

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed truck.png
var assetsFS embed.FS

// GetTruckResource returns the application icon for Fyne
func GetTruckResource() fyne.Resource {
	data, err := assetsFS.ReadFile("truck.png")
	if err != nil {
		return nil
	}
	return fyne.NewStaticResource("truck.png", data)
}
