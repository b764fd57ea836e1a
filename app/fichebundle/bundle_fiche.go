package fichebundle

import (
	"net/http"

	"github.com/jinzhu/gorm"

	"cardioapp_backend/app/core"
	"cardioapp_backend/app/delivery"
	"cardioapp_backend/app/ocr"
)

// FicheBundle handle fiche resources
type FicheBundle struct {
	routes []core.Route
}

// NewFicheBundle instance
func NewFicheBundle(ormDB *gorm.DB, dispatcher *delivery.Dispatcher, ocrClient ocr.ClientContract) core.Bundle {
	hc := NewFicheController(ormDB, dispatcher, ocrClient)

	r := []core.Route{
		core.Route{Method: http.MethodGet, Path: "/", Handler: hc.IndexHandler},

		core.Route{Method: http.MethodPost, Path: "/submit", Handler: hc.SubmitFicheHandler},

		core.Route{Method: http.MethodGet, Path: "/documents", Handler: hc.GetDocumentsHandler},
		core.Route{Method: http.MethodGet, Path: "/documents/{filename}", Handler: hc.GetDocumentHandler},
		core.Route{Method: http.MethodGet, Path: "/admin", Handler: hc.AdminPageHandler},

		core.Route{Method: http.MethodGet, Path: "/fiches", Handler: hc.GetFichesHandler},
		core.Route{Method: http.MethodGet, Path: "/fiches/export", Handler: hc.ExportFichesHandler},

		core.Route{Method: http.MethodPost, Path: "/upload-prescription", Handler: hc.UploadPrescriptionHandler},

		core.Route{Method: http.MethodGet, Path: "/ws/fiches", Handler: hc.FicheWebsocketHandler},

		core.Route{Method: http.MethodOptions, Path: "/submit", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/upload-prescription", Handler: hc.OptionsHandler},
		core.Route{Method: http.MethodOptions, Path: "/{rest:.*}", Handler: hc.OptionsHandler},
	}

	return &FicheBundle{
		routes: r,
	}
}

// GetRoutes implement interface core.Bundle
func (b *FicheBundle) GetRoutes() []core.Route {
	return b.routes
}
