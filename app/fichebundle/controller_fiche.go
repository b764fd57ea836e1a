package fichebundle

import (
	"errors"
	"fmt"
	"html"
	"io"
	"io/ioutil"
	"log"
	"net/http"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jinzhu/copier"
	"github.com/jinzhu/gorm"
	"github.com/tealeg/xlsx"

	"cardioapp_backend/app/core"
	"cardioapp_backend/app/delivery"
	"cardioapp_backend/app/ocr"
	web3socket "cardioapp_backend/app/websocket"
)

var documentFilenameRegexp = regexp.MustCompile(`^fiche_[0-9a-f]{32}\.pdf$`)

// FicheController handles the intake pipeline and the document archive.
type FicheController struct {
	core.Controller
	ormDB         *gorm.DB
	store         FicheStoreContract
	dispatcher    *delivery.Dispatcher
	ocrClient     ocr.ClientContract
	documentsPath string
}

func NewFicheController(ormDB *gorm.DB, dispatcher *delivery.Dispatcher, ocrClient ocr.ClientContract) *FicheController {
	return &FicheController{
		ormDB:         ormDB,
		store:         NewFicheStore(ormDB),
		dispatcher:    dispatcher,
		ocrClient:     ocrClient,
		documentsPath: core.GetDocumentsPath(),
	}
}

// SubmitFicheHandler runs one submission through the pipeline: validate,
// append to the archive, render the PDF, hand off to delivery. Delivery runs
// in the background and never influences the response.
func (c *FicheController) SubmitFicheHandler(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(r.Body)
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	fiche, err := ValidateFiche(body)
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusBadRequest)
		return
	}

	token := strings.ReplaceAll(uuid.New().String(), "-", "")
	record, err := c.store.Append(token, time.Now().UTC(), string(body))
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusServiceUnavailable)
		return
	}

	// The row stays even if rendering fails below.
	filename := fmt.Sprintf("fiche_%s.pdf", token)
	layout := BuildLayout(fiche)
	if err := WritePDF(layout, c.documentsPath+filename); err != nil {
		log.Println(err)
		c.HandleErrorWithStatus(err, w, http.StatusInternalServerError)
		return
	}

	if c.dispatcher != nil && c.dispatcher.TargetCount() > 0 {
		doc := delivery.Document{
			Token:    token,
			Filename: filename,
			Path:     c.documentsPath + filename,
		}
		go c.dispatcher.Dispatch(doc)
	}

	web3socket.SendBroadcastWebsocketDataInfoMessage("fiche submitted", web3socket.Websocket_Add, web3socket.Websocket_Fiche, map[string]interface{}{
		"id":           token,
		"filename":     filename,
		"submitted_at": record.SubmittedAt,
	})

	c.SendPlainJSON(w, &SubmitResponse{
		Ok:               true,
		Id:               token,
		DocumentFilename: filename,
		DocumentUrl:      "/documents/" + filename,
		AdminUrl:         "/admin",
	}, http.StatusOK)
}

// GetDocumentHandler streams one generated PDF back.
func (c *FicheController) GetDocumentHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	filename := vars["filename"]

	if !documentFilenameRegexp.MatchString(filename) {
		c.HandleNotFoundError(core.ErrNotFound, w)
		return
	}
	if _, err := os.Stat(c.documentsPath + filename); err != nil {
		c.HandleNotFoundError(core.ErrNotFound, w)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	c.SendFileWithName(w, r, c.documentsPath+filename, filename)
}

// GetDocumentsHandler lists generated documents newest first, as JSON for API
// clients and as the admin HTML page otherwise.
func (c *FicheController) GetDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !c.checkAdminKey(w, r) {
		return
	}

	filenames, err := c.listDocumentFilenames()
	if c.HandleError(err, w) {
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		c.SendJSON(w, filenames, http.StatusOK)
		return
	}
	c.sendAdminPage(w, filenames)
}

// AdminPageHandler is the original admin path, kept for deployed frontends.
func (c *FicheController) AdminPageHandler(w http.ResponseWriter, r *http.Request) {
	if !c.checkAdminKey(w, r) {
		return
	}

	filenames, err := c.listDocumentFilenames()
	if c.HandleError(err, w) {
		return
	}
	c.sendAdminPage(w, filenames)
}

func (c *FicheController) sendAdminPage(w http.ResponseWriter, filenames []string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Access-Control-Allow-Origin", "*")

	page := "<h1>Fiches PDF</h1>"
	page += "<p>Liste des PDFs générés (du plus récent au plus ancien).</p>"
	if len(filenames) == 0 {
		page += "<p><i>Aucune fiche</i></p>"
	}
	for _, f := range filenames {
		escaped := html.EscapeString(f)
		page += fmt.Sprintf(`<p><a href="/documents/%s" target="_blank" rel="noopener">%s</a></p>`, escaped, escaped)
	}
	io.WriteString(w, page)
}

// listDocumentFilenames returns the generated PDFs newest first.
func (c *FicheController) listDocumentFilenames() ([]string, error) {
	entries, err := ioutil.ReadDir(c.documentsPath)
	if err != nil {
		return nil, err
	}

	files := []os.FileInfo{}
	for _, entry := range entries {
		if !entry.IsDir() && documentFilenameRegexp.MatchString(entry.Name()) {
			files = append(files, entry)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime().Equal(files[j].ModTime()) {
			return files[i].Name() > files[j].Name()
		}
		return files[i].ModTime().After(files[j].ModTime())
	})

	filenames := make([]string, 0, len(files))
	for _, f := range files {
		filenames = append(filenames, f.Name())
	}
	return filenames, nil
}

// GetFichesHandler returns the record archive newest first for operator
// review.
func (c *FicheController) GetFichesHandler(w http.ResponseWriter, r *http.Request) {
	if !c.checkAdminKey(w, r) {
		return
	}

	paging := c.GetPaging(r.URL.Query())
	records, err := c.store.List(paging)
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusServiceUnavailable)
		return
	}

	items := make([]FicheListItem, 0, len(records))
	for _, record := range records {
		item := FicheListItem{}
		copier.Copy(&item, &record)
		items = append(items, item)
	}
	c.SendJSONPaging(w, r, paging, &items, http.StatusOK)
}

// ExportFichesHandler writes the fiche archive as a spreadsheet.
func (c *FicheController) ExportFichesHandler(w http.ResponseWriter, r *http.Request) {
	if !c.checkAdminKey(w, r) {
		return
	}

	records, err := c.store.ListAll()
	if err != nil {
		c.HandleErrorWithStatus(err, w, http.StatusServiceUnavailable)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Fiches")
	if c.HandleError(err, w) {
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "Soumise le", "Nom", "Prénom", "Motif"} {
		header.AddCell().Value = title
	}

	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().Value = record.Token
		row.AddCell().Value = record.SubmittedAt.Format("2006-01-02 15:04:05")

		fiche, err := ValidateFiche([]byte(record.RawPayload))
		if err != nil {
			// archive rows predating a schema tweak still get exported
			row.AddCell().Value = ""
			row.AddCell().Value = ""
			row.AddCell().Value = ""
			continue
		}
		row.AddCell().Value = stringField(&fiche.Administratif, "nom")
		row.AddCell().Value = stringField(&fiche.Administratif, "prenom")
		row.AddCell().Value = stringField(&fiche.MotifConsultation, "motif")
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="fiches.xlsx"`)
	w.Header().Add("Access-Control-Allow-Origin", "*")
	if err := file.Write(w); err != nil {
		log.Println(err)
	}
}

func stringField(m *OrderedMap, key string) string {
	if v, ok := m.Get(key); ok {
		return FormatValue(v)
	}
	return ""
}

// UploadPrescriptionHandler accepts a prescription photo and returns the text
// the OCR collaborator extracted. Failures degrade to empty text, never an
// error: the caller can always type the prescription by hand.
func (c *FicheController) UploadPrescriptionHandler(w http.ResponseWriter, r *http.Request) {
	text := ""
	defer func() {
		c.SendPlainJSON(w, map[string]string{"text": text}, http.StatusOK)
	}()

	if c.ocrClient == nil || !c.ocrClient.Configured() {
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Println(err)
		return
	}
	file, handler, err := r.FormFile("file")
	if err != nil {
		log.Println(err)
		return
	}
	defer file.Close()

	tmpPath := core.GetTmpUploadPath() + handler.Filename
	out, err := os.Create(tmpPath)
	if err != nil {
		log.Println(err)
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		log.Println(err)
		return
	}
	out.Close()
	defer os.Remove(tmpPath)

	extracted, err := c.ocrClient.ExtractText(r.Context(), tmpPath)
	if err != nil {
		log.Println(err)
		return
	}
	text = extracted
}

// FicheWebsocketHandler upgrades the connection and joins the admin live
// feed.
func (c *FicheController) FicheWebsocketHandler(w http.ResponseWriter, r *http.Request) {
	if !c.checkAdminKey(w, r) {
		return
	}

	ws, err := web3socket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	web3socket.RegisterClient(ws)
}

// IndexHandler serves the static entry page when frontend delivery is on.
func (c *FicheController) IndexHandler(w http.ResponseWriter, r *http.Request) {
	indexFile := "index.html"
	if core.Config.Server.FrontEndPath != "" {
		indexFile = strings.TrimSuffix(core.Config.Server.FrontEndPath, "/") + "/index.html"
	}
	if _, err := os.Stat(indexFile); err != nil {
		c.HandleNotFoundError(core.ErrNotFound, w)
		return
	}
	http.ServeFile(w, r, indexFile)
}

// checkAdminKey enforces the optional admin access key on operator routes.
func (c *FicheController) checkAdminKey(w http.ResponseWriter, r *http.Request) bool {
	key := core.Config.Server.AdminKey
	if key == "" {
		return true
	}

	provided := r.URL.Query().Get("key")
	if provided == "" {
		provided = r.Header.Get("X-Admin-Key")
	}
	if provided != key {
		c.HandleUnauthorizedError(errors.New("admin key required"), w)
		return false
	}
	return true
}
