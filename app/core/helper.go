package core

import (
	"os"
	"strings"
)

// GetDocumentsPath returns the directory generated fiche PDFs are written to,
// creating it if needed.
func GetDocumentsPath() string {
	documentsPath := Config.Server.DocumentsPath
	if documentsPath == "" {
		documentsPath = "documents"
	}
	if !strings.HasSuffix(documentsPath, "/") {
		documentsPath += "/"
	}
	os.MkdirAll(documentsPath, 0700)
	return documentsPath
}

// GetTmpUploadPath returns a fresh random subdirectory for request uploads.
func GetTmpUploadPath() string {
	tmpPath := Config.Server.TmpPath
	if tmpPath == "" {
		tmpPath = "./tmp"
	}
	if !strings.HasSuffix(tmpPath, "/") {
		tmpPath += "/"
	}
	tmpPath += RandomString(10) + "/"
	os.MkdirAll(tmpPath, 0700)
	return tmpPath
}
