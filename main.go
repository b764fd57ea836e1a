// Package main boots the CardioApp fiche backend: patient intake forms come
// in over HTTP, get archived, rendered to PDF and forwarded to the configured
// delivery sinks.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/gorilla/mux"
	"github.com/jinzhu/gorm"
	"github.com/samuel/go-metrics/metrics"

	"cardioapp_backend/app/core"
	"cardioapp_backend/app/delivery"
	"cardioapp_backend/app/fichebundle"
	"cardioapp_backend/app/ocr"
	web3socket "cardioapp_backend/app/websocket"
)

var (
	ormDB *gorm.DB
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("----")
	startServer()
	log.Println("----")
}

func initBundles(dispatcher *delivery.Dispatcher, ocrClient *ocr.Client) []core.Bundle {
	return []core.Bundle{
		fichebundle.NewFicheBundle(ormDB, dispatcher, ocrClient),
	}
}

func startServer() error {
	os.MkdirAll("logs", 0700)
	f, err := os.OpenFile(fmt.Sprintf("logs/log_runtime_%s", time.Now().Format("2006-01-02")), os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		log.Println(err)
	} else {
		defer f.Close()
	}

	configFile := ""
	flag.StringVar(&configFile, "configFile", "config.json", "a string")
	flag.Parse()
	if configFile == "" {
		configFile = "config.json"
	}
	log.Println("using configfile: ", configFile)

	core.Config = core.Configuration{}
	if file, err := os.Open(configFile); err == nil {
		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&core.Config); err != nil {
			log.Println("error: ", err)
		}
		file.Close()
	} else {
		log.Println("no config file, relying on environment: ", err)
	}
	core.GetEnvironmentConfig(&core.Config)

	dataSourceName := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", core.Config.Database.User, core.Config.Database.Password, core.Config.Database.Host, core.Config.Database.Port, core.Config.Database.Database)
	log.Print("connecting to database... ")
	ormdb, err := gorm.Open("mysql", dataSourceName)
	for err != nil {
		log.Println(err)
		time.Sleep(3 * time.Second)
		ormdb, err = gorm.Open("mysql", dataSourceName)
	}
	log.Println("done")

	ormdb.Exec("SET NAMES utf8")
	ormdb.Exec("SET time_zone = \"+00:00\"")
	ormDB = ormdb
	ormDB.LogMode(core.Config.Database.Debug)

	metricsRegistry := metrics.NewRegistry()
	targets := delivery.BuildTargets(&core.Config)
	dispatcher := delivery.NewDispatcher(targets, time.Duration(core.Config.Delivery.TimeoutSeconds)*time.Second, metricsRegistry)
	log.Printf("delivery: %d target(s) configured", dispatcher.TargetCount())

	ocrClient := ocr.NewClient(core.Config.OCR)
	if !ocrClient.Configured() {
		log.Println("ocr: collaborator not configured, prescription upload returns empty text")
	}

	go web3socket.HandleBroadcastMessages()

	r := mux.NewRouter()

	log.Print("Adding routes... ")
	for _, b := range initBundles(dispatcher, ocrClient) {
		for _, route := range b.GetRoutes() {
			r.Handle(route.Path, middleWare(f, route.Handler)).Methods(route.Method)
		}
	}
	log.Println("done")

	if core.Config.Server.DeliverFrontEnd {
		deliverFrontEnd(core.Config.Server.FrontEndPath, r)
	}

	address := fmt.Sprintf(":%d", core.Config.Server.InternalPort)
	log.Println(address)

	if core.Config.Server.WithSSL {
		log.Fatal(http.ListenAndServeTLS(address, core.Config.Server.SSLCertFile, core.Config.Server.SSLKeyFile, r))
	} else {
		log.Fatal(http.ListenAndServe(address, r))
	}

	return nil
}

func middleWare(f *os.File, h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Println(r.Method, r.RequestURI)
		h.ServeHTTP(w, r)

		if f != nil {
			text := fmt.Sprintf("Time: %s - Duration: %f - Route: %s\n", time.Now().Format("2006-01-02 15:04:05"), time.Since(start).Seconds(), r.RequestURI)
			if _, err := f.WriteString(text); err != nil {
				log.Println(err)
			}
		}
	})
}

func deliverFrontEnd(frontEndPath string, r *mux.Router) {
	if frontEndPath == "" {
		frontEndPath = "./frontend"
	}
	r.PathPrefix("/").Handler(http.FileServer(http.Dir(frontEndPath)))
}
