package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/condor-sim/internal/backtest"
	"github.com/contactkeval/condor-sim/internal/data"
	"github.com/contactkeval/condor-sim/internal/logger"
	"github.com/contactkeval/condor-sim/internal/report"
)

func main() {
	configPath := flag.String("config", filepath.Join("strategies", "iron_condor.json"), "path to JSON config")
	rest := flag.Bool("rest", false, "run as REST server (accept study jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	// .env is optional; a missing file just means keys come from the
	// environment.
	_ = godotenv.Load()

	cfg, err := backtest.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger.SetVerbosity(cfg.Verbosity)

	// choose provider
	var prov data.Provider
	switch {
	case cfg.BarsFile != "":
		prov = data.NewCSVDataProvider(cfg.BarsFile)
		log.Printf("[info] csv provider enabled (%s)", cfg.BarsFile)
	case os.Getenv("POLYGON_API_KEY") != "":
		prov = data.NewMassiveDataProvider(os.Getenv("POLYGON_API_KEY"))
		log.Printf("[info] massive provider enabled")
	default:
		prov = data.NewSyntheticProvider(cfg.Seed, 0)
		log.Printf("[info] synthetic provider enabled")
	}

	engine := backtest.NewEngine(cfg, prov)

	if *rest {
		mux := http.NewServeMux()
		mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
			log.Printf("[info] received /run request")
			res, err := engine.Run()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(res)
		})
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
		log.Printf("[info] starting REST server on %s", *port)
		log.Fatal(http.ListenAndServe(*port, mux))
		return
	}

	start := time.Now()
	res, err := engine.Run()
	if err != nil {
		log.Fatalf("study failed: %v", err)
	}

	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Printf("[warn] could not create output dir %s: %v", cfg.ReportDir, err)
	}
	_ = report.WriteJSON(res, cfg.ReportDir)
	_ = report.WriteCSV(res, cfg.ReportDir)
	report.PrintSummary(os.Stdout, res)
	log.Printf("[done] finished in %v, wrote reports to %s", time.Since(start), cfg.ReportDir)
}
