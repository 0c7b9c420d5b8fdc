// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"carpools/internal/config"
	httptransport "carpools/internal/http"
	"carpools/internal/http/handlers"
	"carpools/internal/infra"
	"carpools/internal/logging"
	"carpools/internal/maps"
	"carpools/internal/modules/drive"
	"carpools/internal/modules/journal"
	"carpools/internal/modules/matching"
	"carpools/internal/modules/region"
	"carpools/internal/modules/rider"
	"carpools/internal/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(os.Getenv("CARPOOL_LOG_LEVEL"))
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fsClient, err := infra.NewFirestore(ctx, cfg.Google.ProjectID, cfg.Google.FirebaseCreds)
	if err != nil {
		logger.Fatal("firestore init", zap.Error(err))
	}
	defer fsClient.Close()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		logger.Fatal("postgres init", zap.Error(err))
	}
	defer dbPool.Close()

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	geocoder, err := maps.NewGoogleGeocoder(cfg.Google.MapsAPIKey)
	if err != nil {
		logger.Fatal("maps init", zap.Error(err))
	}
	cachedGeocoder := maps.NewCachedGeocoder(geocoder, redisClient,
		time.Duration(cfg.GeocodeCacheHours)*time.Hour, logger)

	var roster handlers.RosterSource
	if len(cfg.Google.SheetsCreds) > 0 {
		sheetsClient, err := sheets.NewClient(ctx, cfg.Google.SheetsCreds)
		if err != nil {
			logger.Fatal("sheets init", zap.Error(err))
		}
		roster = sheetsClient
	}

	classifier := region.NewClassifier(region.DefaultRules())
	pairingJournal := journal.New(dbPool)

	riderStore := rider.NewStore(fsClient)
	riderSvc := rider.NewService(riderStore, logger)

	driveStore := drive.NewStore(fsClient)
	driveSvc := drive.NewService(driveStore, cachedGeocoder, classifier, riderSvc,
		pairingJournal, cfg.Matching.DefaultSeats, logger)

	matchingSvc := matching.NewService(driveStore, riderSvc, riderSvc, pairingJournal, logger)

	router := httptransport.NewRouter(httptransport.RouterDeps{
		Drives:        driveSvc,
		Matcher:       matchingSvc,
		Riders:        riderSvc,
		Roster:        roster,
		SpreadsheetID: cfg.Google.SpreadsheetID,
		CORSOrigin:    cfg.HTTP.CORSOrigin,
		Log:           logger,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: router}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("carpool api listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server", zap.Error(err))
	}
}
