package main

import (
	"fmt"
	"net/http"

	"github.com/shiftsense/attendance-engine-go/internal/config"
	"github.com/shiftsense/attendance-engine-go/internal/domain/attendance"
	"github.com/shiftsense/attendance-engine-go/internal/gateway/timeapi"
	appHTTP "github.com/shiftsense/attendance-engine-go/internal/handler/http"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/cron"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/database"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/jwt"
	"github.com/shiftsense/attendance-engine-go/internal/pkg/sse"
	boardService "github.com/shiftsense/attendance-engine-go/internal/service/board"
	historyService "github.com/shiftsense/attendance-engine-go/internal/service/history"
	reportService "github.com/shiftsense/attendance-engine-go/internal/service/report"
	trackerService "github.com/shiftsense/attendance-engine-go/internal/service/tracker"
	"github.com/shiftsense/attendance-engine-go/internal/store/memory"
	"github.com/shiftsense/attendance-engine-go/internal/store/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	// Snapshot persistence is optional. Without a DSN the engine runs
	// memory-only and sessions start cold after a restart.
	var snapshots attendance.Snapshotter
	if cfg.Cache.DSN != "" {
		db, err := database.NewPostgreSQLDB(cfg.Cache.DSN)
		if err != nil {
			fmt.Println("Error connecting to snapshot database:", err)
			return
		}
		snapshots = postgres.NewSnapshotStore(db)
	}

	registry := memory.NewRegistry()
	hub := sse.NewHub()
	gateway := timeapi.NewClient(cfg.TimeAPI.BaseURL, cfg.TimeAPI.ServiceToken, cfg.TimeAPI.Timeout)
	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	trackerSvc := trackerService.NewTrackerService(gateway, registry, snapshots, hub)
	historySvc := historyService.NewHistoryService(gateway, registry, snapshots)
	reportSvc := reportService.NewReportService(historySvc, trackerSvc, registry, cfg.Report.CapacityHours)
	boardSvc := boardService.NewBoardService(gateway, registry, cfg.Report.BoardMaxAge)

	trackerHandler := appHTTP.NewTrackerHandler(trackerSvc)
	historyHandler := appHTTP.NewHistoryHandler(historySvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	employeesHandler := appHTTP.NewEmployeesHandler(boardSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	scheduler := cron.NewScheduler()
	refreshJobs := cron.NewRefreshJobs(gateway, registry, cfg.Cache.SessionMaxIdle)
	refreshJobs.Register(scheduler, cfg.Report.BoardRefreshInterval)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		trackerHandler,
		historyHandler,
		reportHandler,
		employeesHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
