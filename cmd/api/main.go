package main

import (
	"fmt"
	"net/http"

	"github.com/paytrack/paytrack-backend-go/internal/config"
	"github.com/paytrack/paytrack-backend-go/internal/domain/attendance"
	appHTTP "github.com/paytrack/paytrack-backend-go/internal/handler/http"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/cron"
	"github.com/paytrack/paytrack-backend-go/internal/pkg/database"
	"github.com/paytrack/paytrack-backend-go/internal/repository/postgresql"
	employeeService "github.com/paytrack/paytrack-backend-go/internal/service/employee"
	financeService "github.com/paytrack/paytrack-backend-go/internal/service/finance"
	ingestService "github.com/paytrack/paytrack-backend-go/internal/service/ingest"
	leaveService "github.com/paytrack/paytrack-backend-go/internal/service/leave"
	payrollService "github.com/paytrack/paytrack-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	unmatchedRepo := postgresql.NewUnmatchedRepository(db)
	blocklistRepo := postgresql.NewBlocklistRepository(db)
	scheduleHistoryRepo := postgresql.NewScheduleHistoryRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	advanceRepo := postgresql.NewAdvanceRepository(db)
	bonusRepo := postgresql.NewBonusRepository(db)
	deductionRepo := postgresql.NewDeductionRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	terminationRepo := postgresql.NewTerminationRepository(db)

	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo, scheduleHistoryRepo, nil)
	ingestSvc := ingestService.NewIngestService(db, attendanceRepo, unmatchedRepo, blocklistRepo, employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	financeSvc := financeService.NewFinanceService(advanceRepo, bonusRepo, deductionRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(
		db,
		employeeRepo,
		attendanceRepo,
		blocklistRepo,
		scheduleHistoryRepo,
		leaveRepo,
		advanceRepo,
		bonusRepo,
		deductionRepo,
		paymentRepo,
		terminationRepo,
		payrollService.Defaults{
			Workdays:           cfg.Payroll.DefaultWorkdays,
			OvertimeMultiplier: cfg.Payroll.OvertimeMultiplierFallback,
		},
		nil,
	)

	attendanceHandler := appHTTP.NewAttendanceHandler(ingestSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	financeHandler := appHTTP.NewFinanceHandler(financeSvc)

	router := appHTTP.NewRouter(
		cfg,
		attendanceHandler,
		employeeHandler,
		payrollHandler,
		leaveHandler,
		financeHandler,
	)

	if cfg.Ingest.PullEnabled {
		sources := make([]attendance.PunchSource, 0, len(cfg.Ingest.PullURLs))
		for _, url := range cfg.Ingest.PullURLs {
			sources = append(sources, ingestService.NewHTTPSource(url))
		}

		scheduler := cron.NewScheduler()
		pullJobs := cron.NewPullJobs(sources, ingestSvc, cfg.Ingest.PullInterval)
		pullJobs.RegisterJobs(scheduler)
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
