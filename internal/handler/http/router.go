package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"

	"github.com/paytrack/paytrack-backend-go/internal/config"
)

func NewRouter(
	cfg *config.Config,
	attendanceHandler AttendanceHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	financeHandler FinanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "paytrack"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/punches", func(r chi.Router) {
			r.Post("/", attendanceHandler.IngestPunches)

			r.Route("/unmatched", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListUnmatched)
				r.Post("/{id}/resolve", attendanceHandler.ResolveUnmatched)
			})

			r.Route("/blocked", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListBlocked)
				r.Post("/", attendanceHandler.BlockIdentifier)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.List)
			r.Post("/", employeeHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.Get)
				r.Patch("/", employeeHandler.Update)

				r.Get("/attendance", attendanceHandler.ListAttendance)
				r.Get("/schedule-history", employeeHandler.ListScheduleHistory)
				r.Get("/daily-hours", employeeHandler.GetDailyHours)

				r.Get("/payroll", payrollHandler.Compute)
				r.Post("/payroll/deliver", payrollHandler.DeliverSalary)
				r.Get("/payments", payrollHandler.ListPayments)

				r.Post("/terminate", payrollHandler.Terminate)
				r.Get("/termination", payrollHandler.GetTermination)

				r.Get("/advances/outstanding", financeHandler.ListOutstandingAdvances)
			})
		})

		r.Route("/leave-requests", func(r chi.Router) {
			r.Post("/", leaveHandler.CreateRequest)
			r.Post("/{id}/approve", leaveHandler.ApproveRequest)
			r.Post("/{id}/reject", leaveHandler.RejectRequest)
		})

		r.Route("/advances", func(r chi.Router) {
			r.Post("/", financeHandler.CreateAdvance)
			r.Post("/{id}/approve", financeHandler.ApproveAdvance)
			r.Post("/{id}/reject", financeHandler.RejectAdvance)
		})

		r.Post("/bonuses", financeHandler.CreateBonus)
		r.Post("/deductions", financeHandler.CreateDeduction)
	})
	return r
}
