package main

import (
	"fmt"
	"net/http"

	"github.com/hrportal/hr-backend-go/internal/config"
	appHTTP "github.com/hrportal/hr-backend-go/internal/handler/http"
	"github.com/hrportal/hr-backend-go/internal/pkg/cron"
	"github.com/hrportal/hr-backend-go/internal/pkg/database"
	"github.com/hrportal/hr-backend-go/internal/pkg/jwt"
	"github.com/hrportal/hr-backend-go/internal/repository/postgresql"
	employeeService "github.com/hrportal/hr-backend-go/internal/service/employee"
	leaveService "github.com/hrportal/hr-backend-go/internal/service/leave"
	payrollService "github.com/hrportal/hr-backend-go/internal/service/payroll"
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
	payrollRepo := postgresql.NewPayrollRepository(db)
	leaveLedgerRepo := postgresql.NewLeaveLedgerRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, employeeRepo)
	ledgerSvc := leaveService.NewLedgerService(leaveLedgerRepo, employeeRepo)
	requestSvc := leaveService.NewRequestService(db, leaveRequestRepo, employeeRepo, ledgerSvc)

	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	leaveHandler := appHTTP.NewLeaveHandler(JWTService, ledgerSvc, requestSvc)

	router := appHTTP.NewRouter(
		JWTService,
		employeeHandler,
		payrollHandler,
		leaveHandler,
		cfg.App.Env,
	)

	if cfg.Payroll.AutoGenerateEnabled {
		scheduler := cron.NewScheduler()
		scheduler.AddJob("payroll-generation", cfg.Payroll.AutoGenerateInterval, cron.PayrollGenerationJob(payrollSvc))
		scheduler.Start()
		defer scheduler.Stop()
	}

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
