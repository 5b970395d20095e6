package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/avoronov/moneta/internal/advisor"
	"github.com/avoronov/moneta/internal/analytics"
	"github.com/avoronov/moneta/internal/auth"
	"github.com/avoronov/moneta/internal/balance"
	"github.com/avoronov/moneta/internal/banksync"
	bankStore "github.com/avoronov/moneta/internal/banksync/store"
	"github.com/avoronov/moneta/internal/budget"
	budgetStore "github.com/avoronov/moneta/internal/budget/store"
	"github.com/avoronov/moneta/internal/category"
	categoryStore "github.com/avoronov/moneta/internal/category/store"
	"github.com/avoronov/moneta/internal/config"
	"github.com/avoronov/moneta/internal/database"
	monetaHttp "github.com/avoronov/moneta/internal/http"
	accountHandler "github.com/avoronov/moneta/internal/http/account"
	aiHandler "github.com/avoronov/moneta/internal/http/ai"
	analyticsHandler "github.com/avoronov/moneta/internal/http/analytics"
	authHandler "github.com/avoronov/moneta/internal/http/auth"
	bankHandler "github.com/avoronov/moneta/internal/http/bank"
	budgetHandler "github.com/avoronov/moneta/internal/http/budget"
	categoryHandler "github.com/avoronov/moneta/internal/http/category"
	paymentMethodHandler "github.com/avoronov/moneta/internal/http/paymentmethod"
	txHandler "github.com/avoronov/moneta/internal/http/transaction"
	"github.com/avoronov/moneta/internal/paymentmethod"
	paymentMethodStore "github.com/avoronov/moneta/internal/paymentmethod/store"
	"github.com/avoronov/moneta/internal/transaction"
	txStore "github.com/avoronov/moneta/internal/transaction/store"
	"github.com/avoronov/moneta/internal/user"
	userStore "github.com/avoronov/moneta/internal/user/store"
)

func main() {
	// Missing .env is fine; real deployments use environment variables.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(cfg.ConnectionString()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	usersStore := userStore.New(db)
	budgetsStore := budgetStore.New(db)

	var (
		tokens = auth.NewManager(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL)

		userService          = user.NewService(usersStore)
		transactionService   = transaction.NewService(txStore.New(db))
		budgetService        = budget.NewService(budgetsStore)
		categoryService      = category.NewService(categoryStore.New(db))
		paymentMethodService = paymentmethod.NewService(paymentMethodStore.New(db))

		ledger           = balance.NewLedger(usersStore, transactionService)
		analyticsService = analytics.NewService(transactionService, budgetsStore)
		bankService      = banksync.NewService(
			banksync.NewHTTPClient(cfg.Bank.Environment, cfg.Bank.ClientID, cfg.Bank.Secret),
			bankStore.New(db),
			ledger,
			logger,
		)
		advisorService = advisor.NewService(
			advisor.NewOpenAIClient(cfg.AI.APIKey, cfg.AI.Model),
			transactionService,
		)
	)

	var (
		authH          = authHandler.NewHandler(userService, tokens)
		accountH       = accountHandler.NewHandler(userService)
		transactionH   = txHandler.NewHandler(transactionService)
		analyticsH     = analyticsHandler.NewHandler(analyticsService)
		budgetH        = budgetHandler.NewHandler(budgetService)
		categoryH      = categoryHandler.NewHandler(categoryService)
		paymentMethodH = paymentMethodHandler.NewHandler(paymentMethodService)
		bankH          = bankHandler.NewHandler(bankService)
		aiH            = aiHandler.NewHandler(advisorService)
	)

	router := monetaHttp.New(
		tokens,
		authH,
		accountH,
		transactionH,
		analyticsH,
		budgetH,
		categoryH,
		paymentMethodH,
		bankH,
		aiH,
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	slog.Info("starting server", "app", cfg.App.Name, "addr", server.Addr)

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
