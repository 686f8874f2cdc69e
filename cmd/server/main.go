package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"teabloom-be/internal/catalog"
	"teabloom-be/internal/checkout"
	"teabloom-be/internal/config"
	"teabloom-be/internal/imagehost"
	"teabloom-be/internal/logger"
	"teabloom-be/internal/mailer"
	"teabloom-be/internal/order"
	"teabloom-be/internal/payment"
	"teabloom-be/internal/product"
	"teabloom-be/internal/realtime"
	"teabloom-be/internal/recordstore"
	"teabloom-be/internal/server"
	"teabloom-be/internal/session"
	"teabloom-be/internal/user"
)

const sessionTTL = 2 * time.Hour

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := recordstore.NewClient(cfg.RecordStoreURL)
	if cfg.RecordStoreEmail != "" {
		if _, err := store.AuthWithPassword(ctx, user.Collection, cfg.RecordStoreEmail, cfg.RecordStorePass); err != nil {
			log.Fatal("record store authentication failed", zap.Error(err))
		}
	} else {
		log.Warn("no record store credentials, writes will be attempted unauthenticated")
	}

	productRepo := product.NewRepository(store)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(store)
	orderSvc := order.NewService(orderRepo)

	userRepo := user.NewRepository(store)
	userSvc := user.NewService(userRepo)

	gateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	var mail checkout.Sender
	if m, err := mailer.NewMailer(cfg.MailAPIKey, cfg.MailFrom); err != nil {
		log.Warn("order confirmation emails disabled", zap.Error(err))
	} else {
		mail = m
	}

	checkoutSvc := checkout.NewService(orderRepo, productSvc, gateway, mail)

	view := catalog.NewView(productSvc)
	if err := view.Load(ctx); err != nil {
		log.Fatal("initial catalog load failed", zap.Error(err))
	}

	sessions := session.NewManager(sessionTTL)
	go sessions.Run(ctx)

	hub := realtime.NewHub(store, product.Collection)
	go hub.Run(ctx)
	go view.Run(ctx, hub.Listen(0))
	go session.NewReconciler(sessions).Run(ctx, hub.Listen(0))

	srv := server.New(server.Deps{
		Catalog:     view,
		Products:    productSvc,
		Orders:      orderSvc,
		Checkout:    checkoutSvc,
		Users:       userSvc,
		Uploader:    imagehost.NewClient(cfg.ImageHostKey),
		Sessions:    sessions,
		TokenSecret: cfg.TokenSecret,
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	log.Info("storefront server starting", zap.String("port", cfg.AppPort))
	if err := srv.Start(":" + cfg.AppPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("server stopped", zap.Error(err))
	}
}
