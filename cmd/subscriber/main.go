package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"edi-orders/internal/configs"
	httpdelivery "edi-orders/internal/delivery/http"
	"edi-orders/internal/delivery/kafka"
	"edi-orders/internal/edifact"
	"edi-orders/internal/models"
	"edi-orders/internal/repository"
	"edi-orders/internal/repository/postgres"
	"edi-orders/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("config load: %s", err)
	}
	logrus.Print("config parsed")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ediCfg, err := cfg.EdifactConfig()
	if err != nil {
		logrus.Fatalf("edifact config: %s", err)
	}
	gen, err := edifact.NewGenerator(ediCfg)
	if err != nil {
		logrus.Fatalf("generator init: %s", err)
	}

	db, err := postgres.ConnectDB(postgres.Config{
		Host:     cfg.PostgresHost,
		Port:     cfg.PostgresPort,
		Username: cfg.PostgresUser,
		Password: cfg.PostgresPass,
		DbName:   cfg.PostgresDB,
		SslMode:  cfg.PostgresSSLMode,
	})
	if err != nil {
		logrus.Fatalf("postgres connect: %s", err)
	}
	defer func() {
		if derr := db.Close(); derr != nil {
			logrus.Errorf("db close: %v", derr)
		}
	}()
	if err := db.AutoMigrate(&models.Interchange{}).Error; err != nil {
		logrus.Fatalf("migrate: %s", err)
	}
	logrus.Print("connected to postgres")

	repo := repository.NewRepository(db, cfg.CacheShards)
	svc := service.NewService(repo, gen, cfg.OutputDir)

	if err := svc.PutInterchangesFromDbToCache(); err != nil {
		logrus.Fatalf("warm cache: %s", err)
	}
	logrus.Print("cache warmed from db")

	consumer := kafka.NewConsumer(kafka.Config{
		Brokers: cfg.KafkaBrokersSlice(),
		GroupID: cfg.KafkaGroupID,
		Topic:   cfg.KafkaTopic,
		DLQ:     cfg.KafkaDLQTopic,
	}, svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := consumer.Subscribe(ctx); err != nil {
			logrus.Errorf("consumer stopped: %v", err)
			cancel()
		}
	}()
	logrus.Print("kafka subscription started")

	h := httpdelivery.NewHandler(svc)
	srv := new(httpdelivery.Server)

	go func() {
		if err := srv.Run(cfg.HTTPAddr, h.InitRoutes()); err != nil {
			logrus.Errorf("http run: %v", err)
			cancel()
		}
	}()
	logrus.Printf("http server started on %s", cfg.HTTPAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	select {
	case <-quit:
		logrus.Print("shutdown signal received")
	case <-ctx.Done():
		logrus.Print("context canceled, shutting down")
	}
	cancel()

	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Errorf("http shutdown: %s", err)
	}
	if err := consumer.Close(); err != nil {
		logrus.Errorf("consumer close: %s", err)
	}

	wg.Wait()
	logrus.Print("service stopped")
}
