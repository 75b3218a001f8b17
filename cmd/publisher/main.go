package main

import (
	"context"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"edi-orders/internal/configs"
	"edi-orders/internal/delivery/kafka"
)

// Publishes a sample raw order JSON to the orders topic, handy for
// smoke-testing the subscriber end to end.
func main() {
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %s", err)
	}
	logrus.Print("config loaded")

	pub, err := kafka.NewPublisher(cfg.KafkaBrokersSlice(), cfg.KafkaTopic)
	if err != nil {
		logrus.Fatalf("kafka publisher connect error: %s", err)
	}
	defer func() {
		if cerr := pub.Close(); cerr != nil {
			logrus.Errorf("publisher close: %v", cerr)
		}
	}()
	logrus.Print("connected to kafka")

	f, err := os.Open(cfg.OrderSamplePath)
	if err != nil {
		logrus.Fatalf("open order file: %s", err)
	}
	defer f.Close()

	body, err := io.ReadAll(f)
	if err != nil {
		logrus.Fatalf("read order file: %s", err)
	}

	if err := pub.Publish(context.Background(), body); err != nil {
		logrus.Fatalf("publish failed: %s", err)
	}
	logrus.Print("published raw order to kafka")
}
