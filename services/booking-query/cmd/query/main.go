package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/RamCupido/ClaReSys-Project/pkg/config"
	"github.com/RamCupido/ClaReSys-Project/pkg/obs"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/cache"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/consumer"
	"github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/rehydrate"
	qhttp "github.com/RamCupido/ClaReSys-Project/services/booking-query/internal/transport/http"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	shutdown := obs.InitTracer("booking-query")
	defer func() { _ = shutdown(context.Background()) }()

	store := cache.NewRedis(cfg.RedisAddr)
	defer store.Close()
	bookings := cache.NewBookings(store)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Full rebuild from the write side before consuming live events, so a
	// mid-stream wipe cannot clobber fresh updates. Failure is non-fatal:
	// the live stream keeps the cache reasonably fresh on its own.
	if err := rehydrate.New(bookings, cfg.CommandBaseURL, cfg.InternalAPIKey).Run(ctx); err != nil {
		log.Printf("[booking-query] rehydrate failed: %v", err)
	}

	sync := consumer.NewSyncConsumer(bookings)
	go sync.ConsumeLoop(ctx, cfg.RabbitURL, cfg.BookingExchange, cfg.QuerySyncQueue)

	srv := qhttp.NewServer(bookings)
	go func() {
		log.Println("[booking-query] listening on", cfg.QueryHTTPAddr)
		log.Fatal(srv.Router().Run(cfg.QueryHTTPAddr))
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	cancel()
	log.Println("[booking-query] stopped")
}
