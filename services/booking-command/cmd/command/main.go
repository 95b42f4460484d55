package main

import (
	"context"
	"log"

	"github.com/RamCupido/ClaReSys-Project/pkg/config"
	"github.com/RamCupido/ClaReSys-Project/pkg/db"
	"github.com/RamCupido/ClaReSys-Project/pkg/mq"
	"github.com/RamCupido/ClaReSys-Project/pkg/obs"
	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/gateway"
	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/repository"
	"github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/service"
	thttp "github.com/RamCupido/ClaReSys-Project/services/booking-command/internal/transport/http"
)

func must[T any](v T, err error) T {
	if err != nil {
		log.Fatal(err)
	}
	return v
}

func main() {
	cfg := must(config.Load())

	shutdown := obs.InitTracer("booking-command")
	defer func() { _ = shutdown(context.Background()) }()

	gdb := db.Open(cfg.PGBookingDSN)
	repo := repository.NewBookingRepo(gdb)
	must(0, repo.Migrate())

	pub := must(mq.NewPublisher(cfg.RabbitURL, cfg.BookingExchange))
	defer pub.Close()

	svc := service.NewBookingSvc(
		repo,
		gateway.NewClassroomClient(cfg.ClassroomBaseURL),
		gateway.NewTimetableClient(cfg.TimetableBaseURL),
		pub,
	)

	srv := thttp.NewServer(svc, cfg.InternalAPIKey)
	log.Println("[booking-command] listening on", cfg.CommandHTTPAddr)
	log.Fatal(srv.Router().Run(cfg.CommandHTTPAddr))
}
