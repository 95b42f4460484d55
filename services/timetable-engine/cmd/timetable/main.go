package main

import (
	"context"
	"log"

	"github.com/RamCupido/ClaReSys-Project/pkg/config"
	"github.com/RamCupido/ClaReSys-Project/pkg/obs"
	thttp "github.com/RamCupido/ClaReSys-Project/services/timetable-engine/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	shutdown := obs.InitTracer("timetable-engine")
	defer func() { _ = shutdown(context.Background()) }()

	r := thttp.NewRouter()
	log.Println("[timetable] listening on", cfg.TimetableHTTPAddr)
	log.Fatal(r.Run(cfg.TimetableHTTPAddr))
}
