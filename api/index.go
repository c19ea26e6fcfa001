package handler

import (
	"kost/config"
	"kost/di"
	_ "kost/docs"
	"kost/shared/logger"
	"net/http"
	"sync"
)

var (
	service http.Handler
	once    sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		service = di.InitializeService().Handler()
	})

	service.ServeHTTP(w, r)
}
