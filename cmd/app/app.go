package main

import (
	"os"
	_ "time/tzdata" // Часовой пояс магазина доступен и в образах без tzdata

	"github.com/DRSN-tech/pizzeria-backend/internal/app"
	config "github.com/DRSN-tech/pizzeria-backend/internal/cfg"
	"github.com/DRSN-tech/pizzeria-backend/pkg/logger"
)

//	@title						Pizzeria backend API
//	@version					1.0
//	@description				Каталог, корзина и отправка заказов пиццерии
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
