package main

import (
	"log"

	"realestate_service/startup"
	"realestate_service/startup/config"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
