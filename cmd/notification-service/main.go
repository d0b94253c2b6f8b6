package main

import (
	"context"
	"log"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/app/notifications"
)

func main() {
	if err := notifications.Run(context.Background()); err != nil {
		log.Fatalf("notification service failed: %v", err)
	}
}
