package main

import (
	"context"
	"log"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/app/orders"
)

func main() {
	if err := orders.Run(context.Background()); err != nil {
		log.Fatalf("order service failed: %v", err)
	}
}
