package main

import (
	"context"
	"log"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/app/users"
)

func main() {
	if err := users.Run(context.Background()); err != nil {
		log.Fatalf("user service failed: %v", err)
	}
}
