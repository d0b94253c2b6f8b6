package main

import (
	"context"
	"log"

	"github.com/otniel-tamini/Projet-Microservices-pour-Apprentissage-Kubernetes/internal/app/products"
)

func main() {
	if err := products.Run(context.Background()); err != nil {
		log.Fatalf("product service failed: %v", err)
	}
}
