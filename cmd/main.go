package main

import (
	"log"

	"github.com/CreativeDT/McLeod-BE/server"
)

func main() {
	if err := server.Run(); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
