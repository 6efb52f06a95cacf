package main

import (
	"log"
	"os"

	"collide3d/internal/config"
)

func main() {
	configPath := "collide3d.yaml"
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Config: %v", err)
	}

	v := newViewer(cfg, configPath)
	v.Run()
}
