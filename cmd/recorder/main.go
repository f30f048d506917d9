// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/relabs-tech/sphere_trajectory/internal/app"
	"github.com/relabs-tech/sphere_trajectory/internal/config"
)

func main() {
	configPath := flag.String("config", "sphere_config.txt", "configuration file (KEY=VALUE or .yaml)")
	out := flag.String("out", "", "output file (default recording_<timestamp>.txt)")
	flag.Parse()

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	path := *out
	if path == "" {
		path = fmt.Sprintf("recording_%s.txt", time.Now().Format("20060102_150405"))
	}

	if err := app.RunRecorder(path); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
