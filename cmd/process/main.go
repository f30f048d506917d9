// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/relabs-tech/sphere_trajectory/internal/app"
	"github.com/relabs-tech/sphere_trajectory/internal/config"
)

func main() {
	configPath := flag.String("config", "sphere_config.txt", "configuration file (KEY=VALUE or .yaml)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-config file] recording...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunProcess(flag.Args()); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
