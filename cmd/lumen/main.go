// Copyright 2026 Lumen ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package main provides the Lumen framework CLI.
package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/lumen-ml/lumen/buffer"
	"github.com/lumen-ml/lumen/engine"
	"github.com/lumen-ml/lumen/engine/cpu"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("Lumen ML Framework %s\n", version)
			return
		case "selfcheck":
			if err := selfcheck(); err != nil {
				fmt.Fprintf(os.Stderr, "selfcheck failed: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("selfcheck ok")
			return
		}
	}

	fmt.Println("Lumen ML Framework - Unified Memory for Compute Pipelines")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version      Show version")
	fmt.Println("  selfcheck    Round-trip a buffer through the staging path")
}

// selfcheck exercises the device-storage staging path end to end: write
// through a mapped region, read back, reallocate.
func selfcheck() error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.InfoLevel)
	eng := cpu.New(cpu.WithLogger(log))
	defer eng.Close()

	dev := eng.Device()
	fmt.Printf("engine: %s (%d cores)\n", dev.Name, dev.NumCores)

	buf, err := buffer.New(eng, 1024, engine.StorageDevice)
	if err != nil {
		return err
	}
	defer buf.Release()

	pattern := bytes.Repeat([]byte{0xAB}, 256)

	view, err := buffer.Map(buf, 0, 256, buffer.AccessWriteDiscard)
	if err != nil {
		return err
	}
	copy(view.Data(), pattern)
	view.Release()

	got := make([]byte, 256)
	if err := buf.Read(0, got, engine.Sync); err != nil {
		return err
	}
	if !bytes.Equal(got, pattern) {
		return fmt.Errorf("staging round-trip mismatch")
	}

	return buf.Realloc(2048)
}
