package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/fixora/insights/internal/adapter/loader"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	var (
		out   = flag.String("out", getenvDefault("DATA_PATH", "./data/service_requests.xlsx"), "output workbook path")
		sheet = flag.String("sheet", "Data Table", "sheet name")
		count = flag.Int("count", 10000, "number of requests to generate")
		seed  = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed")
	)
	flag.Parse()

	if *count < 0 {
		log.Fatalf("count must not be negative: %d", *count)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	log.Printf("Generating %d sample service requests (seed %d)", *count, *seed)
	records := loader.GenerateSample(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15)), *count)

	if err := loader.WriteWorkbook(*out, *sheet, records); err != nil {
		log.Fatalf("failed to write workbook: %v", err)
	}

	fmt.Printf("Sample data written to %s (%d records)\n", *out, len(records))
}

func getenvDefault(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
