package main

import (
	"compress/gzip"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Generates sample gzipped promo code files for local development.
// Codes must be 8-10 characters to pass validation; shorter entries are
// included deliberately so invalid lookups can be exercised too.
func main() {
	dataDir := "data/promos"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	promos := map[string][]string{
		"promobase1.gz": {
			"TRAM2026A",
			"FREESHIP1",
			"TETHOLIDAY",
			"BANHCHUNG",
			"SHORT", // too short, never validates
		},
		"promobase2.gz": {
			"TRAM2026B",
			"MIDAUTUMN",
			"GIOToHUNG9",
			"NOELDEAL26",
		},
	}

	for filename, codes := range promos {
		path := filepath.Join(dataDir, filename)
		if err := writeGzipFile(path, codes); err != nil {
			log.Fatalf("Failed to write %s: %v", path, err)
		}
		fmt.Printf("Wrote %d codes to %s\n", len(codes), path)
	}

	fmt.Println("Done. Set PROMO_FILES=data/promos/promobase1.gz,data/promos/promobase2.gz")
}

func writeGzipFile(path string, codes []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	defer gz.Close()

	for _, code := range codes {
		if _, err := fmt.Fprintln(gz, code); err != nil {
			return err
		}
	}
	return nil
}
