// Command copydata copies the yearly results CSVs into static/data so a
// deployment can serve them as plain assets. Run it once from the backend
// directory before packaging.
package main

import (
	"io"
	"log"
	"os"
	"path/filepath"

	"backend/internal/config"
)

func main() {
	configPath := ""
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	destDir := filepath.Join("static", "data")
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		log.Fatalf("Error creating %s: %v", destDir, err)
	}

	copied := 0
	for year, name := range cfg.Data.Years {
		src := ""
		for _, dir := range cfg.Data.Dirs {
			if dir == destDir {
				continue
			}
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				src = candidate
				break
			}
		}
		if src == "" {
			log.Printf("WARN: %s (year %s) not found, nothing to copy", name, year)
			continue
		}

		dest := filepath.Join(destDir, name)
		if err := copyFile(src, dest); err != nil {
			log.Fatalf("Error copying %s: %v", src, err)
		}
		log.Printf("Copied %s to %s", src, dest)
		copied++
	}

	log.Printf("Done: %d file(s) copied to %s", copied, destDir)
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
