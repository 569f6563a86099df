// Command schema-generator writes schema/manifest.schema.json, the schema the
// registry enforces, for editor support. With -check it only reports whether
// the file on disk is out of date.
package main

import (
	"bytes"
	"flag"
	"os"
	"path/filepath"

	"github.com/whiskers-launcher/companion/logging"
	"github.com/whiskers-launcher/companion/schema"
)

func main() {
	log := logging.NewLogger("schema-generator")

	outputDir := flag.String("out", "schema", "directory the schema is written to")
	check := flag.Bool("check", false, "fail if the schema on disk is out of date")
	flag.Parse()

	generated, err := schema.GenerateManifestSchema()
	if err != nil {
		log.WithError(err).Fatal("Failed to generate manifest schema")
	}
	outputPath := filepath.Join(*outputDir, "manifest.schema.json")

	if *check {
		current, err := os.ReadFile(outputPath)
		if err != nil || !bytes.Equal(current, generated) {
			log.WithField("path", outputPath).Fatal("Manifest schema is out of date")
		}
		log.WithField("path", outputPath).Info("Manifest schema is up to date")
		return
	}

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.WithError(err).Fatal("Failed to create schema directory")
	}
	if err := os.WriteFile(outputPath, generated, 0644); err != nil {
		log.WithError(err).Fatal("Failed to write schema")
	}
	log.WithField("path", outputPath).Info("Generated manifest schema")
}
