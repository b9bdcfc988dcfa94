package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/temirov/hooklint/internal/schema"
)

const (
	outputDirectoryConstant      = "internal/schema"
	outputFileNameConstant       = "precommit_config.schema.json"
	directoryPermissionsConstant = 0o755
	filePermissionsConstant      = 0o644
)

func main() {
	schemaBytes, generationError := schema.GenerateSchema()
	if generationError != nil {
		log.Fatalf("Error generating schema: %v", generationError)
	}

	if directoryError := os.MkdirAll(outputDirectoryConstant, directoryPermissionsConstant); directoryError != nil {
		log.Fatalf("Error creating schema directory: %v", directoryError)
	}

	outputPath := filepath.Join(outputDirectoryConstant, outputFileNameConstant)
	if writeError := os.WriteFile(outputPath, schemaBytes, filePermissionsConstant); writeError != nil {
		log.Fatalf("Error writing schema file: %v", writeError)
	}

	log.Printf("Generated schema at %s", outputPath)
}
