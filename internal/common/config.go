package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	OCR        OCRConfig
	Preprocess PreprocessConfig
	Pipeline   PipelineConfig
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Pdftoppm    string // binary name or absolute path; if empty -> "pdftoppm"
	TessdataDir string
	Lang        string // tesseract language string, e.g. "eng+fra"
	DPI         int    // rasterization DPI for PDF pages
	PSM         int    // page segmentation mode; 6 is good for uniform blocks
}

// PreprocessConfig holds image-cleanup toggles for the preprocessor.
type PreprocessConfig struct {
	EnhanceContrast bool
	Binarize        bool
	Deskew          bool
}

// PipelineConfig holds orchestration knobs.
type PipelineConfig struct {
	MaxConcurrentFiles int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_PATH", "tesseract"),
			Pdftoppm:    getEnv("PDFTOPPM_PATH", "pdftoppm"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			Lang:        getEnv("OCR_LANG", "eng+fra"),
			DPI:         getEnvAsInt("OCR_DPI", 300),
			PSM:         getEnvAsInt("OCR_PSM", 0),
		},
		Preprocess: PreprocessConfig{
			EnhanceContrast: getEnvAsBool("PREP_CONTRAST", true),
			Binarize:        getEnvAsBool("PREP_BINARIZE", true),
			Deskew:          getEnvAsBool("PREP_DESKEW", true),
		},
		Pipeline: PipelineConfig{
			MaxConcurrentFiles: getEnvAsInt("MAX_CONCURRENT_FILES", 5),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
