package eslint

import (
	"fmt"
	"path/filepath"

	"github.com/tristendillon/create-common-app/core/jsonfile"
	"github.com/tristendillon/create-common-app/core/models"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported lint config format %q", s)
	}
}

func (f Format) FileName() string {
	if f == FormatYAML {
		return ".eslintrc.yaml"
	}
	return ".eslintrc.json"
}

// WriteConfig writes config into dir and returns the file path.
func WriteConfig(dir string, config *models.LintConfig, format Format) (string, error) {
	path := filepath.Join(dir, format.FileName())

	var err error
	if format == FormatYAML {
		err = jsonfile.WriteYAML(path, config.Document())
	} else {
		err = jsonfile.Write(path, config.Document())
	}
	if err != nil {
		return "", fmt.Errorf("failed to write lint config: %w", err)
	}
	return path, nil
}
