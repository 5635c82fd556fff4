package app

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"seriesshift/internal/domain/series"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Render writes ds to w in the named format. Text is the line-per-date
// listing produced by Print.
func Render(w io.Writer, ds *series.Dataset, format string) error {
	switch format {
	case "", FormatText:
		return Print(w, ds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		return enc.Encode(ds)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(4)
		if err := enc.Encode(ds); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
