package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats results as a YAML sequence.
type YAMLFormatter struct {
	opts FormatterOptions
}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter(opts FormatterOptions) *YAMLFormatter {
	return &YAMLFormatter{opts: opts}
}

// Format writes results as YAML.
func (f *YAMLFormatter) Format(w io.Writer, results []Result) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(newRecords(results)); err != nil {
		return err
	}
	return encoder.Close()
}
