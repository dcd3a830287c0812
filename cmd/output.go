package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	outputJSON = "json"
	outputYAML = "yaml"
)

// readParams decodes a YAML (or JSON) params file into out. "-" reads
// stdin and an empty path leaves out untouched.
func readParams(path string, stdin io.Reader, out any) error {
	if path == "" {
		return nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read params: %w", err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse params %s: %w", path, err)
	}
	return nil
}

// writeOutput prints v in the requested format. YAML goes through a JSON
// round trip so both formats share the json field names.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON, "":
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(data, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected json or yaml", format)
	}
}
