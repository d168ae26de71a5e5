package safety

import (
	"encoding/json"
	"fmt"
	"os"
)

// OptionsFromFiles builds engine Options from optional JSON config
// files. Empty paths leave the built-in defaults in place. The policy
// file has the shape {"category": {"block": bool, "template": string}},
// the template file {"name": {"locale": ["candidate", ...]}}.
func OptionsFromFiles(policyPath, templatesPath, canary string) (Options, error) {
	opts := Options{Canary: canary}

	if policyPath != "" {
		data, err := os.ReadFile(policyPath)
		if err != nil {
			return Options{}, fmt.Errorf("read policy table: %w", err)
		}
		if err := json.Unmarshal(data, &opts.Policies); err != nil {
			return Options{}, fmt.Errorf("parse policy table %s: %w", policyPath, err)
		}
	}

	if templatesPath != "" {
		data, err := os.ReadFile(templatesPath)
		if err != nil {
			return Options{}, fmt.Errorf("read templates: %w", err)
		}
		if err := json.Unmarshal(data, &opts.Templates); err != nil {
			return Options{}, fmt.Errorf("parse templates %s: %w", templatesPath, err)
		}
	}

	return opts, nil
}
