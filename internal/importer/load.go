package importer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FromFile builds a Source from an on-disk batch file. Record kinds are
// YAML documents; textblocks and ics bodies are passed through raw.
func FromFile(kind, path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "bankholidays":
		var s BankHolidays
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("bankholidays %s: %w", path, err)
		}
		return s, nil

	case "sunrise", "sunset":
		var recs struct {
			Records []DateValue `yaml:"records"`
		}
		if err := yaml.Unmarshal(data, &recs); err != nil {
			return nil, fmt.Errorf("%s %s: %w", kind, path, err)
		}
		if kind == "sunrise" {
			return SunriseTimes(recs.Records), nil
		}
		return SunsetTimes(recs.Records), nil

	case "recurring":
		var s Recurring
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("recurring %s: %w", path, err)
		}
		return s, nil

	case "recurringrule":
		var s RecurringRule
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("recurringrule %s: %w", path, err)
		}
		return s, nil

	case "dayevents":
		var s DayEvents
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("dayevents %s: %w", path, err)
		}
		return s, nil

	case "textblocks":
		return TextBlocks{Text: string(data)}, nil

	case "ics":
		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		return ICSFeed{Label: name, Body: data}, nil

	default:
		return nil, fmt.Errorf("importer: unknown source kind %q", kind)
	}
}
