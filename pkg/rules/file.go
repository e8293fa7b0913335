// pkg/rules/file.go
package rules

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ecomdata/sales-ingress/pkg/model"
)

// fileRules is the YAML shape of a rules file. Every field is optional;
// omitted fields keep their defaults.
type fileRules struct {
	Quantity struct {
		Min int `yaml:"min"`
		Max int `yaml:"max"`
	} `yaml:"quantity"`
	Price struct {
		Min float64 `yaml:"min"`
		Max float64 `yaml:"max"`
	} `yaml:"price"`
	Date struct {
		Min string `yaml:"min"`
		Max string `yaml:"max"`
	} `yaml:"date"`
	OutlierTolerance float64  `yaml:"outlierTolerance"`
	DateLayouts      []string `yaml:"dateLayouts"`
	Normalization    []struct {
		Pattern   string `yaml:"pattern"`
		Canonical string `yaml:"canonical"`
	} `yaml:"normalization"`
}

// LoadFile reads a YAML rules file and applies it on top of the defaults.
func LoadFile(path string) (*Rules, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var fr fileRules
	if err := yaml.Unmarshal(raw, &fr); err != nil {
		return nil, fmt.Errorf("failed to parse rules file %s: %w", path, err)
	}

	r := Default()

	if fr.Quantity.Max > 0 {
		r.QuantityMin = fr.Quantity.Min
		r.QuantityMax = fr.Quantity.Max
	}
	if fr.Price.Max > 0 {
		r.PriceMin = fr.Price.Min
		r.PriceMax = fr.Price.Max
	}
	if fr.Date.Min != "" {
		min, err := time.Parse(model.DateLayout, fr.Date.Min)
		if err != nil {
			return nil, fmt.Errorf("invalid date.min: %w", err)
		}
		r.DateMin = min
	}
	if fr.Date.Max != "" {
		max, err := time.Parse(model.DateLayout, fr.Date.Max)
		if err != nil {
			return nil, fmt.Errorf("invalid date.max: %w", err)
		}
		r.DateMax = max
	}
	if fr.OutlierTolerance > 0 {
		r.OutlierTolerance = fr.OutlierTolerance
	}
	if len(fr.DateLayouts) > 0 {
		r.DateLayouts = fr.DateLayouts
	}
	if len(fr.Normalization) > 0 {
		rules := make([]NormalizationRule, 0, len(fr.Normalization))
		for _, n := range fr.Normalization {
			rule, err := NewNormalizationRule(n.Pattern, n.Canonical)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		r.Normalization = rules
	}

	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("rules file %s: %w", path, err)
	}

	return r, nil
}
