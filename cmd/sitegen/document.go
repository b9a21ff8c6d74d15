package main

import (
	"fmt"

	"github.com/localnerve/sitebuilder/internal/codegen"
	"github.com/localnerve/sitebuilder/internal/component"
	"gopkg.in/yaml.v3"
)

// siteDocument mirrors the JSON of a full site. JSON is valid YAML, so one
// decoder reads both.
type siteDocument struct {
	Name       string         `yaml:"name"`
	Settings   map[string]any `yaml:"settings"`
	Components []struct {
		ID        any            `yaml:"id"`
		Type      string         `yaml:"type"`
		Props     map[string]any `yaml:"props"`
		SortOrder int            `yaml:"sortOrder"`
	} `yaml:"components"`
}

func parseSiteDocument(data []byte) (codegen.Site, error) {
	var doc siteDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return codegen.Site{}, fmt.Errorf("invalid site document: %w", err)
	}

	site := codegen.Site{
		Name:       doc.Name,
		Settings:   doc.Settings,
		Components: make([]codegen.Component, len(doc.Components)),
	}
	for i, c := range doc.Components {
		id := fmt.Sprint(c.ID)
		if c.ID == nil {
			id = fmt.Sprint(i + 1)
		}
		site.Components[i] = codegen.Component{
			ID:        id,
			Type:      component.Type(c.Type),
			Props:     c.Props,
			SortOrder: c.SortOrder,
		}
	}
	return site, nil
}
