package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/me/showcase/internal/query"
	"github.com/me/showcase/pkg/model"
)

// Site describes the listing collections served by one deployment.
type Site struct {
	Name        string             `yaml:"name"`
	BaseURL     string             `yaml:"base_url"`
	Collections []model.Collection `yaml:"collections"`
}

// DefaultSite returns the built-in services, case studies and team listings.
// None of them expose the featured flag until the backend publishes it.
func DefaultSite() *Site {
	return &Site{
		Name: "Showcase",
		Collections: []model.Collection{
			{Name: "services", Title: "Services", Path: "/services", Taxonomy: "service_type", ItemsPerPage: 9},
			{Name: "case-studies", Title: "Case Studies", Path: "/case-studies", Taxonomy: "project_type", ItemsPerPage: 6},
			{Name: "team", Title: "Our Team", Path: "/team", Taxonomy: "department", ItemsPerPage: 12},
		},
	}
}

// LoadSite reads a YAML site definition and validates it.
func LoadSite(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site config: %w", err)
	}
	return ParseSite(data)
}

// ParseSite parses YAML site definition bytes and validates them.
func ParseSite(data []byte) (*Site, error) {
	var s Site
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse site config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ValidationError aggregates site configuration problems.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid site config: " + strings.Join(e.Problems, "; ")
}

// Validate fills defaults and checks that collections are addressable.
func (s *Site) Validate() error {
	var problems []string
	if len(s.Collections) == 0 {
		problems = append(problems, "no collections defined")
	}

	names := make(map[string]bool)
	paths := make(map[string]bool)
	for i := range s.Collections {
		c := &s.Collections[i]
		where := fmt.Sprintf("collections[%d]", i)

		if c.Name == "" {
			problems = append(problems, where+": name is required")
		} else if names[c.Name] {
			problems = append(problems, fmt.Sprintf("%s: duplicate name %q", where, c.Name))
		}
		names[c.Name] = true

		if c.Path == "" {
			c.Path = "/" + c.Name
		}
		if !strings.HasPrefix(c.Path, "/") {
			c.Path = "/" + c.Path
		}
		c.Path = strings.TrimSuffix(c.Path, "/")
		if c.Path == "" || strings.HasPrefix(c.Path, "/api") {
			problems = append(problems, fmt.Sprintf("%s: path %q is not allowed", where, c.Path))
		} else if paths[c.Path] {
			problems = append(problems, fmt.Sprintf("%s: duplicate path %q", where, c.Path))
		}
		paths[c.Path] = true

		if c.Taxonomy == "" {
			problems = append(problems, where+": taxonomy is required")
		} else if query.IsReserved(c.Taxonomy) {
			problems = append(problems, fmt.Sprintf("%s: taxonomy %q shadows a reserved query key", where, c.Taxonomy))
		}

		if c.ItemsPerPage <= 0 {
			c.ItemsPerPage = query.DefaultItemsPerPage
		}
		if c.Title == "" {
			c.Title = c.Name
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Collection looks up a collection by name.
func (s *Site) Collection(name string) (model.Collection, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return model.Collection{}, false
}
