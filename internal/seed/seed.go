// Package seed loads the built-in destinations and travel plans into the database.
package seed

import (
	"alcyxob/travel-planner/internal/domain"
	"alcyxob/travel-planner/internal/service"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed data.yaml
var fixtureYAML []byte

// Fixture is the content of a seed file.
type Fixture struct {
	Destinations []DestinationFixture `yaml:"destinations"`
	Plans        []domain.TravelPlan  `yaml:"plans"`
}

type DestinationFixture struct {
	Name     string  `yaml:"name"`
	Country  string  `yaml:"country"`
	Popular  bool    `yaml:"popular"`
	ImageURL *string `yaml:"image_url"`
}

// Result counts what a seeding run inserted and what was already present.
type Result struct {
	DestinationsCreated int
	DestinationsSkipped int
	PlansCreated        int
	PlansSkipped        int
}

// ParseFixture decodes a seed file.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed fixture: %w", err)
	}
	return &f, nil
}

// DefaultFixture returns the embedded seed data.
func DefaultFixture() (*Fixture, error) {
	return ParseFixture(fixtureYAML)
}

// Seeder inserts fixture records through the destination service. Records that already
// exist (matched by name) are skipped, so seeding can be repeated.
type Seeder struct {
	destinations service.DestinationService
	fixture      *Fixture
	logger       *logrus.Logger
}

func NewSeeder(destinations service.DestinationService, fixture *Fixture, logger *logrus.Logger) *Seeder {
	return &Seeder{destinations: destinations, fixture: fixture, logger: logger}
}

// Seed inserts missing destinations first, then the plans, so that each plan can be linked to
// its destination's ID.
func (s *Seeder) Seed(ctx context.Context) (*Result, error) {
	res := &Result{}

	for _, d := range s.fixture.Destinations {
		_, err := s.destinations.GetDestination(ctx, d.Name)
		if err == nil {
			res.DestinationsSkipped++
			continue
		}
		if !errors.Is(err, service.ErrDestinationNotFound) {
			return res, fmt.Errorf("look up destination %q: %w", d.Name, err)
		}
		if _, err := s.destinations.CreateDestination(ctx, service.CreateDestinationInput{
			Name:     d.Name,
			Country:  d.Country,
			Popular:  d.Popular,
			ImageURL: d.ImageURL,
		}); err != nil {
			return res, fmt.Errorf("create destination %q: %w", d.Name, err)
		}
		res.DestinationsCreated++
	}

	for i := range s.fixture.Plans {
		plan := s.fixture.Plans[i]
		_, err := s.destinations.GetTravelPlan(ctx, plan.DestinationName)
		if err == nil {
			res.PlansSkipped++
			continue
		}
		if !errors.Is(err, service.ErrTravelPlanNotFound) {
			return res, fmt.Errorf("look up travel plan %q: %w", plan.DestinationName, err)
		}
		if _, err := s.destinations.CreateTravelPlan(ctx, &plan); err != nil {
			return res, fmt.Errorf("create travel plan %q: %w", plan.DestinationName, err)
		}
		res.PlansCreated++
	}

	s.logger.WithFields(logrus.Fields{
		"destinations_created": res.DestinationsCreated,
		"destinations_skipped": res.DestinationsSkipped,
		"plans_created":        res.PlansCreated,
		"plans_skipped":        res.PlansSkipped,
	}).Info("database seeded")
	return res, nil
}
