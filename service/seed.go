package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SeedDemo registers two banks and two clients for local experiments.
func (s *Service) SeedDemo() error {
	banks := []struct {
		full, short, rate string
	}{
		{"Sberbank PJSC", "Sberbank", "1.2"},
		{"VTB Bank", "VTB", "0.8"},
	}
	for _, b := range banks {
		if _, err := s.CreateBank(b.full, b.short, decimal.RequireFromString(b.rate)); err != nil {
			return fmt.Errorf("seed bank %s: %w", b.short, err)
		}
	}

	clients := []struct {
		name, taxID, series, number string
	}{
		{"Ivanov Ivan Ivanovich", "123456789012", "1234", "567890"},
		{"Petrov Petr Petrovich", "987654321098", "5678", "123456"},
	}
	for _, c := range clients {
		if _, err := s.CreateClient(c.name, c.taxID, c.series, c.number); err != nil {
			return fmt.Errorf("seed client %s: %w", c.name, err)
		}
	}
	return nil
}
