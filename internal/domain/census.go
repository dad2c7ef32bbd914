package domain

import "sort"

// Census is an immutable population-collection event for one territory.
// Only Territory is attached after ingestion.
type Census struct {
	Entity

	TerritoryCode      string
	YearCollected      int
	CollectorType      CollectorType
	CollectorName      string
	EligiblePopulation int64
	URL                string
	Notes              string

	// LanguageEstimates maps a language code to its raw estimate.
	LanguageEstimates map[string]int64

	Territory *Territory
}

func (c *Census) ObjectType() ObjectType { return ObjectCensus }

// LanguageCodes returns the estimate keys in sorted order.
func (c *Census) LanguageCodes() []string {
	codes := make([]string, 0, len(c.LanguageEstimates))
	for code := range c.LanguageEstimates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// PercentOf returns estimate as a percentage of the eligible population,
// or nil when the denominator is unknown.
func (c *Census) PercentOf(estimate int64) *float64 {
	if c.EligiblePopulation <= 0 {
		return nil
	}
	p := float64(estimate) / float64(c.EligiblePopulation) * 100
	return &p
}
