package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type paper struct {
	Title   string
	Authors string
	Year    int
}

func paperFields(p paper) []string { return []string{p.Title, p.Authors} }

func TestFilter(t *testing.T) {
	papers := []paper{
		{"EHR Interoperability in Lagos", "A. Okafor", 2024},
		{"Coding Accuracy", "B. Mensah, ehr working group", 2023},
		{"Telehealth Uptake", "C. Diallo", 2023},
	}

	got := Filter(papers, "  EHR ", paperFields)
	assert.Equal(t, papers[:2], got)

	assert.Equal(t, papers, Filter(papers, "", paperFields))
	assert.Empty(t, Filter(papers, "genomics", paperFields))
}

func TestWhere(t *testing.T) {
	papers := []paper{{Year: 2024}, {Year: 2023}, {Year: 2023}}
	got := Where(papers, func(p paper) bool { return p.Year == 2023 })
	assert.Len(t, got, 2)
}
