package stat

import (
	"github.com/revelaction/wikidict/entry"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumPages        int
	NumSections     int
	NumBlocks       int
	NumSenses       int
	NumCrossRefs    int
	NumTranslations int

	SensesPerPageMean int
	SensesPerPageDis  map[int]int
	SectionsPerLang   map[string]int
	BlocksPerKind     map[string]int
}

func NewHandler() *Handler {
	stats := Stats{
		SensesPerPageDis: map[int]int{},
		SectionsPerLang:  map[string]int{},
		BlocksPerKind:    map[string]int{},
	}
	return &Handler{
		stats: stats,
	}
}

func (h *Handler) Get() Stats {
	if h.stats.NumPages > 0 {
		h.stats.SensesPerPageMean = h.stats.NumSenses / h.stats.NumPages
	}
	return h.stats
}

func (h *Handler) Aggregate(p *entry.Page) {
	h.stats.NumPages++

	senses := 0
	for _, sec := range p.Languages {
		h.stats.NumSections++
		h.stats.SectionsPerLang[sec.Code]++

		for _, blk := range sec.Blocks {
			h.stats.NumBlocks++
			h.stats.BlocksPerKind[blk.Kind]++

			for _, sense := range blk.Senses {
				h.stats.NumSenses++
				senses++
				h.stats.NumCrossRefs += len(sense.CrossRefs)
				h.stats.NumTranslations += len(sense.Translations)
			}
		}
	}

	h.stats.SensesPerPageDis[senses]++
}
