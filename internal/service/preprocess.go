package service

import (
	"github.com/rs/zerolog"

	"github.com/statcast-tools/baseball-utilities/internal/table"
)

// PreprocessService prunes columns and missing values from query
// results, logging what it removed.
type PreprocessService struct {
	log *zerolog.Logger
}

func NewPreprocessService(logger *zerolog.Logger) *PreprocessService {
	return &PreprocessService{log: logger}
}

// RemoveColumns keeps only the listed columns, in list order. Listed
// columns the table does not have are reported in a warning and
// skipped.
func (s *PreprocessService) RemoveColumns(t *table.Table, columnsToKeep []string) *table.Table {
	out, missing := t.Select(columnsToKeep)
	if len(missing) > 0 {
		s.log.Warn().
			Strs("columns", missing).
			Msgf("Warning: These columns were not found and will be ignored: %v", missing)
	}
	return out
}

// RemoveNaN drops every row with a missing value in any of naColumns
// and logs how many rows went. Unknown columns are handled like in
// RemoveColumns: reported and ignored.
func (s *PreprocessService) RemoveNaN(t *table.Table, naColumns []string) *table.Table {
	out, dropped, missing := t.DropMissing(naColumns)
	if len(missing) > 0 {
		s.log.Warn().
			Strs("columns", missing).
			Msgf("Warning: These columns were not found and will be ignored: %v", missing)
	}

	if dropped > 0 {
		s.log.Info().
			Int("dropped", dropped).
			Strs("columns", naColumns).
			Msgf("%d rows were dropped due to missing values in columns: %v", dropped, naColumns)
	} else {
		s.log.Info().Msg("No rows dropped.")
	}

	return out
}
