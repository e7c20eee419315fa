package engine

import (
	"sort"

	"backend/internal/models"
)

// CSV column names used by the per-column presence checks. Headers are
// trimmed at load time, so these are exact matches.
const (
	colConstituency = "PC Name"
	colState        = "State"
	colWinner       = "Winning Candidate"
	colParty        = "Party"
	colVotes        = "Votes"
	colElectors     = "Electors"
	colMarginPct    = "Margin %"
	colTurnout      = "Turnout"
	colType         = "Type"
)

// YearTable holds every constituency result for one election year.
// Immutable after load.
type YearTable struct {
	Year    string
	Rows    []models.Result
	columns map[string]bool
}

// HasColumn reports whether the source CSV for this year carried the named
// column at all. Several statistics skip a year entirely when a column is
// absent, which is different from individual cells failing to parse.
func (t *YearTable) HasColumn(name string) bool {
	return t.columns[name]
}

// Dataset is the process-wide immutable store: one table per loaded year
// plus the derived name indexes. Built once at startup; every query
// operation is a pure read, so concurrent requests need no locking.
type Dataset struct {
	tables map[string]*YearTable
	years  []string

	constituencies []string
	parties        []string
	states         []string
}

func (d *Dataset) Years() []string          { return d.years }
func (d *Dataset) Constituencies() []string { return d.constituencies }
func (d *Dataset) Parties() []string        { return d.parties }
func (d *Dataset) States() []string         { return d.states }

func (d *Dataset) table(year string) (*YearTable, bool) {
	t, ok := d.tables[year]
	return t, ok
}

// buildIndexes scans every table once and derives the sorted, deduplicated
// constituency/party/state name lists. Empty cells are skipped.
func (d *Dataset) buildIndexes() {
	constituencies := make(map[string]bool)
	parties := make(map[string]bool)
	states := make(map[string]bool)

	for _, t := range d.tables {
		for _, row := range t.Rows {
			if row.Constituency != "" {
				constituencies[row.Constituency] = true
			}
			if row.Party != "" {
				parties[row.Party] = true
			}
			if row.State != "" {
				states[row.State] = true
			}
		}
	}

	d.constituencies = sortedKeys(constituencies)
	d.parties = sortedKeys(parties)
	d.states = sortedKeys(states)
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
