package engine

import (
	"fmt"
	"log"
	"sort"
	"strings"

	"backend/internal/models"
)

// NotFoundError is a request-level failure: the caller asked for a year that
// is not in the dataset. It surfaces as a structured JSON error payload at
// the API boundary, never as a panic or a 500.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

const searchLimit = 10

func floatPtr(v float64) *float64 { return &v }

// meanPercent averages the parseable percent cells selected by get.
// Rows that fail to parse are excluded from numerator and denominator; nil
// means no row parsed at all.
func meanPercent(rows []models.Result, get func(models.Result) string) *float64 {
	sum, n := 0.0, 0
	for _, row := range rows {
		if v, ok := parsePercent(get(row)); ok {
			sum += v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return floatPtr(sum / float64(n))
}

func turnoutOf(r models.Result) string { return r.Turnout }

// seatsByParty counts result rows per winning party. Rows with an empty
// party cell are skipped, same as the name indexes.
func seatsByParty(rows []models.Result) map[string]int {
	seats := make(map[string]int)
	for _, row := range rows {
		if row.Party == "" {
			continue
		}
		seats[row.Party]++
	}
	return seats
}

// --- QUERY OPERATIONS ---
// All pure reads over the immutable Dataset.

// ElectionData returns the full picture for one year: seats per party, mean
// turnout, and a per-constituency summary.
func (d *Dataset) ElectionData(year string) (*models.ElectionData, error) {
	t, ok := d.table(year)
	if !ok {
		return nil, &NotFoundError{Message: fmt.Sprintf("No data available for year %s", year)}
	}

	out := &models.ElectionData{
		Year:           year,
		PartySeats:     seatsByParty(t.Rows),
		Constituencies: make([]models.ConstituencySummary, 0, len(t.Rows)),
		AvgTurnout:     meanPercent(t.Rows, turnoutOf),
	}

	for _, row := range t.Rows {
		summary := models.ConstituencySummary{
			Constituency:  row.Constituency,
			State:         row.State,
			Winner:        row.Winner,
			Party:         row.Party,
			MarginPercent: row.MarginPercent,
		}
		// Votes and electors are reported together or not at all.
		if votes, ok := parseGroupedInt(row.Votes); ok {
			if electors, ok := parseGroupedInt(row.Electors); ok {
				summary.Votes = &votes
				summary.Electors = &electors
			}
		}
		out.Constituencies = append(out.Constituencies, summary)
	}

	return out, nil
}

// ConstituencyData returns one result per year in which the constituency
// appears. Years with no matching row are omitted, not zero-filled.
func (d *Dataset) ConstituencyData(name string) *models.ConstituencyData {
	out := &models.ConstituencyData{Name: name, Results: make([]models.ConstituencyResult, 0)}

	for _, year := range d.years {
		t, _ := d.table(year)
		for _, row := range t.Rows {
			if row.Constituency != name {
				continue
			}
			// First matching row wins if the file carries duplicates.
			out.Results = append(out.Results, models.ConstituencyResult{
				Year:          year,
				Winner:        row.Winner,
				Party:         row.Party,
				Votes:         row.Votes,
				Margin:        row.Margin,
				MarginPercent: row.MarginPercent,
				Turnout:       row.Turnout,
			})
			break
		}
	}

	return out
}

// PartyData reports seats won per year for one party. Unlike
// ConstituencyData, every loaded year gets an entry: a party that won
// nothing still shows up with zero seats and an empty constituency list.
func (d *Dataset) PartyData(name string) *models.PartyData {
	out := &models.PartyData{Name: name, Performance: make([]models.PartyPerformance, 0, len(d.years))}

	for _, year := range d.years {
		t, _ := d.table(year)

		perf := models.PartyPerformance{
			Year:           year,
			TotalSeats:     len(t.Rows),
			Constituencies: make([]models.PartySeatInfo, 0),
		}
		for _, row := range t.Rows {
			if row.Party != name {
				continue
			}
			perf.SeatsWon++
			perf.Constituencies = append(perf.Constituencies, models.PartySeatInfo{
				Name:          row.Constituency,
				Winner:        row.Winner,
				MarginPercent: row.MarginPercent,
			})
		}
		if perf.SeatsWon > 0 && perf.TotalSeats > 0 {
			perf.Percentage = round2(float64(perf.SeatsWon) / float64(perf.TotalSeats) * 100)
		}
		out.Performance = append(out.Performance, perf)
	}

	return out
}

// topParties returns the up-to-n parties with the most seats, count
// descending with name as the tiebreak so output is reproducible.
func topParties(seats map[string]int, n int) []string {
	parties := make([]string, 0, len(seats))
	for p := range seats {
		parties = append(parties, p)
	}
	sort.Slice(parties, func(i, j int) bool {
		if seats[parties[i]] != seats[parties[j]] {
			return seats[parties[i]] > seats[parties[j]]
		}
		return parties[i] < parties[j]
	})
	if len(parties) > n {
		parties = parties[:n]
	}
	return parties
}

// CompareYears compares seat counts and turnout across the requested years.
// The party set is the union of each year's top ten by seats.
func (d *Dataset) CompareYears(years []string) (*models.YearComparison, error) {
	if len(years) == 0 {
		return nil, &NotFoundError{Message: "One or more specified years not found in data"}
	}
	for _, year := range years {
		if _, ok := d.table(year); !ok {
			return nil, &NotFoundError{Message: "One or more specified years not found in data"}
		}
	}

	union := make(map[string]bool)
	for _, year := range years {
		t, _ := d.table(year)
		for _, p := range topParties(seatsByParty(t.Rows), 10) {
			union[p] = true
		}
	}

	out := &models.YearComparison{
		Years:             years,
		PartyPerformance:  make(map[string][]models.YearSeats, len(union)),
		TurnoutComparison: make([]models.YearTurnout, 0, len(years)),
	}

	for party := range union {
		series := make([]models.YearSeats, 0, len(years))
		for _, year := range years {
			t, _ := d.table(year)
			seats := 0
			for _, row := range t.Rows {
				if row.Party == party {
					seats++
				}
			}
			series = append(series, models.YearSeats{Year: year, Seats: seats})
		}
		out.PartyPerformance[party] = series
	}

	for _, year := range years {
		t, _ := d.table(year)
		out.TurnoutComparison = append(out.TurnoutComparison, models.YearTurnout{
			Year:       year,
			AvgTurnout: meanPercent(t.Rows, turnoutOf),
		})
	}

	return out, nil
}

// CompareParties reports seat counts for the requested parties in every
// loaded year. Unknown parties are not an error; they count zero everywhere.
func (d *Dataset) CompareParties(parties []string) *models.PartyComparison {
	out := &models.PartyComparison{Parties: parties, Data: make([]models.YearPartySeats, 0, len(d.years))}

	for _, year := range d.years {
		t, _ := d.table(year)
		seats := seatsByParty(t.Rows)

		yearSeats := models.YearPartySeats{Year: year, PartySeats: make(map[string]int, len(parties))}
		for _, p := range parties {
			yearSeats.PartySeats[p] = seats[p]
		}
		out.Data = append(out.Data, yearSeats)
	}

	return out
}

// TurnoutData builds the national and per-state mean turnout series.
//
// The tolerance here is stricter than ElectionData's: a single junk turnout
// cell drops its whole year from the series (empty cells are merely excluded
// from the means). Per-state series stay positionally aligned to the years
// that made it in, with null backfill for states that appear late or have no
// computable turnout in a given year.
func (d *Dataset) TurnoutData() *models.TurnoutData {
	out := &models.TurnoutData{
		Years:        make([]string, 0, len(d.years)),
		AvgTurnout:   make([]float64, 0, len(d.years)),
		StateTurnout: make(map[string][]*float64),
	}

	type agg struct {
		sum float64
		n   int
	}

	for _, year := range d.years {
		t, _ := d.table(year)

		total := agg{}
		byState := make(map[string]*agg)
		malformed := false
		for _, row := range t.Rows {
			cell := strings.TrimSpace(row.Turnout)
			ok := cell != ""
			var v float64
			if ok {
				if v, ok = parsePercent(cell); !ok {
					malformed = true
					break
				}
				total.sum += v
				total.n++
			}
			if row.State == "" {
				continue
			}
			a := byState[row.State]
			if a == nil {
				a = &agg{}
				byState[row.State] = a
			}
			if ok {
				a.sum += v
				a.n++
			}
		}

		if malformed {
			log.Printf("WARN: malformed turnout cell in year %s, dropping it from the turnout series", year)
			continue
		}
		if total.n == 0 {
			log.Printf("WARN: no parseable turnout for year %s, dropping it from the turnout series", year)
			continue
		}

		idx := len(out.Years)
		out.Years = append(out.Years, year)
		out.AvgTurnout = append(out.AvgTurnout, total.sum/float64(total.n))

		for state, a := range byState {
			series := out.StateTurnout[state]
			for len(series) < idx {
				series = append(series, nil) // state appeared after earlier years
			}
			if a.n > 0 {
				series = append(series, floatPtr(a.sum/float64(a.n)))
			} else {
				series = append(series, nil)
			}
			out.StateTurnout[state] = series
		}
	}

	// States absent from the trailing years still need full-length series.
	for state, series := range out.StateTurnout {
		for len(series) < len(out.Years) {
			series = append(series, nil)
		}
		out.StateTurnout[state] = series
	}

	return out
}

// WinMarginData reports the mean winning margin plus close-contest (<1%) and
// landslide (>20%) counts per year. Years whose table has no "Margin %"
// column at all contribute nothing; unparseable cells within a year are just
// excluded from the mean and the threshold counts.
func (d *Dataset) WinMarginData() *models.WinMarginData {
	out := &models.WinMarginData{
		Years:         make([]string, 0, len(d.years)),
		AvgMargin:     make([]*float64, 0, len(d.years)),
		CloseContests: make([]int, 0, len(d.years)),
		LandslideWins: make([]int, 0, len(d.years)),
	}

	for _, year := range d.years {
		t, _ := d.table(year)
		if !t.HasColumn(colMarginPct) {
			continue
		}

		sum, n, close, landslide := 0.0, 0, 0, 0
		for _, row := range t.Rows {
			v, ok := parsePercent(row.MarginPercent)
			if !ok {
				continue
			}
			sum += v
			n++
			if v < 1 {
				close++
			}
			if v > 20 {
				landslide++
			}
		}

		out.Years = append(out.Years, year)
		if n > 0 {
			out.AvgMargin = append(out.AvgMargin, floatPtr(sum/float64(n)))
		} else {
			out.AvgMargin = append(out.AvgMargin, nil)
		}
		out.CloseContests = append(out.CloseContests, close)
		out.LandslideWins = append(out.LandslideWins, landslide)
	}

	return out
}

// Search finds constituencies, winning candidates, and parties whose name
// contains the query, case-insensitively. Each category is capped at ten.
// Constituency matches keep the sorted index order; candidate and party
// matches come out in first-seen order over a year-sorted scan, which keeps
// repeated identical searches byte-identical.
func (d *Dataset) Search(query string) *models.SearchResults {
	q := strings.ToLower(query)

	out := &models.SearchResults{
		Constituencies: make([]string, 0, searchLimit),
		Candidates:     make([]string, 0, searchLimit),
		Parties:        make([]string, 0, searchLimit),
	}

	for _, c := range d.constituencies {
		if strings.Contains(strings.ToLower(c), q) {
			out.Constituencies = append(out.Constituencies, c)
			if len(out.Constituencies) == searchLimit {
				break
			}
		}
	}

	seenCandidates := make(map[string]bool)
	seenParties := make(map[string]bool)
	for _, year := range d.years {
		t, _ := d.table(year)
		for _, row := range t.Rows {
			if len(out.Candidates) < searchLimit && row.Winner != "" &&
				!seenCandidates[row.Winner] && strings.Contains(strings.ToLower(row.Winner), q) {
				seenCandidates[row.Winner] = true
				out.Candidates = append(out.Candidates, row.Winner)
			}
			if len(out.Parties) < searchLimit && row.Party != "" &&
				!seenParties[row.Party] && strings.Contains(strings.ToLower(row.Party), q) {
				seenParties[row.Party] = true
				out.Parties = append(out.Parties, row.Party)
			}
		}
		if len(out.Candidates) == searchLimit && len(out.Parties) == searchLimit {
			break
		}
	}

	return out
}

// PartyTrends reports the seat series of every major party, aligned to the
// full years list. Major means at least one seat in at least two distinct
// years.
func (d *Dataset) PartyTrends() *models.PartyTrends {
	counts := make(map[string]map[string]int, len(d.years))
	yearsWithSeats := make(map[string]int)
	for _, year := range d.years {
		t, _ := d.table(year)
		seats := seatsByParty(t.Rows)
		counts[year] = seats
		for party := range seats {
			yearsWithSeats[party]++
		}
	}

	major := make([]string, 0)
	for party, n := range yearsWithSeats {
		if n >= 2 {
			major = append(major, party)
		}
	}
	sort.Strings(major)

	out := &models.PartyTrends{
		Years:      d.years,
		Parties:    major,
		SeatTrends: make(map[string][]int, len(major)),
	}
	for _, party := range major {
		series := make([]int, 0, len(d.years))
		for _, year := range d.years {
			series = append(series, counts[year][party])
		}
		out.SeatTrends[party] = series
	}

	return out
}

// StateData reports per-party seats and mean turnout for one state, aligned
// to the years in which the state actually has rows. Party series are
// zero-backfilled when a party first appears mid-series and zero-padded at
// the end so every series matches the state's years list.
func (d *Dataset) StateData(state string) *models.StateData {
	out := &models.StateData{
		State:      state,
		Years:      make([]string, 0),
		PartySeats: make(map[string][]int),
		Turnout:    make([]*float64, 0),
	}

	for _, year := range d.years {
		t, _ := d.table(year)

		rows := make([]models.Result, 0)
		for _, row := range t.Rows {
			if row.State == state {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}

		idx := len(out.Years)
		out.Years = append(out.Years, year)

		for party, seats := range seatsByParty(rows) {
			series := out.PartySeats[party]
			for len(series) < idx {
				series = append(series, 0)
			}
			series = append(series, seats)
			out.PartySeats[party] = series
		}

		out.Turnout = append(out.Turnout, meanPercent(rows, turnoutOf))
	}

	for party, series := range out.PartySeats {
		for len(series) < len(out.Years) {
			series = append(series, 0)
		}
		out.PartySeats[party] = series
	}

	return out
}

// AllStatesData runs StateData for every known state.
func (d *Dataset) AllStatesData() *models.AllStatesData {
	out := &models.AllStatesData{
		States: d.states,
		Years:  d.years,
		Data:   make(map[string]*models.StateData, len(d.states)),
	}
	for _, state := range d.states {
		out.Data[state] = d.StateData(state)
	}
	return out
}

// StatePartyTrends reports seat and vote-share series for parties active in
// one state, aligned to the state's own years. With a party argument that is
// active in the state, the result is restricted to that single party.
//
// Vote share is the party's summed votes over the state's summed votes that
// year. It degrades to zero when the Votes column is absent, the state total
// is zero, or any vote cell in the state fails to parse.
func (d *Dataset) StatePartyTrends(state, party string) *models.StatePartyTrends {
	out := &models.StatePartyTrends{
		State:           state,
		Years:           make([]string, 0),
		SeatTrends:      make(map[string][]int),
		VoteShareTrends: make(map[string][]float64),
	}

	stateRowsByYear := make(map[string][]models.Result)
	active := make(map[string]bool)
	for _, year := range d.years {
		t, _ := d.table(year)
		rows := make([]models.Result, 0)
		for _, row := range t.Rows {
			if row.State == state {
				rows = append(rows, row)
			}
		}
		if len(rows) == 0 {
			continue
		}
		out.Years = append(out.Years, year)
		stateRowsByYear[year] = rows
		for _, row := range rows {
			if row.Party != "" {
				active[row.Party] = true
			}
		}
	}

	if party != "" && active[party] {
		out.Parties = []string{party}
	} else {
		out.Parties = sortedKeys(active)
	}

	for _, p := range out.Parties {
		seatSeries := make([]int, 0, len(out.Years))
		shareSeries := make([]float64, 0, len(out.Years))

		for _, year := range out.Years {
			t, _ := d.table(year)
			rows := stateRowsByYear[year]

			seats := 0
			for _, row := range rows {
				if row.Party == p {
					seats++
				}
			}
			seatSeries = append(seatSeries, seats)
			shareSeries = append(shareSeries, voteShare(rows, p, t.HasColumn(colVotes)))
		}

		out.SeatTrends[p] = seatSeries
		out.VoteShareTrends[p] = shareSeries
	}

	return out
}

// voteShare computes a party's share of the state's parsed votes, as a
// percentage rounded to two decimals. Any unparseable vote cell in the state
// poisons the whole calculation down to zero, matching the all-or-nothing
// column coercion the statistic was defined with.
func voteShare(stateRows []models.Result, party string, hasVotes bool) float64 {
	if !hasVotes {
		return 0
	}
	total, partyVotes := 0, 0
	for _, row := range stateRows {
		v, ok := parseGroupedInt(row.Votes)
		if !ok {
			return 0
		}
		total += v
		if row.Party == party {
			partyVotes += v
		}
	}
	if total == 0 {
		return 0
	}
	return round2(float64(partyVotes) / float64(total) * 100)
}

// ConstituencyTypeData analyzes reservation categories (general/SC/ST).
// Every series here is aligned to the global years list: years whose table
// lacks the Type column report zero seats and null turnout.
func (d *Dataset) ConstituencyTypeData(ctype string) *models.ConstituencyTypeData {
	discovered := make(map[string]bool)
	for _, year := range d.years {
		t, _ := d.table(year)
		if !t.HasColumn(colType) {
			continue
		}
		for _, row := range t.Rows {
			if row.Type != "" {
				discovered[row.Type] = true
			}
		}
	}
	allTypes := sortedKeys(discovered)

	selected := allTypes
	if ctype != "" && discovered[ctype] {
		selected = []string{ctype}
	}

	out := &models.ConstituencyTypeData{
		Years: d.years,
		Types: selected,
		Data:  make(map[string]*models.ConstituencyTypeInfo, len(selected)),
	}

	for _, typ := range selected {
		info := &models.ConstituencyTypeInfo{
			SeatsByYear:      make([]int, 0, len(d.years)),
			PartyPerformance: make(map[string][]int),
			TurnoutByYear:    make([]*float64, 0, len(d.years)),
		}

		for i, year := range d.years {
			t, _ := d.table(year)
			if !t.HasColumn(colType) {
				info.SeatsByYear = append(info.SeatsByYear, 0)
				info.TurnoutByYear = append(info.TurnoutByYear, nil)
				continue
			}

			rows := make([]models.Result, 0)
			for _, row := range t.Rows {
				if row.Type == typ {
					rows = append(rows, row)
				}
			}
			info.SeatsByYear = append(info.SeatsByYear, len(rows))

			if len(rows) == 0 {
				info.TurnoutByYear = append(info.TurnoutByYear, nil)
				continue
			}

			for party, seats := range seatsByParty(rows) {
				series := info.PartyPerformance[party]
				if series == nil {
					series = make([]int, len(d.years))
					info.PartyPerformance[party] = series
				}
				series[i] = seats
			}

			if mean := meanPercent(rows, turnoutOf); mean != nil {
				info.TurnoutByYear = append(info.TurnoutByYear, floatPtr(round2(*mean)))
			} else {
				info.TurnoutByYear = append(info.TurnoutByYear, nil)
			}
		}

		out.Data[typ] = info
	}

	return out
}
