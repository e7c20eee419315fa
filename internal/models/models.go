package models

// Result is one constituency row from a yearly results CSV.
// Numeric columns stay raw text: votes and electors are comma-grouped
// ("4,77,822"), margin/turnout carry a % suffix. Each query decides how to
// coerce them, so a malformed cell only drops out of that one statistic.
type Result struct {
	Constituency  string `csv:"PC Name" json:"constituency"`
	State         string `csv:"State" json:"state"`
	Winner        string `csv:"Winning Candidate" json:"winner"`
	Party         string `csv:"Party" json:"party"`
	Votes         string `csv:"Votes" json:"votes"`
	Electors      string `csv:"Electors" json:"electors"`
	Margin        string `csv:"Margin" json:"margin"`
	MarginPercent string `csv:"Margin %" json:"margin_percent"`
	Turnout       string `csv:"Turnout" json:"turnout"`
	Type          string `csv:"Type" json:"type"`
}

// --- RESPONSE SHAPES ---
// Field names mirror the JSON the frontend consumes. "Unavailable" numeric
// values are *float64 nil, serialized as null (never zero).

type ElectionData struct {
	Year           string                `json:"year"`
	PartySeats     map[string]int        `json:"party_seats"`
	Constituencies []ConstituencySummary `json:"constituencies"`
	AvgTurnout     *float64              `json:"avg_turnout"`
}

type ConstituencySummary struct {
	Constituency  string `json:"constituency"`
	State         string `json:"state"`
	Winner        string `json:"winner"`
	Party         string `json:"party"`
	MarginPercent string `json:"margin_percent"`
	Votes         *int   `json:"votes,omitempty"`
	Electors      *int   `json:"electors,omitempty"`
}

type ConstituencyData struct {
	Name    string               `json:"name"`
	Results []ConstituencyResult `json:"results"`
}

type ConstituencyResult struct {
	Year          string `json:"year"`
	Winner        string `json:"winner"`
	Party         string `json:"party"`
	Votes         string `json:"votes"`
	Margin        string `json:"margin"`
	MarginPercent string `json:"margin_percent"`
	Turnout       string `json:"turnout"`
}

type PartyData struct {
	Name        string             `json:"name"`
	Performance []PartyPerformance `json:"performance"`
}

type PartyPerformance struct {
	Year           string          `json:"year"`
	SeatsWon       int             `json:"seats_won"`
	TotalSeats     int             `json:"total_seats"`
	Percentage     float64         `json:"percentage"`
	Constituencies []PartySeatInfo `json:"constituencies"`
}

type PartySeatInfo struct {
	Name          string `json:"name"`
	Winner        string `json:"winner"`
	MarginPercent string `json:"margin_percent"`
}

type YearComparison struct {
	Years             []string               `json:"years"`
	PartyPerformance  map[string][]YearSeats `json:"party_performance"`
	TurnoutComparison []YearTurnout          `json:"turnout_comparison"`
}

type YearSeats struct {
	Year  string `json:"year"`
	Seats int    `json:"seats"`
}

type YearTurnout struct {
	Year       string   `json:"year"`
	AvgTurnout *float64 `json:"avg_turnout"`
}

type PartyComparison struct {
	Parties []string         `json:"parties"`
	Data    []YearPartySeats `json:"data"`
}

type YearPartySeats struct {
	Year       string         `json:"year"`
	PartySeats map[string]int `json:"party_seats"`
}

type TurnoutData struct {
	Years        []string              `json:"years"`
	AvgTurnout   []float64             `json:"avg_turnout"`
	StateTurnout map[string][]*float64 `json:"state_turnout"`
}

type WinMarginData struct {
	Years         []string   `json:"years"`
	AvgMargin     []*float64 `json:"avg_margin"`
	CloseContests []int      `json:"close_contests"`
	LandslideWins []int      `json:"landslide_wins"`
}

type SearchResults struct {
	Constituencies []string `json:"constituencies"`
	Candidates     []string `json:"candidates"`
	Parties        []string `json:"parties"`
}

type PartyTrends struct {
	Years      []string         `json:"years"`
	Parties    []string         `json:"parties"`
	SeatTrends map[string][]int `json:"seat_trends"`
}

type StateData struct {
	State      string           `json:"state"`
	Years      []string         `json:"years"`
	PartySeats map[string][]int `json:"party_seats"`
	Turnout    []*float64       `json:"turnout"`
}

type AllStatesData struct {
	States []string              `json:"states"`
	Years  []string              `json:"years"`
	Data   map[string]*StateData `json:"data"`
}

type StatePartyTrends struct {
	State           string               `json:"state"`
	Years           []string             `json:"years"`
	Parties         []string             `json:"parties"`
	SeatTrends      map[string][]int     `json:"seat_trends"`
	VoteShareTrends map[string][]float64 `json:"vote_share_trends"`
}

type ConstituencyTypeData struct {
	Years []string                         `json:"years"`
	Types []string                         `json:"types"`
	Data  map[string]*ConstituencyTypeInfo `json:"data"`
}

type ConstituencyTypeInfo struct {
	SeatsByYear      []int            `json:"seats_by_year"`
	PartyPerformance map[string][]int `json:"party_performance"`
	TurnoutByYear    []*float64       `json:"turnout_by_year"`
}
