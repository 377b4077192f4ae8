package report

// QualityReport is the machine-readable artifact of one import+validation
// run. It is regenerated in full every run and has no persisted state.
type QualityReport struct {
	GeneratedAt       string               `json:"generated_at"`
	AliasTableVersion int                  `json:"alias_table_version"`
	Import            ImportSummary        `json:"import"`
	Validation        ValidationSummary    `json:"validation"`
	Corrections       []CorrectionCandidate `json:"corrections"`
	SeasonCoverage    []SeasonCoverage     `json:"season_coverage"`
}

// ImportSummary aggregates the ingestion phase.
type ImportSummary struct {
	RowsRead          int                `json:"rows_read"`
	ParseErrors       int                `json:"parse_errors"`
	FixturesProcessed int                `json:"fixtures_processed"`
	Linked            int                `json:"linked"`
	Unlinked          int                `json:"unlinked"`
	Failed            int                `json:"failed"`
	GoalsInserted     int                `json:"goals_inserted"`
	GoalsDuplicate    int                `json:"goals_duplicate"`
	UnresolvedScorers int                `json:"unresolved_scorers"`
	PlayersCreated    int                `json:"players_created"`
	WorkerCount       int                `json:"worker_count"`
	StrategyCounts    map[string]int     `json:"strategy_counts"`
	UnlinkedFixtures  []UnlinkedFixture  `json:"unlinked_fixtures,omitempty"`
}

// UnlinkedFixture records a miss so unresolved team-name patterns can be
// folded back into the alias table.
type UnlinkedFixture struct {
	Line     int    `json:"line"`
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Date     string `json:"date"`
}

// Match consistency statuses.
const (
	StatusConsistent   = "consistent"
	StatusMissing      = "missing"
	StatusPartial      = "partial"
	StatusInconsistent = "inconsistent"
)

// Correction suggestions.
const (
	SuggestionUnderAttributed = "goals under-attributed"
	SuggestionOverAttributed  = "goals over-attributed"
	SuggestionAttributionSkew = "attribution skew"
)

// ValidationSummary aggregates the read-only consistency pass.
type ValidationSummary struct {
	MatchesChecked int            `json:"matches_checked"`
	StatusCounts   map[string]int `json:"status_counts"`
}

// CorrectionCandidate flags one match whose attributed goals disagree with
// its recorded final score, ranked by proximity to perfect reconciliation.
type CorrectionCandidate struct {
	MatchID           string `json:"match_id"`
	SeasonID          string `json:"season_id,omitempty"`
	ExpectedGoalCount int    `json:"expected_goal_count"`
	ActualGoalCount   int    `json:"actual_goal_count"`
	Difference        int    `json:"difference"`
	Suggestion        string `json:"suggestion"`
}

// SeasonCoverage is the fraction of a season's matches that validate as
// consistent, used to surface systemic rather than isolated gaps.
type SeasonCoverage struct {
	SeasonID   string  `json:"season_id"`
	Matches    int     `json:"matches"`
	Consistent int     `json:"consistent"`
	Coverage   float64 `json:"coverage"`
}
