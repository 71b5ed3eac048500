package web

type GameSummary struct {
	ID         uint   `json:"id"`
	CreatedAt  string `json:"created_at"`
	FinishedAt string `json:"finished_at,omitempty"`
}

type LeaderRow struct {
	Name       string
	TotalScore int
	Games      int
}

type HomeData struct {
	Unfinished  []GameSummary
	Finished    []GameSummary
	Leaders     []LeaderRow
	DefaultGoal int
}

type ResultsColumn struct {
	Name  string
	Color string
}

type ResultsRow struct {
	Label  string
	Total  bool
	Scores []int
}

type PlayerLine struct {
	Name       string
	TotalScore int
	Scores     []int
}

// ResultsPage carries either Players (player view) or Columns and Rows
// (round view), depending on View.
type ResultsPage struct {
	GameID  uint
	View    string
	Rounds  []int
	Players []PlayerLine
	Columns []ResultsColumn
	Rows    []ResultsRow
}
