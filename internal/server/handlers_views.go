package server

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin"

	"github.com/r3p1n/scoring/internal/db"
	"github.com/r3p1n/scoring/internal/results"
	"github.com/r3p1n/scoring/internal/web"
)

func (s *Server) handleHome(c *gin.Context) {
	ctx := c.Request.Context()
	data := web.HomeData{
		Unfinished:  summaries(s.games.Games(ctx, false)),
		Finished:    summaries(s.games.Games(ctx, true)),
		DefaultGoal: s.games.DefaultGoal(ctx),
	}
	for _, total := range s.store.AllTimeTotals(ctx) {
		data.Leaders = append(data.Leaders, web.LeaderRow{
			Name:       total.Name,
			TotalScore: total.TotalScore,
			Games:      total.Games,
		})
	}
	templ.Handler(web.Home(data)).ServeHTTP(c.Writer, c.Request)
}

func (s *Server) handleResultsView(c *gin.Context) {
	gameID, ok := bindGameID(c)
	if !ok {
		return
	}
	report, err := s.results.Render(c.Request.Context(), gameID, "")
	if err != nil {
		s.logger.Info("results view unavailable",
			slog.Uint64("game_id", uint64(gameID)),
			slog.Any("error", err),
		)
		c.Redirect(http.StatusFound, "/")
		return
	}
	templ.Handler(web.Results(resultsPage(report))).ServeHTTP(c.Writer, c.Request)
}

func summaries(games []db.Game) []web.GameSummary {
	out := make([]web.GameSummary, 0, len(games))
	for _, record := range games {
		summary := web.GameSummary{ID: record.ID, CreatedAt: web.FormatTime(record.CreatedAt)}
		if record.FinishedAt != nil {
			summary.FinishedAt = web.FormatTime(*record.FinishedAt)
		}
		out = append(out, summary)
	}
	return out
}

func resultsPage(report *results.Report) web.ResultsPage {
	page := web.ResultsPage{GameID: report.GameID, View: string(report.View)}
	if report.View == results.ViewPlayers {
		for i, player := range report.Players {
			line := web.PlayerLine{Name: player.Name, TotalScore: player.TotalScore}
			for _, cell := range player.Scores {
				if i == 0 {
					page.Rounds = append(page.Rounds, cell.RoundNumber)
				}
				line.Scores = append(line.Scores, cell.Score)
			}
			page.Players = append(page.Players, line)
		}
		return page
	}
	for _, column := range report.Table.Players {
		page.Columns = append(page.Columns, web.ResultsColumn{Name: column.Name, Color: column.Color})
	}
	for _, row := range report.Table.Rows {
		label := "Total"
		if !row.Total {
			label = strconv.Itoa(row.RoundNumber)
		}
		page.Rows = append(page.Rows, web.ResultsRow{Label: label, Total: row.Total, Scores: row.Scores})
	}
	return page
}
