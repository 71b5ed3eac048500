package web

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestHomeEscapesNames(t *testing.T) {
	var buf bytes.Buffer
	data := HomeData{
		Unfinished:  []GameSummary{{ID: 3, CreatedAt: "2022-10-05 20:00"}},
		Finished:    []GameSummary{{ID: 1, FinishedAt: "2022-09-03 21:00"}},
		Leaders:     []LeaderRow{{Name: "<b>Ann</b>", TotalScore: 40, Games: 2}},
		DefaultGoal: 250,
	}
	if err := Home(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<b>Ann</b>") {
		t.Fatal("expected player name to be escaped")
	}
	for _, want := range []string{`href="/games/1/results"`, "Game #3", `value="250"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestResultsRoundView(t *testing.T) {
	var buf bytes.Buffer
	data := ResultsPage{
		GameID:  7,
		View:    "rounds",
		Columns: []ResultsColumn{{Name: "A", Color: "#7F8E9A"}, {Name: "B", Color: "#FFFFFF"}},
		Rows: []ResultsRow{
			{Label: "1", Scores: []int{10, 15}},
			{Label: "Total", Total: true, Scores: []int{10, 15}},
		},
	}
	if err := Results(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	for _, want := range []string{`color: #7F8E9A`, `<tr class="total"><td>Total</td><td>10</td><td>15</td></tr>`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestResultsPlayerView(t *testing.T) {
	var buf bytes.Buffer
	data := ResultsPage{
		GameID:  7,
		View:    "players",
		Rounds:  []int{1, 2},
		Players: []PlayerLine{{Name: "A", TotalScore: 15, Scores: []int{10, 5}}},
	}
	if err := Results(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "<tr><td>A</td><td>10</td><td>5</td><td>15</td></tr>") {
		t.Fatalf("unexpected player table:\n%s", buf.String())
	}
}
