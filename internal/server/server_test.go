package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestUsersEndpoints(t *testing.T) {
	ts := newScoringServer(t)

	id := createUser(t, ts, "  Ann  ")
	resp := doRequest(t, ts, http.MethodPatch, "/api/users/"+strconv.FormatUint(uint64(id), 10), map[string]string{"name": "Annie"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if body := decodeBody(t, resp); body["name"] != "Annie" {
		t.Fatalf("unexpected rename body %#v", body)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/users", nil)
	users := decodeBody(t, resp)["users"].([]any)
	if len(users) != 1 || users[0].(map[string]any)["name"] != "Annie" {
		t.Fatalf("unexpected users %#v", users)
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/users", map[string]string{"name": strings.Repeat("x", 41)})
	assertError(t, resp, http.StatusBadRequest, "name must be between 1 and 40 characters")
	resp = doRequest(t, ts, http.MethodPost, "/api/users", map[string]string{})
	assertError(t, resp, http.StatusBadRequest, "name is required")
	resp = doRequest(t, ts, http.MethodPatch, "/api/users/99", map[string]string{"name": "Ghost"})
	assertError(t, resp, http.StatusUnprocessableEntity, "unknown user")
}

func TestCreateGameValidation(t *testing.T) {
	ts := newScoringServer(t)
	ann := createUser(t, ts, "Ann")

	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{"user_ids": []uint{ann, ann}})
	assertError(t, resp, http.StatusUnprocessableEntity, "select at least two players")
	resp = doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{"user_ids": []uint{ann, 0}})
	assertError(t, resp, http.StatusBadRequest, "invalid user id")
	resp = doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{"user_ids": []uint{ann, 5}, "goal": -1})
	assertError(t, resp, http.StatusBadRequest, "goal must not be negative")

	resp = doRequest(t, ts, http.MethodGet, "/api/games", nil)
	if games := decodeBody(t, resp)["games"].([]any); len(games) != 0 {
		t.Fatalf("expected no games, got %d", len(games))
	}
}

func TestGameDetailAndGoalDefault(t *testing.T) {
	ts := newScoringServer(t)
	ann := createUser(t, ts, "Ann")
	bob := createUser(t, ts, "Bob")

	gameID := createGame(t, ts, 300, ann, bob)
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["state"] != "open" || body["goal"].(float64) != 300 {
		t.Fatalf("unexpected detail %#v", body)
	}
	if players := body["players"].([]any); len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/settings/goal", nil)
	if goal := decodeBody(t, resp)["goal"].(float64); goal != 300 {
		t.Fatalf("expected remembered goal 300, got %v", goal)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games/404", nil)
	assertError(t, resp, http.StatusNotFound, "game not found")
	resp = doRequest(t, ts, http.MethodGet, "/api/games/abc", nil)
	assertError(t, resp, http.StatusNotFound, "not found")
}

func TestRoundFlowFinishesAtGoal(t *testing.T) {
	ts := newScoringServer(t)
	ann := createUser(t, ts, "Ann")
	bob := createUser(t, ts, "Bob")
	gameID := createGame(t, ts, 100, ann, bob)
	players := roundPlayers(t, ts, gameID)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/round/next", nil)
	assertError(t, resp, http.StatusUnprocessableEntity, "enter a score for at least one player")

	enterScores(t, ts, gameID, players, 80, 10)
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/round/next", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["finished"] != false {
		t.Fatalf("expected game to continue, got %#v", body)
	}
	if round := body["round"].(map[string]any); round["round"].(float64) != 2 {
		t.Fatalf("expected round 2, got %#v", round)
	}

	session := enterScores(t, ts, gameID, players, 25, 0)
	first := session["players"].([]any)[0].(map[string]any)
	if first["total_score"].(float64) != 105 {
		t.Fatalf("expected projected total 105, got %#v", first)
	}
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/round/next", nil)
	body = decodeBody(t, resp)
	if body["finished"] != true || body["results"] != "/games/"+gameID+"/results" {
		t.Fatalf("expected finished outcome, got %#v", body)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/round", nil)
	body = assertError(t, resp, http.StatusConflict, "game already finished")
	if body["results"] != "/games/"+gameID+"/results" {
		t.Fatalf("expected results link, got %#v", body)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/events", nil)
	events := decodeBody(t, resp)["events"].([]any)
	var types []string
	for _, raw := range events {
		types = append(types, raw.(map[string]any)["type"].(string))
	}
	want := "game_created,round_saved,round_saved,game_finished"
	if got := strings.Join(types, ","); got != want {
		t.Fatalf("expected events %s, got %s", want, got)
	}
}

func TestMultiplierEndpoint(t *testing.T) {
	ts := newScoringServer(t)
	gameID := createGame(t, ts, 0, createUser(t, ts, "Ann"), createUser(t, ts, "Bob"))
	players := roundPlayers(t, ts, gameID)

	enterScores(t, ts, gameID, players, 7, 1)
	var body map[string]any
	for i := 0; i < 2; i++ {
		resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/round/multiplier", nil)
		body = decodeBody(t, resp)
	}
	if body["multiplier"].(float64) != 3 {
		t.Fatalf("expected multiplier 3, got %#v", body["multiplier"])
	}
	entries := body["players"].([]any)
	if entries[0].(map[string]any)["total_score"].(float64) != 21 || entries[1].(map[string]any)["total_score"].(float64) != 3 {
		t.Fatalf("unexpected scaled totals %#v", entries)
	}

	resp := doRequest(t, ts, http.MethodPut, "/api/games/"+gameID+"/round/scores", map[string]any{
		"scores": []map[string]any{{"player_id": 999, "score": 1}},
	})
	assertError(t, resp, http.StatusUnprocessableEntity, "player is not in this round")
	resp = doRequest(t, ts, http.MethodPut, "/api/games/"+gameID+"/round/scores", map[string]any{"scores": []any{}})
	assertError(t, resp, http.StatusBadRequest, "scores are required")
}

func TestFinishEndpoint(t *testing.T) {
	ts := newScoringServer(t)
	gameID := createGame(t, ts, 0, createUser(t, ts, "Ann"), createUser(t, ts, "Bob"))
	players := roundPlayers(t, ts, gameID)

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/finish", nil)
	assertError(t, resp, http.StatusUnprocessableEntity, "enter a score for at least one player")

	enterScores(t, ts, gameID, players, 0, 6)
	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/finish", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games?status=finished", nil)
	if games := decodeBody(t, resp)["games"].([]any); len(games) != 1 {
		t.Fatalf("expected one finished game, got %d", len(games))
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/games?status=bogus", nil)
	assertError(t, resp, http.StatusBadRequest, "status must be unfinished or finished")

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{"user_ids": []uint{1, 2}})
	assertError(t, resp, http.StatusConflict, "game already finished")
}

func TestSettingsResetOpenRound(t *testing.T) {
	ts := newScoringServer(t)
	ann := createUser(t, ts, "Ann")
	bob := createUser(t, ts, "Bob")
	cid := createUser(t, ts, "Cid")
	gameID := createGame(t, ts, 0, ann, bob)
	if players := roundPlayers(t, ts, gameID); len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}

	resp := doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{
		"user_ids": []uint{ann, bob, cid},
		"goal":     50,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if players := roundPlayers(t, ts, gameID); len(players) != 3 {
		t.Fatalf("expected the open round to pick up Cid, got %d players", len(players))
	}

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/settings", map[string]any{"user_ids": []uint{ann}})
	assertError(t, resp, http.StatusUnprocessableEntity, "select at least two players")
}

func TestResultsEndpoints(t *testing.T) {
	ts := newScoringServer(t)
	gameID := createGame(t, ts, 0, createUser(t, ts, "A"), createUser(t, ts, "B"))

	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/results", nil)
	assertError(t, resp, http.StatusNotFound, "no results for this game")

	players := roundPlayers(t, ts, gameID)
	enterScores(t, ts, gameID, players, 10, 15)
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/round/next", nil)
	enterScores(t, ts, gameID, players, 5, 0)
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/finish", nil)

	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/results", nil)
	body := decodeBody(t, resp)
	if body["view"] != "rounds" {
		t.Fatalf("expected default rounds view, got %#v", body["view"])
	}
	rows := body["table"].(map[string]any)["rows"].([]any)
	total := rows[len(rows)-1].(map[string]any)
	if total["total"] != true || total["scores"].([]any)[0].(float64) != 15 || total["scores"].([]any)[1].(float64) != 15 {
		t.Fatalf("unexpected total row %#v", total)
	}

	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/results?view=table", nil)
	assertError(t, resp, http.StatusBadRequest, "view must be players or rounds")

	resp = doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/results/switch", nil)
	body = decodeBody(t, resp)
	if body["view"] != "players" || len(body["players"].([]any)) != 2 {
		t.Fatalf("unexpected switched report %#v", body)
	}
	resp = doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/results", nil)
	if decodeBody(t, resp)["view"] != "players" {
		t.Fatal("expected switched view to be remembered")
	}
}

func TestPages(t *testing.T) {
	ts := newScoringServer(t)
	gameID := createGame(t, ts, 0, createUser(t, ts, "Ann"), createUser(t, ts, "Bob"))

	resp := doRequest(t, ts, http.MethodGet, "/", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	page, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(page), "Game #"+gameID) {
		t.Fatalf("expected home page to list game %s", gameID)
	}

	resp = doRequest(t, ts, http.MethodGet, "/games/"+gameID+"/results", nil)
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/" {
		t.Fatalf("expected redirect home for a game without rounds, got %d", resp.StatusCode)
	}

	players := roundPlayers(t, ts, gameID)
	enterScores(t, ts, gameID, players, 4, 3)
	doRequest(t, ts, http.MethodPost, "/api/games/"+gameID+"/finish", nil)
	resp = doRequest(t, ts, http.MethodGet, "/games/"+gameID+"/results", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	page, _ = io.ReadAll(resp.Body)
	if !strings.Contains(string(page), `<tr class="total"><td>Total</td><td>4</td><td>3</td></tr>`) {
		t.Fatalf("unexpected results page:\n%s", page)
	}
	if resp.Header.Get(requestIDHeader) == "" {
		t.Fatal("expected a request id header")
	}
}
