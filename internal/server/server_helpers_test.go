package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
)

func createUser(t *testing.T, ts *httptest.Server, name string) uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/users", map[string]string{"name": name})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return uint(body["id"].(float64))
}

func createGame(t *testing.T, ts *httptest.Server, goal int, users ...uint) string {
	t.Helper()
	resp := doRequest(t, ts, http.MethodPost, "/api/games", map[string]any{
		"user_ids": users,
		"goal":     goal,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	return strconv.Itoa(int(body["game_id"].(float64)))
}

// roundPlayers returns the player ids of the open round in display order.
func roundPlayers(t *testing.T, ts *httptest.Server, gameID string) []uint {
	t.Helper()
	resp := doRequest(t, ts, http.MethodGet, "/api/games/"+gameID+"/round", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	players := body["players"].([]any)
	ids := make([]uint, 0, len(players))
	for _, raw := range players {
		ids = append(ids, uint(raw.(map[string]any)["player_id"].(float64)))
	}
	return ids
}

func enterScores(t *testing.T, ts *httptest.Server, gameID string, players []uint, scores ...int) map[string]any {
	t.Helper()
	entries := make([]map[string]any, 0, len(scores))
	for i, score := range scores {
		entries = append(entries, map[string]any{"player_id": players[i], "score": score})
	}
	resp := doRequest(t, ts, http.MethodPut, "/api/games/"+gameID+"/round/scores", map[string]any{"scores": entries})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	return decodeBody(t, resp)
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() {
		_ = resp.Body.Close()
	})
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func assertError(t *testing.T, resp *http.Response, status int, message string) map[string]any {
	t.Helper()
	if resp.StatusCode != status {
		t.Fatalf("expected status %d, got %d", status, resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if message != "" && body["error"] != message {
		t.Fatalf("expected error %q, got %#v", message, body["error"])
	}
	return body
}
