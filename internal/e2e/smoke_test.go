//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL string

func TestMain(m *testing.M) {
	baseURL = os.Getenv("IDEOSCOPE_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	// Wait for server readiness (up to 30s)
	ready := false
	for i := 0; i < 30; i++ {
		resp, err := http.Get(baseURL + "/api/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				ready = true
				break
			}
		}
		time.Sleep(1 * time.Second)
	}
	if !ready {
		fmt.Fprintf(os.Stderr, "server at %s not ready after 30s\n", baseURL)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

var client = &http.Client{Timeout: 5 * time.Minute}

// call sends a request and decodes the JSON body, failing on any status
// other than want.
func call(t *testing.T, method, path string, want int, v any) {
	t.Helper()
	req, err := http.NewRequest(method, baseURL+path, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	if resp.StatusCode != want {
		t.Fatalf("%s %s: unexpected status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if v != nil {
		if err := json.Unmarshal(raw, v); err != nil {
			t.Fatalf("unmarshal response: %v (body: %s)", err, string(raw))
		}
	}
}

// newSession opens a session against the server's configured conceptarium.
func newSession(t *testing.T) string {
	t.Helper()
	var body struct {
		ID       string `json:"id"`
		Thoughts int    `json:"thoughts"`
	}
	call(t, http.MethodPost, "/api/sessions", http.StatusCreated, &body)
	if body.ID == "" {
		t.Fatal("no session id")
	}
	if body.Thoughts == 0 {
		t.Skip("conceptarium is empty")
	}
	t.Cleanup(func() { call(t, http.MethodDelete, "/api/sessions/"+body.ID, http.StatusNoContent, nil) })
	return body.ID
}

func TestMemeticsPanels(t *testing.T) {
	id := newSession(t)
	for _, p := range []string{"birth-rate", "population", "calendar", "fittest", "pyramid", "fitness"} {
		call(t, http.MethodGet, "/api/sessions/"+id+"/memetics/"+p, http.StatusOK, nil)
	}
}

func TestBirthRateWindows(t *testing.T) {
	id := newSession(t)
	var body struct {
		Daily   []int                      `json:"daily"`
		Windows map[string]json.RawMessage `json:"windows"`
	}
	call(t, http.MethodGet, "/api/sessions/"+id+"/memetics/birth-rate", http.StatusOK, &body)
	for _, w := range []string{"day", "week", "month", "year"} {
		if _, ok := body.Windows[w]; !ok {
			t.Errorf("missing %s window", w)
		}
	}
	total := 0
	for _, n := range body.Daily {
		total += n
	}
	t.Logf("%d thoughts over %d days", total, len(body.Daily))
}

func TestSemanticsPanels(t *testing.T) {
	id := newSession(t)
	call(t, http.MethodGet, "/api/sessions/"+id+"/semantics/spectrum", http.StatusOK, nil)

	var vol struct {
		Volume struct {
			Explored float64 `json:"explored"`
		} `json:"volume"`
	}
	call(t, http.MethodGet, "/api/sessions/"+id+"/semantics/volume", http.StatusOK, &vol)
	if vol.Volume.Explored < 0 || vol.Volume.Explored > 1 {
		t.Errorf("explored fraction %g out of range", vol.Volume.Explored)
	}
}
