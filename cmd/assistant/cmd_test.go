package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"mycloud-drive/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/files", func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "alice" || pass != "pw" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string][]string{"files": {"report.pdf", "budget.csv"}})
	})
	mux.HandleFunc("/chatbot", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string   `json:"query"`
			Files []string `json:"files"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		_ = json.NewEncoder(w).Encode(map[string]string{
			"response": "you asked " + req.Query + " about " + req.Files[0],
		})
	})
	mux.HandleFunc("/download/report.pdf", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF"))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func run(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	cfg := &config.Config{Assistant: config.AssistantConfig{
		BaseURL:        srv.URL,
		Username:       "alice",
		Password:       "pw",
		RequestTimeout: 5 * time.Second,
		EventsPath:     "/ws/events",
		LogFilePath:    filepath.Join(t.TempDir(), "assistant.log"),
	}}
	root := newRootCmd(cfg)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestFilesCommandGroupsByKind(t *testing.T) {
	out, err := run(t, newBackend(t), "files")
	require.NoError(t, err)

	assert.Contains(t, out, "Documents\n  report.pdf")
	assert.Contains(t, out, "Tabular Data\n  budget.csv")
	assert.Contains(t, out, "Images\n  No files")
}

func TestFilesCommandBadCredentials(t *testing.T) {
	_, err := run(t, newBackend(t), "files", "--password", "wrong")
	require.Error(t, err)
}

func TestAskCommandPrintsTranscript(t *testing.T) {
	out, err := run(t, newBackend(t), "ask", "--file", "report.pdf", "what", "is", "this")
	require.NoError(t, err)

	assert.Contains(t, out, "You: what is this")
	assert.Contains(t, out, "Assistant: you asked what is this about report.pdf")
}

func TestAskCommandRejectsUnknownFile(t *testing.T) {
	_, err := run(t, newBackend(t), "ask", "--file", "ghost.txt", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.txt")
}

func TestDownloadCommandWritesFile(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, newBackend(t), "download", "report.pdf", "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "saved")

	data, err := os.ReadFile(filepath.Join(dir, "report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))

	_, err = run(t, newBackend(t), "download", "missing.txt", "-o", dir)
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "missing.txt"))
}
