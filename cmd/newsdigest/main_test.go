package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testThread = `<html><body><table>
<tr class="athing comtr" id="2"><td><table><tr>
	<td class="ind" indent="0"></td>
	<td class="default"><div class="comment"><div class="commtext c00">Useful tool, thanks.</div></div></td>
</tr></table></td></tr>
</table></body></html>`

const testCompletion = `{"id":"1","object":"chat.completion","model":"test","choices":[{"index":0,
"message":{"role":"assistant","content":"- first point\n- second point"},"finish_reason":"stop"}]}`

// newTestSite serves the source API, the discussion page and the chat completion endpoint
func newTestSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/topstories.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[1,3]`))
	})
	mux.HandleFunc("/v0/item/1.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"type":"story","title":"Show: a tool","text":"<p>I made a tool</p>",
			"score":150,"descendants":1,"time":1700000000}`))
	})
	mux.HandleFunc("/v0/item/3.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":3,"type":"story","title":"Below threshold","text":"x","score":20}`))
	})
	mux.HandleFunc("/item", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testThread))
	})
	mux.HandleFunc("/v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(testCompletion))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func writeConfig(t *testing.T, siteURL, dir string) string {
	t.Helper()
	cfg := fmt.Sprintf(`
source:
  slug: hn
  site_url: %[1]s/
  api_url: %[1]s/v0
  timeout: 5s
  retries: 1
feed:
  title: Test digest
  output_dir: %[2]s/out
database:
  dsn: file:%[2]s/state.db?mode=rwc&_txlock=immediate
llm:
  endpoint: %[1]s/v1
  api_key: test-key
  model: test
extraction:
  timeout: 5s
`, siteURL, dir)
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))
	return path
}

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: "non-existent-config.yml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(path, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRun_Digest(t *testing.T) {
	srv := newTestSite(t)
	dir := t.TempDir()
	opts := Opts{Config: writeConfig(t, srv.URL, dir), BaseURL: "https://feeds.example.com/hn"}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	require.NoError(t, run(ctx, opts))

	feedFile := filepath.Join(dir, "out", "feed.xml")
	f, err := os.Open(feedFile) //nolint:gosec // test file
	require.NoError(t, err)
	parsed, err := gofeed.NewParser().Parse(f)
	require.NoError(t, f.Close())
	require.NoError(t, err)

	assert.Equal(t, "Test digest", parsed.Title)
	require.Len(t, parsed.Items, 1)
	assert.Equal(t, "Show: a tool", parsed.Items[0].Title)
	assert.Contains(t, parsed.Items[0].Content, "first point")
	assert.Contains(t, parsed.Items[0].Content, srv.URL+"/item?id=1")

	t.Run("second run publishes nothing new", func(t *testing.T) {
		require.NoError(t, run(ctx, opts))
		data, err := os.ReadFile(feedFile) //nolint:gosec // test file
		require.NoError(t, err)
		parsed, err := gofeed.NewParser().ParseString(string(data))
		require.NoError(t, err)
		assert.Len(t, parsed.Items, 1)
	})

	t.Run("publish only restores documents", func(t *testing.T) {
		require.NoError(t, os.Remove(feedFile))
		popts := opts
		popts.PublishOnly = true
		require.NoError(t, run(ctx, popts))
		assert.FileExists(t, feedFile)
	})
}

func TestRun_PublishOnlyWithoutState(t *testing.T) {
	srv := newTestSite(t)
	dir := t.TempDir()
	opts := Opts{Config: writeConfig(t, srv.URL, dir), PublishOnly: true}

	err := run(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing committed yet")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := loadConfig(Opts{})
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Digest.Threshold)
		assert.Equal(t, "out", cfg.Feed.OutputDir)
	})

	t.Run("overrides", func(t *testing.T) {
		opts := Opts{BaseURL: "https://example.com/feeds", OutputDir: "/tmp/feeds", DB: "file:x.db", APIKey: "key"}
		opts.Digest.Threshold = 250
		opts.Digest.ScanLimit = 30
		opts.Digest.BatchSize = 3
		opts.Digest.HistorySize = 50
		opts.Digest.PageSize = 10

		cfg, err := loadConfig(opts)
		require.NoError(t, err)
		assert.Equal(t, "https://example.com/feeds", cfg.Feed.BaseURL)
		assert.Equal(t, "/tmp/feeds", cfg.Feed.OutputDir)
		assert.Equal(t, "file:x.db", cfg.Database.DSN)
		assert.Equal(t, "key", cfg.LLM.APIKey)
		assert.Equal(t, 250, cfg.Digest.Threshold)
		assert.Equal(t, 30, cfg.Digest.ScanLimit)
		assert.Equal(t, 3, cfg.Digest.BatchSize)
		assert.Equal(t, 50, cfg.Digest.HistorySize)
		assert.Equal(t, 10, cfg.Digest.PageSize)
	})

	t.Run("invalid override", func(t *testing.T) {
		opts := Opts{}
		opts.Digest.Threshold = -1
		_, err := loadConfig(opts)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "digest.threshold")
	})
}

func TestSetupLog(t *testing.T) {
	// setup should not panic in any mode
	setupLog(true)
	setupLog(false)
	setupLog(true, "secret1", "")
}
