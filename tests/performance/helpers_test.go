package performance

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/getmockd/hartool/pkg/har"
)

var benchHosts = []string{
	"example.com",
	"api.example.com",
	"cdn.example.com",
	"www.google-analytics.com",
	"stats.g.doubleclick.net",
}

var benchPaths = []string{
	"/static/app.%d.js",
	"/v1/users/%d",
	"/img/hero-%d.png",
	"/collect?v=1&tid=%d",
	"/api/orders/%d.json",
}

// buildHAR returns a HAR document with n entries cycling through a fixed
// mix of hosts and paths.
func buildHAR(n int) []byte {
	entries := make([]map[string]any, n)
	for i := range entries {
		url := fmt.Sprintf("https://%s"+benchPaths[i%len(benchPaths)], benchHosts[(i/len(benchPaths))%len(benchHosts)], i)
		entries[i] = map[string]any{
			"startedDateTime": "2024-05-01T10:00:00.000Z",
			"time":            float64(i%500) + 0.25,
			"request": map[string]any{
				"method":  "GET",
				"url":     url,
				"headers": []map[string]string{{"name": "Accept", "value": "*/*"}},
			},
			"response": map[string]any{
				"status":  200 + (i%3)*100,
				"headers": []map[string]string{{"name": "Content-Type", "value": "application/json"}},
				"content": map[string]any{"size": i % 4096, "mimeType": "application/json"},
			},
			"timings": map[string]any{"dns": 1, "connect": 2, "send": 0.5, "wait": 10, "receive": 3},
		}
	}
	data, err := json.Marshal(map[string]any{
		"log": map[string]any{
			"version": "1.2",
			"creator": map[string]string{"name": "bench", "version": "1"},
			"entries": entries,
		},
	})
	if err != nil {
		panic(err)
	}
	return data
}

func mustParse(tb testing.TB, data []byte) *har.Document {
	tb.Helper()
	doc, err := har.Parse(data)
	if err != nil {
		tb.Fatal(err)
	}
	return doc
}
