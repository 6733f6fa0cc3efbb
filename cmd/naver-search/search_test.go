package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/service"
)

func testView() service.View {
	ts := time.Date(2024, 5, 6, 9, 30, 0, 0, time.Local)
	return service.View{
		Items: []domain.SearchItem{
			{
				Title:        "<b>Go</b> &quot;1.22&quot;",
				OriginalLink: "https://example.com/a",
				Link:         "https://n.news.naver.com/a",
				Description:  "release <b>notes</b>",
				PublishedAt:  &ts,
			},
			{
				Title:       "camping",
				Link:        "https://cafe.naver.com/x/1",
				SourceName:  "gophers",
				SourceURL:   "https://cafe.naver.com/x",
				Description: "",
			},
		},
		CurrentPage:   2,
		TotalPages:    3,
		Offset:        20,
		TotalCount:    250,
		FilteredCount: 42,
	}
}

func TestPrintView(t *testing.T) {
	var buf bytes.Buffer
	printView(&buf, testView())
	out := buf.String()

	assert.Contains(t, out, "42 results (of 250), page 2/3")
	assert.Contains(t, out, `21. Go "1.22"`)
	assert.Contains(t, out, "2024-05-06 09:30")
	assert.Contains(t, out, "release notes")
	assert.Contains(t, out, "original: https://example.com/a")
	assert.Contains(t, out, "22. camping")
	assert.Contains(t, out, "From: gophers")
	assert.Contains(t, out, "cafe:     https://cafe.naver.com/x")
	assert.NotContains(t, out, "<b>")
}

func TestPrintView_NoResults(t *testing.T) {
	var buf bytes.Buffer
	printView(&buf, service.View{NoResults: true, Message: service.MsgNoResults})

	assert.Equal(t, service.MsgNoResults+"\n", buf.String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printJSON(&buf, testView()))

	var out struct {
		Total      int `json:"total"`
		Filtered   int `json:"filtered"`
		Page       int `json:"page"`
		TotalPages int `json:"totalPages"`
		Items      []struct {
			Title    string `json:"title"`
			PubDate  string `json:"pubDate"`
			CafeName string `json:"cafename"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 250, out.Total)
	assert.Equal(t, 42, out.Filtered)
	assert.Equal(t, 2, out.Page)
	require.Len(t, out.Items, 2)
	assert.Equal(t, `Go "1.22"`, out.Items[0].Title)
	assert.Equal(t, "2024-05-06 09:30", out.Items[0].PubDate)
	assert.Equal(t, "gophers", out.Items[1].CafeName)
}

func TestSearchCmd_Help(t *testing.T) {
	assert.Contains(t, searchCmd.Long, "exact phrase")
	assert.NotNil(t, rootCmd.Commands())
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"serve", "search", "bot"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
