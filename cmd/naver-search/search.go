package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/render"
	"github.com/kitbuilder587/naver-search/internal/service"
)

var (
	searchType   string
	searchSort   string
	searchFilter string
	searchDays   string
	searchPage   int
	searchSize   int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search once and print a page of results",
	Long: `Fetches all result pages for the query, applies the local filters and
prints one display page.

Search operators:
` + render.OperatorHelp() + `
Examples:
  naver-search search "반도체 +삼성"
  naver-search search --type cafe --sort date 캠핑
  naver-search search --filter 삼성 --days 3 --page 2 반도체`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "news", "Index to search: news|cafe")
	searchCmd.Flags().StringVarP(&searchSort, "sort", "s", "relevance", "Ordering: relevance|date")
	searchCmd.Flags().StringVarP(&searchFilter, "filter", "f", "", "Keep results whose title or description contains this text")
	searchCmd.Flags().StringVarP(&searchDays, "days", "d", "all", "News from the last N days: all|1|3|7")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Display page")
	searchCmd.Flags().IntVar(&searchSize, "page-size", 20, "Results per display page")
	searchCmd.Flags().BoolVarP(&searchJSON, "json", "j", false, "Print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	t, err := domain.ParseSearchType(searchType)
	if err != nil {
		return fmt.Errorf("--type %q: %w", searchType, err)
	}
	sort, err := domain.ParseSortMode(searchSort)
	if err != nil {
		return fmt.Errorf("--sort %q: %w", searchSort, err)
	}
	days, err := domain.ParseRecency(searchDays)
	if err != nil {
		return fmt.Errorf("--days %q: %w", searchDays, err)
	}
	if days != nil && t != domain.SearchNews {
		return errors.New("--days only applies to news searches")
	}

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	defer logger.Sync()

	fetcher, err := newFetcher(cfg, logger, nil)
	if err != nil {
		return err
	}

	session := service.NewSession(fetcher, service.WithPageSize(searchSize))
	defer session.Close()

	q := domain.SearchQuery{Text: strings.Join(args, " "), Type: t, Sort: sort}
	if err := session.Search(cmd.Context(), q); err != nil && !errors.Is(err, domain.ErrNoResults) {
		return errors.New(service.MessageFor(err))
	}

	session.SetSubQuery(searchFilter)
	session.SetRecency(days)
	session.SetPage(searchPage)

	v := session.View()
	if searchJSON {
		return printJSON(cmd.OutOrStdout(), v)
	}
	printView(cmd.OutOrStdout(), v)
	return nil
}

func printView(w io.Writer, v service.View) {
	if v.NoResults {
		fmt.Fprintln(w, v.Message)
		return
	}

	fmt.Fprintf(w, "%d results", v.FilteredCount)
	if v.FilteredCount != v.TotalCount {
		fmt.Fprintf(w, " (of %d)", v.TotalCount)
	}
	if v.TotalPages > 1 {
		fmt.Fprintf(w, ", page %d/%d", v.CurrentPage, v.TotalPages)
	}
	fmt.Fprintln(w)

	for i, item := range v.Items {
		fmt.Fprintf(w, "\n%d. %s\n", v.Offset+i+1, render.PlainText(item.Title))
		if item.PublishedAt != nil {
			fmt.Fprintf(w, "   %s\n", render.FormatDate(item.PublishedAt))
		}
		if item.SourceName != "" {
			fmt.Fprintf(w, "   From: %s\n", item.SourceName)
		}
		if desc := render.PlainText(item.Description); desc != "" {
			fmt.Fprintf(w, "   %s\n", desc)
		}
		if item.OriginalLink != "" {
			fmt.Fprintf(w, "   original: %s\n", item.OriginalLink)
		}
		if item.SourceURL != "" {
			fmt.Fprintf(w, "   cafe:     %s\n", item.SourceURL)
		}
		fmt.Fprintf(w, "   naver:    %s\n", item.Link)
	}
}

type jsonItem struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Link         string `json:"link"`
	OriginalLink string `json:"originallink,omitempty"`
	PubDate      string `json:"pubDate,omitempty"`
	CafeName     string `json:"cafename,omitempty"`
	CafeURL      string `json:"cafeurl,omitempty"`
}

func printJSON(w io.Writer, v service.View) error {
	out := struct {
		Total      int        `json:"total"`
		Filtered   int        `json:"filtered"`
		Page       int        `json:"page"`
		TotalPages int        `json:"totalPages"`
		Items      []jsonItem `json:"items"`
	}{
		Total:      v.TotalCount,
		Filtered:   v.FilteredCount,
		Page:       v.CurrentPage,
		TotalPages: v.TotalPages,
		Items:      make([]jsonItem, 0, len(v.Items)),
	}
	for _, item := range v.Items {
		out.Items = append(out.Items, jsonItem{
			Title:        render.PlainText(item.Title),
			Description:  render.PlainText(item.Description),
			Link:         item.Link,
			OriginalLink: item.OriginalLink,
			PubDate:      render.FormatDate(item.PublishedAt),
			CafeName:     item.SourceName,
			CafeURL:      item.SourceURL,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
