package mock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

func pageReq(start int) domain.PageRequest {
	return domain.PageRequest{Query: "test", Type: domain.SearchNews, Sort: domain.SortRelevance, Start: start, Display: 100}
}

func TestMockClient_GeneratedPages(t *testing.T) {
	client := New().WithTotal(150)

	first, err := client.SearchPage(context.Background(), pageReq(1))
	if err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}
	if len(first.Items) != 100 {
		t.Errorf("first page got %d items, want 100", len(first.Items))
	}
	if first.Items[0].Title != "item 1" {
		t.Errorf("first title = %q, want item 1", first.Items[0].Title)
	}

	second, err := client.SearchPage(context.Background(), pageReq(101))
	if err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}
	if len(second.Items) != 50 {
		t.Errorf("second page got %d items, want 50", len(second.Items))
	}
	if second.Total != 150 {
		t.Errorf("Total = %d, want 150", second.Total)
	}
}

func TestMockClient_Items(t *testing.T) {
	client := New().WithItems([]domain.SearchItem{{Title: "a"}, {Title: "b"}})

	page, err := client.SearchPage(context.Background(), pageReq(1))
	if err != nil {
		t.Fatalf("SearchPage() error = %v", err)
	}
	if len(page.Items) != 2 || page.Total != 2 {
		t.Errorf("got %d items total %d, want 2/2", len(page.Items), page.Total)
	}
}

func TestMockClient_ErrorAt(t *testing.T) {
	boom := errors.New("boom")
	client := New().WithTotal(300).WithErrorAt(101, boom)

	if _, err := client.SearchPage(context.Background(), pageReq(1)); err != nil {
		t.Errorf("start=1 error = %v, want nil", err)
	}
	if _, err := client.SearchPage(context.Background(), pageReq(101)); !errors.Is(err, boom) {
		t.Errorf("start=101 error = %v, want boom", err)
	}
	if client.CallCount != 2 {
		t.Errorf("CallCount = %d, want 2", client.CallCount)
	}
}

func TestMockClient_ContextCancel(t *testing.T) {
	client := New().WithTotal(10).WithDelay(5 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.SearchPage(ctx, pageReq(1))
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error = %v, want DeadlineExceeded", err)
	}
}

func TestMockClient_Reset(t *testing.T) {
	client := New().WithTotal(10)
	client.SearchPage(context.Background(), pageReq(1))
	client.Reset()

	if client.CallCount != 0 || len(client.Starts()) != 0 {
		t.Error("Reset() should clear recorded calls")
	}
}
