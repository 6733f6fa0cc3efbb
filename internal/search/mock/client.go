package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

// Client - фейковый провайдер. Если Items не задан, записи генерируются
// по номеру ранга ("item N") вплоть до Total.
type Client struct {
	Total   int
	Items   []domain.SearchItem
	Error   error
	ErrorAt map[int]error
	Delay   time.Duration
	DelayAt map[int]time.Duration

	CallCount   int
	LastRequest domain.PageRequest
	AllRequests []domain.PageRequest

	mu sync.Mutex
}

func New() *Client {
	return &Client{}
}

func (c *Client) WithTotal(total int) *Client {
	c.Total = total
	return c
}

func (c *Client) WithItems(items []domain.SearchItem) *Client {
	c.Items = items
	if c.Total == 0 {
		c.Total = len(items)
	}
	return c
}

func (c *Client) WithError(err error) *Client {
	c.Error = err
	return c
}

// WithErrorAt - ошибка только для страницы с данным start
func (c *Client) WithErrorAt(start int, err error) *Client {
	if c.ErrorAt == nil {
		c.ErrorAt = make(map[int]error)
	}
	c.ErrorAt[start] = err
	return c
}

func (c *Client) WithDelay(delay time.Duration) *Client {
	c.Delay = delay
	return c
}

func (c *Client) WithDelayAt(start int, delay time.Duration) *Client {
	if c.DelayAt == nil {
		c.DelayAt = make(map[int]time.Duration)
	}
	c.DelayAt[start] = delay
	return c
}

func (c *Client) SearchPage(ctx context.Context, req domain.PageRequest) (*domain.ResultPage, error) {
	c.mu.Lock()
	c.CallCount++
	c.LastRequest = req
	c.AllRequests = append(c.AllRequests, req)
	delay := c.Delay
	if d, ok := c.DelayAt[req.Start]; ok {
		delay = d
	}
	err := c.Error
	if e, ok := c.ErrorAt[req.Start]; ok {
		err = e
	}
	total := c.Total
	corpus := c.Items
	c.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	if err != nil {
		return nil, err
	}

	size := total
	if corpus != nil && len(corpus) < size {
		size = len(corpus)
	}

	from := req.Start - 1
	to := from + req.Display
	if to > size {
		to = size
	}

	var items []domain.SearchItem
	for i := from; i < to; i++ {
		if corpus != nil {
			items = append(items, corpus[i])
			continue
		}
		items = append(items, domain.SearchItem{
			Title:       fmt.Sprintf("item %d", i+1),
			Link:        fmt.Sprintf("https://example.com/%d", i+1),
			Description: fmt.Sprintf("description %d", i+1),
		})
	}

	return &domain.ResultPage{
		Items:   items,
		Total:   total,
		Start:   req.Start,
		Display: req.Display,
	}, nil
}

// Starts - start всех запросов в порядке поступления
func (c *Client) Starts() []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	starts := make([]int, len(c.AllRequests))
	for i, r := range c.AllRequests {
		starts[i] = r.Start
	}
	return starts
}

func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.CallCount = 0
	c.LastRequest = domain.PageRequest{}
	c.AllRequests = nil
}
