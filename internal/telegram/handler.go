package telegram

import (
	"context"
	"errors"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/render"
	"github.com/kitbuilder587/naver-search/internal/service"
)

const maxMessageLen = 4096 // лимит телеграма

type Handler struct {
	bot *Bot
}

func NewHandler(bot *Bot) *Handler {
	return &Handler{bot: bot}
}

func (h *Handler) HandleMessage(ctx context.Context, msg *tgbotapi.Message) {
	h.bot.logger.Info("received message",
		zap.Int64("chat_id", msg.Chat.ID),
		zap.Bool("is_command", msg.IsCommand()),
	)

	if !msg.IsCommand() {
		h.handleSearch(ctx, msg)
		return
	}

	switch msg.Command() {
	case "start":
		h.handleStart(msg)
	case "help":
		h.handleHelp(msg)
	case "search", "news", "cafe", "forum":
		h.handleSearch(ctx, msg)
	case "sort":
		h.handleSort(ctx, msg)
	case "filter":
		h.handleFilter(msg)
	case "days":
		h.handleDays(msg)
	case "page":
		h.handlePage(msg)
	case "next":
		s := h.bot.session(msg.Chat.ID)
		s.NextPage()
		h.reply(msg.Chat.ID, FormatPage(s.View()))
	case "prev":
		s := h.bot.session(msg.Chat.ID)
		s.PrevPage()
		h.reply(msg.Chat.ID, FormatPage(s.View()))
	default:
		h.bot.Send(msg.Chat.ID, "Unknown command. Use /help to see what I can do.")
	}
}

func (h *Handler) handleStart(msg *tgbotapi.Message) {
	h.bot.Send(msg.Chat.ID, "Welcome! Send any text to search Naver news, or use /cafe to search cafe posts.\n\nUse /help to see all commands.")
}

func (h *Handler) handleHelp(msg *tgbotapi.Message) {
	var sb strings.Builder
	sb.WriteString(`<b>Commands:</b>

/search text - Search with the current settings
/news text - Search news
/cafe text - Search cafe posts
/sort relevance|date - Change ordering and search again
/filter text - Keep results containing text (empty clears)
/days all|1|3|7 - Only news from the last N days
/page N - Go to page N
/next, /prev - Page through results

<b>Search operators:</b>
`)
	sb.WriteString(html.EscapeString(render.OperatorHelp()))

	h.bot.Send(msg.Chat.ID, sb.String())
}

func (h *Handler) handleSearch(ctx context.Context, msg *tgbotapi.Message) {
	session := h.bot.session(msg.Chat.ID)
	current := session.Query()

	text, searchType := ParseSearchCommand(msg.Text, current.Type)
	h.runSearch(ctx, msg.Chat.ID, session, domain.SearchQuery{
		Text: text,
		Type: searchType,
		Sort: current.Sort,
	})
}

func (h *Handler) handleSort(ctx context.Context, msg *tgbotapi.Message) {
	sort, err := domain.ParseSortMode(msg.CommandArguments())
	if err != nil {
		h.bot.Send(msg.Chat.ID, "Usage: /sort relevance|date")
		return
	}

	session := h.bot.session(msg.Chat.ID)
	q := session.Query()
	q.Sort = sort

	// сортирует провайдер, поэтому нужен новый поиск
	if strings.TrimSpace(q.Text) == "" {
		h.bot.Send(msg.Chat.ID, "Send a search term first.")
		return
	}
	h.runSearch(ctx, msg.Chat.ID, session, q)
}

func (h *Handler) handleFilter(msg *tgbotapi.Message) {
	s := h.bot.session(msg.Chat.ID)
	s.SetSubQuery(strings.TrimSpace(msg.CommandArguments()))
	h.reply(msg.Chat.ID, FormatPage(s.View()))
}

func (h *Handler) handleDays(msg *tgbotapi.Message) {
	days, err := domain.ParseRecency(msg.CommandArguments())
	if err != nil {
		h.bot.Send(msg.Chat.ID, "Usage: /days all|1|3|7")
		return
	}

	s := h.bot.session(msg.Chat.ID)
	if s.Query().Type != domain.SearchNews {
		h.bot.Send(msg.Chat.ID, "The date filter is only available for news searches.")
		return
	}
	s.SetRecency(days)
	h.reply(msg.Chat.ID, FormatPage(s.View()))
}

func (h *Handler) handlePage(msg *tgbotapi.Message) {
	page, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments()))
	if err != nil {
		h.bot.Send(msg.Chat.ID, "Usage: /page N")
		return
	}

	s := h.bot.session(msg.Chat.ID)
	s.SetPage(page)
	h.reply(msg.Chat.ID, FormatPage(s.View()))
}

func (h *Handler) runSearch(ctx context.Context, chatID int64, session *service.Session, q domain.SearchQuery) {
	h.bot.SendTyping(chatID)

	h.bot.logger.Info("processing search",
		zap.Int64("chat_id", chatID),
		zap.String("type", string(q.Type)),
		zap.String("sort", string(q.Sort)),
	)

	err := session.Search(ctx, q)
	switch {
	case errors.Is(err, service.ErrStaleSearch):
		// более новый поиск ответит сам
		h.bot.recordStale()
		return
	case err != nil && !errors.Is(err, domain.ErrNoResults) && !errors.Is(err, domain.ErrEmptyQuery):
		h.bot.logger.Error("search failed",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}

	h.reply(chatID, FormatPage(session.View()))
}

func (h *Handler) reply(chatID int64, text string) {
	for _, m := range SplitMessage(text, maxMessageLen) {
		if err := h.bot.Send(chatID, m); err != nil {
			h.bot.logger.Error("failed to send message", zap.Error(err))
		}
	}
}
