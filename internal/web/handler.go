// Package web - серверный HTML-интерфейс поиска. Состояние пользователя живет
// в service.Session, ключ сессии хранится в cookie.
package web

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/metrics"
	rendering "github.com/kitbuilder587/naver-search/internal/render"
	"github.com/kitbuilder587/naver-search/internal/service"
)

const SessionCookie = "naver_search_sid"

//go:embed templates/*.html
var templatesFS embed.FS

var funcs = template.FuncMap{
	"highlight": func(s string) template.HTML {
		return template.HTML(rendering.Highlight(s))
	},
	"date":    rendering.FormatDate,
	"recency": domain.FormatRecency,
	"sameRecency": func(a, b *int) bool {
		if a == nil || b == nil {
			return a == nil && b == nil
		}
		return *a == *b
	},
}

type HandlerDeps struct {
	Store      *service.SessionStore
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
	SessionTTL time.Duration
	Secure     bool
}

type Handler struct {
	store      *service.SessionStore
	tmpl       *template.Template
	logger     *zap.Logger
	metrics    *metrics.Metrics
	sessionTTL time.Duration
	secure     bool
}

type pageData struct {
	View      *service.View
	Help      bool
	Presets   []domain.RecencyPreset
	Operators []rendering.Operator
}

func NewHandler(deps HandlerDeps) (*Handler, error) {
	tmpl, err := template.New("web").Funcs(funcs).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.SessionTTL <= 0 {
		deps.SessionTTL = time.Hour
	}

	return &Handler{
		store:      deps.Store,
		tmpl:       tmpl,
		logger:     deps.Logger,
		metrics:    deps.Metrics,
		sessionTTL: deps.SessionTTL,
		secure:     deps.Secure,
	}, nil
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET("/", h.Index)
	r.POST("/search", h.Search)
	r.POST("/filter", h.Filter)
	r.POST("/recency", h.Recency)
	r.POST("/page", h.Page)
}

func (h *Handler) Index(c *gin.Context) {
	session := h.session(c)
	view := session.View()

	c.Render(http.StatusOK, render.HTML{
		Template: h.tmpl,
		Name:     "index.html",
		Data: &pageData{
			View:      &view,
			Help:      c.Query("help") != "",
			Presets:   domain.RecencyPresets,
			Operators: rendering.Operators,
		},
	})
}

func (h *Handler) Search(c *gin.Context) {
	session := h.session(c)

	q := domain.SearchQuery{
		Text: c.PostForm("query"),
		Type: parseOr(c.PostForm("type"), domain.ParseSearchType),
		Sort: parseOr(c.PostForm("sort"), domain.ParseSortMode),
	}

	err := session.Search(c.Request.Context(), q)
	switch {
	case err == nil,
		errors.Is(err, domain.ErrNoResults),
		errors.Is(err, domain.ErrEmptyQuery):
	case errors.Is(err, service.ErrStaleSearch):
		h.logger.Debug("stale search discarded")
		if h.metrics != nil {
			h.metrics.RecordStaleSearch()
		}
	default:
		h.logger.Warn("search failed",
			zap.String("type", string(q.Type)),
			zap.Error(err),
		)
	}

	h.redirect(c)
}

func (h *Handler) Filter(c *gin.Context) {
	h.session(c).SetSubQuery(c.PostForm("sub"))
	h.redirect(c)
}

func (h *Handler) Recency(c *gin.Context) {
	session := h.session(c)

	days, err := domain.ParseRecency(c.PostForm("days"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid recency filter")
		return
	}
	// по дате фильтруются только новости
	if session.Query().Type == domain.SearchNews {
		session.SetRecency(days)
	}
	h.redirect(c)
}

func (h *Handler) Page(c *gin.Context) {
	session := h.session(c)

	switch c.PostForm("dir") {
	case "next":
		session.NextPage()
	case "prev":
		session.PrevPage()
	default:
		page, err := strconv.Atoi(strings.TrimSpace(c.PostForm("page")))
		if err != nil {
			c.String(http.StatusBadRequest, "invalid page")
			return
		}
		session.SetPage(page)
	}
	h.redirect(c)
}

// session находит сессию по cookie или заводит новую
func (h *Handler) session(c *gin.Context) *service.Session {
	id, err := c.Cookie(SessionCookie)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.NewString()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, id, int(h.sessionTTL.Seconds()), "/", "", h.secure, true)
	return h.store.Get(id)
}

func (h *Handler) redirect(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// parseOr: нераспознанное значение передается как есть, его отклонит валидация запроса
func parseOr[T ~string](s string, parse func(string) (T, error)) T {
	v, err := parse(s)
	if err != nil {
		return T(s)
	}
	return v
}
