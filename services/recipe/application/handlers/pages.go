package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/ghuser/recipelog/pkg/errhttp"
	"github.com/ghuser/recipelog/pkg/httpx"
	"github.com/ghuser/recipelog/pkg/logger"
	"github.com/ghuser/recipelog/pkg/notify"
	"github.com/ghuser/recipelog/pkg/session"
	"github.com/ghuser/recipelog/pkg/telemetry"
	appsvcs "github.com/ghuser/recipelog/services/recipe/application/services"
	"github.com/ghuser/recipelog/services/recipe/application/views"
	recipedomain "github.com/ghuser/recipelog/services/recipe/domain"
)

// Pages bundles what the HTML handlers share.
type Pages struct {
	svc      *appsvcs.Services
	renderer *views.Renderer
	flash    *session.Flash
	log      logger.Logger
}

// NewPages returns the shared page dependencies.
func NewPages(svc *appsvcs.Services, renderer *views.Renderer, flash *session.Flash, log logger.Logger) *Pages {
	return &Pages{svc: svc, renderer: renderer, flash: flash, log: log}
}

// render writes the full page: form, list filtered by keyword, pending flash
// notices and any extra notices for this response.
func (p *Pages) render(w http.ResponseWriter, r *http.Request, status int, form views.FormView, keyword string, extra ...notify.Notice) {
	ctx := r.Context()

	pending, err := p.flash.Pop(w, r)
	if err != nil {
		p.log.WarnContext(ctx, "read flash notices", "error", err)
	}
	board := notify.NewBoard()
	for _, n := range pending {
		board.Post(n)
	}
	for _, n := range extra {
		board.Post(n)
	}

	records, err := p.svc.Recipe.Search(ctx, keyword)
	if err != nil {
		p.log.ErrorContext(ctx, "load recipes", "error", err)
		board.Post(loadFailed(err))
		records = nil
	}

	body, err := p.renderer.Page(views.PageData{
		Form:    form,
		List:    p.renderer.Project(records, keyword),
		Notices: board.Active(),
	})
	if err != nil {
		p.fail(w, r, err)
		return
	}
	httpx.HTML(w, status, body)
}

// redirectHome flashes n and sends the browser back to the list.
func (p *Pages) redirectHome(w http.ResponseWriter, r *http.Request, keyword string, n notify.Notice) {
	if err := p.flash.Add(w, r, n); err != nil {
		p.log.WarnContext(r.Context(), "store flash notice", "error", err)
	}
	httpx.SeeOther(w, r, homeURL(keyword))
}

// report logs err and sends server-side failures to Sentry.
func (p *Pages) report(r *http.Request, msg string, err error) {
	ctx := r.Context()
	if errhttp.Status(err) >= http.StatusInternalServerError {
		p.log.ErrorContext(ctx, msg, "error", err)
		telemetry.CaptureError(ctx, err)
		return
	}
	p.log.InfoContext(ctx, msg, "error", err)
}

func (p *Pages) fail(w http.ResponseWriter, r *http.Request, err error) {
	p.log.ErrorContext(r.Context(), "render page", "error", err)
	telemetry.CaptureError(r.Context(), err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func homeURL(keyword string) string {
	if keyword == "" {
		return "/"
	}
	return "/?q=" + url.QueryEscape(keyword)
}

func loadFailed(err error) notify.Notice {
	var se *recipedomain.StoreError
	if errors.As(err, &se) && se.Message != "" {
		return notify.Warning("載入食譜失敗：" + se.Message)
	}
	return notify.Warning("載入食譜失敗，請稍後再試")
}
