package controllers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/models/dto"
	"github.com/yigit/studyplan/internal/app/views"
	"github.com/yigit/studyplan/internal/app/views/courselist"
	"github.com/yigit/studyplan/internal/app/views/header"
	"github.com/yigit/studyplan/internal/middleware"
	"github.com/yigit/studyplan/internal/pkg/apperrors"
	"github.com/yigit/studyplan/internal/pkg/helpers"
	"github.com/yigit/studyplan/internal/pkg/notify"
	"github.com/yigit/studyplan/internal/pkg/session"
)

// PanelParam carries the open state of the course panel in page URLs.
const PanelParam = "panel"

// PageController renders the HTML pages and handles their form posts.
// Mutations answer with a redirect and flash one notification.
type PageController struct {
	auth       AuthUseCase
	programmes ProgrammeUseCase
	plans      PlanUseCase
	list       *courselist.List
	cookies    session.Cookies
	flashes    *notify.Flashes
	intro      template.HTML
	logger     zerolog.Logger
}

// NewPageController creates a new PageController
func NewPageController(
	authService AuthUseCase,
	programmes ProgrammeUseCase,
	plans PlanUseCase,
	list *courselist.List,
	cookies session.Cookies,
	flashes *notify.Flashes,
	logger zerolog.Logger,
) *PageController {
	intro, err := views.Content("home")
	if err != nil {
		logger.Error().Err(err).Msg("Home page content unavailable")
	}
	return &PageController{
		auth:       authService,
		programmes: programmes,
		plans:      plans,
		list:       list,
		cookies:    cookies,
		flashes:    flashes,
		intro:      intro,
		logger:     logger,
	}
}

// layout resolves the header layout and remembers an explicit choice.
func (p *PageController) layout(ctx *gin.Context) header.Layout {
	query := ctx.Query("layout")
	if l, ok := header.ParseLayout(query); ok {
		ctx.SetSameSite(http.SameSiteLaxMode)
		ctx.SetCookie(header.LayoutCookie, string(l), 365*24*3600, "/", "", p.cookies.Secure, true)
		return l
	}
	cookie, _ := ctx.Cookie(header.LayoutCookie)
	return header.ResolveLayout("", cookie, ctx.GetHeader("User-Agent"))
}

func (p *PageController) page(ctx *gin.Context, title string, data interface{}) views.Page {
	menu := header.MenuFromQuery(ctx.Request.URL.Query())
	page := views.Page{
		Title:     title,
		Header:    header.Build(session.From(ctx), p.layout(ctx), menu, ctx.Request.URL),
		CSRFField: middleware.CSRFField(ctx),
		Data:      data,
	}
	if n, ok := p.flashes.Pop(ctx.Writer, ctx.Request); ok {
		page.Flash = &n
	}
	return page
}

func (p *PageController) render(ctx *gin.Context, status int, name, title string, data interface{}) {
	ctx.HTML(status, name, p.page(ctx, title, data))
}

// renderError shows the error page with the status mapped from err.
func (p *PageController) renderError(ctx *gin.Context, err error) {
	status, detail := middleware.ErrorStatus(err)
	if status >= http.StatusInternalServerError {
		p.logger.Error().Err(err).Str("path", ctx.Request.URL.Path).Msg("Page failed")
	}
	p.render(ctx, status, "error", http.StatusText(status), gin.H{
		"Status":  http.StatusText(status),
		"Message": detail.Message,
	})
}

// redirect flashes n and sends the browser to location.
func (p *PageController) redirect(ctx *gin.Context, location string, n *notify.Notification) {
	if n != nil {
		if err := p.flashes.Set(ctx.Writer, *n); err != nil {
			p.logger.Error().Err(err).Msg("Failed to store notification")
		}
	}
	ctx.Redirect(http.StatusSeeOther, location)
}

func (p *PageController) pathID(ctx *gin.Context, name string) (int64, bool) {
	id, ok := helpers.ParseIDParam(ctx, name)
	if !ok {
		p.renderError(ctx, apperrors.NewBadRequestError("invalid "+name))
		return 0, false
	}
	return id, true
}

// Home renders the landing page.
func (p *PageController) Home(ctx *gin.Context) {
	p.render(ctx, http.StatusOK, "home", "", gin.H{
		"Intro": p.intro,
		"Email": session.From(ctx).Email,
	})
}

type loginPage struct {
	Email string
	Error string
}

// LoginForm renders the login page.
func (p *PageController) LoginForm(ctx *gin.Context) {
	if session.From(ctx).IsLoggedIn() {
		ctx.Redirect(http.StatusSeeOther, "/")
		return
	}
	p.render(ctx, http.StatusOK, "login", "Log in", loginPage{})
}

// Login signs the user in and stores the session cookies.
func (p *PageController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBind(&req); err != nil {
		p.render(ctx, http.StatusBadRequest, "login", "Log in", loginPage{Email: req.Email, Error: "Enter your email and password"})
		return
	}

	pair, _, err := p.auth.Login(ctx.Request.Context(), req.Email, req.Password)
	if err != nil {
		p.logger.Info().Err(err).Str("email", req.Email).Msg("Page login failed")
		status, _ := middleware.ErrorStatus(err)
		p.render(ctx, status, "login", "Log in", loginPage{Email: req.Email, Error: "Invalid email or password"})
		return
	}
	p.cookies.Write(ctx, pair)
	p.redirect(ctx, "/", nil)
}

// Logout revokes the refresh token, clears the cookies and closes the menu.
func (p *PageController) Logout(ctx *gin.Context) {
	if err := p.auth.SignOut(ctx.Request.Context(), p.cookies.RefreshToken(ctx)); err != nil {
		p.logger.Warn().Err(err).Msg("Sign out failed")
	}
	p.cookies.Clear(ctx)
	p.redirect(ctx, header.WithMenu(nil, header.Menu{}.Close()), nil)
}

// Programmes lists the programmes.
func (p *PageController) Programmes(ctx *gin.Context) {
	programmes, err := p.programmes.List(ctx.Request.Context())
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	p.render(ctx, http.StatusOK, "programmes", "Programmes", gin.H{"Programmes": programmes})
}

// CreateProgramme handles the new programme form.
func (p *PageController) CreateProgramme(ctx *gin.Context) {
	var req dto.ProgrammeRequest
	if err := ctx.ShouldBind(&req); err != nil {
		n := notify.Error("Failed to create programme")
		p.redirect(ctx, "/programmes", &n)
		return
	}
	programme, err := p.programmes.Create(ctx.Request.Context(), req.Name, req.MinCredits)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Programme form rejected")
		n := notify.Error("Failed to create programme")
		p.redirect(ctx, "/programmes", &n)
		return
	}
	n := notify.Success("Successfully created programme")
	p.redirect(ctx, fmt.Sprintf("/programmes/%d?%s=open", programme.ID, PanelParam), &n)
}

// panelHref is the programme page with the panel in the given state.
func panelHref(programmeID int64, open bool) string {
	if open {
		return fmt.Sprintf("/programmes/%d?%s=open", programmeID, PanelParam)
	}
	return fmt.Sprintf("/programmes/%d", programmeID)
}

// Programme renders a programme with its course panel.
func (p *PageController) Programme(ctx *gin.Context) {
	programmeID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	data, err := p.list.Load(ctx.Request.Context(), programmeID)
	if err != nil {
		p.renderError(ctx, err)
		return
	}

	panel := courselist.NewPanel(ctx.Query(PanelParam) == "open", false)
	view := courselist.Build(data, courselist.Options{Panel: panel})
	csrfField := middleware.CSRFField(ctx)

	p.render(ctx, http.StatusOK, "programme", data.Programme.Name, gin.H{
		"MinCredits": data.Programme.MinCredits,
		"List": views.CourseList{
			View:       view,
			CSRFField:  csrfField,
			ToggleHref: panelHref(programmeID, panel.Toggle().IsOpen()),
		},
	})
}

// AddCourse handles the add course form.
func (p *PageController) AddCourse(ctx *gin.Context) {
	programmeID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		p.logger.Debug().Err(err).Msg("Invalid course form")
		n := notify.Error(courselist.MsgAddFailure)
		p.redirect(ctx, panelHref(programmeID, true), &n)
		return
	}
	out := p.list.AddCourse(ctx.Request.Context(), programmeID, nil, req.ToInput())
	p.redirect(ctx, panelHref(programmeID, true), &out.Notification)
}

// UpdateCourse handles the edit course form.
func (p *PageController) UpdateCourse(ctx *gin.Context) {
	programmeID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := p.pathID(ctx, "courseId")
	if !ok {
		return
	}
	var req dto.CourseRequest
	if err := ctx.ShouldBind(&req); err != nil {
		p.logger.Debug().Err(err).Msg("Invalid course form")
		n := notify.Error(courselist.MsgUpdateFailure)
		p.redirect(ctx, panelHref(programmeID, true), &n)
		return
	}
	out := p.list.UpdateCourse(ctx.Request.Context(), programmeID, courseID, nil, req.ToInput())
	p.redirect(ctx, panelHref(programmeID, true), &out.Notification)
}

// RemoveCourse handles the remove course button.
func (p *PageController) RemoveCourse(ctx *gin.Context) {
	programmeID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := p.pathID(ctx, "courseId")
	if !ok {
		return
	}
	out := p.list.RemoveCourse(ctx.Request.Context(), programmeID, courseID, nil)
	p.redirect(ctx, panelHref(programmeID, true), &out.Notification)
}

// Plans lists the user's plans with a form for a new one.
func (p *PageController) Plans(ctx *gin.Context) {
	userID := session.From(ctx).UserID
	plans, err := p.plans.List(ctx.Request.Context(), userID)
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	programmes, err := p.programmes.List(ctx.Request.Context())
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	p.render(ctx, http.StatusOK, "plans", "Plans", gin.H{
		"Plans":      plans,
		"Programmes": programmes,
	})
}

// CreatePlan handles the new plan form.
func (p *PageController) CreatePlan(ctx *gin.Context) {
	var req dto.CreatePlanRequest
	if err := ctx.ShouldBind(&req); err != nil {
		n := notify.Error("Failed to create plan")
		p.redirect(ctx, "/plans", &n)
		return
	}
	plan, err := p.plans.Create(ctx.Request.Context(), session.From(ctx).UserID, req.ProgrammeID, req.Name)
	if err != nil {
		p.logger.Warn().Err(err).Msg("Plan form rejected")
		n := notify.Error("Failed to create plan")
		p.redirect(ctx, "/plans", &n)
		return
	}
	n := notify.Success("Successfully created plan")
	p.redirect(ctx, fmt.Sprintf("/plans/%d", plan.ID), &n)
}

// Plan renders a plan: its programme's courses in an embedded panel with a
// checkbox per course and the credit summary.
func (p *PageController) Plan(ctx *gin.Context) {
	planID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	plan, taken, err := p.plans.Get(ctx.Request.Context(), session.From(ctx).UserID, planID)
	if err != nil {
		p.renderError(ctx, err)
		return
	}
	data, err := p.list.Load(ctx.Request.Context(), plan.ProgrammeID)
	if err != nil {
		p.renderError(ctx, err)
		return
	}

	view := courselist.Build(data, courselist.Options{
		Panel:          courselist.NewPanel(true, true),
		TakenCourseIDs: models.TakenCourseIDs(taken),
		PlanID:         plan.ID,
	})
	p.render(ctx, http.StatusOK, "plan", plan.Name, gin.H{
		"Plan": plan,
		"List": views.CourseList{View: view, CSRFField: middleware.CSRFField(ctx)},
	})
}

// SetTaken handles the take/untake checkbox of a plan.
func (p *PageController) SetTaken(ctx *gin.Context) {
	planID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := p.pathID(ctx, "courseId")
	if !ok {
		return
	}
	taken := ctx.PostForm("taken") == "true"
	if err := p.plans.SetTaken(ctx.Request.Context(), session.From(ctx).UserID, planID, courseID, taken); err != nil {
		p.logger.Warn().Err(err).Int64("planID", planID).Msg("Taken update failed")
		n := notify.Error("Failed to update plan")
		p.redirect(ctx, fmt.Sprintf("/plans/%d", planID), &n)
		return
	}
	p.redirect(ctx, fmt.Sprintf("/plans/%d", planID), nil)
}

// DeletePlan handles the delete plan button.
func (p *PageController) DeletePlan(ctx *gin.Context) {
	planID, ok := p.pathID(ctx, "id")
	if !ok {
		return
	}
	if err := p.plans.Delete(ctx.Request.Context(), session.From(ctx).UserID, planID); err != nil {
		p.renderError(ctx, err)
		return
	}
	n := notify.Success("Successfully deleted plan")
	p.redirect(ctx, "/plans", &n)
}

// NotFound renders the error page for unknown routes.
func (p *PageController) NotFound(ctx *gin.Context) {
	p.renderError(ctx, apperrors.NewResourceNotFoundError("page not found"))
}
