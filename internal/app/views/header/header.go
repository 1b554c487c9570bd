// Package header builds the navigation header shown on every page.
package header

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/yigit/studyplan/internal/pkg/session"
)

// Title is shown in every layout.
const Title = "Study Plan Manager"

// Layout is the viewport class the header renders for.
type Layout string

const (
	LayoutDesktop Layout = "desktop"
	LayoutMobile  Layout = "mobile"
)

// LayoutCookie remembers an explicit layout choice.
const LayoutCookie = "studyplan_layout"

// MenuParam carries the mobile menu disclosure state in page URLs.
const MenuParam = "menu"

var mobileUA = regexp.MustCompile(`(?i)android|iphone|ipod|ipad|mobile|windows phone|opera mini`)

// ParseLayout accepts "desktop" or "mobile".
func ParseLayout(s string) (Layout, bool) {
	switch Layout(strings.ToLower(strings.TrimSpace(s))) {
	case LayoutDesktop:
		return LayoutDesktop, true
	case LayoutMobile:
		return LayoutMobile, true
	}
	return "", false
}

// ResolveLayout picks the layout from an explicit query value, then the
// layout cookie, then the User-Agent.
func ResolveLayout(query, cookie, userAgent string) Layout {
	if l, ok := ParseLayout(query); ok {
		return l
	}
	if l, ok := ParseLayout(cookie); ok {
		return l
	}
	if mobileUA.MatchString(userAgent) {
		return LayoutMobile
	}
	return LayoutDesktop
}

// Menu is the disclosure state of the mobile menu.
type Menu struct {
	Open bool
}

// MenuFromQuery reads the menu state of a page URL.
func MenuFromQuery(q url.Values) Menu {
	return Menu{Open: q.Get(MenuParam) == "open"}
}

// Toggle flips the menu.
func (m Menu) Toggle() Menu {
	return Menu{Open: !m.Open}
}

// Close closes the menu.
func (m Menu) Close() Menu {
	return Menu{}
}

// Link is a navigation entry.
type Link struct {
	Label string
	Href  string
}

// Links are the navigation entries of a logged-in user. Their targets carry
// no menu state, so following one leaves the menu closed.
var Links = []Link{
	{Label: "Home", Href: "/"},
	{Label: "Programmes", Href: "/programmes"},
	{Label: "Plans", Href: "/plans"},
}

// LogoutPath signs out; it redirects to a page without menu state.
const LogoutPath = "/logout"

// Model lists what the header shows for one request.
type Model struct {
	Title      string
	Layout     Layout
	LoggedIn   bool
	MenuOpen   bool
	ShowLinks  bool
	ShowLogout bool
	ShowToggle bool
	Links      []Link
	LogoutPath string
	ToggleHref string
}

// Build computes the header for an auth state, layout and menu state.
// current is the URL of the page being rendered and is used for the toggle.
func Build(state session.State, layout Layout, menu Menu, current *url.URL) Model {
	loggedIn := state.IsLoggedIn()
	m := Model{
		Title:      Title,
		Layout:     layout,
		LoggedIn:   loggedIn,
		Links:      Links,
		LogoutPath: LogoutPath,
	}

	switch layout {
	case LayoutMobile:
		m.ShowToggle = loggedIn
		m.MenuOpen = loggedIn && menu.Open
		m.ShowLinks = m.MenuOpen
		m.ShowLogout = m.MenuOpen
		if m.ShowToggle {
			m.ToggleHref = WithMenu(current, menu.Toggle())
		}
	default:
		m.ShowLinks = loggedIn
		m.ShowLogout = loggedIn
	}
	return m
}

// WithMenu returns the path and query of u with the menu state applied.
func WithMenu(u *url.URL, menu Menu) string {
	path := "/"
	q := url.Values{}
	if u != nil {
		if u.Path != "" {
			path = u.Path
		}
		q = u.Query()
	}
	if menu.Open {
		q.Set(MenuParam, "open")
	} else {
		q.Del(MenuParam)
	}
	if enc := q.Encode(); enc != "" {
		return path + "?" + enc
	}
	return path
}
