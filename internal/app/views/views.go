// Package views renders the server-side HTML pages. Templates and page
// content are embedded in the binary.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"github.com/yigit/studyplan/internal/app/models"
	"github.com/yigit/studyplan/internal/app/views/courselist"
	"github.com/yigit/studyplan/internal/app/views/header"
	"github.com/yigit/studyplan/internal/pkg/notify"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed content/*.md
var contentFiles embed.FS

// Page is the data every page template receives.
type Page struct {
	Title     string
	Header    header.Model
	Flash     *notify.Notification
	CSRFField template.HTML
	Data      interface{}
}

// CourseList is the data of the course panel partial.
type CourseList struct {
	View       courselist.View
	CSRFField  template.HTML
	ToggleHref string
}

// CourseForm is the data of the add and edit course forms.
type CourseForm struct {
	Action         string
	Submit         string
	Course         *models.Course
	CategoriesData *models.CategoriesData
	Seasons        []*models.Season
	CSRFField      template.HTML
}

// NewCourseForm builds the add form when course is nil and the edit form otherwise.
func NewCourseForm(v courselist.View, course *models.Course, csrfField template.HTML) CourseForm {
	f := CourseForm{
		Action:         fmt.Sprintf("/programmes/%d/courses", v.ProgrammeID),
		Submit:         "Add course",
		Course:         course,
		CategoriesData: v.CategoriesData,
		Seasons:        v.Seasons,
		CSRFField:      csrfField,
	}
	if course != nil {
		f.Action = fmt.Sprintf("/programmes/%d/courses/%d", v.ProgrammeID, course.ID)
		f.Submit = "Save"
	}
	return f
}

// Raw HTML in markdown is escaped since WithUnsafe is not set.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// Markdown renders src as HTML.
func Markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

// Content renders an embedded markdown document by name ("home").
func Content(name string) (template.HTML, error) {
	src, err := contentFiles.ReadFile("content/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("content %q: %w", name, err)
	}
	return Markdown(string(src))
}

// cueColors maps the color tokens of the credit cue to CSS colors.
var cueColors = map[string]string{
	"red.50":   "#FFF5F5",
	"green.50": "#F0FFF4",
}

var funcs = template.FuncMap{
	"courseForm": NewCourseForm,
	"cueColor": func(token string) string {
		return cueColors[token]
	},
	"credits": func(v float64) string {
		return strconv.FormatFloat(v, 'f', -1, 64)
	},
	"isID": func(ref *int64, id int64) bool {
		return ref != nil && *ref == id
	},
}

// Load parses the embedded templates. Pages are addressed by their defined
// name, for example "programme".
func Load() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(templateFiles, "templates/*.html")
}
