package render

import (
	"errors"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/yungbote/eduadmin/internal/cascade"
	"github.com/yungbote/eduadmin/internal/domain"
	"github.com/yungbote/eduadmin/internal/session"
	"github.com/yungbote/eduadmin/internal/state"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("62"))
	crumbStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Column is one table column over E.
type Column[E any] struct {
	Header string
	Value  func(E) string
}

// Table renders items as a bordered table. An empty list renders a single
// faint line naming plural.
func Table[E any](plural string, cols []Column[E], items []E) string {
	if len(items) == 0 {
		return faintStyle.Render("No " + plural + ".")
	}
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Header
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = oneLine(c.Value(it))
		}
		rows = append(rows, row)
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func Levels(items []domain.EducationLevel) string {
	return Table("education levels", []Column[domain.EducationLevel]{
		{"ID", func(e domain.EducationLevel) string { return e.ID }},
		{"Name", func(e domain.EducationLevel) string { return e.Name }},
		{"Description", func(e domain.EducationLevel) string { return e.Description }},
	}, items)
}

func Classes(items []domain.Class) string {
	return Table("classes", []Column[domain.Class]{
		{"ID", func(c domain.Class) string { return c.ID }},
		{"Name", func(c domain.Class) string { return c.Name }},
		{"Tagline", func(c domain.Class) string { return c.Tagline }},
		{"Level", func(c domain.Class) string { return c.LevelID }},
	}, items)
}

func Subjects(items []domain.Subject) string {
	return Table("subjects", []Column[domain.Subject]{
		{"ID", func(s domain.Subject) string { return s.ID }},
		{"Name", func(s domain.Subject) string { return s.Name }},
		{"Tagline", func(s domain.Subject) string { return s.Tagline }},
		{"Class", func(s domain.Subject) string { return s.ClassID }},
	}, items)
}

func Chapters(items []domain.Chapter) string {
	return Table("chapters", []Column[domain.Chapter]{
		{"ID", func(c domain.Chapter) string { return c.ID }},
		{"Name", func(c domain.Chapter) string { return c.Name }},
		{"Tagline", func(c domain.Chapter) string { return c.Tagline }},
		{"Subject", func(c domain.Chapter) string { return c.SubjectID }},
	}, items)
}

func Topics(items []domain.Topic) string {
	return Table("topics", []Column[domain.Topic]{
		{"ID", func(t domain.Topic) string { return t.ID }},
		{"Name", func(t domain.Topic) string { return t.Name }},
		{"Details", func(t domain.Topic) string { return t.Details }},
		{"Chapter", func(t domain.Topic) string { return t.ChapterID }},
	}, items)
}

func Users(items []domain.User) string {
	return Table("users", []Column[domain.User]{
		{"ID", func(u domain.User) string { return u.ID }},
		{"Username", func(u domain.User) string { return u.Username }},
		{"Email", func(u domain.User) string { return u.Email }},
	}, items)
}

func Progress(items []domain.UserProgress) string {
	return Table("progress records", []Column[domain.UserProgress]{
		{"ID", func(p domain.UserProgress) string { return p.ID }},
		{"User", func(p domain.UserProgress) string { return p.UserID }},
		{"Chapter", func(p domain.UserProgress) string { return p.ChapterID }},
		{"Topic", func(p domain.UserProgress) string { return p.TopicID }},
		{"Progress", func(p domain.UserProgress) string { return p.Progress }},
	}, items)
}

func Profiles(items []domain.Profile) string {
	return Table("profiles", []Column[domain.Profile]{
		{"ID", func(p domain.Profile) string { return p.ID }},
		{"Name", func(p domain.Profile) string { return p.Name }},
		{"Email", func(p domain.Profile) string { return p.Email }},
		{"User", func(p domain.Profile) string { return p.UserID }},
	}, items)
}

// Breadcrumbs renders the selection chain as "Name > Name". A crumb whose
// id is not in the loaded list shows the id instead.
func Breadcrumbs(chain []cascade.Crumb) string {
	if len(chain) == 0 {
		return crumbStyle.Render("(nothing selected)")
	}
	parts := make([]string, 0, len(chain))
	for _, c := range chain {
		label := c.Name
		if label == "" {
			label = c.ID
		}
		parts = append(parts, label)
	}
	return crumbStyle.Render(strings.Join(parts, " > "))
}

// Title renders a section heading.
func Title(s string) string { return titleStyle.Render(s) }

// Hint renders secondary information such as a follow-up route.
func Hint(s string) string { return faintStyle.Render(s) }

// Success renders a confirmation line.
func Success(s string) string { return okStyle.Render(s) }

// Error renders err for the terminal. Field failures list one "field:
// message" line per field in key order; everything else is one line.
func Error(err error) string {
	if err == nil {
		return ""
	}
	f, ok := state.AsFailure(err)
	if !ok {
		var serr *session.Error
		if errors.As(err, &serr) {
			return errStyle.Render("Error: " + serr.Message)
		}
		return errStyle.Render("Error: " + err.Error())
	}
	if f.Kind != state.FailureFields || len(f.Fields) == 0 {
		return errStyle.Render("Error: " + f.Message)
	}
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "  "+k+": "+f.Fields[k])
	}
	return errStyle.Render("Error:\n" + strings.Join(lines, "\n"))
}

// Session summarises whether a token is held.
func Session(st session.State) string {
	if st.Token == "" {
		return faintStyle.Render("Not signed in.")
	}
	line := "Signed in"
	if st.Mobile != "" {
		line += " as " + st.Mobile
	}
	return okStyle.Render(line + ".")
}
