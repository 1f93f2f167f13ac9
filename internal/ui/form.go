package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/songhub/internal/models"
)

type field struct {
	label string
	input textinput.Model
}

// form is a vertical stack of labelled text inputs with one focused field.
type form struct {
	fields []field
	focus  int
}

func newForm(labels ...string) *form {
	f := &form{fields: make([]field, len(labels))}
	for i, label := range labels {
		in := textinput.New()
		in.Prompt = "> "
		in.CharLimit = 128
		in.Width = 40
		in.Cursor.SetMode(cursor.CursorStatic)
		f.fields[i] = field{label: label, input: in}
	}
	f.setFocus(0)
	return f
}

func loginForm() *form {
	return newForm("Email", "Password").secret(1)
}

func registerForm() *form {
	return newForm("Email", "Username", "Password").secret(2)
}

func songForm() *form {
	return newForm("Name", "Genre", "Language", "Keyword").
		hint(1, strings.Join(models.Genres, ", ")).
		hint(2, "English, Spanish, Japanese, ...").
		hint(3, "Joy, Relaxation, Sadness, ...")
}

func removeForm() *form {
	return newForm("Name")
}

func findForm() *form {
	return newForm("Name", "Genre", "Language").
		hint(0, "any").
		hint(1, "any").
		hint(2, "any")
}

func (f *form) secret(i int) *form {
	f.fields[i].input.EchoMode = textinput.EchoPassword
	f.fields[i].input.EchoCharacter = '•'
	return f
}

func (f *form) hint(i int, placeholder string) *form {
	f.fields[i].input.Placeholder = placeholder
	return f
}

func (f *form) setFocus(i int) {
	f.fields[f.focus].input.Blur()
	f.focus = (i + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *form) next() { f.setFocus(f.focus + 1) }
func (f *form) prev() { f.setFocus(f.focus - 1) }

func (f *form) value(i int) string {
	return strings.TrimSpace(f.fields[i].input.Value())
}

func (f *form) set(i int, v string) {
	f.fields[i].input.SetValue(v)
}

func (f *form) reset() {
	for i := range f.fields {
		f.fields[i].input.Reset()
	}
	f.setFocus(0)
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view() string {
	var b strings.Builder
	for i, fl := range f.fields {
		label := styles.label.Render(fl.label)
		if i == f.focus {
			label = styles.focus.Render(fl.label)
		}
		b.WriteString(label)
		b.WriteString(fl.input.View())
		b.WriteString("\n")
	}
	return b.String()
}
