package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pixelhive/pixelhive-cli/pkg/models"
)

var (
	formTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// form is a fixed stack of single-line inputs with an optional trailing
// textarea. Tab and shift+tab move focus; the caller decides what submission
// means.
type form struct {
	title  string
	labels []string
	inputs []textinput.Model

	bodyLabel string
	body      textarea.Model
	hasBody   bool

	focus int
}

func newInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func newForm(title string, fields []string, secrets map[int]bool) form {
	f := form{title: title, labels: fields}
	for i, label := range fields {
		f.inputs = append(f.inputs, newInput(label, secrets[i]))
	}
	f.refocus()
	return f
}

func (f *form) withBody(label string) {
	ta := textarea.New()
	ta.Placeholder = label
	ta.SetWidth(48)
	ta.SetHeight(4)
	f.bodyLabel = label
	f.body = ta
	f.hasBody = true
}

// fieldCount includes the textarea when present.
func (f form) fieldCount() int {
	n := len(f.inputs)
	if f.hasBody {
		n++
	}
	return n
}

func (f *form) next() {
	f.focus = (f.focus + 1) % f.fieldCount()
	f.refocus()
}

func (f *form) prev() {
	f.focus = (f.focus - 1 + f.fieldCount()) % f.fieldCount()
	f.refocus()
}

func (f *form) refocus() {
	for i := range f.inputs {
		if i == f.focus {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	if f.hasBody {
		if f.focus == len(f.inputs) {
			f.body.Focus()
		} else {
			f.body.Blur()
		}
	}
}

// bodyFocused reports whether the textarea owns the keyboard, in which case
// enter inserts a newline instead of submitting.
func (f form) bodyFocused() bool {
	return f.hasBody && f.focus == len(f.inputs)
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	var cmds []tea.Cmd
	for i := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = f.inputs[i].Update(msg)
		cmds = append(cmds, cmd)
	}
	if f.hasBody {
		var cmd tea.Cmd
		f.body, cmd = f.body.Update(msg)
		cmds = append(cmds, cmd)
	}
	return f, tea.Batch(cmds...)
}

func (f form) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f form) rawValue(i int) string {
	return f.inputs[i].Value()
}

func (f form) bodyValue() string {
	return f.body.Value()
}

func (f *form) setValue(i int, v string) {
	f.inputs[i].SetValue(v)
}

func (f *form) setBody(v string) {
	f.body.SetValue(v)
}

func (f *form) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	if f.hasBody {
		f.body.SetValue("")
	}
	f.focus = 0
	f.refocus()
}

func (f form) view(submitHint string) string {
	var s strings.Builder
	s.WriteString(formTitleStyle.Render(f.title) + "\n\n")
	for i, label := range f.labels {
		s.WriteString(formLabelStyle.Render(label) + "\n")
		s.WriteString(f.inputs[i].View() + "\n\n")
	}
	if f.hasBody {
		s.WriteString(formLabelStyle.Render(f.bodyLabel) + "\n")
		s.WriteString(f.body.View() + "\n\n")
	}
	s.WriteString(formHintStyle.Render(submitHint))
	return s.String()
}

// Form field layouts. Index constants keep the Update handlers readable.

const (
	loginEmail = iota
	loginPassword
)

func newLoginForm() form {
	return newForm("Log in", []string{"Email", "Password"}, map[int]bool{loginPassword: true})
}

func (f form) credentials() models.Credentials {
	return models.Credentials{Email: f.value(loginEmail), Password: f.rawValue(loginPassword)}
}

const (
	signupName = iota
	signupEmail
	signupPassword
	signupConfirm
)

func newSignupForm() form {
	return newForm("Sign up",
		[]string{"Full Name", "Email", "Password", "Confirm Password"},
		map[int]bool{signupPassword: true, signupConfirm: true})
}

func (f form) signupData() (models.SignupData, string) {
	return models.SignupData{
		Name:     f.value(signupName),
		Email:    f.value(signupEmail),
		Password: f.rawValue(signupPassword),
	}, f.rawValue(signupConfirm)
}

const (
	postTitle = iota
	postImagePath
)

func newPostForm(title string) form {
	f := newForm(title, []string{"Title", "Image file path"}, nil)
	f.withBody("Description")
	return f
}

func (f form) postUpload() models.PostUpload {
	return models.PostUpload{
		Title:       f.value(postTitle),
		Description: strings.TrimSpace(f.bodyValue()),
		ImagePath:   f.value(postImagePath),
	}
}

const (
	contactName = iota
	contactEmail
	contactSubject
)

func newContactForm() form {
	f := newForm("Contact", []string{"Name", "Email", "Subject"}, nil)
	f.withBody("Message")
	return f
}

func (f form) contactMessage() models.ContactMessage {
	return models.ContactMessage{
		Name:    f.value(contactName),
		Email:   f.value(contactEmail),
		Subject: f.value(contactSubject),
		Message: strings.TrimSpace(f.bodyValue()),
	}
}
