// Package ui renders the login, registration and task screens as a terminal
// program. It is presentation glue only: every decision about validation,
// credentials, dates and persistence lives behind the service APIs.
package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskbloc/taskbloc-go/internal/messages"
	"github.com/taskbloc/taskbloc-go/internal/model"
	"github.com/taskbloc/taskbloc-go/internal/service"
)

type screen int

const (
	screenLogin screen = iota
	screenRegister
	screenTasks
	screenTaskForm
)

var (
	appStyle    = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Model is the bubbletea model for the whole application.
type Model struct {
	screen screen

	auth  *service.AuthService
	tasks *service.TaskService
	msgs  *messages.Catalog

	session model.Session
	profile model.User

	// Credential screens share one input stack; which fields it holds
	// depends on the screen (login: email+password, register: +name+confirm).
	inputs []textinput.Model
	focus  int

	list    list.Model
	editing *model.Task // task being edited on screenTaskForm, nil = adding

	notice  string // success/info line
	problem string // error line
	width   int
	height  int
}

type sessionMsg model.Session

type profileMsg model.User

type tasksLoadedMsg []model.Task

type taskSavedMsg struct{ key string }

type errMsg struct{ err error }

// New wires the UI against the composed services.
func New(auth *service.AuthService, tasks *service.TaskService, msgs *messages.Catalog) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New(nil, delegate, 0, 0)
	l.Title = "taskbloc"
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("task", "tasks")

	m := Model{
		screen: screenLogin,
		auth:   auth,
		tasks:  tasks,
		msgs:   msgs,
		list:   l,
	}
	m.resetLoginInputs()
	return m
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v-1)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case sessionMsg:
		m.session = model.Session(msg)
		m.problem = ""
		return m, m.loadProfile

	case profileMsg:
		m.profile = model.User(msg)
		m.screen = screenTasks
		m.notice = m.msgs.T("auth_ok")
		m.problem = ""
		return m, m.loadTasks

	case tasksLoadedMsg:
		m.setListItems([]model.Task(msg))
		return m, nil

	case taskSavedMsg:
		m.screen = screenTasks
		m.editing = nil
		m.notice = m.msgs.T(msg.key)
		m.problem = ""
		return m, m.loadTasks

	case errMsg:
		m.problem = m.msgs.T(errorKey(msg.err))
		m.notice = ""
		return m, nil
	}

	switch m.screen {
	case screenLogin:
		return m.updateLogin(msg)
	case screenRegister:
		return m.updateRegister(msg)
	case screenTasks:
		return m.updateTasks(msg)
	case screenTaskForm:
		return m.updateTaskForm(msg)
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenLogin:
		return m.viewLogin()
	case screenRegister:
		return m.viewRegister()
	case screenTaskForm:
		return m.viewTaskForm()
	default:
		return m.viewTasks()
	}
}

// loadProfile validates the session token handed out at login and loads the
// account's display profile before the task screens open. A token that does
// not verify never reaches the task list.
func (m Model) loadProfile() tea.Msg {
	email, err := m.auth.VerifySession(m.session.Token)
	if err != nil {
		return errMsg{err}
	}

	user, err := m.auth.Profile(context.Background(), email)
	if err != nil {
		return errMsg{err}
	}
	return profileMsg(user)
}

func (m Model) loadTasks() tea.Msg {
	tasks, err := m.tasks.List(context.Background(), m.profile.Email)
	if err != nil {
		return errMsg{err}
	}
	return tasksLoadedMsg(tasks)
}

// statusLine renders the shared notice/problem footer.
func (m Model) statusLine() string {
	switch {
	case m.problem != "":
		return "\n" + errorStyle.Render(m.problem)
	case m.notice != "":
		return "\n" + okStyle.Render(m.notice)
	default:
		return ""
	}
}

// errorKey maps a service error onto the message catalog.
func errorKey(err error) string {
	switch {
	case errors.Is(err, service.ErrInvalidEmail):
		return "email_invalid"
	case errors.Is(err, service.ErrWeakPassword):
		return "password_weak"
	case errors.Is(err, service.ErrEmailTaken):
		return "user_exists"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "auth_fail"
	case errors.Is(err, service.ErrTooManyAttempts):
		return "too_many_attempts"
	case errors.Is(err, service.ErrDueDateRequired):
		return "due_date_invalid"
	case errors.Is(err, service.ErrOwnerRequired), errors.Is(err, service.ErrTitleRequired):
		return "invalid_input"
	case errors.Is(err, service.ErrTaskNotFound):
		return "task_not_found"
	default:
		return "unexpected_error"
	}
}
