package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Input stack positions for the credential screens.
const (
	loginEmail = iota
	loginPassword
)

const (
	registerName = iota
	registerEmail
	registerPassword
	registerConfirm
)

func newField(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

func (m *Model) resetLoginInputs() {
	m.inputs = []textinput.Model{
		newField("correo", false),
		newField("contraseña", true),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

func (m *Model) resetRegisterInputs() {
	m.inputs = []textinput.Model{
		newField("nombre", false),
		newField("correo", false),
		newField("contraseña", true),
		newField("confirmar contraseña", true),
	}
	m.focus = 0
	m.inputs[0].Focus()
}

// cycleFocus moves focus across the input stack, wrapping around.
func (m *Model) cycleFocus(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}
	return tea.Batch(cmds...)
}

func (m Model) updateLogin(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.cycleFocus(1)
				return m, nil
			}
			email := m.inputs[loginEmail].Value()
			password := m.inputs[loginPassword].Value()
			return m, func() tea.Msg {
				session, err := m.auth.Login(context.Background(), email, password)
				if err != nil {
					return errMsg{err}
				}
				return sessionMsg(session)
			}
		case "ctrl+r":
			m.screen = screenRegister
			m.notice = ""
			m.problem = ""
			m.resetRegisterInputs()
			return m, nil
		case "esc":
			return m, tea.Quit
		}
	}

	return m, m.updateInputs(msg)
}

func (m Model) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "down":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.cycleFocus(-1)
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.cycleFocus(1)
				return m, nil
			}
			name := m.inputs[registerName].Value()
			email := m.inputs[registerEmail].Value()
			password := m.inputs[registerPassword].Value()
			if password != m.inputs[registerConfirm].Value() {
				m.problem = m.msgs.T("invalid_input")
				return m, nil
			}
			return m, func() tea.Msg {
				session, err := m.auth.Register(context.Background(), email, password, name)
				if err != nil {
					return errMsg{err}
				}
				return sessionMsg(session)
			}
		case "esc":
			m.screen = screenLogin
			m.notice = ""
			m.problem = ""
			m.resetLoginInputs()
			return m, nil
		}
	}

	return m, m.updateInputs(msg)
}

func (m Model) viewLogin() string {
	body := titleStyle.Render("Iniciar sesión") + "\n\n" +
		labelStyle.Render("Correo") + "\n" + m.inputs[loginEmail].View() + "\n\n" +
		labelStyle.Render("Contraseña") + "\n" + m.inputs[loginPassword].View() + "\n\n" +
		statusStyle.Render("enter: entrar • ctrl+r: crear cuenta • esc: salir") +
		m.statusLine()
	return appStyle.Render(body)
}

func (m Model) viewRegister() string {
	body := titleStyle.Render("Crear cuenta") + "\n\n" +
		labelStyle.Render("Nombre") + "\n" + m.inputs[registerName].View() + "\n\n" +
		labelStyle.Render("Correo") + "\n" + m.inputs[registerEmail].View() + "\n\n" +
		labelStyle.Render("Contraseña") + "\n" + m.inputs[registerPassword].View() + "\n\n" +
		labelStyle.Render("Confirmar") + "\n" + m.inputs[registerConfirm].View() + "\n\n" +
		statusStyle.Render("enter: registrar • esc: volver") +
		m.statusLine()
	return appStyle.Render(body)
}
