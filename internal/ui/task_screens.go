package ui

import (
	"context"
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskbloc/taskbloc-go/internal/dates"
	"github.com/taskbloc/taskbloc-go/internal/messages"
	"github.com/taskbloc/taskbloc-go/internal/model"
)

const (
	formTitle = iota
	formDueDate
)

var statusBadgeStyles = map[dates.Status]lipgloss.Style{
	dates.StatusOverdue:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	dates.StatusDueToday: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	dates.StatusDueSoon:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	dates.StatusOnTime:   lipgloss.NewStyle().Foreground(lipgloss.Color("78")),
}

var statusMessageKeys = map[dates.Status]string{
	dates.StatusOverdue:  "status_overdue",
	dates.StatusDueToday: "status_due_today",
	dates.StatusDueSoon:  "status_due_soon",
	dates.StatusOnTime:   "status_on_time",
}

// sectionOrder fixes how the dashboard groups render: today's work first,
// then what is coming up, then what was missed.
var sectionOrder = []struct {
	bucket dates.Bucket
	key    string
}{
	{dates.BucketToday, "section_today"},
	{dates.BucketUpcoming, "section_upcoming"},
	{dates.BucketPast, "section_past"},
}

// taskItem wraps a task to satisfy list.DefaultItem.
type taskItem struct {
	task    model.Task
	msgs    *messages.Catalog
	section string
}

func (i taskItem) Title() string {
	check := "[ ]"
	if i.task.Done {
		check = "[x]"
	}
	return fmt.Sprintf("%s %s", check, i.task.Title)
}

func (i taskItem) Description() string {
	desc := i.section
	if i.task.DueDate == "" {
		return desc
	}

	if desc != "" {
		desc += " · "
	}
	desc += dates.FormatDate(i.task.DueDate)
	status := dates.StatusFor(i.task.DueDate)
	if key, ok := statusMessageKeys[status]; ok {
		desc += "  " + statusBadgeStyles[status].Render(i.msgs.T(key))
	}
	return desc
}

func (i taskItem) FilterValue() string {
	return i.task.Title
}

// setListItems regroups the service's newest-first list into dashboard
// sections by due date.
func (m *Model) setListItems(tasks []model.Task) {
	grouped := make(map[dates.Bucket][]model.Task)
	for _, t := range tasks {
		bucket := dates.BucketFor(t.DueDate)
		grouped[bucket] = append(grouped[bucket], t)
	}

	items := make([]list.Item, 0, len(tasks))
	for _, section := range sectionOrder {
		bucket := grouped[section.bucket]
		sortSection(bucket, section.bucket)
		label := m.msgs.T(section.key)
		for _, t := range bucket {
			items = append(items, taskItem{task: t, msgs: m.msgs, section: label})
		}
	}
	m.list.SetItems(items)
}

// sortSection orders one dashboard section: past tasks most recently missed
// first, everything else by due date then title, undated tasks last.
func sortSection(tasks []model.Task, bucket dates.Bucket) {
	sort.SliceStable(tasks, func(a, b int) bool {
		da, oka := dates.ParseDueDate(tasks[a].DueDate)
		db, okb := dates.ParseDueDate(tasks[b].DueDate)
		if oka != okb {
			return oka
		}
		if bucket == dates.BucketPast {
			return da.After(db)
		}
		if oka && !da.Equal(db) {
			return da.Before(db)
		}
		return tasks[a].Title < tasks[b].Title
	})
}

func (m *Model) openTaskForm(editing *model.Task) {
	m.inputs = []textinput.Model{
		newField("título", false),
		newField("fecha (DD/MM o DD/MM/AAAA)", false),
	}
	if editing != nil {
		m.inputs[formTitle].SetValue(editing.Title)
		m.inputs[formDueDate].SetValue(editing.DueDate)
	}
	m.focus = 0
	m.inputs[0].Focus()
	m.editing = editing
	m.screen = screenTaskForm
	m.notice = ""
	m.problem = ""
}

func (m Model) updateTasks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch keyMsg.String() {
		case "a", "n":
			m.openTaskForm(nil)
			return m, nil
		case "e":
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				task := item.task
				m.openTaskForm(&task)
				return m, nil
			}
		case "enter", "x":
			if item, ok := m.list.SelectedItem().(taskItem); ok {
				task := item.task
				return m, func() tea.Msg {
					err := m.tasks.Update(context.Background(), m.profile.Email, task.ID, task.Title, task.DueDate, !task.Done)
					if err != nil {
						return errMsg{err}
					}
					return taskSavedMsg{key: "task_marked_done"}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateTaskForm(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			title := m.inputs[formTitle].Value()
			dueDate := m.inputs[formDueDate].Value()

			// A filled-in date must at least parse before it is stored.
			if dueDate != "" {
				if _, ok := dates.ParseDueDate(dueDate); !ok {
					m.problem = m.msgs.T("due_date_invalid")
					return m, nil
				}
			}

			editing := m.editing
			return m, func() tea.Msg {
				if editing != nil {
					err := m.tasks.Update(context.Background(), m.profile.Email, editing.ID, title, dueDate, editing.Done)
					if err != nil {
						return errMsg{err}
					}
					return taskSavedMsg{key: "task_updated"}
				}
				_, err := m.tasks.Add(context.Background(), m.profile.Email, title, dueDate, false)
				if err != nil {
					return errMsg{err}
				}
				return taskSavedMsg{key: "task_added"}
			}
		case "esc":
			m.screen = screenTasks
			m.editing = nil
			m.problem = ""
			return m, nil
		}
	}

	return m, m.updateInputs(msg)
}

func (m Model) viewTasks() string {
	header := m.msgs.T("task_list_header")
	if m.profile.Name != "" {
		header = m.msgs.T("greeting", "name", m.profile.Name) + " — " + header
	}

	return appStyle.Render(
		statusStyle.Render(header) + "\n" +
			m.list.View() + "\n" +
			statusStyle.Render("a/n: nueva • e: editar • enter/x: hecha") +
			m.statusLine(),
	)
}

func (m Model) viewTaskForm() string {
	header := "Nueva tarea"
	if m.editing != nil {
		header = "Editar tarea"
	}

	return appStyle.Render(
		titleStyle.Render(header) + "\n\n" +
			labelStyle.Render("Título") + "\n" + m.inputs[formTitle].View() + "\n\n" +
			labelStyle.Render("Fecha") + "\n" + m.inputs[formDueDate].View() + "\n\n" +
			statusStyle.Render("enter: guardar • esc: cancelar") +
			m.statusLine(),
	)
}
