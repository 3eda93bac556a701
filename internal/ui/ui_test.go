package ui

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/taskbloc/taskbloc-go/internal/crypto"
	"github.com/taskbloc/taskbloc-go/internal/messages"
	"github.com/taskbloc/taskbloc-go/internal/model"
	"github.com/taskbloc/taskbloc-go/internal/repository"
	"github.com/taskbloc/taskbloc-go/internal/service"
)

func newTestUI(t *testing.T, name string) (Model, *service.AuthService) {
	t.Helper()
	db, err := repository.NewDB("file:" + name + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	auth := service.NewAuthService(repository.NewUserRepository(db), "test-secret", time.Hour, false)
	tasks := service.NewTaskService(repository.NewTaskRepository(db))
	return New(auth, tasks, messages.Default()), auth
}

func TestLoadProfileVerifiesSessionToken(t *testing.T) {
	m, auth := newTestUI(t, "ui1")

	session, err := auth.Register(context.Background(), "a@b.com", "abc12345", "Ana")
	require.NoError(t, err)

	m.session = session
	msg := m.loadProfile()
	profile, ok := msg.(profileMsg)
	require.True(t, ok, "expected profileMsg, got %T", msg)
	require.Equal(t, "a@b.com", profile.Email)
	require.Equal(t, "Ana", profile.Name)

	// A token minted under another secret must not open the task screens.
	forged, err := crypto.GenerateToken("a@b.com", "other-secret", time.Hour)
	require.NoError(t, err)
	m.session.Token = forged
	msg = m.loadProfile()
	failure, ok := msg.(errMsg)
	require.True(t, ok, "expected errMsg, got %T", msg)
	require.ErrorIs(t, failure.err, service.ErrInvalidCredentials)
}

func TestSetListItemsGroupsByDueBucket(t *testing.T) {
	m, _ := newTestUI(t, "ui2")

	today := time.Now().Format("02/01/2006")
	tasks := []model.Task{
		{ID: 1, Title: "vieja", DueDate: "01/01/2000"},
		{ID: 2, Title: "hoy", DueDate: today},
		{ID: 3, Title: "futura", DueDate: "01/01/2100"},
		{ID: 4, Title: "sin fecha", DueDate: ""},
		{ID: 5, Title: "más vieja", DueDate: "01/01/1999"},
	}

	m.setListItems(tasks)
	items := m.list.Items()
	require.Len(t, items, 5)

	var titles, sections []string
	for _, it := range items {
		item, ok := it.(taskItem)
		require.True(t, ok)
		titles = append(titles, item.task.Title)
		sections = append(sections, item.section)
	}

	// Today first, then upcoming (dated before undated), then past with the
	// most recently missed date on top.
	require.Equal(t, []string{"hoy", "futura", "sin fecha", "vieja", "más vieja"}, titles)
	require.Equal(t, []string{"Hoy", "Próximas", "Próximas", "Anteriores", "Anteriores"}, sections)
}
