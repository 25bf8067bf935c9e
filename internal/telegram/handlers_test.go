package telegram_test

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/akomarov/hockey-bot/internal/attendance"
	"github.com/akomarov/hockey-bot/internal/database"
	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/metrics"
	"github.com/akomarov/hockey-bot/internal/roster"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/akomarov/hockey-bot/internal/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chatID = int64(-100500)

type fixture struct {
	bot     *telegram.Bot
	gw      *telegram.MockGateway
	players roster.Store
	events  schedule.Store
	ledger  attendance.Ledger
	teams   lineup.Store
	metrics *metrics.Mock
}

func setupTest(t *testing.T) *fixture {
	t.Helper()

	db, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		gw:      telegram.NewMockGateway(),
		players: roster.New(db),
		events:  schedule.New(db),
		ledger:  attendance.New(db),
		teams:   lineup.NewStore(db),
		metrics: metrics.NewMock(),
	}
	former := lineup.NewFormer(f.players, f.events, f.ledger, f.teams, rand.New(rand.NewSource(1)))
	f.bot = telegram.NewWithGateway(f.gw, f.players, f.events, f.ledger, former, f.metrics)
	return f
}

func player(id int64, name string) *tgbotapi.User {
	return &tgbotapi.User{ID: id, FirstName: name}
}

func textUpdate(from *tgbotapi.User, text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		From: from,
		Chat: &tgbotapi.Chat{ID: chatID, Type: "group"},
		Text: text,
	}}
}

func commandUpdate(from *tgbotapi.User, text string) tgbotapi.Update {
	upd := textUpdate(from, text)
	cmdLen := len(text)
	if i := strings.Index(text, " "); i > 0 {
		cmdLen = i
	}
	upd.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: cmdLen}}
	return upd
}

func markUpdate(from *tgbotapi.User, eventID int64, attending bool, msgID int, msgText string) tgbotapi.Update {
	flag := 0
	if attending {
		flag = 1
	}
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:   "cb",
		From: from,
		Data: fmt.Sprintf("mark_%d_%d", eventID, flag),
		Message: &tgbotapi.Message{
			MessageID: msgID,
			Chat:      &tgbotapi.Chat{ID: chatID, Type: "group"},
			Text:      msgText,
		},
	}}
}

func (f *fixture) handle(t *testing.T, upd tgbotapi.Update) {
	t.Helper()
	require.NoError(t, f.bot.HandleUpdate(upd))
}

func TestStartRegistersPlayer(t *testing.T) {
	f := setupTest(t)

	f.handle(t, commandUpdate(player(1, "Сергей"), "/start"))
	assert.Contains(t, f.gw.LastMessage(), "вы зарегистрированы")

	p, err := f.players.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Сергей", p.Name)

	// Re-registration keeps the original record.
	f.handle(t, commandUpdate(&tgbotapi.User{ID: 1, FirstName: "Другой"}, "/start"))
	p, err = f.players.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Сергей", p.Name)
}

func TestSetCoachByNonAdmin(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(2, "Игрок"), "/start"))
	f.gw.Admins = []tgbotapi.ChatMember{{User: player(99, "Админ")}}

	upd := commandUpdate(player(1, "Самозванец"), "/set_coach")
	upd.Message.ReplyToMessage = &tgbotapi.Message{From: player(2, "Игрок")}
	f.handle(t, upd)

	assert.Contains(t, f.gw.LastMessage(), "Только администраторы")
	assert.False(t, f.players.IsCoach(2))
}

func TestSetCoachByAdmin(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(2, "Игрок"), "/start"))
	f.gw.Admins = []tgbotapi.ChatMember{{User: player(1, "Админ")}}

	upd := commandUpdate(player(1, "Админ"), "/set_coach")
	upd.Message.ReplyToMessage = &tgbotapi.Message{From: player(2, "Игрок")}
	f.handle(t, upd)

	assert.Contains(t, f.gw.LastMessage(), "назначен тренером")
	assert.True(t, f.players.IsCoach(2))
}

func TestSetCoachRequiresReply(t *testing.T) {
	f := setupTest(t)
	f.gw.Admins = []tgbotapi.ChatMember{{User: player(1, "Админ")}}

	f.handle(t, commandUpdate(player(1, "Админ"), "/set_coach"))
	assert.Contains(t, f.gw.LastMessage(), "Ответьте на сообщение")
}

func TestCreateEventRequiresCoach(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(1, "Игрок"), "/start"))

	f.handle(t, commandUpdate(player(1, "Игрок"), "/create_event 25.10 Тренировка"))
	assert.Contains(t, f.gw.LastMessage(), "Только тренер")

	_, err := f.events.LatestOpen()
	assert.ErrorIs(t, err, schedule.ErrNoOpenEvent)
}

func TestCreateEventMalformed(t *testing.T) {
	f := setupTest(t)
	f.makeCoach(t, 1, "Тренер")

	f.handle(t, commandUpdate(player(1, "Тренер"), "/create_event 25.10"))
	assert.Contains(t, f.gw.LastMessage(), "Используйте формат")

	_, err := f.events.LatestOpen()
	assert.ErrorIs(t, err, schedule.ErrNoOpenEvent)
}

func TestCreateEventAnnounces(t *testing.T) {
	f := setupTest(t)
	f.makeCoach(t, 1, "Тренер")
	sentBefore := len(f.gw.SentMessages)

	f.handle(t, commandUpdate(player(1, "Тренер"), "/create_event 25.10 Тренировка с вратарём"))

	require.Len(t, f.gw.SentMessages, sentBefore+1)
	announcement := f.gw.SentMessages[sentBefore]
	assert.Contains(t, announcement.Text, "🏒 Тренировка с вратарём 25.10")
	assert.Contains(t, announcement.Text, "Кто будет?")
	require.NotNil(t, announcement.ReplyMarkup)

	ev, err := f.events.LatestOpen()
	require.NoError(t, err)
	assert.Equal(t, "25.10", ev.Date)
	assert.Equal(t, "Тренировка с вратарём", ev.Type)
	require.NotNil(t, ev.AnnouncementID)
	assert.Equal(t, int64(sentBefore+1), *ev.AnnouncementID)
	assert.Equal(t, 1, f.metrics.EventsCreatedCount)
}

func TestCreateEventTabSeparated(t *testing.T) {
	f := setupTest(t)
	f.makeCoach(t, 1, "Тренер")

	// Any whitespace between the date and the type is accepted.
	f.handle(t, commandUpdate(player(1, "Тренер"), "/create_event 25.10\tИгра"))

	ev, err := f.events.LatestOpen()
	require.NoError(t, err)
	assert.Equal(t, "25.10", ev.Date)
	assert.Equal(t, "Игра", ev.Type)
}

func TestCreateEventViaMenuButton(t *testing.T) {
	f := setupTest(t)
	f.makeCoach(t, 1, "Тренер")

	f.handle(t, textUpdate(player(1, "Тренер"), "➕ Создать событие"))
	assert.Contains(t, f.gw.LastMessage(), "Введите дату и тип")

	f.handle(t, textUpdate(player(1, "Тренер"), "25.10 Игра"))

	ev, err := f.events.LatestOpen()
	require.NoError(t, err)
	assert.Equal(t, "Игра", ev.Type)
}

func TestMarkCallbackTogglesAttendance(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(2, "Сергей"), "/start"))
	eventID, err := f.events.Create("25.10", "Тренировка")
	require.NoError(t, err)

	announcement := "🏒 Тренировка 25.10\nКто будет? Нажмите кнопку ниже:"

	f.handle(t, markUpdate(player(2, "Сергей"), eventID, true, 5, announcement))
	names, err := f.ledger.Participants(eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Сергей"}, names)

	edits := f.gw.Edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "🏒 Тренировка 25.10")
	assert.Contains(t, edits[0].Text, "✅ Будут:\nСергей")

	f.handle(t, markUpdate(player(2, "Сергей"), eventID, false, 5, edits[0].Text))
	names, err = f.ledger.Participants(eventID)
	require.NoError(t, err)
	assert.Empty(t, names)

	edits = f.gw.Edits()
	require.Len(t, edits, 2)
	assert.Contains(t, edits[1].Text, "Пока никто не отметил участие")
	assert.Equal(t, 2, f.metrics.AttendanceMarksCount)
}

func TestMarkCallbackEditFailureIsSwallowed(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(2, "Сергей"), "/start"))
	eventID, err := f.events.Create("25.10", "Тренировка")
	require.NoError(t, err)

	f.gw.RequestErr = errors.New("Bad Request: message is not modified")
	f.handle(t, markUpdate(player(2, "Сергей"), eventID, true, 5, "🏒 Тренировка 25.10\nКто будет?"))

	// The mark still lands even though the edit failed.
	names, err := f.ledger.Participants(eventID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Сергей"}, names)
	assert.Equal(t, 1, f.metrics.AnnouncementEditFailedCount)
}

func TestShowOpenEvents(t *testing.T) {
	f := setupTest(t)

	f.handle(t, textUpdate(player(1, "Игрок"), "📋 События"))
	assert.Contains(t, f.gw.LastMessage(), "Пока нет открытых событий")

	_, err := f.events.Create("25.10", "Тренировка")
	require.NoError(t, err)
	_, err = f.events.Create("9.10", "Игра")
	require.NoError(t, err)

	sentBefore := len(f.gw.SentMessages)
	f.handle(t, textUpdate(player(1, "Игрок"), "📋 События"))
	require.Len(t, f.gw.SentMessages, sentBefore+2)
	// Calendar order: the 25.10 practice comes before the 9.10 game.
	assert.Contains(t, f.gw.SentMessages[sentBefore].Text, "25.10")
	assert.Contains(t, f.gw.SentMessages[sentBefore+1].Text, "9.10")
}

// Full flow: promotion, event creation, five confirmations, team formation,
// and a second formation producing a second team record.
func TestSeasonScenario(t *testing.T) {
	f := setupTest(t)

	coach := player(1, "Александр")
	f.handle(t, commandUpdate(coach, "/start"))

	f.gw.Admins = []tgbotapi.ChatMember{{User: player(99, "Админ")}}
	promote := commandUpdate(player(99, "Админ"), "/set_coach")
	promote.Message.ReplyToMessage = &tgbotapi.Message{From: coach}
	f.handle(t, promote)
	require.True(t, f.players.IsCoach(1))

	f.handle(t, commandUpdate(coach, "/create_event 25.10 Тренировка"))
	ev, err := f.events.LatestOpen()
	require.NoError(t, err)

	confirmed := []string{"Виктор", "Глеб", "Денис", "Егор", "Фёдор"}
	for i, name := range confirmed {
		p := player(int64(10+i), name)
		f.handle(t, commandUpdate(p, "/start"))
		f.handle(t, markUpdate(p, ev.ID, true, 5, "🏒 Тренировка 25.10\nКто будет?"))
	}

	f.handle(t, commandUpdate(coach, "/form_teams"))
	last := f.gw.LastMessage()
	assert.Contains(t, last, "🔴 Пятёрка (Red):")
	for _, name := range confirmed {
		assert.Contains(t, last, name)
	}

	f.handle(t, commandUpdate(coach, "/form_teams"))
	teams, err := f.teams.ListByEvent(ev.ID)
	require.NoError(t, err)
	assert.Len(t, teams, 2)
	assert.Equal(t, 2, f.metrics.TeamsFormedCount)
}

func TestFormTeamsErrors(t *testing.T) {
	f := setupTest(t)
	f.handle(t, commandUpdate(player(2, "Игрок"), "/start"))

	f.handle(t, commandUpdate(player(2, "Игрок"), "/form_teams"))
	assert.Contains(t, f.gw.LastMessage(), "Только тренер")

	f.makeCoach(t, 1, "Тренер")
	f.handle(t, commandUpdate(player(1, "Тренер"), "/form_teams"))
	assert.Contains(t, f.gw.LastMessage(), "Нет активного события")

	eventID, err := f.events.Create("25.10", "Тренировка")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Set(eventID, 2, true))

	f.handle(t, commandUpdate(player(1, "Тренер"), "/form_teams"))
	assert.Contains(t, f.gw.LastMessage(), "отметилось 1, нужно 5")
}

// mockFixture swaps the real stores for the package mocks, so store failures
// can be injected without a database.
type mockFixture struct {
	bot     *telegram.Bot
	gw      *telegram.MockGateway
	players *roster.Mock
	events  *schedule.Mock
	ledger  *attendance.Mock
	metrics *metrics.Mock
}

func setupMockTest(t *testing.T) *mockFixture {
	t.Helper()

	f := &mockFixture{
		gw:      telegram.NewMockGateway(),
		players: roster.NewMock(),
		events:  schedule.NewMock(),
		ledger:  attendance.NewMock(),
		metrics: metrics.NewMock(),
	}
	former := lineup.NewFormer(f.players, f.events, f.ledger, nil, rand.New(rand.NewSource(1)))
	f.bot = telegram.NewWithGateway(f.gw, f.players, f.events, f.ledger, former, f.metrics)
	return f
}

func (f *mockFixture) makeCoach(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, f.players.Register(id, name))
	require.NoError(t, f.players.SetCoach(id))
}

func TestStartStoreFailureSurfaces(t *testing.T) {
	f := setupMockTest(t)
	f.players.RegisterErr = errors.New("database is locked")

	err := f.bot.HandleUpdate(commandUpdate(player(1, "Сергей"), "/start"))
	require.Error(t, err)
	require.Len(t, f.players.RegisterCalls, 1)
	assert.Equal(t, "Сергей", f.players.RegisterCalls[0].Name)
	assert.Empty(t, f.gw.SentMessages)
}

func TestCreateEventStoreFailureSurfaces(t *testing.T) {
	f := setupMockTest(t)
	f.makeCoach(t, 1, "Тренер")
	f.events.CreateErr = errors.New("database is locked")

	err := f.bot.HandleUpdate(commandUpdate(player(1, "Тренер"), "/create_event 25.10 Тренировка"))
	require.Error(t, err)
	assert.Empty(t, f.gw.SentMessages)
	assert.Zero(t, f.metrics.EventsCreatedCount)
}

func TestCreateEventAnnouncementRecordFailure(t *testing.T) {
	f := setupMockTest(t)
	f.makeCoach(t, 1, "Тренер")
	f.events.SetAnnouncementErr = errors.New("database is locked")

	err := f.bot.HandleUpdate(commandUpdate(player(1, "Тренер"), "/create_event 25.10 Тренировка"))
	require.Error(t, err)

	// The announcement went out; only recording its id failed.
	require.Len(t, f.gw.SentMessages, 1)
	require.Len(t, f.events.SetAnnouncementCalls, 1)
	assert.Equal(t, int64(1), f.events.SetAnnouncementCalls[0].EventID)
	assert.Zero(t, f.metrics.EventsCreatedCount)
}

func TestMarkCallbackStoreFailureSurfaces(t *testing.T) {
	f := setupMockTest(t)
	f.ledger.SetErr = errors.New("database is locked")

	err := f.bot.HandleUpdate(markUpdate(player(2, "Сергей"), 1, true, 5, "🏒 Тренировка 25.10\nКто будет?"))
	require.Error(t, err)
	require.Len(t, f.ledger.SetCalls, 1)
	assert.True(t, f.ledger.SetCalls[0].Attending)
	assert.Zero(t, f.metrics.AttendanceMarksCount)
	assert.Empty(t, f.gw.Edits())
}

func TestMarkCallbackRefreshUsesLedgerNames(t *testing.T) {
	f := setupMockTest(t)
	f.ledger.Names[2] = "Сергей"

	err := f.bot.HandleUpdate(markUpdate(player(2, "Сергей"), 1, true, 5, "🏒 Тренировка 25.10\nКто будет?"))
	require.NoError(t, err)

	edits := f.gw.Edits()
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].Text, "✅ Будут:\nСергей")
}

func (f *fixture) makeCoach(t *testing.T, id int64, name string) {
	t.Helper()
	require.NoError(t, f.players.Register(id, name))
	require.NoError(t, f.players.SetCoach(id))
}
