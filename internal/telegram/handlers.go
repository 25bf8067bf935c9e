package telegram

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/akomarov/hockey-bot/internal/lineup"
	"github.com/akomarov/hockey-bot/internal/schedule"
	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// promptMarker splits the fixed announcement prompt from the mutable
// participant list when the message is re-rendered.
const promptMarker = "Кто будет?"

const helpText = "🏒 *Команды для игроков*\n" +
	"/start — регистрация\n" +
	"«" + btnEvents + "» — отметить участие\n\n" +
	"👑 *Команды для тренера*\n" +
	"/set_coach — назначить тренера (ответом на сообщение, только админ)\n" +
	"/create_event ДД.ММ Тип — создать событие\n" +
	"/form_teams — сформировать пятёрки"

const createEventUsage = "📌 Используйте формат:\n/create_event ДД.ММ Тип\n" +
	"Пример: /create_event 25.10 Тренировка"

// ---------- Message handling ----------

func (b *Bot) handleMessage(m *tgbotapi.Message) error {
	if m.From == nil {
		return nil
	}
	userID := m.From.ID
	chatID := m.Chat.ID

	if m.IsCommand() {
		b.setPending(userID, false)
		switch m.Command() {
		case "start":
			return b.handleStart(m)
		case "help":
			return b.handleHelp(chatID)
		case "set_coach":
			return b.handleSetCoach(m)
		case "create_event":
			return b.handleCreateEvent(chatID, userID, m.CommandArguments())
		case "form_teams":
			return b.handleFormTeams(chatID, userID)
		}
		return nil
	}

	txt := strings.TrimSpace(m.Text)

	// One-line create-event input promised after the menu button press.
	if b.isPending(userID) {
		b.setPending(userID, false)
		return b.handleCreateEvent(chatID, userID, txt)
	}

	switch txt {
	case btnEvents:
		return b.showOpenEvents(chatID)
	case btnHelp:
		return b.handleHelp(chatID)
	case btnCreateEvent:
		if !b.players.IsCoach(userID) {
			return b.sendText(chatID, "❌ Только тренер может создавать события")
		}
		b.setPending(userID, true)
		return b.sendText(chatID, "Введите дату и тип события:\nДД.ММ Тип")
	case btnFormTeam:
		return b.handleFormTeams(chatID, userID)
	}
	return nil
}

func (b *Bot) handleStart(m *tgbotapi.Message) error {
	name := displayName(m.From)
	if err := b.players.Register(m.From.ID, name); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(m.Chat.ID, fmt.Sprintf("✅ %s, вы зарегистрированы! Используйте /help", name))
	msg.ReplyMarkup = mainKeyboard(b.players.IsCoach(m.From.ID))
	_, err := b.api.Send(msg)
	return err
}

func (b *Bot) handleHelp(chatID int64) error {
	msg := tgbotapi.NewMessage(chatID, helpText)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err := b.api.Send(msg)
	return err
}

// handleSetCoach promotes the author of the replied-to message. The admin list
// is fetched live on every call and never cached, since it can change.
func (b *Bot) handleSetCoach(m *tgbotapi.Message) error {
	admins, err := b.api.GetChatAdministrators(tgbotapi.ChatAdministratorsConfig{
		ChatConfig: tgbotapi.ChatConfig{ChatID: m.Chat.ID},
	})
	if err != nil {
		return fmt.Errorf("failed to list chat administrators: %w", err)
	}
	isAdmin := false
	for _, admin := range admins {
		if admin.User != nil && admin.User.ID == m.From.ID {
			isAdmin = true
			break
		}
	}
	if !isAdmin {
		return b.sendText(m.Chat.ID, "❌ Только администраторы могут назначать тренера")
	}

	if m.ReplyToMessage == nil || m.ReplyToMessage.From == nil {
		return b.sendText(m.Chat.ID, "❗ Ответьте на сообщение игрока, чтобы назначить его тренером")
	}
	target := m.ReplyToMessage.From

	if err := b.players.SetCoach(target.ID); err != nil {
		return err
	}
	return b.sendText(m.Chat.ID, fmt.Sprintf("👑 %s назначен тренером!", displayName(target)))
}

// handleCreateEvent parses "ДД.ММ Тип" (date token, then the rest), creates
// the event and posts the announcement with attendance buttons.
func (b *Bot) handleCreateEvent(chatID, userID int64, args string) error {
	if !b.players.IsCoach(userID) {
		return b.sendText(chatID, "❌ Только тренер может создавать события")
	}

	args = strings.TrimSpace(args)
	cut := strings.IndexFunc(args, unicode.IsSpace)
	if cut < 0 {
		return b.sendText(chatID, createEventUsage)
	}
	date, eventType := args[:cut], strings.TrimSpace(args[cut:])
	if eventType == "" {
		return b.sendText(chatID, createEventUsage)
	}

	eventID, err := b.events.Create(date, eventType)
	if err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🏒 %s %s\n%s Нажмите кнопку ниже:", eventType, date, promptMarker))
	msg.ReplyMarkup = markKeyboard(eventID)
	sent, err := b.api.Send(msg)
	if err != nil {
		return err
	}

	if err := b.events.SetAnnouncement(eventID, int64(sent.MessageID)); err != nil {
		return err
	}
	b.metrics.IncEventsCreated()
	return nil
}

func (b *Bot) handleFormTeams(chatID, userID int64) error {
	team, err := b.former.Form(userID)
	if err != nil {
		var insufficient *lineup.InsufficientPlayersError
		switch {
		case errors.Is(err, lineup.ErrNotCoach):
			return b.sendText(chatID, "❌ Только тренер может формировать пятёрки")
		case errors.Is(err, schedule.ErrNoOpenEvent):
			return b.sendText(chatID, "❗ Нет активного события")
		case errors.As(err, &insufficient):
			return b.sendText(chatID, fmt.Sprintf("❗ Недостаточно игроков: отметилось %d, нужно %d", insufficient.Confirmed, lineup.TeamSize))
		}
		return err
	}

	b.metrics.IncTeamsFormed()
	var sb strings.Builder
	fmt.Fprintf(&sb, "🔴 Пятёрка (%s):\n", team.Color)
	for _, name := range team.Players {
		fmt.Fprintf(&sb, "— %s\n", name)
	}
	return b.sendText(chatID, sb.String())
}

// showOpenEvents re-posts each open event with its attendance buttons.
func (b *Bot) showOpenEvents(chatID int64) error {
	events, err := b.events.ListOpen()
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return b.sendText(chatID, "Пока нет открытых событий.")
	}
	for _, ev := range events {
		names, err := b.ledger.Participants(ev.ID)
		if err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("🏒 %s %s\n%s\n\n%s", ev.Type, ev.Date, promptMarker, participantList(names)))
		msg.ReplyMarkup = markKeyboard(ev.ID)
		if _, err := b.api.Send(msg); err != nil {
			return err
		}
	}
	return nil
}

// ---------- Callback handling ----------

func (b *Bot) handleCallback(q *tgbotapi.CallbackQuery) error {
	// ack
	cb := tgbotapi.NewCallback(q.ID, "")
	_, _ = b.api.Request(cb)

	if strings.HasPrefix(q.Data, "mark_") {
		return b.handleMarkCallback(q)
	}
	return nil
}

// handleMarkCallback toggles attendance and refreshes the announcement. The
// refresh is best effort: an edit failure (e.g. unchanged content) is
// swallowed.
func (b *Bot) handleMarkCallback(q *tgbotapi.CallbackQuery) error {
	parts := strings.Split(q.Data, "_")
	if len(parts) != 3 {
		return nil
	}
	eventID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil
	}
	attending := parts[2] == "1"

	if err := b.ledger.Set(eventID, q.From.ID, attending); err != nil {
		return err
	}
	b.metrics.IncAttendanceMarks()

	if q.Message == nil {
		return nil
	}

	names, err := b.ledger.Participants(eventID)
	if err != nil {
		return err
	}

	prefix := strings.SplitN(q.Message.Text, promptMarker, 2)[0]
	edit := tgbotapi.NewEditMessageText(
		q.Message.Chat.ID,
		q.Message.MessageID,
		fmt.Sprintf("%s%s\n\n%s", prefix, promptMarker, participantList(names)),
	)
	edit.ReplyMarkup = q.Message.ReplyMarkup
	if _, err := b.api.Request(edit); err != nil {
		b.metrics.IncAnnouncementEditFailed()
		log.Debug("Announcement edit failed", "error", err, "eventID", eventID)
	}
	return nil
}

func participantList(names []string) string {
	if len(names) == 0 {
		return "Пока никто не отметил участие"
	}
	return "✅ Будут:\n" + strings.Join(names, "\n")
}

func displayName(u *tgbotapi.User) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		name = u.UserName
	}
	return name
}
