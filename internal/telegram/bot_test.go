package telegram

import (
	"context"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/dialogue"
)

type fakeSender struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) messages(t *testing.T) []tgbotapi.MessageConfig {
	t.Helper()
	var msgs []tgbotapi.MessageConfig
	for _, c := range f.sent {
		mc, ok := c.(tgbotapi.MessageConfig)
		require.True(t, ok, "sent chattable is not a MessageConfig: %T", c)
		msgs = append(msgs, mc)
	}
	return msgs
}

func newTestBot(t *testing.T, adminID int64) (*Bot, *fakeSender, *conversation.MemoryStore) {
	t.Helper()
	store := conversation.NewMemoryStore()
	svc := catalog.NewService(catalog.NewSeededMemoryStore(), nil)
	orch := dialogue.NewOrchestrator(dialogue.Config{Catalog: svc, Store: store})
	fake := &fakeSender{}
	bot := newBotWithClient(Config{
		Token:        "test-token",
		AdminUserID:  adminID,
		Orchestrator: orch,
		Catalog:      svc,
		Store:        store,
	}, fake)
	return bot, fake, store
}

func userMessage(userID, chatID int64, text string) *tgbotapi.Message {
	msg := &tgbotapi.Message{
		MessageID: 11,
		Date:      1756700000,
		Text:      text,
		Chat:      &tgbotapi.Chat{ID: chatID},
		From:      &tgbotapi.User{ID: userID, FirstName: "Asha", UserName: "asha_ev"},
	}
	return msg
}

func command(userID, chatID int64, text string) *tgbotapi.Message {
	msg := userMessage(userID, chatID, text)
	msg.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(strings.Fields(text)[0])}}
	return msg
}

func TestStartCommandSendsWelcomeWithKeyboard(t *testing.T) {
	bot, fake, _ := newTestBot(t, 0)

	bot.handleMessage(context.Background(), command(7, 42, "/start"))

	msgs := fake.messages(t)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Namaste! Welcome to EV India Bot!")
	kb, ok := msgs[0].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.Keyboard, 2)
	assert.Equal(t, dialogue.ButtonCompare, kb.Keyboard[0][0].Text)
	assert.Equal(t, dialogue.ButtonHelp, kb.Keyboard[1][1].Text)
}

func TestButtonLabelsShortCircuit(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{dialogue.ButtonCompare, "which two models"},
		{dialogue.ButtonPincode, "6-digit pincode"},
		{dialogue.ButtonAllScooters, "all the available EV scooters"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			bot, fake, store := newTestBot(t, 0)

			bot.handleMessage(context.Background(), userMessage(7, 42, tt.label))

			msgs := fake.messages(t)
			require.Len(t, msgs, 1)
			assert.Contains(t, msgs[0].Text, tt.want)

			// Button taps never reach the pipeline, so nothing is persisted.
			_, found, err := store.Get(context.Background(), 7)
			require.NoError(t, err)
			assert.False(t, found)
		})
	}
}

func TestPlainMessageGoesThroughPipeline(t *testing.T) {
	bot, fake, store := newTestBot(t, 0)

	bot.handleMessage(context.Background(), userMessage(7, 42, "Tell me about the Ather 450X"))

	require.Len(t, fake.requests, 1)
	action, ok := fake.requests[0].(tgbotapi.ChatActionConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ChatTyping, action.Action)

	msgs := fake.messages(t)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "*Ather 450X*")
	assert.Equal(t, tgbotapi.ModeMarkdown, msgs[0].ParseMode)

	// Feedback buttons ride along with informational replies.
	kb, ok := msgs[0].ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 1)
	assert.Equal(t, feedbackUpData, *kb.InlineKeyboard[0][0].CallbackData)

	_, found, err := store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestHelpRouteSendsKeyboardNotFeedback(t *testing.T) {
	bot, fake, _ := newTestBot(t, 0)

	bot.handleMessage(context.Background(), userMessage(7, 42, "what can you do"))

	msgs := fake.messages(t)
	require.Len(t, msgs, 1)
	_, isReplyKB := msgs[0].ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	assert.True(t, isReplyKB)
}

func TestGetInteractionsRequiresAdmin(t *testing.T) {
	bot, fake, _ := newTestBot(t, 99)

	bot.handleMessage(context.Background(), command(7, 42, "/getinteractions"))

	msgs := fake.messages(t)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "restricted")
}

func TestGetInteractionsDumpsHistory(t *testing.T) {
	bot, fake, store := newTestBot(t, 99)
	ctx := context.Background()

	long := strings.Repeat("x", 150)
	err := store.UpsertAppend(ctx, 7, conversation.UserDetails{FirstName: "Asha", Username: "asha_ev"}, conversation.Interaction{
		MessageID:   1,
		UserMessage: "Tell me about the Ather 450X",
		BotMessage:  long,
		Timestamp:   time.Now(),
	}, 20)
	require.NoError(t, err)

	bot.handleMessage(ctx, command(99, 99, "/getinteractions"))

	msgs := fake.messages(t)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "*User 7* (@asha_ev), 1 interaction(s):")
	assert.Contains(t, msgs[0].Text, "Q: Tell me about the Ather 450X")
	assert.Contains(t, msgs[0].Text, strings.Repeat("x", 100)+"...")
	assert.NotContains(t, msgs[0].Text, strings.Repeat("x", 101))
}

func TestFormatInteractionDumpCapsLength(t *testing.T) {
	var records []conversation.Record
	for i := int64(1); i <= 60; i++ {
		records = append(records, conversation.Record{
			UserID:  i,
			Details: conversation.UserDetails{FirstName: "User"},
			Interactions: []conversation.Interaction{
				{UserMessage: strings.Repeat("q", 90), BotMessage: strings.Repeat("a", 90)},
			},
		})
	}

	dump := formatInteractionDump(records)

	assert.LessOrEqual(t, len(dump), maxMessageLength)
	assert.True(t, strings.HasSuffix(dump, "..."))
}

func TestFeedbackCallbackSavesRating(t *testing.T) {
	tests := []struct {
		data   string
		rating int
	}{
		{feedbackUpData, 5},
		{feedbackDownData, 1},
	}
	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			bot, fake, store := newTestBot(t, 0)

			bot.handleCallback(context.Background(), &tgbotapi.CallbackQuery{
				ID:      "cb-1",
				Data:    tt.data,
				From:    &tgbotapi.User{ID: 7},
				Message: &tgbotapi.Message{MessageID: 11, Chat: &tgbotapi.Chat{ID: 42}},
			})

			fb := store.Feedback()
			require.Len(t, fb, 1)
			assert.Equal(t, tt.rating, fb[0].Rating)
			assert.Equal(t, int64(7), fb[0].UserID)
			assert.Equal(t, 11, fb[0].MessageID)

			// Spinner acknowledged, confirmation sent.
			require.Len(t, fake.requests, 1)
			msgs := fake.messages(t)
			require.Len(t, msgs, 1)
			assert.Contains(t, msgs[0].Text, "Thanks")
		})
	}
}

func TestUnknownCallbackIgnored(t *testing.T) {
	bot, fake, store := newTestBot(t, 0)

	bot.handleCallback(context.Background(), &tgbotapi.CallbackQuery{
		ID:   "cb-2",
		Data: "something_else",
		From: &tgbotapi.User{ID: 7},
	})

	assert.Empty(t, store.Feedback())
	assert.Empty(t, fake.sent)
}
