package dialogue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	lastReq llm.Request
	resp    llm.Response
	err     error
}

func (s *stubLLM) Complete(ctx context.Context, req llm.Request) (llm.Response, error) {
	s.lastReq = req
	return s.resp, s.err
}

type fixture struct {
	orch  *Orchestrator
	store *conversation.MemoryStore
	llm   *stubLLM
}

func newFixture(t *testing.T, dealers []catalog.Dealer, client llm.Client) *fixture {
	t.Helper()
	store := conversation.NewMemoryStore()
	var assistant *llm.Assistant
	if client != nil {
		assistant = llm.NewAssistant(client, "gemini-2.5-flash", time.Second, 0, nil)
	}
	orch := NewOrchestrator(Config{
		Catalog:   catalog.NewService(catalog.NewMemoryStore(catalog.SeedScooters(), dealers), nil),
		Store:     store,
		Assistant: assistant,
	})
	f := &fixture{orch: orch, store: store}
	if s, ok := client.(*stubLLM); ok {
		f.llm = s
	}
	return f
}

func inbound(text string) Inbound {
	return Inbound{
		UserID:    7,
		ChatID:    42,
		MessageID: 1,
		Date:      1756700000,
		Text:      text,
		User:      conversation.UserDetails{ChatID: 42, FirstName: "Asha"},
	}
}

func TestHandleComparisonEndToEnd(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("Compare Ola S1 Pro and Ather 450X"))

	assert.Equal(t, "comparison", out.Route)
	assert.Contains(t, out.Text, "Ola Electric S1 Pro")
	assert.Contains(t, out.Text, "Ather 450X")
	for _, metric := range []string{"Ex-Showroom Price", "On-Road Price", "Range", "Battery", "Charging Time", "Top Speed"} {
		assert.Contains(t, out.Text, metric)
	}

	rec, found, err := f.store.Get(context.Background(), 7)
	require.NoError(t, err)
	require.True(t, found)
	assert.ElementsMatch(t, []string{"Ola Electric", "Ather"}, rec.Preferences.PreferredBrands)
}

func TestHandlePincodeWithNoDealers(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("110001"))

	assert.Equal(t, "availability", out.Route)
	assert.Contains(t, out.Text, "No dealers found in pincode 110001")
	assert.NotContains(t, out.Text, "1. *")
}

func TestHandlePincodeBeatsComparison(t *testing.T) {
	f := newFixture(t, catalog.SeedDealers(), nil)

	out := f.orch.Handle(context.Background(), inbound("Compare Ola S1 Pro and Ather 450X, I'm in 400058"))

	assert.Equal(t, "availability", out.Route)
	assert.Contains(t, out.Text, "400058")
}

func TestHandleSingleModelFactSheet(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("Tell me about the Ather 450X"))

	assert.Equal(t, "scooter_info", out.Route)
	assert.Contains(t, out.Text, "*Ather 450X*")
	assert.Contains(t, out.Text, "*Price (On-Road):*")

	rec, _, err := f.store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ather"}, rec.Preferences.PreferredBrands)
}

func TestHandlePriceRange(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("show scooters under 1.5 lakh"))

	assert.Equal(t, "price_range", out.Route)
	assert.Contains(t, out.Text, "between ₹0 and ₹1,50,000")
}

func TestHandleSubsidy(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("What's the EV subsidy in Maharashtra?"))

	assert.Equal(t, "subsidy", out.Route)
	assert.Contains(t, out.Text, "*Subsidy Amount:* ₹25,000")
}

func TestHandleGreetingUsesPreferences(t *testing.T) {
	f := newFixture(t, catalog.SeedDealers(), nil)
	ctx := context.Background()

	f.orch.Handle(ctx, inbound("Tell me about the Ather 450X"))
	out := f.orch.Handle(ctx, inbound("hello"))

	assert.Equal(t, "greeting", out.Route)
	assert.Contains(t, out.Text, "Welcome back")
	assert.Contains(t, out.Text, "Ather")
	assert.False(t, out.OfferFeedback)
}

func TestHandleHelpReturnsKeyboard(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("what can you do"))

	assert.Equal(t, "help", out.Route)
	assert.Equal(t, KeyboardButtons(), out.Keyboard)
	assert.False(t, out.OfferFeedback)
}

func TestHandleFAQBypassesLLM(t *testing.T) {
	stub := &stubLLM{resp: llm.Response{Text: "should not be used"}}
	f := newFixture(t, nil, stub)

	out := f.orch.Handle(context.Background(), inbound("How long does it take to charge an EV scooter?"))

	assert.Equal(t, "faq", out.Route)
	assert.Contains(t, out.Text, "3-6 hours")
}

func TestHandleClarifyListsModels(t *testing.T) {
	stub := &stubLLM{resp: llm.Response{Text: "Which one do you mean?"}}
	f := newFixture(t, nil, stub)

	out := f.orch.Handle(context.Background(), inbound("is the 450X nicer than the iQube S"))

	assert.Equal(t, "clarify", out.Route)
	assert.Equal(t, "Which one do you mean?", out.Text)
	assert.Contains(t, stub.lastReq.Messages[len(stub.lastReq.Messages)-1].Content, "450X")
	assert.Contains(t, stub.lastReq.Messages[len(stub.lastReq.Messages)-1].Content, "iQube S")
}

func TestHandleFallbackWithLLMDisabled(t *testing.T) {
	f := newFixture(t, nil, nil)

	out := f.orch.Handle(context.Background(), inbound("what is the meaning of life"))

	assert.Equal(t, "llm_fallback", out.Route)
	assert.Equal(t, llm.DisabledReply, out.Text)

	// The flow still completes: the interaction is persisted.
	_, found, err := f.store.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestHandleFallbackSwallowsProviderError(t *testing.T) {
	stub := &stubLLM{err: errors.New("upstream 500")}
	f := newFixture(t, nil, stub)

	out := f.orch.Handle(context.Background(), inbound("tell me something surprising"))

	assert.Equal(t, "llm_fallback", out.Route)
	assert.Equal(t, llm.ApologyReply, out.Text)
	assert.NotEmpty(t, out.Text)
}

func TestHandleFallbackSendsHistory(t *testing.T) {
	stub := &stubLLM{resp: llm.Response{Text: "ok"}}
	f := newFixture(t, nil, stub)
	ctx := context.Background()

	f.orch.Handle(ctx, inbound("first question here"))
	f.orch.Handle(ctx, inbound("second question here"))

	// Second call carries the first exchange as history plus the new prompt.
	require.Len(t, stub.lastReq.Messages, 3)
	assert.Equal(t, "first question here", stub.lastReq.Messages[0].Content)
	assert.Equal(t, "ok", stub.lastReq.Messages[1].Content)
	assert.Equal(t, "second question here", stub.lastReq.Messages[2].Content)
}

func TestHandleFallbackHonorsHistoryLimit(t *testing.T) {
	stub := &stubLLM{resp: llm.Response{Text: "ok"}}
	orch := NewOrchestrator(Config{
		Catalog:      catalog.NewService(catalog.NewSeededMemoryStore(), nil),
		Store:        conversation.NewMemoryStore(),
		Assistant:    llm.NewAssistant(stub, "gemini-2.5-flash", time.Second, 0, nil),
		HistoryLimit: 1,
	})
	ctx := context.Background()

	orch.Handle(ctx, inbound("first question here"))
	orch.Handle(ctx, inbound("second question here"))
	orch.Handle(ctx, inbound("third question here"))

	// Only the newest stored exchange is replayed.
	require.Len(t, stub.lastReq.Messages, 3)
	assert.Equal(t, "second question here", stub.lastReq.Messages[0].Content)
	assert.Equal(t, "third question here", stub.lastReq.Messages[2].Content)
}

type failingStore struct {
	conversation.Store
}

func (f failingStore) UpsertAppend(ctx context.Context, userID int64, details conversation.UserDetails, in conversation.Interaction, cap int) error {
	return errors.New("redis down")
}

func TestHandleReturnsReplyWhenPersistenceFails(t *testing.T) {
	orch := NewOrchestrator(Config{
		Catalog: catalog.NewService(catalog.NewSeededMemoryStore(), nil),
		Store:   failingStore{Store: conversation.NewMemoryStore()},
	})

	out := orch.Handle(context.Background(), inbound("Tell me about the Ather 450X"))

	assert.Contains(t, out.Text, "*Ather 450X*")
}
