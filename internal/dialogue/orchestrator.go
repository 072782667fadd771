package dialogue

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/evindia/evbot/internal/catalog"
	"github.com/evindia/evbot/internal/conversation"
	"github.com/evindia/evbot/internal/llm"
	"github.com/evindia/evbot/internal/observability/metrics"
	"github.com/evindia/evbot/pkg/logging"
)

// Inbound is one user message as seen by the pipeline, already stripped of
// transport concerns.
type Inbound struct {
	UserID    int64
	ChatID    int64
	MessageID int
	Date      int64
	Text      string
	User      conversation.UserDetails
}

// Outbound is the composed reply. Keyboard is only populated on the help
// path; the transport renders it as reply-keyboard buttons.
type Outbound struct {
	Text          string
	Keyboard      []string
	OfferFeedback bool
	Route         string
}

const defaultHistoryExchanges = 10

// Config wires the orchestrator's collaborators.
type Config struct {
	Catalog        *catalog.Service
	Store          conversation.Store
	Assistant      *llm.Assistant
	Logger         *logging.Logger
	Metrics        *metrics.PipelineMetrics
	CatalogTimeout time.Duration
	InteractionCap int
	// HistoryLimit is how many stored exchanges are replayed to the
	// assistant on LLM routes.
	HistoryLimit int
}

// Orchestrator turns one inbound message into one reply. It is stateless per
// message and never returns an error: every failure degrades to a reply
// string.
type Orchestrator struct {
	catalog        *catalog.Service
	store          conversation.Store
	assistant      *llm.Assistant
	logger         *logging.Logger
	metrics        *metrics.PipelineMetrics
	catalogTimeout time.Duration
	interactionCap int
	historyLimit   int
}

func NewOrchestrator(cfg Config) *Orchestrator {
	if cfg.Catalog == nil {
		panic("dialogue: catalog service cannot be nil")
	}
	if cfg.Store == nil {
		panic("dialogue: conversation store cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.CatalogTimeout <= 0 {
		cfg.CatalogTimeout = 5 * time.Second
	}
	if cfg.InteractionCap <= 0 {
		cfg.InteractionCap = conversation.DefaultInteractionCap
	}
	if cfg.HistoryLimit <= 0 {
		cfg.HistoryLimit = defaultHistoryExchanges
	}
	if cfg.Assistant == nil {
		cfg.Assistant = llm.NewAssistant(nil, "", 0, 0, cfg.Logger)
	}
	return &Orchestrator{
		catalog:        cfg.Catalog,
		store:          cfg.Store,
		assistant:      cfg.Assistant,
		logger:         cfg.Logger,
		metrics:        cfg.Metrics,
		catalogTimeout: cfg.CatalogTimeout,
		interactionCap: cfg.InteractionCap,
		historyLimit:   cfg.HistoryLimit,
	}
}

// routeContext carries everything extracted from one message plus what the
// matched handler learned, for preference derivation.
type routeContext struct {
	in     Inbound
	text   string
	intent Intent

	pincode string
	pinOK   bool

	cmpA, cmpB string
	cmpOK      bool

	price   PriceRange
	priceOK bool

	state   string
	stateOK bool

	candidates []string

	faqAnswer string
	faqOK     bool

	brands []string
}

type route struct {
	name   string
	match  func(rc *routeContext) bool
	handle func(ctx context.Context, rc *routeContext) string
}

// routes is the precedence policy: evaluated top-down, first match wins.
func (o *Orchestrator) routes() []route {
	return []route{
		{"availability", func(rc *routeContext) bool { return rc.pinOK }, o.handleAvailability},
		{"comparison", func(rc *routeContext) bool { return rc.cmpOK }, o.handleComparison},
		{"price_range", func(rc *routeContext) bool { return rc.intent == IntentPriceRange && rc.priceOK }, o.handlePriceRange},
		{"subsidy", func(rc *routeContext) bool { return rc.intent == IntentSubsidy && rc.stateOK }, o.handleSubsidy},
		{"scooter_info", func(rc *routeContext) bool { return len(rc.candidates) == 1 }, o.handleFactSheet},
		{"greeting", func(rc *routeContext) bool { return rc.intent == IntentGreeting }, o.handleGreeting},
		{"help", func(rc *routeContext) bool { return rc.intent == IntentHelp }, o.handleHelp},
		{"faq", func(rc *routeContext) bool { return rc.faqOK }, o.handleFAQ},
		{"clarify", func(rc *routeContext) bool { return len(rc.candidates) > 1 }, o.handleClarify},
		{"llm_fallback", func(rc *routeContext) bool { return true }, o.handleFallback},
	}
}

// Handle processes one message end to end: extract, route, compose, persist.
// Persistence failures are logged and swallowed; the reply is returned
// regardless.
func (o *Orchestrator) Handle(ctx context.Context, in Inbound) Outbound {
	start := time.Now()
	rc := &routeContext{in: in, text: strings.TrimSpace(in.Text)}
	rc.intent = ClassifyIntent(rc.text)
	rc.pincode, rc.pinOK = ExtractPincode(rc.text)
	rc.cmpA, rc.cmpB, rc.cmpOK = ExtractComparisonPair(rc.text)
	rc.price, rc.priceOK = ExtractPriceRange(rc.text)
	rc.state, rc.stateOK = ExtractState(rc.text)
	rc.candidates = o.candidateModels(ctx, rc.text)
	rc.faqAnswer, rc.faqOK = CheckFAQ(rc.text)

	var matched route
	for _, r := range o.routes() {
		if r.match(rc) {
			matched = r
			break
		}
	}
	reply := matched.handle(ctx, rc)

	out := Outbound{Text: reply, Route: matched.name}
	if matched.name == "help" {
		out.Keyboard = KeyboardButtons()
	}
	out.OfferFeedback = matched.name != "greeting" && matched.name != "help"

	o.persist(ctx, rc, matched.name, reply)
	o.metrics.ObserveMessage(matched.name, time.Since(start).Seconds())
	return out
}

func (o *Orchestrator) candidateModels(ctx context.Context, text string) []string {
	cctx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()
	specs, err := o.catalog.AllScooters(cctx)
	if err != nil {
		o.logger.Error("candidate extraction skipped, catalog unavailable", "error", err)
		return nil
	}
	return ExtractCandidateModels(text, specs)
}

func (o *Orchestrator) handleAvailability(ctx context.Context, rc *routeContext) string {
	cctx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()
	return DealerListing(o.catalog.Availability(cctx, rc.pincode))
}

// lookupFailureMessage renders the non-found half of a comparison or a
// single lookup.
func lookupFailureMessage(lr catalog.LookupResult) string {
	if lr.Outcome == catalog.LookupError {
		return "Error fetching scooter details. Please try again."
	}
	return SuggestionList(lr.Query, lr.Suggestions)
}

func (o *Orchestrator) handleComparison(ctx context.Context, rc *routeContext) string {
	cctx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()
	cmp := o.catalog.CompareTwo(cctx, rc.cmpA, rc.cmpB)

	leftFound := cmp.Left.Outcome == catalog.LookupFound
	rightFound := cmp.Right.Outcome == catalog.LookupFound
	switch {
	case leftFound && rightFound:
		rc.brands = append(rc.brands, cmp.Left.Spec.Brand, cmp.Right.Spec.Brand)
		return ComparisonTable(*cmp.Left.Spec, *cmp.Right.Spec)
	case leftFound:
		rc.brands = append(rc.brands, cmp.Left.Spec.Brand)
		return fmt.Sprintf("%s\n\nI can tell you about %q.", lookupFailureMessage(cmp.Right), rc.cmpA)
	case rightFound:
		rc.brands = append(rc.brands, cmp.Right.Spec.Brand)
		return fmt.Sprintf("%s\n\nI can tell you about %q.", lookupFailureMessage(cmp.Left), rc.cmpB)
	default:
		return fmt.Sprintf("No info found for %q or %q. Check spellings.", rc.cmpA, rc.cmpB)
	}
}

func (o *Orchestrator) handlePriceRange(ctx context.Context, rc *routeContext) string {
	cctx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()
	specs, err := o.catalog.InPriceRange(cctx, rc.price.Min, rc.price.Max)
	if err != nil {
		o.logger.Error("price range lookup failed", "user_id", rc.in.UserID, "error", err)
		return "Error fetching scooter details. Please try again."
	}
	return PriceList(rc.price, specs)
}

func (o *Orchestrator) handleSubsidy(ctx context.Context, rc *routeContext) string {
	entry, ok := LookupSubsidy(rc.state)
	if !ok {
		return SubsidyNotFound(rc.state)
	}
	return SubsidySheet(entry)
}

func (o *Orchestrator) handleFactSheet(ctx context.Context, rc *routeContext) string {
	cctx, cancel := context.WithTimeout(ctx, o.catalogTimeout)
	defer cancel()
	res := o.catalog.FindScooter(cctx, rc.candidates[0])
	if res.Outcome != catalog.LookupFound {
		return lookupFailureMessage(res)
	}
	rc.brands = append(rc.brands, res.Spec.Brand)
	return FactSheet(*res.Spec)
}

func (o *Orchestrator) handleGreeting(ctx context.Context, rc *routeContext) string {
	var prefs conversation.Preferences
	if rec, found, err := o.store.Get(ctx, rc.in.UserID); err == nil && found {
		prefs = rec.Preferences
	}
	return Greeting(prefs)
}

func (o *Orchestrator) handleHelp(ctx context.Context, rc *routeContext) string {
	return HelpText()
}

func (o *Orchestrator) handleFAQ(ctx context.Context, rc *routeContext) string {
	return rc.faqAnswer
}

func (o *Orchestrator) handleClarify(ctx context.Context, rc *routeContext) string {
	prompt := fmt.Sprintf("User asked: %q. Models: %s. Clarify or provide info.", rc.text, strings.Join(rc.candidates, ", "))
	return o.llmReply(ctx, rc, prompt)
}

func (o *Orchestrator) handleFallback(ctx context.Context, rc *routeContext) string {
	return o.llmReply(ctx, rc, rc.text)
}

func (o *Orchestrator) llmReply(ctx context.Context, rc *routeContext, prompt string) string {
	reply := o.assistant.Reply(ctx, rc.in.UserID, prompt, o.history(ctx, rc.in.UserID))
	switch reply {
	case llm.DisabledReply:
		o.metrics.ObserveLLMReply("disabled")
	case llm.ApologyReply:
		o.metrics.ObserveLLMReply("error")
	default:
		o.metrics.ObserveLLMReply("ok")
	}
	return reply
}

// history maps the last stored exchanges into alternating chat messages.
func (o *Orchestrator) history(ctx context.Context, userID int64) []llm.ChatMessage {
	interactions, err := o.store.Recent(ctx, userID, o.historyLimit)
	if err != nil {
		o.logger.Warn("history unavailable", "user_id", userID, "error", err)
		return nil
	}
	msgs := make([]llm.ChatMessage, 0, len(interactions)*2)
	for _, in := range interactions {
		msgs = append(msgs,
			llm.ChatMessage{Role: llm.RoleUser, Content: in.UserMessage},
			llm.ChatMessage{Role: llm.RoleAssistant, Content: in.BotMessage},
		)
	}
	return msgs
}

func (o *Orchestrator) persist(ctx context.Context, rc *routeContext, routeName, reply string) {
	ec := conversation.EntityContext{
		Route:   routeName,
		Pincode: rc.pincode,
		Brands:  rc.brands,
	}
	if rc.priceOK {
		ec.PriceMin = rc.price.Min
		ec.PriceMax = rc.price.Max
	}
	in := conversation.Interaction{
		MessageID:   rc.in.MessageID,
		ChatID:      rc.in.ChatID,
		UnixDate:    rc.in.Date,
		UserMessage: rc.in.Text,
		BotMessage:  reply,
		Context:     ec,
	}
	if err := o.store.UpsertAppend(ctx, rc.in.UserID, rc.in.User, in, o.interactionCap); err != nil {
		o.logger.Error("failed to persist interaction", "user_id", rc.in.UserID, "error", err)
		o.metrics.ObservePersistFailure()
	}
}
