package controller

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/creastat/assistant"
	"github.com/creastat/assistant/gateway"
	"github.com/creastat/assistant/metrics"
	"github.com/creastat/assistant/prefs"
	"github.com/creastat/assistant/session"
)

// Intent names used for metrics and logs.
const (
	intentChooseLanguage = "choose_language"
	intentSubmit         = "submit"
	intentPickSuggestion = "pick_suggestion"
	intentToggleTopic    = "toggle_topic"
)

// Rejection reasons.
const (
	reasonClosed      = "closed"
	reasonNotReady    = "not_ready"
	reasonBusy        = "busy"
	reasonEmpty       = "empty"
	reasonUnsupported = "unsupported"
)

// Controller coordinates language negotiation, chat exchanges and failure
// recovery for one conversation. All methods are safe for concurrent use.
//
// Network calls run without the lock held. Every call captures the current
// epoch; Reset and Close advance it, and results carrying an older epoch are
// dropped without touching the session.
type Controller struct {
	gw    gateway.Gateway
	prefs prefs.Store
	cfg   *controllerConfig
	log   zerolog.Logger

	mu          sync.Mutex
	store       *session.Store
	epoch       uint64
	started     bool
	closed      bool
	lastWelcome *gateway.WelcomePayload

	// prefsMu orders preference writes against Reset.
	prefsMu sync.Mutex
}

// New creates a controller in the Initializing phase. A nil store keeps the
// language choice in memory only.
func New(gw gateway.Gateway, store prefs.Store, opts ...Option) *Controller {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if store == nil {
		store = prefs.NewMemoryStore()
	}

	return &Controller{
		gw:    gw,
		prefs: store,
		cfg:   cfg,
		log:   cfg.logger.With().Str("component", "controller").Logger(),
		store: session.NewStore(cfg.conversationID(), cfg.limits),
	}
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() session.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Snapshot()
}

// Init reads the persisted language and fetches the welcome payload.
// Failures are absorbed: the session always ends up renderable.
// Calling Init more than once, or after Reset, does nothing.
func (c *Controller) Init(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return assistant.ErrClosed
	}
	if c.started {
		c.mu.Unlock()
		return nil
	}
	c.started = true
	c.store.BeginInitialization()
	epoch := c.epoch
	c.mu.Unlock()

	persisted := c.persistedLanguage(ctx)
	payload, err := c.gw.FetchWelcome(ctx, persisted)
	if err == nil && payload == nil {
		err = assistant.ErrNetwork
	}

	c.mu.Lock()
	if !c.currentLocked(epoch) {
		c.mu.Unlock()
		c.discard("init")
		return nil
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		c.log.Warn().Err(err).Msg("welcome fetch failed, using local greeting")
		fb := Fallback(assistant.DefaultLanguage)
		c.store.EnterReady(
			assistant.DefaultLanguage,
			[]assistant.Language{assistant.DefaultLanguage},
			greeting(fb.Greeting),
			fb.Suggestions,
			ConnectivityWarning,
		)
	} else {
		c.applyWelcomeLocked(payload, persisted)
	}
	snap := c.store.Snapshot()
	c.mu.Unlock()

	metrics.WelcomeFetchesTotal.WithLabelValues("init", outcome).Inc()
	c.notify(snap)
	return nil
}

func (c *Controller) applyWelcomeLocked(payload *gateway.WelcomePayload, persisted assistant.Language) {
	supported := payload.SupportedLanguages()
	c.lastWelcome = payload

	if persisted == "" && slices.Contains(supported, assistant.LanguageEnglish) {
		c.store.EnterAwaitingLanguage(supported)
		c.log.Debug().Msg("awaiting language choice")
		return
	}

	lang := persisted
	if lang == "" {
		lang = assistant.DefaultLanguage
	}
	c.store.EnterReady(lang, supported, greeting(payload.Message), payload.Suggestions, "")
}

// ChooseLanguage records an explicit language pick and loads the localized
// welcome. It is accepted only while awaiting a language, and only for a
// language the backend advertised.
func (c *Controller) ChooseLanguage(ctx context.Context, lang assistant.Language) bool {
	c.mu.Lock()
	if reason := c.languageRejectionLocked(lang); reason != "" {
		c.mu.Unlock()
		c.reject(intentChooseLanguage, reason)
		return false
	}
	c.store.ChooseLanguage(lang)
	epoch := c.epoch
	snap := c.store.Snapshot()
	c.mu.Unlock()
	c.notify(snap)

	c.persistLanguage(ctx, epoch, lang)

	payload, err := c.gw.FetchWelcome(ctx, lang)
	if err == nil && payload == nil {
		err = assistant.ErrNetwork
	}

	c.mu.Lock()
	if !c.currentLocked(epoch) {
		c.mu.Unlock()
		c.discard(intentChooseLanguage)
		return true
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		c.log.Warn().Err(err).Str("language", string(lang)).Msg("localized welcome fetch failed")
		content := welcomeContent(c.lastWelcome, lang)
		c.store.EnterReady(lang, nil, greeting(content.Greeting), content.Suggestions, "")
	} else {
		c.lastWelcome = payload
		c.store.EnterReady(lang, payload.SupportedLanguages(), greeting(payload.Message), payload.Suggestions, "")
	}
	snap = c.store.Snapshot()
	c.mu.Unlock()

	metrics.WelcomeFetchesTotal.WithLabelValues("language", outcome).Inc()
	c.notify(snap)
	return true
}

func (c *Controller) languageRejectionLocked(lang assistant.Language) string {
	switch {
	case c.closed:
		return reasonClosed
	case c.store.Phase() != session.PhaseAwaitingLanguage:
		return reasonNotReady
	case !c.store.Snapshot().Supports(lang):
		return reasonUnsupported
	default:
		return ""
	}
}

// Submit sends text as a user message and blocks until the exchange completes.
// It returns false, changing nothing, when text is blank, the session is not
// ready or another exchange is outstanding. Submissions are never queued.
func (c *Controller) Submit(ctx context.Context, text string) bool {
	return c.submit(ctx, intentSubmit, text)
}

// PickSuggestion submits the text of a suggestion. The suggestion list is
// cleared as soon as the exchange begins.
func (c *Controller) PickSuggestion(ctx context.Context, suggestion string) bool {
	return c.submit(ctx, intentPickSuggestion, suggestion)
}

func (c *Controller) submit(ctx context.Context, intent, text string) bool {
	text = strings.TrimSpace(text)

	c.mu.Lock()
	if reason := c.submitRejectionLocked(text); reason != "" {
		c.mu.Unlock()
		c.reject(intent, reason)
		return false
	}
	c.store.BeginExchange(assistant.NewMessage(assistant.IDPrefixUser, assistant.SenderUser, text))
	epoch := c.epoch
	snap := c.store.Snapshot()
	c.mu.Unlock()
	c.notify(snap)

	lang := snap.EffectiveLanguage()
	req := gateway.NewChatRequest(text, snap.Topic, lang, snap.ConversationID)

	start := time.Now()
	payload, err := c.gw.SendChatMessage(ctx, req)
	if err == nil && payload == nil {
		err = assistant.ErrNetwork
	}
	elapsed := time.Since(start)

	c.mu.Lock()
	if !c.currentLocked(epoch) {
		c.mu.Unlock()
		c.discard(intent)
		metrics.ExchangesTotal.WithLabelValues(metrics.OutcomeDiscarded).Inc()
		return true
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
		c.log.Warn().
			Err(err).
			Str("conversation_id", snap.ConversationID).
			Str("language", string(lang)).
			Str("topic", string(snap.Topic)).
			Msg("chat exchange failed")
		c.store.FailExchange(assistant.NewMessage(assistant.IDPrefixError, assistant.SenderAssistant, Apology(lang)))
	} else {
		c.store.CompleteExchange(payload.Message(), payload.Suggestions())
	}
	snap = c.store.Snapshot()
	c.mu.Unlock()

	metrics.ExchangesTotal.WithLabelValues(outcome).Inc()
	metrics.ExchangeDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	c.notify(snap)
	return true
}

func (c *Controller) submitRejectionLocked(text string) string {
	switch {
	case c.closed:
		return reasonClosed
	case text == "":
		return reasonEmpty
	case c.store.Phase() != session.PhaseReady:
		return reasonNotReady
	case c.store.Busy():
		return reasonBusy
	default:
		return ""
	}
}

// ToggleTopic selects topic as the filter for the next message, or
// deselects it when it is already selected.
func (c *Controller) ToggleTopic(topic assistant.Topic) bool {
	c.mu.Lock()
	var reason string
	switch {
	case c.closed:
		reason = reasonClosed
	case !slices.Contains(assistant.Topics(), topic):
		reason = reasonUnsupported
	case c.store.Phase() != session.PhaseReady:
		reason = reasonNotReady
	case c.store.Busy():
		reason = reasonBusy
	}
	if reason != "" {
		c.mu.Unlock()
		c.reject(intentToggleTopic, reason)
		return false
	}
	c.store.ToggleTopic(topic)
	snap := c.store.Snapshot()
	c.mu.Unlock()

	c.notify(snap)
	return true
}

// ClearTopic removes the topic filter, if any.
func (c *Controller) ClearTopic() {
	c.mu.Lock()
	if c.closed || c.store.Busy() || c.store.Snapshot().Topic == "" {
		c.mu.Unlock()
		return
	}
	c.store.ClearTopic()
	snap := c.store.Snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// DismissWarning hides the connectivity notice, if any.
func (c *Controller) DismissWarning() {
	c.mu.Lock()
	if c.closed || c.store.Snapshot().Warning == "" {
		c.mu.Unlock()
		return
	}
	c.store.DismissWarning()
	snap := c.store.Snapshot()
	c.mu.Unlock()

	c.notify(snap)
}

// Reset starts a new chat: it forgets the persisted language, discards the
// conversation and any outstanding result, then either asks for a language
// again or greets in the default language.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return assistant.ErrClosed
	}
	c.epoch++
	c.started = true
	supported := c.store.Snapshot().SupportedLanguages
	c.store.Reset(c.cfg.conversationID())

	if slices.Contains(supported, assistant.LanguageEnglish) {
		c.store.EnterAwaitingLanguage(supported)
	} else {
		content := welcomeContent(c.lastWelcome, assistant.DefaultLanguage)
		c.store.EnterReady(assistant.DefaultLanguage, supported, greeting(content.Greeting), content.Suggestions, "")
	}
	snap := c.store.Snapshot()
	c.mu.Unlock()

	metrics.ResetsTotal.Inc()
	c.clearLanguage(ctx)
	c.notify(snap)
	return nil
}

// Close stops the controller. Results of outstanding calls are ignored and
// every later intent is rejected. The preference store is left open.
func (c *Controller) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.epoch++
	return nil
}

// persistedLanguage reads the remembered language. Read errors and invalid
// values both count as "no choice".
func (c *Controller) persistedLanguage(ctx context.Context) assistant.Language {
	raw, err := c.prefs.Get(ctx, c.cfg.storageKey)
	if err != nil {
		c.log.Error().Err(err).Str("key", c.cfg.storageKey).Msg("failed to read language preference")
		return ""
	}
	lang, ok := assistant.ParseLanguage(raw)
	if !ok {
		if raw != "" {
			c.log.Debug().Str("value", raw).Msg("ignoring invalid language preference")
		}
		return ""
	}
	return lang
}

func (c *Controller) persistLanguage(ctx context.Context, epoch uint64, lang assistant.Language) {
	c.prefsMu.Lock()
	defer c.prefsMu.Unlock()

	if !c.current(epoch) {
		return
	}
	if err := c.prefs.Set(ctx, c.cfg.storageKey, string(lang)); err != nil {
		c.log.Error().Err(err).Str("language", string(lang)).Msg("failed to persist language preference")
	}
}

func (c *Controller) clearLanguage(ctx context.Context) {
	c.prefsMu.Lock()
	defer c.prefsMu.Unlock()

	if err := c.prefs.Clear(ctx, c.cfg.storageKey); err != nil {
		c.log.Error().Err(err).Str("key", c.cfg.storageKey).Msg("failed to clear language preference")
	}
}

func (c *Controller) current(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentLocked(epoch)
}

func (c *Controller) currentLocked(epoch uint64) bool {
	return !c.closed && c.epoch == epoch
}

func (c *Controller) discard(op string) {
	c.log.Debug().Str("op", op).Msg("dropping stale result")
}

func (c *Controller) reject(intent, reason string) {
	metrics.RejectedIntentsTotal.WithLabelValues(intent, reason).Inc()
	c.log.Debug().Str("intent", intent).Str("reason", reason).Msg("intent ignored")
}

func (c *Controller) notify(snap session.State) {
	if c.cfg.observer != nil {
		c.cfg.observer(snap)
	}
}

func greeting(text string) assistant.ConversationMessage {
	return assistant.NewMessage(assistant.IDPrefixWelcome, assistant.SenderAssistant, text)
}
