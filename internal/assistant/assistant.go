package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/omarzayed/supportdesk/internal/conversation"
	"github.com/omarzayed/supportdesk/internal/entities"
	"github.com/omarzayed/supportdesk/internal/faq"
	"github.com/omarzayed/supportdesk/internal/intent"
	"github.com/omarzayed/supportdesk/internal/llm"
)

// Reply source labels.
const (
	SourceFAQ   = "faq"
	SourceModel = "model"
	SourceError = "error"
)

// Reply is the assistant's answer to one user turn.
type Reply struct {
	ConversationID string            `json:"conversation_id"`
	Response       string            `json:"response"`
	Intent         string            `json:"intent"`
	Confidence     float64           `json:"confidence"`
	Entities       []entities.Entity `json:"entities"`
	Source         string            `json:"source"`
}

// Options configures an Assistant.
type Options struct {
	Model         string
	HistoryWindow int
	Timeout       time.Duration
	SupportEmail  string
	SupportPhone  string
}

// Assistant orchestrates one user turn: local knowledge first (entities,
// intent, FAQ), then the generative model, writing both sides of the
// exchange into the conversation store.
type Assistant struct {
	store      *conversation.Store
	extractor  *entities.Extractor
	classifier *intent.Classifier
	faqs       *faq.Catalog
	provider   llm.Provider
	opts       Options
	log        zerolog.Logger
}

// New creates an assistant. The provider may be nil, in which case every
// FAQ miss yields the fallback response.
func New(store *conversation.Store, extractor *entities.Extractor, classifier *intent.Classifier,
	faqs *faq.Catalog, provider llm.Provider, opts Options, log zerolog.Logger) *Assistant {
	if opts.HistoryWindow <= 0 {
		opts.HistoryWindow = 6
	}
	return &Assistant{
		store:      store,
		extractor:  extractor,
		classifier: classifier,
		faqs:       faqs,
		provider:   provider,
		opts:       opts,
		log:        log.With().Str("component", "assistant").Logger(),
	}
}

// Respond processes one user message. An empty or unknown conversation id
// starts a new conversation; the id actually used is echoed in the reply.
// Respond never returns an error: every downstream failure degrades to a
// documented fallback.
func (a *Assistant) Respond(ctx context.Context, conversationID, message string) *Reply {
	if conversationID == "" || a.store.Get(conversationID) == nil {
		conversationID = a.store.Create()
	}

	// History is captured before this turn is appended.
	history := a.store.GetMessages(conversationID, a.opts.HistoryWindow)
	a.store.AddMessage(conversationID, conversation.RoleUser, message, nil)

	// The local stages are independent of each other; run them together.
	// Each degrades internally instead of failing.
	var (
		found        []entities.Entity
		intentResult intent.Result
		faqMatch     *faq.Match
		faqOK        bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		found = a.extractor.Extract(gctx, message)
		return nil
	})
	g.Go(func() error {
		intentResult = a.classifier.Classify(gctx, message)
		return nil
	})
	g.Go(func() error {
		faqMatch, faqOK = a.faqs.Match(message)
		return nil
	})
	g.Wait()

	reply := &Reply{
		ConversationID: conversationID,
		Intent:         intentResult.Intent,
		Confidence:     intentResult.Confidence,
		Entities:       found,
	}

	if faqOK {
		reply.Response = faqMatch.Answer
		reply.Source = SourceFAQ
	} else {
		response, err := a.generate(ctx, message, intentResult.Intent, found, history)
		if err != nil {
			a.log.Error().Err(err).Str("conversation_id", conversationID).
				Msg("generative step failed, using fallback response")
			reply.Response = fallbackResponse
			reply.Source = SourceError
			reply.Intent = "error"
			reply.Confidence = 0
		} else {
			reply.Response = response
			reply.Source = SourceModel
		}
	}

	a.store.AddMessage(conversationID, conversation.RoleAssistant, reply.Response, &conversation.Metadata{
		Intent:     reply.Intent,
		Confidence: reply.Confidence,
		Entities:   found,
		Source:     reply.Source,
	})

	return reply
}

// generate asks the model for a contextual response using the recent
// conversation history.
func (a *Assistant) generate(ctx context.Context, message, detectedIntent string,
	found []entities.Entity, history []conversation.Message) (string, error) {

	if a.provider == nil {
		return "", errNoProvider
	}

	if a.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.Timeout)
		defer cancel()
	}

	messages := []llm.Message{{Role: llm.RoleSystem, Content: systemPrompt}}
	for _, msg := range history {
		messages = append(messages, llm.Message{
			Role:    llm.Role(msg.Role),
			Content: msg.Content,
		})
	}
	messages = append(messages, llm.Message{
		Role:    llm.RoleUser,
		Content: enhancedMessage(message, detectedIntent, found),
	})

	resp, err := a.provider.Complete(ctx, llm.CompletionRequest{
		Model:       a.opts.Model,
		Messages:    messages,
		MaxTokens:   500,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

// Escalate hands the conversation to a human agent and returns the message
// shown to the user. Returns false for unknown conversation ids.
func (a *Assistant) Escalate(conversationID, issue string) (string, bool) {
	if !a.store.Escalate(conversationID, issue) {
		return "", false
	}

	message := escalationMessage(issue, conversationID, a.opts.SupportEmail, a.opts.SupportPhone)
	a.store.AddMessage(conversationID, conversation.RoleAssistant, message, &conversation.Metadata{
		Source: SourceModel,
	})
	return message, true
}

// Store exposes the conversation store for route wiring.
func (a *Assistant) Store() *conversation.Store {
	return a.store
}

var errNoProvider = errors.New("no generative provider configured")
