package agent

import (
	"context"
	"strings"

	"sales-agent/config"
	"sales-agent/llmclient"
	"sales-agent/prompts"
	"sales-agent/retrieval"

	"go.uber.org/zap"
)

const (
	escalationKeyword = "ESCALATE"

	// Fixed replies. The escalation line is what the customer sees when
	// the model hands off; the apology covers any chat API failure.
	escalationReply = "Gracias por tu consulta. Un representante se pondrá en contacto contigo pronto."
	apologyReply    = "Lo siento, hubo un error al procesar tu mensaje."

	contextPreamble = "Informacion de inventario (usar solo esto para responder):"
)

// Reply is the outcome of one message: the text to send back and whether
// the conversation should be handed to a human.
type Reply struct {
	Text      string
	Escalated bool
}

// ChatClient is the completion call the agent depends on.
type ChatClient interface {
	Chat(ctx context.Context, messages []llmclient.Message) (string, error)
}

// Agent turns an incoming customer message into a reply: it builds the
// inventory context through the retrieval filter, calls the chat model,
// and interprets the escalation keyword. Respond never returns an error:
// every failure resolves to a fixed reply.
type Agent struct {
	cfg    *config.Config
	filter *retrieval.Filter
	client ChatClient
	logger *zap.Logger
}

func New(cfg *config.Config, filter *retrieval.Filter, client ChatClient, logger *zap.Logger) *Agent {
	return &Agent{
		cfg:    cfg,
		filter: filter,
		client: client,
		logger: logger,
	}
}

func (a *Agent) Respond(ctx context.Context, message string) Reply {
	inventory := a.filter.BuildContext(ctx, message)

	messages := []llmclient.Message{
		{Role: "system", Content: prompts.SellerSystem()},
	}
	if inventory != "" {
		messages = append(messages, llmclient.Message{
			Role:    "system",
			Content: contextPreamble + "\n" + inventory,
		})
	} else {
		// Empty context means nothing relevant was found; the system
		// prompt tells the model to escalate in that case.
		a.logger.Info("No catalog context found for message",
			zap.String("message", message))
	}
	messages = append(messages, llmclient.Message{Role: "user", Content: message})

	response, err := a.client.Chat(ctx, messages)
	if err != nil {
		a.logger.Error("Chat completion failed", zap.Error(err))
		return Reply{Text: apologyReply}
	}

	response = strings.TrimSpace(response)
	if response == "" {
		a.logger.Warn("Chat model returned an empty reply")
		return Reply{Text: apologyReply}
	}
	if strings.Contains(strings.ToUpper(response), escalationKeyword) {
		a.logger.Info("Escalating conversation to a human")
		return Reply{Text: escalationReply, Escalated: true}
	}
	return Reply{Text: response}
}
