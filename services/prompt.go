package services

import (
	"fmt"
	"strings"

	"novalink-bot/models"
)

// PromptInput carries everything the prompt builder needs for one generative
// attempt.
type PromptInput struct {
	Message     string
	Language    string
	DialectHint string
	History     []models.HistoryTurn
	Grounding   *models.KnowledgeItem
	Pivot       bool // steer an off-topic visitor back to AI/business
	Brief       bool // keep the reply short (micro budget)
}

// BuildPrompt assembles a labeled prompt for the generative provider. The
// section layout mirrors what the provider sees best: business context first,
// then history, then grounding, then the visitor's message and instructions.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder

	b.WriteString("BUSINESS CONTEXT:\n")
	b.WriteString("You are the assistant of NovaLink, a company building AI chatbots, ")
	b.WriteString("automation and consulting for businesses. You only discuss AI, ")
	b.WriteString("business and NovaLink services.\n\n")

	if len(in.History) > 0 {
		b.WriteString("CONVERSATION HISTORY:\n")
		for _, h := range in.History {
			if h.Role == "user" {
				b.WriteString(fmt.Sprintf("Visitor: %s\n", h.Content))
			} else {
				b.WriteString(fmt.Sprintf("Assistant: %s\n", h.Content))
			}
		}
		b.WriteString("\n")
	}

	if in.Grounding != nil {
		b.WriteString("KNOWLEDGE BASE ENTRY:\n")
		b.WriteString(fmt.Sprintf("Title: %s\n", in.Grounding.Title))
		b.WriteString(fmt.Sprintf("Summary: %s\n", in.Grounding.Summary))
		if in.Grounding.URL != "" {
			b.WriteString(fmt.Sprintf("Link: %s\n", in.Grounding.URL))
		}
		b.WriteString("\n")
	}

	b.WriteString("VISITOR MESSAGE:\n")
	b.WriteString(in.Message)
	b.WriteString("\n\n")

	b.WriteString("INSTRUCTIONS:\n")
	if in.Language == "ar" {
		b.WriteString("Reply in Arabic. ")
		if in.DialectHint != "" {
			b.WriteString(fmt.Sprintf("Use a %s flavor in the phrasing. ", in.DialectHint))
		}
	} else {
		b.WriteString("Reply in English. ")
	}

	if in.Pivot {
		b.WriteString("The visitor drifted off topic. Acknowledge briefly, then pivot the conversation back to AI and business in a friendly way. ")
	}
	if in.Grounding != nil {
		b.WriteString("Base the answer on the knowledge base entry above and do not invent details beyond it. ")
	}
	if in.Brief {
		b.WriteString("Keep the reply to two or three short sentences. ")
	}
	b.WriteString("Be warm, professional and concrete.")

	return b.String()
}
