package whatsapp

import (
	"fmt"
	"strings"
)

// ReplyContext carries the facts a rule is allowed to look at.
type ReplyContext struct {
	SenderName  string
	IsGroup     bool
	MessageType MessageType
	Text        string
}

// ReplyRule pairs a predicate with a response builder. Rules are evaluated
// top to bottom and the first match wins, so specific patterns must be
// listed before broad ones.
type ReplyRule struct {
	Name  string
	Match func(text string, ctx ReplyContext) bool
	Build func(ctx ReplyContext) string
}

// ReplyEngine turns an inbound message into exactly one reply body. It is
// pure: no transport, no storage, no clock.
type ReplyEngine struct {
	rules []ReplyRule
}

func NewReplyEngine() *ReplyEngine {
	return &ReplyEngine{rules: defaultRules()}
}

// ComputeReply always returns a non-empty body. Matching is done on the
// trimmed, lowercased text so casing and stray whitespace never matter.
func (e *ReplyEngine) ComputeReply(ctx ReplyContext) string {
	text := strings.ToLower(strings.TrimSpace(ctx.Text))
	for _, rule := range e.rules {
		if rule.Match(text, ctx) {
			return rule.Build(ctx)
		}
	}
	// Unreachable while the default rule is last, kept as a hard floor.
	return defaultReply(ctx)
}

func containsAny(text string, keywords ...string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

func greetName(ctx ReplyContext) string {
	name := strings.TrimSpace(ctx.SenderName)
	if name == "" {
		return "there"
	}
	return name
}

func defaultReply(ctx ReplyContext) string {
	return "Thanks for reaching out! Send *menu* to see what I can help you with, or just describe what you need and our team will get back to you."
}

func defaultRules() []ReplyRule {
	return []ReplyRule{
		{
			Name: "menu",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "menu", "help", "option")
			},
			Build: func(_ ReplyContext) string {
				return "Here is what I can help with:\n\n1. *book* an appointment\n2. *products* and services\n3. *pricing*\n\nReply with any of the words above."
			},
		},
		{
			Name: "greeting",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "hello", "hi", "hey", "good morning", "good afternoon", "good evening", "namaste")
			},
			Build: func(ctx ReplyContext) string {
				return fmt.Sprintf("Hi %s! 👋 Welcome. Send *menu* to see what we offer, or tell me what you are looking for.", greetName(ctx))
			},
		},
		{
			Name: "booking",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "book", "appointment", "schedule", "slot")
			},
			Build: func(ctx ReplyContext) string {
				return fmt.Sprintf("Sure %s, happy to set that up. Please share your preferred date and time and our team will confirm the slot shortly.", greetName(ctx))
			},
		},
		{
			Name: "products",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "product", "service", "catalog", "offer")
			},
			Build: func(_ ReplyContext) string {
				return "We offer a full range of products and services. Tell me which category interests you and I will share the details, or send *pricing* for rates."
			},
		},
		{
			Name: "pricing",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "price", "cost", "fee", "charge", "rate", "quote")
			},
			Build: func(_ ReplyContext) string {
				return "Pricing depends on what you need. Share a few details about your requirement and we will send you a quote within the day."
			},
		},
		{
			Name: "thanks",
			Match: func(text string, _ ReplyContext) bool {
				return containsAny(text, "thank", "thx", "great")
			},
			Build: func(ctx ReplyContext) string {
				return fmt.Sprintf("You're welcome, %s! Let us know if there is anything else we can do for you.", greetName(ctx))
			},
		},
		{
			Name: "media-ack",
			Match: func(text string, ctx ReplyContext) bool {
				return text == "" && ctx.MessageType != MessageTypeText
			},
			Build: func(_ ReplyContext) string {
				return "Got your file, thanks! Our team will take a look and get back to you."
			},
		},
		{
			Name: "default",
			Match: func(_ string, _ ReplyContext) bool {
				return true
			},
			Build: defaultReply,
		},
	}
}
