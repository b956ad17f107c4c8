package assistant

import (
	"encoding/json"
	"fmt"

	"github.com/omarzayed/supportdesk/internal/entities"
)

const systemPrompt = `You are a professional customer support representative for a technology company.
You are helpful, empathetic, and solution-oriented. Follow these guidelines:

1. Always be polite and professional
2. Show empathy for customer concerns
3. Provide clear, actionable solutions
4. If you cannot resolve an issue, offer to escalate to a human agent
5. Ask clarifying questions when needed
6. Keep responses concise but comprehensive
7. Use a friendly but professional tone

Available support areas:
- Billing and payments
- Technical support
- Product information
- Order tracking and shipping
- Account management
- General inquiries

If a customer asks about something outside your knowledge, acknowledge it honestly
and offer to connect them with the appropriate specialist.`

// fallbackResponse is returned when the downstream generative step fails
// entirely.
const fallbackResponse = "I apologize, but I'm experiencing technical difficulties. " +
	"Please try again in a moment, or feel free to contact our human support team " +
	"for immediate assistance."

// enhancedMessage embeds the detected intent and entities alongside the raw
// message so the model can use them.
func enhancedMessage(message, detectedIntent string, found []entities.Entity) string {
	entityText := "None"
	if len(found) > 0 {
		if encoded, err := json.MarshalIndent(found, "", "  "); err == nil {
			entityText = string(encoded)
		}
	}

	return fmt.Sprintf(`User message: %s

Detected intent: %s
Extracted entities: %s

Please provide a helpful response as a customer support representative.`,
		message, detectedIntent, entityText)
}

// escalationMessage is the canned reply handed to the user when their case
// moves to a human agent.
func escalationMessage(issue, conversationID, supportEmail, supportPhone string) string {
	return fmt.Sprintf(`I understand this requires specialized attention. I'm escalating your case to one of our human specialists who will be better equipped to help you.

Your case details have been noted:
- Issue: %s
- Conversation ID: %s

A human agent will contact you within 2 business hours. In the meantime, you can also reach our support team directly at %s or call %s.

Is there anything else I can help you with while you wait?`,
		issue, conversationID, supportEmail, supportPhone)
}
