package intent

// DefaultDefinitions is the in-code intent catalog used when no intent file
// exists.
func DefaultDefinitions() map[string]Definition {
	return map[string]Definition{
		"billing": {
			Description: "Questions about billing, payments, charges, refunds",
			Examples:    []string{"billing issue", "payment problem", "refund request", "charge inquiry"},
		},
		"technical_support": {
			Description: "Technical problems, troubleshooting, setup issues",
			Examples:    []string{"not working", "error message", "setup help", "technical problem"},
		},
		"product_info": {
			Description: "Questions about products, features, specifications",
			Examples:    []string{"product details", "features", "specifications", "compatibility"},
		},
		"order_tracking": {
			Description: "Order status, shipping, delivery questions",
			Examples:    []string{"track order", "shipping status", "delivery time", "order status"},
		},
		"account_management": {
			Description: "Account settings, password, profile changes",
			Examples:    []string{"change password", "account settings", "profile update", "login issues"},
		},
		"general_inquiry": {
			Description: "General questions, business hours, contact information",
			Examples:    []string{"business hours", "contact info", "general question", "help"},
		},
		"complaint": {
			Description: "Customer complaints, dissatisfaction, issues",
			Examples:    []string{"complaint", "unhappy", "disappointed", "problem with service"},
		},
	}
}
