package faq

// DefaultEntries is the in-code catalog used when no FAQ file exists.
func DefaultEntries() map[string]Entry {
	return map[string]Entry{
		"business_hours": {
			Questions: []string{
				"what are your business hours",
				"when are you open",
				"what time do you open",
				"what time do you close",
				"hours of operation",
			},
			Answer: "Our customer support is available Monday through Friday from 9:00 AM to 6:00 PM EST, " +
				"and Saturday from 10:00 AM to 4:00 PM EST. We're closed on Sundays and major holidays. " +
				"For urgent issues outside these hours, please email support@company.com.",
			Category: "general",
		},
		"contact_info": {
			Questions: []string{
				"how can i contact you",
				"contact information",
				"phone number",
				"email address",
				"how to reach support",
			},
			Answer: "You can reach our support team in several ways:\n" +
				"• Phone: 1-800-SUPPORT (1-800-787-7678)\n" +
				"• Email: support@company.com\n" +
				"• Live Chat: Available on our website\n" +
				"• This chatbot: Available 24/7 for immediate assistance",
			Category: "general",
		},
		"order_tracking": {
			Questions: []string{
				"how to track my order",
				"track order",
				"order status",
				"where is my order",
				"shipping status",
			},
			Answer: "To track your order:\n" +
				"1. Log into your account on our website\n" +
				"2. Go to 'My Orders' section\n" +
				"3. Click on the order you want to track\n\n" +
				"Alternatively, you can use the tracking number sent to your email. " +
				"If you need help finding your tracking information, please provide your order number and I'll assist you.",
			Category: "orders",
		},
		"return_policy": {
			Questions: []string{
				"return policy",
				"how to return",
				"refund policy",
				"can i return this",
				"exchange policy",
			},
			Answer: "Our return policy allows returns within 30 days of purchase for most items:\n" +
				"• Items must be in original condition and packaging\n" +
				"• Original receipt or order confirmation required\n" +
				"• Some items (personalized, digital downloads) are not returnable\n" +
				"• Refunds typically process within 5-7 business days\n\n" +
				"To start a return, visit our returns portal or contact our support team.",
			Category: "returns",
		},
		"payment_methods": {
			Questions: []string{
				"what payment methods do you accept",
				"payment options",
				"can i pay with",
				"accepted payment types",
			},
			Answer: "We accept the following payment methods:\n" +
				"• Credit Cards: Visa, MasterCard, American Express, Discover\n" +
				"• Debit Cards\n" +
				"• PayPal\n" +
				"• Apple Pay\n" +
				"• Google Pay\n" +
				"• Bank transfers (for large orders)\n\n" +
				"All payments are processed securely using industry-standard encryption.",
			Category: "billing",
		},
		"shipping_info": {
			Questions: []string{
				"shipping information",
				"how long does shipping take",
				"shipping cost",
				"delivery time",
				"shipping options",
			},
			Answer: "Shipping options and timeframes:\n" +
				"• Standard Shipping: 5-7 business days ($5.99)\n" +
				"• Express Shipping: 2-3 business days ($12.99)\n" +
				"• Next Day Delivery: 1 business day ($19.99)\n" +
				"• Free shipping on orders over $50\n\n" +
				"Shipping times may vary during peak seasons or due to weather conditions.",
			Category: "shipping",
		},
		"password_reset": {
			Questions: []string{
				"forgot password",
				"reset password",
				"can't login",
				"password reset",
				"login problems",
			},
			Answer: "To reset your password:\n" +
				"1. Go to our login page\n" +
				"2. Click 'Forgot Password?'\n" +
				"3. Enter your email address\n" +
				"4. Check your email for reset instructions\n" +
				"5. Follow the link and create a new password\n\n" +
				"If you don't receive the email, check your spam folder or contact support for assistance.",
			Category: "account",
		},
	}
}
