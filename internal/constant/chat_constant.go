package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	// FallbackMessage steers the user back toward supported topics. It is
	// deterministic: the fallback path performs no external calls.
	FallbackMessage = "I'm sorry, I can only help with questions about our clinic's services and with managing appointments. " +
		"You can ask me things like \"What cardiology services do you offer?\" or \"Book me an appointment with Dr. Smith on Friday at 10:00\"."

	// ApologyMessage is substituted whenever an upstream agent produced no
	// usable text. A reply's data must never be empty.
	ApologyMessage = "I'm sorry, I wasn't able to produce an answer for that. Please try rephrasing your question."

	// NoGroundingMessage is returned when retrieval finds nothing relevant.
	// The assistant never fabricates an answer without corpus support.
	NoGroundingMessage = "I couldn't find any relevant information about that in our clinic documentation. " +
		"Please try rephrasing your question, or ask about a different topic."
)
