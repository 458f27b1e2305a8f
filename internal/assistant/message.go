package assistant

// Origin identifies who authored a transcript entry.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

const (
	GreetingText = "👋 Hi! I'm here to help you with any questions about your files. How can I assist you today?"
	FallbackText = "Sorry, something went wrong. Please try again."
)

// Message is a single transcript entry. Values are never mutated after creation.
type Message struct {
	Origin Origin
	Text   string
}

func UserMessage(text string) Message {
	return Message{Origin: OriginUser, Text: text}
}

func AssistantMessage(text string) Message {
	return Message{Origin: OriginAssistant, Text: text}
}
