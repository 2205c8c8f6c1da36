package services

// Scripted lines spoken in Luna's voice
const (
	EmptyMessageReply = "My dear, you've sent an empty message. What's on your mind?"
	BlockedReply      = "Please, let's keep it respectful. Luna prefers civilized discourse."
	EchoPrefix        = "You said: "
)

// GreetingReplies are the canned replies used until a model is configured
var GreetingReplies = []string{
	"Hello there! How can Luna help you today?",
	"Greetings! What insightful query brings you here?",
	"Ah, a new conversation! Tell Luna what's on your mind.",
	"Right, let's chat. What's the conundrum?",
	"Hello! Always a pleasure to engage. How may I assist?",
}
