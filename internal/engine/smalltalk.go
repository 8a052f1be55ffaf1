package engine

// smallTalkCategory pairs trigger keywords with candidate responses. The
// categories are tested in slice order before any symptom matching, and the
// first category with a keyword hit short-circuits the turn.
type smallTalkCategory struct {
	Name      string
	Keywords  []string
	Responses []string
}

var smallTalk = []smallTalkCategory{
	{
		Name:     "greeting",
		Keywords: []string{"hi", "hieee", "hello", "hey", "good morning", "good evening", "good afternoon", "what's up", "howdy"},
		Responses: []string{
			"Hello! How are you feeling today?",
			"Hi there! Tell me how your health is doing.",
			"Hey! How can I help you with your wellness?",
		},
	},
	{
		Name:     "thanks",
		Keywords: []string{"thank you", "thanks", "thx", "thank u", "ty", "much appreciated", "grateful", "thanks a lot", "thnx"},
		Responses: []string{
			"You're most welcome! 😊",
			"Glad I could help!",
			"Take care and stay healthy!",
		},
	},
	{
		Name:     "acknowledgement",
		Keywords: []string{"ok", "okay", "fine", "alright"},
		Responses: []string{
			"Okay, got it!",
			"Alright, tell me more about how you feel.",
			"Sure! What would you like to discuss next?",
		},
	},
}

// fallbackResponses are used when a message matches nothing at all.
var fallbackResponses = []string{
	"I can help you with health-related queries. Please tell me about your symptoms.",
	"Please ask me something related to your health or wellness.",
	"I'm designed to help with health concerns — could you share how you're feeling?",
}
