package services

// Static classification data for the dialogue engine. Tables are ordered
// slices so matching iterates in a fixed, configured order.

// GroupID identifies one configured support group.
type GroupID string

const (
	GroupCGA GroupID = "CGA"
	GroupAA  GroupID = "AA"
	GroupNA  GroupID = "NA"
	GroupEI  GroupID = "EI"
	GroupAM  GroupID = "AM"
)

type supportGroup struct {
	ID        GroupID
	Name      string
	Triggers  []string
	Resources []string
}

// supportGroups is matched top to bottom; the first group with a trigger
// hit wins.
var supportGroups = []supportGroup{
	{
		ID:        GroupCGA,
		Name:      "Criminal & Gang Anonymous",
		Triggers:  []string{"gang", "crime", "violence", "prison", "arrest"},
		Resources: []string{"support meetings", "counseling", "rehabilitation"},
	},
	{
		ID:        GroupAA,
		Name:      "Alcoholics Anonymous",
		Triggers:  []string{"drink", "alcohol", "drunk", "relapse", "sober"},
		Resources: []string{"meetings", "sponsors", "sobriety support"},
	},
	{
		ID:        GroupNA,
		Name:      "Narcotics Anonymous",
		Triggers:  []string{"drugs", "high", "addiction", "substance", "clean"},
		Resources: []string{"recovery meetings", "addiction support", "rehabilitation"},
	},
	{
		ID:        GroupEI,
		Name:      "Emotional Intelligence",
		Triggers:  []string{"emotions", "feelings", "control", "understand", "react"},
		Resources: []string{"workshops", "counseling", "emotional management"},
	},
	{
		ID:        GroupAM,
		Name:      "Anger Management",
		Triggers:  []string{"angry", "rage", "control", "temper", "mad"},
		Resources: []string{"anger management classes", "therapy", "coping techniques"},
	},
}

// Emotion labels for the emotion-detection tier.
type Emotion string

const (
	EmotionAnger      Emotion = "anger"
	EmotionAnxiety    Emotion = "anxiety"
	EmotionDepression Emotion = "depression"
	EmotionPositive   Emotion = "positive"
)

type emotionPattern struct {
	Emotion  Emotion
	Keywords []string
}

var emotionPatterns = []emotionPattern{
	{EmotionAnger, []string{"angry", "furious", "mad", "rage", "frustrated"}},
	{EmotionAnxiety, []string{"anxious", "worried", "nervous", "stressed", "panic"}},
	{EmotionDepression, []string{"sad", "depressed", "hopeless", "empty", "worthless"}},
	{EmotionPositive, []string{"happy", "grateful", "excited", "peaceful", "confident"}},
}

var crisisKeywords = []string{
	"suicide", "kill", "die", "end it", "hopeless",
	"can't go on", "worthless", "better off dead",
}

const crisisResponse = "I'm concerned about what you've shared. You're not alone. " +
	"Would you like me to connect you with a crisis counselor? " +
	"You can also call 988 for immediate support."

var checkInQuestions = []string{
	"How are you feeling today? (1-10)",
	"How well did you sleep last night? (1-10)",
	"What's your anxiety level right now? (1-10)",
	"Have you taken your medications today? (if applicable)",
	"What's one thing you're looking forward to today?",
	"Have you experienced any triggers today?",
	"Would you like to talk about anything specific?",
}

// fallbackResponses are selected by a stable hash of the message text so
// that the same input always gets the same reply. Variety only, not
// randomness.
var fallbackResponses = []string{
	"I hear you. Would you like to tell me more?",
	"That sounds challenging. How can I support you?",
	"I'm here to listen. What else is on your mind?",
	"Thank you for sharing. How are you feeling now?",
	"Would you like to explore some coping strategies?",
}

var copingStrategies = map[string][]string{
	"immediate": {
		"Take 5 deep breaths",
		"Count backwards from 10",
		"Drink some water",
		"Step outside for fresh air",
	},
	"short_term": {
		"Go for a 10-minute walk",
		"Listen to calming music",
		"Write in your journal",
		"Call a supportive friend",
	},
	"long_term": {
		"Develop a regular exercise routine",
		"Practice daily meditation",
		"Join a support group",
		"Start therapy sessions",
	},
}
