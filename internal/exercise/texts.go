package exercise

var homeRowPhrases = []string{
	"ask a lad; add a salad; a sad lass;",
	"fall asks; a sad dad; a flask;",
	"all dads fall; ask a lass;",
	"fad gas had jag ska;",
	"add all ask dad fad gas;",
}

var alphabetPhrases = []string{
	"abcdefghijklmnopqrstuvwxyz",
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
	"the quick brown fox jumps over the lazy dog",
}

var simpleSentences = []string{
	"The dog barks loudly.",
	"She reads a new book.",
	"He plays the blue guitar.",
	"They walk to the park.",
	"We eat dinner at seven.",
	"The sun is very bright.",
	"My cat sleeps on the rug.",
	"I write a letter to my friend.",
	"Birds sing in the morning.",
	"The car is red and fast.",
}

var complexSentences = []string{
	"Although it was raining, they decided to go for a long walk in the park.",
	"The old library, which was built in the nineteenth century, houses a vast collection of rare manuscripts.",
	"He couldn't decide whether to study engineering or medicine, so he sought advice from his counselor.",
	"After the storm passed, a beautiful rainbow appeared, stretching across the entire sky.",
	"While I appreciate your offer, I must decline; I've already made other plans for this weekend.",
}

var paragraph = "The journey to the mountain's peak was arduous. Each step required focus and determination, " +
	"as the path grew steeper and the air thinner. The climbers, though exhausted, pushed onward, motivated by " +
	"the promise of the breathtaking view from the summit. They paused occasionally to rest, sharing water and " +
	"encouraging words. Finally, after hours of relentless effort, they reached the top. The world unfolded below " +
	"them, a tapestry of green valleys and silver rivers, a reward worthy of their struggle. It was a moment of " +
	"pure triumph and serene beauty."

var technicalPhrases = []string{
	"const initializeApi = (apiKey) => { return new Promise(resolve => resolve(apiKey)); };",
	"SELECT user_id, email FROM users WHERE is_active = true AND last_login > '2023-01-01';",
	"git commit -m 'feat: implement asynchronous data fetching for user profiles'",
	"The patient presented with symptoms of acute myocardial infarction, requiring immediate percutaneous coronary intervention.",
	"The quantum superposition principle states that any two or more quantum states can be added together.",
}

var specialCharPhrases = []string{
	"Please email me at user@example.com, my account is #123-456!",
	"The project's budget is ~$50,000; that's a >25% increase.",
	"Her new password is `Pa$$w0rd!@#` (it's very secure).",
	"The formula is E=mc^2, which is ~1.602 x 10^-19 joules.",
	"Check the URL: https://example.com/search?q=query&id=42",
}

var challengePassage = "The majestic phoenix, a creature of myth and fire, rises from its own ashes, symbolizing " +
	"renewal and immortality. Its vibrant plumage shimmers with hues of gold, crimson, and deep orange. To type " +
	"this passage perfectly requires immense focus and precision, for a single error will end the challenge. " +
	"Every keystroke must be deliberate, every character placed with care. This is a true test of accuracy over speed."

var examNumbers = []string{"1", "2", "7", "10", "25", "50", "100", "121", "300", "555", "999", "2024", "1989", "42"}

var commonWords = []string{
	"the", "be", "to", "of", "and", "a", "in", "that", "have", "it",
	"for", "not", "on", "with", "he", "as", "you", "do", "at", "this",
	"but", "his", "by", "from", "they", "we", "say", "her", "she", "or",
	"an", "will", "my", "one", "all", "would", "there", "their", "what", "so",
	"up", "out", "if", "about", "who", "get", "which", "go", "me", "when",
	"make", "can", "like", "time", "no", "just", "him", "know", "take", "people",
	"into", "year", "your", "good", "some", "could", "them", "see", "other", "than",
	"then", "now", "look", "only", "come", "its", "over", "think", "also", "back",
	"after", "use", "two", "how", "our", "work", "first", "well", "way", "even",
	"new", "want", "because", "any", "these", "give", "day", "most", "us", "is",
	"was", "are", "been", "has", "had", "were", "said", "did", "having", "may",
	"should", "each", "find", "long", "down", "call", "more", "many", "write", "number",
	"sound", "water", "word", "place", "right", "where", "little", "old", "very", "through",
	"same", "great", "help", "line", "turn", "move", "live", "small", "put", "home",
	"read", "hand", "large", "spell", "add", "land", "here", "must", "big", "high",
	"such", "follow", "act", "why", "ask", "change", "went", "light", "kind", "off",
	"need", "house", "picture", "try", "again", "animal", "point", "mother", "world", "near",
	"build", "self", "earth", "father", "head", "stand", "own", "page", "country", "found",
	"answer", "school", "grow", "study", "still", "learn", "plant", "cover", "food", "sun",
	"four", "between", "state", "keep", "eye", "never", "last", "let", "thought", "city",
}
