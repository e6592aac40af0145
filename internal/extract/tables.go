package extract

// #region activation-markers

// activationMarkers are value- and emotion-charged words that contribute to
// raw activation energy.
var activationMarkers = []string{
	"heart", "truth", "wound", "sacred", "dangerous",
	"caring", "refused", "foolish", "love", "hate",
	"fear", "joy", "anger", "hope", "pain",
	"amazing", "wonderful", "beautiful", "terrible",
	"threat", "danger", "urgent", "alarm",
}

// amplifierMarkers scale the activation of the marker they precede.
var amplifierMarkers = []string{
	"very", "extremely", "absolutely", "incredibly", "utterly",
	"so", "deeply", "truly", "completely", "totally",
}

// negationMarkers invert the polarity of the following activation marker.
var negationMarkers = []string{
	"not", "no", "never", "without", "hardly", "barely",
	"don't", "doesn't", "didn't", "won't", "can't", "isn't", "wasn't",
}

// #endregion activation-markers

// #region social-markers

// collectivePronouns signal shared or other-directed framing.
var collectivePronouns = []string{
	"we", "our", "ours", "us", "you", "your", "yours", "they", "their", "everyone", "together",
}

// allPronouns is the full pronoun set used for the ratio denominator.
var allPronouns = []string{
	"i", "me", "my", "mine", "myself",
	"we", "our", "ours", "us",
	"you", "your", "yours",
	"he", "him", "his", "she", "her", "hers",
	"they", "them", "their", "theirs",
	"it", "its", "everyone", "together",
}

// #endregion social-markers

// #region metaphor-markers

// metaphorBridges are connective words that tend to carry figurative
// construction ("stone like water", "forests of time").
var metaphorBridges = []string{
	"like", "as", "through", "into", "of",
}

// #endregion metaphor-markers

// #region temporal-markers

// eternalMarkers carry geological or generational time.
var eternalMarkers = []string{
	"stone", "water", "mountain", "ocean", "forest", "river",
	"stars", "earth", "generations", "ancient", "eternal",
	"timeless", "ages", "eons", "millennia", "always",
	"tradition", "wisdom", "legacy", "heritage", "history",
	"ancestors", "descendants", "decades", "centuries",
	"lasting", "enduring", "survived", "weathered",
}

// ephemeralMarkers carry immediate or trending time.
var ephemeralMarkers = []string{
	"trending", "viral", "breaking", "update", "latest",
	"new", "fresh", "thread", "rn", "atm", "today",
	"currently", "now", "omg", "asap", "alert", "quick",
}

// #endregion temporal-markers

// #region thematic-markers

// thematicConcepts are recurring-theme anchors; repeated occurrence of the
// same concept counts as thematic structure.
var thematicConcepts = []string{
	"heart", "wound", "truth", "foolish", "water", "stone",
	"time", "home", "work", "world", "life", "change",
}

// #endregion thematic-markers
