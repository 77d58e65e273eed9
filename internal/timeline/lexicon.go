package timeline

// FillerWords are cut out entirely by the filler-removal stage.
var FillerWords = []string{
	"um", "uh", "like", "you know", "so", "actually",
	"basically", "literally", "i mean", "right",
}

// ProfanityWords are muted (not cut) by the censor stage.
var ProfanityWords = []string{
	"fuck", "fucking", "fucked", "shit", "shitting",
	"damn", "ass", "bitch", "bastard", "crap", "hell",
}
