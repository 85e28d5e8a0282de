// Package resources holds the built-in support catalog: crisis and
// helpline contacts plus the Mind Matters audio library. The catalog
// ships with the client so it works offline.
package resources

// Contact lists the ways to reach a helpline. Empty fields mean the
// channel is not offered.
type Contact struct {
	Call string
	Text string
	Chat string
}

// Helpline is one entry in the support directory.
type Helpline struct {
	Name        string
	Country     string
	Type        string
	Anonymity   string
	Contact     Contact
	Description string
}

// AudioTrack is one entry in the Mind Matters audio library.
type AudioTrack struct {
	Title       string
	Description string
	File        string
	Cover       string
}

// FilterAll matches every value of a filter dimension.
const FilterAll = "all"

var helplines = []Helpline{
	{
		Name:        "Crisis Text Line",
		Country:     "USA",
		Type:        "Crisis",
		Anonymity:   "Anonymous",
		Contact:     Contact{Text: "HOME to 741741"},
		Description: "24/7, free, confidential crisis support by text.",
	},
	{
		Name:        "The Trevor Project",
		Country:     "USA",
		Type:        "LGBTQ+",
		Anonymity:   "Anonymous",
		Contact:     Contact{Call: "1-866-488-7386", Chat: "thetrevorproject.org"},
		Description: "Crisis intervention and suicide prevention for LGBTQ youth.",
	},
	{
		Name:        "SAMHSA National Helpline",
		Country:     "USA",
		Type:        "Substance Abuse",
		Anonymity:   "Confidential",
		Contact:     Contact{Call: "1-800-662-4357"},
		Description: "Treatment referral and information service.",
	},
	{
		Name:        "Kids Help Phone",
		Country:     "Canada",
		Type:        "General",
		Anonymity:   "Anonymous",
		Contact:     Contact{Call: "1-800-668-6868", Text: "CONNECT to 686868"},
		Description: "Canada's 24/7 e-mental health service for youth.",
	},
	{
		Name:        "Samaritans",
		Country:     "UK",
		Type:        "Crisis",
		Anonymity:   "Confidential",
		Contact:     Contact{Call: "116 123"},
		Description: "Whatever you're going through, a Samaritan will face it with you, 24/7.",
	},
	{
		Name:        "Shout",
		Country:     "UK",
		Type:        "Crisis",
		Anonymity:   "Anonymous",
		Contact:     Contact{Text: "SHOUT to 85258"},
		Description: "Free, confidential, 24/7 text messaging support service.",
	},
}

var audioLibrary = []AudioTrack{
	{
		Title:       "How To Get Rid Of Overwhelm",
		Description: "A 10-minute session to guide you through moments when everything feels like too much.",
		File:        "how-to-get-rid-of-overwhelm.mp3",
		Cover:       "cover-overwhelm.png",
	},
	{
		Title:       "1-Minute Mindfulness Meditation",
		Description: "A short, guided practice to bring you back to the present moment.",
		File:        "5-minute-mindfulness-meditation.mp3",
		Cover:       "cover-mindfulness.png",
	},
	{
		Title:       "About Panic Attacks",
		Description: "Learn what happens during a panic attack and how to manage it.",
		File:        "guided-breathing-for-anxiety.mp3",
		Cover:       "cover-breathing.png",
	},
	{
		Title:       "Finding Calm in the Storm",
		Description: "An audio guide to help you find your anchor during difficult emotions.",
		File:        "finding-calm-in-the-storm.mp3",
		Cover:       "cover-storm.png",
	},
	{
		Title:       "A Meditation on Self-Love",
		Description: "Cultivate kindness and compassion for yourself with this gentle session.",
		File:        "a-meditation-on-self-love.mp3",
		Cover:       "cover-self-love.png",
	},
	{
		Title:       "Deep Sleep Story",
		Description: "A calming story to help you drift off to a peaceful and restorative sleep.",
		File:        "deep-sleep-story.mp3",
		Cover:       "cover-sleep.png",
	},
}

// Helplines returns the full directory.
func Helplines() []Helpline {
	out := make([]Helpline, len(helplines))
	copy(out, helplines)
	return out
}

// AudioLibrary returns the Mind Matters track list.
func AudioLibrary() []AudioTrack {
	out := make([]AudioTrack, len(audioLibrary))
	copy(out, audioLibrary)
	return out
}

// Filter narrows the directory by country, type, and anonymity.
// FilterAll (or "") leaves a dimension unconstrained.
func Filter(country, kind, anonymity string) []Helpline {
	matches := func(filter, value string) bool {
		return filter == "" || filter == FilterAll || filter == value
	}
	var out []Helpline
	for _, h := range helplines {
		if matches(country, h.Country) && matches(kind, h.Type) && matches(anonymity, h.Anonymity) {
			out = append(out, h)
		}
	}
	return out
}

// Countries returns the distinct countries in the directory, in
// catalog order.
func Countries() []string {
	return distinct(func(h Helpline) string { return h.Country })
}

// Types returns the distinct helpline types, in catalog order.
func Types() []string {
	return distinct(func(h Helpline) string { return h.Type })
}

func distinct(field func(Helpline) string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, h := range helplines {
		v := field(h)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
