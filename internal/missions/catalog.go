package missions

import "snapquest/internal/models"

type catalogEntry struct {
	title       string
	description string
}

// Fixed prompt catalog, keyed by mission type. Generation picks one entry
// uniformly at random.
var missionCatalog = map[models.MissionType][]catalogEntry{
	models.MissionTypeRandom: {
		{
			title:       "Explore New Horizons",
			description: "Based on your image, I notice you're in an environment with potential for discovery. Your mission today is to spend 30 minutes exploring a part of your surroundings you've never paid attention to before. Document at least one interesting discovery.",
		},
		{
			title:       "Urban Explorer",
			description: "Explore a neighborhood you've never visited. Document three interesting architectural features and one local business you'd like to try.",
		},
		{
			title:       "Nature Connection",
			description: "Find a natural space near you - a park, garden, or even a single tree. Spend 15 minutes observing the details, sounds, and sensations.",
		},
		{
			title:       "Creative Challenge",
			description: "Using only objects in your immediate surroundings, create a small arrangement that represents how you're feeling today.",
		},
	},
	models.MissionTypeCreator: {
		{
			title:       "Frame the Ordinary",
			description: "Pick one everyday object from your photo and shoot it from five angles nobody normally sees. Keep the best frame and note what changed your mind.",
		},
		{
			title:       "Sixty-Second Story",
			description: "Record a one-minute voice note or clip telling the story behind the place in your photo - who passes through it, what it was before, what it could become.",
		},
		{
			title:       "Remix Your Space",
			description: "Rearrange one corner of the space in your photo into something you'd want to show a stranger. Photograph the before and after.",
		},
	},
}

func pickEntry(mt models.MissionType, intn func(int) int) catalogEntry {
	entries, ok := missionCatalog[mt]
	if !ok {
		entries = missionCatalog[models.MissionTypeRandom]
	}
	return entries[intn(len(entries))]
}
