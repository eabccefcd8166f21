package missions

import "snapquest/internal/models"

// Examples returns the showcase missions rendered when a user has not
// generated any of their own yet.
func (s *Service) Examples() []models.Mission {
	now := s.now()
	return []models.Mission{
		{
			ID:          "example-1",
			UserID:      "example",
			Title:       "Urban Explorer",
			Description: "Explore a neighborhood you've never visited. Document three interesting architectural features and one local business you'd like to try.",
			ImageURL:    "https://images.unsplash.com/photo-1480714378408-67cf0d13bc1b?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			CreatedAt:   now,
		},
		{
			ID:          "example-2",
			UserID:      "example",
			Title:       "Nature Connection",
			Description: "Find a natural space near you - a park, garden, or even a single tree. Spend 15 minutes observing the details, sounds, and sensations.",
			ImageURL:    "https://images.unsplash.com/photo-1441974231531-c6227db76b6e?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			Completed:   true,
			CreatedAt:   now,
		},
		{
			ID:          "example-3",
			UserID:      "example",
			Title:       "Creative Challenge",
			Description: "Using only objects in your immediate surroundings, create a small arrangement that represents how you're feeling today.",
			ImageURL:    "https://images.unsplash.com/photo-1513364776144-60967b0f800f?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80",
			CreatedAt:   now,
		},
	}
}
