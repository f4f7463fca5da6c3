package content

// Fixed payloads served when an upstream is unreachable. Fresh slices are
// returned so callers can't mutate the canonical set.

func fallbackQuotes() []Quote {
	return []Quote{
		{Text: "The only way to do great work is to love what you do.", Author: "Steve Jobs"},
		{Text: "Believe you can and you're halfway there.", Author: "Theodore Roosevelt"},
		{Text: "It always seems impossible until it's done.", Author: "Nelson Mandela"},
	}
}

func fallbackRecipes() []RecipeHit {
	return []RecipeHit{
		{Recipe: Recipe{
			Label:       "Mediterranean Salad",
			Image:       "https://via.placeholder.com/300",
			Calories:    350,
			Ingredients: []string{"Mixed greens", "Cherry tomatoes", "Cucumber", "Olives", "Feta cheese"},
		}},
	}
}

func fallbackTips() []Tip {
	return []Tip{
		{Advice: "Take a 10-minute walk outside each day"},
		{Advice: "Practice deep breathing for 5 minutes daily"},
		{Advice: "Stay hydrated with 8 glasses of water"},
	}
}
