package catalog

// Difficulty tiers gate mission availability: medium missions unlock after
// two easy completions, hard after two medium.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Mission is a static, player-facing habit-change task. Lifecycle state
// (accepted/progress/locked) lives in the mission package, not here.
type Mission struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Points      int        `json:"points"`
	Duration    string     `json:"duration,omitempty"`
	Icon        string     `json:"icon,omitempty"`
}

// SeedMissions returns the launch mission set.
func SeedMissions() []Mission {
	return []Mission{
		// Easy
		{
			ID:          "banho_flash",
			Title:       "Banho Flash",
			Description: "Take a shower in under 5 minutes.",
			Difficulty:  DifficultyEasy,
			Points:      50,
			Duration:    "1 day",
			Icon:        "shower",
		},
		{
			ID:          "luz_apagada",
			Title:       "Luz Apagada",
			Description: "Leave no lights on in empty rooms for a whole day.",
			Difficulty:  DifficultyEasy,
			Points:      40,
			Duration:    "1 day",
			Icon:        "lightbulb",
		},
		{
			ID:          "adeus_vampiros",
			Title:       "Adeus, Vampiros",
			Description: "Unplug chargers and appliances on stand-by overnight.",
			Difficulty:  DifficultyEasy,
			Points:      40,
			Duration:    "1 night",
			Icon:        "plug",
		},
		{
			ID:          "sacola_retornavel",
			Title:       "Sacola Retornável",
			Description: "Do your groceries with a reusable bag.",
			Difficulty:  DifficultyEasy,
			Points:      50,
			Duration:    "1 trip",
			Icon:        "shopping-bag",
		},

		// Medium
		{
			ID:          "limpeza_digital",
			Title:       "Limpeza Digital",
			Description: "Delete 50 old emails and free some cloud storage.",
			Difficulty:  DifficultyMedium,
			Points:      120,
			Duration:    "1 week",
			Icon:        "envelope",
		},
		{
			ID:          "zero_plastico",
			Title:       "Zero Plástico",
			Description: "Spend a day without single-use plastics.",
			Difficulty:  DifficultyMedium,
			Points:      150,
			Duration:    "1 day",
			Icon:        "recycle",
		},
		{
			ID:          "compre_local",
			Title:       "Compre Local",
			Description: "Buy your produce from a local market.",
			Difficulty:  DifficultyMedium,
			Points:      130,
			Duration:    "1 trip",
			Icon:        "store",
		},
		{
			ID:          "sobra_zero",
			Title:       "Sobra Zero",
			Description: "Finish the day with zero food waste.",
			Difficulty:  DifficultyMedium,
			Points:      140,
			Duration:    "1 day",
			Icon:        "utensils",
		},

		// Hard
		{
			ID:          "desafio_carona",
			Title:       "Desafio Carona",
			Description: "Carpool or take transit to work for a whole week.",
			Difficulty:  DifficultyHard,
			Points:      300,
			Duration:    "1 week",
			Icon:        "car-side",
		},
		{
			ID:          "moda_circular",
			Title:       "Moda Circular",
			Description: "Buy second-hand instead of new clothing this month.",
			Difficulty:  DifficultyHard,
			Points:      250,
			Duration:    "1 month",
			Icon:        "tshirt",
		},
		{
			ID:          "dia_vegano",
			Title:       "Dia Vegano",
			Description: "Eat fully plant-based for a day.",
			Difficulty:  DifficultyHard,
			Points:      280,
			Duration:    "1 day",
			Icon:        "leaf",
		},
		{
			ID:          "plantio_amigo",
			Title:       "Plantio Amigo",
			Description: "Plant a tree (or sponsor one).",
			Difficulty:  DifficultyHard,
			Points:      400,
			Duration:    "long term",
			Icon:        "tree",
		},
	}
}

// MissionTargets holds per-id step targets for multi-step missions.
// Missions absent from the map complete in a single step.
func MissionTargets() map[string]int {
	return map[string]int{
		"limpeza_digital": 50, // one step per deleted email
	}
}

// MissionCO2Reduction maps mission id to the estimated kg of CO2 avoided by
// completing it. An id absent here contributes zero, never an error.
func MissionCO2Reduction() map[string]float64 {
	return map[string]float64{
		"banho_flash":       1.5,  // shorter showers
		"luz_apagada":       0.5,  // conscious lighting
		"adeus_vampiros":    0.2,  // stand-by draw
		"limpeza_digital":   0.1,  // cloud storage
		"zero_plastico":     0.8,  // disposables
		"compre_local":      1.2,  // shorter logistics
		"sobra_zero":        0.6,  // food waste
		"sacola_retornavel": 0.3,  // plastic bags
		"desafio_carona":    2.0,  // fewer cars
		"moda_circular":     1.0,  // textile production
		"dia_vegano":        2.5,  // diet
		"plantio_amigo":     10.0, // long term / tree
	}
}
