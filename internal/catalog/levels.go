package catalog

// LevelDef is one tier of the leveling table. Thresholds are cumulative
// point totals and must be strictly increasing, index 0 = entry level.
type LevelDef struct {
	Name      string `json:"name" yaml:"name"`
	Threshold int    `json:"threshold" yaml:"threshold"`
}

// DefaultLevels returns the launch leveling table.
func DefaultLevels() []LevelDef {
	return []LevelDef{
		{Name: "Iniciante", Threshold: 0},
		{Name: "Explorador", Threshold: 500},
		{Name: "Guardião", Threshold: 1200},
		{Name: "Embaixador", Threshold: 2500},
		{Name: "Lenda Verde", Threshold: 5000},
	}
}

// StartingPoints is the balance a fresh profile begins with.
const StartingPoints = 1250
