package catalog

// ItemType distinguishes the two cosmetic slots.
type ItemType string

const (
	ItemAccessory  ItemType = "accessory"
	ItemBackground ItemType = "bg"
)

// Item is a purchasable cosmetic. Prices are in points; the store treats the
// point balance as spendable currency.
type Item struct {
	ID       string   `json:"id"`
	Type     ItemType `json:"type"`
	Name     string   `json:"name"`
	Price    int      `json:"price"`
	Icon     string   `json:"icon,omitempty"`
	Color    string   `json:"color,omitempty"`
	Gradient []string `json:"gradient,omitempty"`
}

// DefaultItemID is the free background every profile starts with.
const DefaultItemID = "bg_default"

// Items returns the item catalog keyed by id.
func Items() map[string]Item {
	return map[string]Item{
		// Accessories
		"glasses":   {ID: "glasses", Type: ItemAccessory, Name: "Óculos Cool", Price: 200, Icon: "glasses", Color: "text-gray-800"},
		"hat":       {ID: "hat", Type: ItemAccessory, Name: "Boné Radical", Price: 350, Icon: "hat-cowboy-side", Color: "text-orange-400"},
		"scarf":     {ID: "scarf", Type: ItemAccessory, Name: "Cachecol Eco", Price: 280, Icon: "mitten", Color: "text-teal-600"},
		"eco_badge": {ID: "eco_badge", Type: ItemAccessory, Name: "Badge Sustentável", Price: 150, Icon: "leaf", Color: "text-green-600"},
		"solar_hat": {ID: "solar_hat", Type: ItemAccessory, Name: "Chapéu Solar", Price: 420, Icon: "sun", Color: "text-yellow-500"},

		// Backgrounds
		"bg_default": {ID: "bg_default", Type: ItemBackground, Name: "Original", Price: 0, Gradient: []string{"#4fd1c5", "#319795"}},
		"bg_purple":  {ID: "bg_purple", Type: ItemBackground, Name: "Nebulosa", Price: 500, Gradient: []string{"#9f7aea", "#4c51bf"}},
		"bg_forest":  {ID: "bg_forest", Type: ItemBackground, Name: "Floresta", Price: 550, Gradient: []string{"#2f855a", "#276749"}},
		"bg_ocean":   {ID: "bg_ocean", Type: ItemBackground, Name: "Oceano", Price: 550, Gradient: []string{"#3182ce", "#2b6cb0"}},
		"bg_sunset":  {ID: "bg_sunset", Type: ItemBackground, Name: "Pôr do Sol", Price: 600, Gradient: []string{"#ed8936", "#dd6b20"}},
	}
}
