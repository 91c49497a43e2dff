package calculator

type Preset struct {
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Length float64 `json:"length"`
}

type Room struct {
	Key     string   `json:"key"`
	Presets []Preset `json:"presets"`
}

// RoomRecommendations returns suggested rug sizes per room.
func RoomRecommendations() []Room {
	return []Room{
		{Key: "living-room", Presets: []Preset{
			{Key: "small", Label: "Small Living Room", Width: 5, Length: 7},
			{Key: "medium", Label: "Medium Living Room", Width: 8, Length: 10},
			{Key: "large", Label: "Large Living Room", Width: 9, Length: 12},
		}},
		{Key: "dining-room", Presets: []Preset{
			{Key: "4-seat", Label: "4-Seat Table", Width: 6, Length: 8},
			{Key: "6-seat", Label: "6-Seat Table", Width: 8, Length: 10},
			{Key: "8-seat", Label: "8-Seat Table", Width: 9, Length: 12},
		}},
		{Key: "bedroom", Presets: []Preset{
			{Key: "twin", Label: "Twin Bed", Width: 5, Length: 8},
			{Key: "queen", Label: "Queen Bed", Width: 6, Length: 9},
			{Key: "king", Label: "King Bed", Width: 8, Length: 10},
		}},
		{Key: "hallway", Presets: []Preset{
			{Key: "narrow", Label: "Narrow Hallway", Width: 2.5, Length: 8},
			{Key: "standard", Label: "Standard Hallway", Width: 3, Length: 10},
			{Key: "wide", Label: "Wide Hallway", Width: 4, Length: 12},
		}},
	}
}
