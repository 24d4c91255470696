package engine

// Tier describes an effort band in weather terms. Color is an ANSI-256 code.
type Tier struct {
	Emoji string
	Label string
	Color string
}

var weatherBands = []struct {
	min  int
	tier Tier
}{
	{200, Tier{Emoji: "⛈️", Label: "Thunderstorm", Color: "129"}},
	{150, Tier{Emoji: "🌧️", Label: "Rainy Day", Color: "33"}},
	{100, Tier{Emoji: "🌤️", Label: "Overcast", Color: "245"}},
	{75, Tier{Emoji: "⛅", Label: "Partly Cloudy", Color: "67"}},
	{50, Tier{Emoji: "☀️", Label: "Sunny", Color: "220"}},
}

var rainbow = Tier{Emoji: "🌈", Label: "Rainbow", Color: "205"}

// WeatherFor maps an effort score to its tier; the highest qualifying band wins.
func WeatherFor(xp int) Tier {
	for _, b := range weatherBands {
		if xp >= b.min {
			return b.tier
		}
	}
	return rainbow
}
