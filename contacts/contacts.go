package contacts

import "strings"

type Contact struct {
	Service string `json:"service"`
	Number  string `json:"number"`
	DialURL string `json:"dialUrl"`
}

var directory = []Contact{
	{Service: "General Emergency Number", Number: "112"},
	{Service: "Police", Number: "100"},
	{Service: "Fire", Number: "101"},
	{Service: "Ambulance", Number: "102"},
	{Service: "Disaster Management Services", Number: "108"},
	{Service: "NDRF (Floods, Earthquakes, Landslides, Cyclones)", Number: "011-24363260"},
	{Service: "IMD (Cyclone & Weather Alerts)", Number: "1800-180-1717"},
	{Service: "Landslide Disaster Helpline", Number: "011-23093563"},
	{Service: "Road Accident Emergency (National Highways)", Number: "1033"},
	{Service: "Forest Fire & Wildlife Emergency", Number: "1926"},
	{Service: "Flood Helpline", Number: "1070"},
	{Service: "Coast Guard (Marine Emergencies)", Number: "1554"},
	{Service: "Civil Defense Helpline", Number: "011-23092885"},
	{Service: "Air Ambulance Services", Number: "+91-124-4983412"},
	{Service: "Farmer’s Helpline (Natural Disaster Assistance)", Number: "1800-180-1551"},
}

// DialURL returns the tel: link for number, with spaces stripped. Dashes are kept.
func DialURL(number string) string {
	return "tel:" + strings.ReplaceAll(strings.TrimSpace(number), " ", "")
}

// Directory returns the emergency contacts with their dial links filled in.
func Directory() []Contact {
	list := make([]Contact, len(directory))
	for i, c := range directory {
		c.DialURL = DialURL(c.Number)
		list[i] = c
	}
	return list
}
