package contacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialURL(t *testing.T) {
	assert.Equal(t, "tel:100", DialURL("100"))
	assert.Equal(t, "tel:+914423456789", DialURL(" +91 44 2345 6789 "))
	assert.Equal(t, "tel:011-24363260", DialURL("011-24363260"))
}

func TestDirectory(t *testing.T) {
	want := [][2]string{
		{"General Emergency Number", "112"},
		{"Police", "100"},
		{"Fire", "101"},
		{"Ambulance", "102"},
		{"Disaster Management Services", "108"},
		{"NDRF (Floods, Earthquakes, Landslides, Cyclones)", "011-24363260"},
		{"IMD (Cyclone & Weather Alerts)", "1800-180-1717"},
		{"Landslide Disaster Helpline", "011-23093563"},
		{"Road Accident Emergency (National Highways)", "1033"},
		{"Forest Fire & Wildlife Emergency", "1926"},
		{"Flood Helpline", "1070"},
		{"Coast Guard (Marine Emergencies)", "1554"},
		{"Civil Defense Helpline", "011-23092885"},
		{"Air Ambulance Services", "+91-124-4983412"},
		{"Farmer’s Helpline (Natural Disaster Assistance)", "1800-180-1551"},
	}

	list := Directory()
	require.Len(t, list, len(want))
	for i, c := range list {
		assert.Equal(t, want[i][0], c.Service)
		assert.Equal(t, want[i][1], c.Number)
		assert.Equal(t, "tel:"+c.Number, c.DialURL)
	}

	list[0].Number = "999"
	assert.Equal(t, "112", Directory()[0].Number)
}
