package licensing

import (
	"testing"
	"time"

	"licensestore/internal/app/ds"

	"github.com/stretchr/testify/assert"
)

func TestEntitledPackages(t *testing.T) {
	base := ds.Package{ID: 1, Name: "baseA", IsBase: true}
	x := ds.Package{ID: 2, Name: "addonX"}
	y := ds.Package{ID: 3, Name: "addonY"}
	deprecated := func(p ds.Package) ds.Package {
		p.IsDeprecated = true
		return p
	}
	names := func(pkgs []ds.Package) []string {
		out := []string{}
		for _, p := range pkgs {
			out = append(out, p.Name)
		}
		return out
	}

	tests := []struct {
		name   string
		linked []ds.Package
		want   []string
	}{
		{"base and add-ons", []ds.Package{base, x, y}, []string{"baseA", "addonX", "addonY"}},
		{"deprecated add-on dropped", []ds.Package{base, deprecated(x), y}, []string{"baseA", "addonY"}},
		{"deprecated base empties the set", []ds.Package{deprecated(base), x, y}, []string{}},
		{"no links", nil, []string{}},
		{"two bases keep only bases", []ds.Package{base, {ID: 4, Name: "baseB", IsBase: true}, x}, []string{"baseA", "baseB"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(entitledPackages(tt.linked)))
		})
	}
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []uint{3, 1, 2}, dedupeIDs([]uint{3, 1, 3, 2, 1}))
	assert.Empty(t, dedupeIDs(nil))
}

func TestPricing(t *testing.T) {
	items := []ValidatedItem{
		{Base: ds.Package{Price: 100}, Addons: []ds.Package{{Price: 30}, {Price: 20}}},
		{Base: ds.Package{Price: 200}},
	}
	for i := range items {
		items[i].Subtotal = Subtotal(items[i])
	}
	assert.Equal(t, int64(150), items[0].Subtotal)
	assert.Equal(t, int64(350), Total(items))
	assert.Equal(t, int64(0), Total(nil))
}

func TestCalculateExpiry(t *testing.T) {
	now := time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)
	days := func(n int) *int { return &n }

	assert.Equal(t, now.Add(30*24*time.Hour), CalculateExpiry(now, nil, 30))
	assert.Equal(t, now.Add(30*24*time.Hour), CalculateExpiry(now, days(0), 30))
	assert.Equal(t, now.Add(30*24*time.Hour), CalculateExpiry(now, days(-5), 30))
	assert.Equal(t, now.Add(7*24*time.Hour), CalculateExpiry(now, days(7), 30))
}

func TestNewLicenseKey(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		key, err := NewLicenseKey()
		assert.NoError(t, err)
		assert.Len(t, key, 43)
		assert.NotContains(t, key, "=")
		assert.False(t, seen[key])
		seen[key] = true
	}
}
