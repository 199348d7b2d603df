package venue

// Region groups venues by the organizing body shown in the leftmost column
// of the schedule table.
type Region int

const (
	NoRegion Region = iota
	Banei
	Hokkaido
	Iwate
	MinamiKanto
	KanazawaRegion
	Tokai
	Hyogo
	KochiRegion
	Kyushu
)

var regions = map[Region]struct{ name, key string }{
	Banei:          {"ばんえい", "banei"},
	Hokkaido:       {"ホッカイドウ", "hokkaido"},
	Iwate:          {"岩手", "iwate"},
	MinamiKanto:    {"南関東", "minamikanto"},
	KanazawaRegion: {"金沢", "kanazawa"},
	Tokai:          {"東海", "tokai"},
	Hyogo:          {"兵庫", "hyogo"},
	KochiRegion:    {"高知", "kochi"},
	Kyushu:         {"九州", "kyushu"},
}

// RegionOf returns the region a venue belongs to, or NoRegion for Unknown.
func RegionOf(c Code) Region {
	return registry[c].region
}

// ResolveRegion looks up a region by its Japanese name.
func ResolveRegion(name string) (Region, bool) {
	for r, v := range regions {
		if v.name == name {
			return r, true
		}
	}
	return NoRegion, false
}

// ParseRegionKey looks up a region by its romanized key.
func ParseRegionKey(key string) (Region, bool) {
	for r, v := range regions {
		if v.key == key {
			return r, true
		}
	}
	return NoRegion, false
}

// Name returns the Japanese region name.
func (r Region) Name() string {
	return regions[r].name
}

// Key returns the romanized region key.
func (r Region) Key() string {
	return regions[r].key
}

func (r Region) String() string {
	if k := r.Key(); k != "" {
		return k
	}
	return "none"
}
