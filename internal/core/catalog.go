package core

// HelperDomains maps a depleted domain to the domains best suited to
// restore it, in preference order. Recommendations and suggestion draws
// both consult this table.
var HelperDomains = map[Domain][]Domain{
	Work:     {Health, Social},
	Health:   {Social, Learning},
	Social:   {Health, Learning},
	Learning: {Health, Social},
}

// DefaultCatalog is the built-in restorative activity set. Restore percents
// are whole points of total daily energy; durations are display labels.
var DefaultCatalog = []RestorativeActivity{
	{ID: "power_nap", Domain: Health, RestorePercent: 25, Duration: "20 min"},
	{ID: "short_walk", Domain: Health, RestorePercent: 15, Duration: "15 min"},
	{ID: "stretch_break", Domain: Health, RestorePercent: 10, Duration: "5 min"},
	{ID: "hydrate", Domain: Health, RestorePercent: 5, Duration: "2 min"},

	{ID: "lunch_with_team", Domain: Social, RestorePercent: 20, Duration: "45 min"},
	{ID: "call_friend", Domain: Social, RestorePercent: 15, Duration: "15 min"},
	{ID: "coffee_chat", Domain: Social, RestorePercent: 10, Duration: "15 min"},

	{ID: "podcast_episode", Domain: Learning, RestorePercent: 15, Duration: "30 min"},
	{ID: "read_article", Domain: Learning, RestorePercent: 10, Duration: "10 min"},
	{ID: "sketch_idea", Domain: Learning, RestorePercent: 5, Duration: "10 min"},

	{ID: "plan_tomorrow", Domain: Work, RestorePercent: 10, Duration: "10 min"},
	{ID: "tidy_desk", Domain: Work, RestorePercent: 5, Duration: "5 min"},
}

// CatalogByID returns the entry with the given id from catalog, or nil.
func CatalogByID(catalog []RestorativeActivity, id string) *RestorativeActivity {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}
