package catalog

// Merge combines a static catalog with discovered models. On id collision the
// discovered descriptor replaces the static one entirely.
func Merge(hardcoded, discovered Catalog) Catalog {
	merged := hardcoded.Clone()
	for _, d := range discovered.Descriptors() {
		merged.Set(d)
	}
	return merged
}

// Group is one category bucket produced by GroupByCategory.
type Group struct {
	Category string
	Models   Catalog
}

// GroupByCategory buckets models by category. Categories in PriorityOrder come
// first; unknown categories follow in first-seen order.
func GroupByCategory(c Catalog) []Group {
	buckets := make(map[string]*Catalog)
	var seen []string
	for _, d := range c.Descriptors() {
		cat := d.CategoryOrDefault()
		b, ok := buckets[cat]
		if !ok {
			b = &Catalog{}
			buckets[cat] = b
			seen = append(seen, cat)
		}
		b.Set(d)
	}

	groups := make([]Group, 0, len(buckets))
	emitted := make(map[string]bool, len(buckets))
	for _, cat := range PriorityOrder {
		if b, ok := buckets[cat]; ok {
			groups = append(groups, Group{Category: cat, Models: *b})
			emitted[cat] = true
		}
	}
	for _, cat := range seen {
		if emitted[cat] {
			continue
		}
		groups = append(groups, Group{Category: cat, Models: *buckets[cat]})
	}
	return groups
}
