package domain

// Category tags shared by posts and user interests.
const (
	CategoryGeneral   = "general"
	CategoryAcademic  = "academico"
	CategoryEvents    = "eventos"
	CategoryHelp      = "ayuda"
	CategorySocial    = "social"
	DefaultCategory   = CategoryGeneral
	neutralBadgeColor = "#6b7280"
)

// CategoryInfo is the display metadata for a category tag.
type CategoryInfo struct {
	Tag   string
	Name  string
	Label string
	Color string
}

var categories = []CategoryInfo{
	{Tag: CategoryGeneral, Name: "General", Label: "📝 General", Color: "#3b82f6"},
	{Tag: CategoryAcademic, Name: "Académico", Label: "📚 Académico", Color: "#10b981"},
	{Tag: CategoryEvents, Name: "Eventos", Label: "🎉 Eventos", Color: "#f59e0b"},
	{Tag: CategoryHelp, Name: "Ayuda", Label: "🆘 Ayuda", Color: "#ef4444"},
	{Tag: CategorySocial, Name: "Social", Label: "👥 Social", Color: "#8b5cf6"},
}

// Categories returns the known categories in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// LookupCategory returns the metadata for a tag.
func LookupCategory(tag string) (CategoryInfo, bool) {
	for _, c := range categories {
		if c.Tag == tag {
			return c, true
		}
	}
	return CategoryInfo{}, false
}

// PostCategory resolves a post's category; unknown tags render as general.
func PostCategory(tag string) CategoryInfo {
	if c, ok := LookupCategory(tag); ok {
		return c
	}
	return categories[0]
}

// InterestBadge resolves an interest or favourite-category tag. Unknown tags
// keep their raw text on a neutral colour.
func InterestBadge(tag string) CategoryInfo {
	if c, ok := LookupCategory(tag); ok {
		return c
	}
	return CategoryInfo{Tag: tag, Name: tag, Label: tag, Color: neutralBadgeColor}
}
