package models

// Категории отчётов
const (
	CategoryCrime    = "crime"
	CategoryRoad     = "road"
	CategoryFlood    = "flood"
	CategoryLamp     = "lamp"
	CategoryAccident = "accident"
	CategoryDisaster = "disaster"
	CategoryOther    = "other"
)

// CategoryStyle - иконка и цвет категории для отображения на клиенте
type CategoryStyle struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var categoryStyles = map[string]CategoryStyle{
	CategoryCrime:    {Icon: "🚨", Color: "#dc2626"},
	CategoryRoad:     {Icon: "🚧", Color: "#f59e0b"},
	CategoryFlood:    {Icon: "🌊", Color: "#2563eb"},
	CategoryLamp:     {Icon: "💡", Color: "#7c3aed"},
	CategoryAccident: {Icon: "⚠️", Color: "#ea580c"},
	CategoryDisaster: {Icon: "🔥", Color: "#16a34a"},
	CategoryOther:    {Icon: "📍", Color: "#6b7280"},
}

// IsValidCategory проверяет, что категория входит в перечень
func IsValidCategory(category string) bool {
	_, ok := categoryStyles[category]
	return ok
}

// StyleFor возвращает оформление категории, для неизвестных - оформление "other"
func StyleFor(category string) CategoryStyle {
	if style, ok := categoryStyles[category]; ok {
		return style
	}
	return categoryStyles[CategoryOther]
}

// CategoryStyles возвращает копию всей таблицы оформления
func CategoryStyles() map[string]CategoryStyle {
	styles := make(map[string]CategoryStyle, len(categoryStyles))
	for k, v := range categoryStyles {
		styles[k] = v
	}
	return styles
}
