package checkpoint

import "strings"

// Coarse feedback areas recognized by ClassifyArea.
const (
	AreaResearch = "research"
	AreaOutline  = "outline"
	AreaContent  = "content"
	AreaImages   = "images"
	AreaGeneral  = "general"
)

var areaKeywords = []struct {
	area     string
	keywords []string
}{
	{AreaResearch, []string{"research", "source", "sources", "insight", "insights", "fact", "data"}},
	{AreaOutline, []string{"outline", "structure", "order", "section", "slide count", "agenda"}},
	{AreaContent, []string{"content", "text", "wording", "tone", "bullet", "slide text", "writing"}},
	{AreaImages, []string{"image", "images", "picture", "visual", "graphic", "illustration", "style"}},
}

// ClassifyArea maps free-text retry feedback to a coarse pipeline area by
// keyword matching. The first area with a matching keyword wins; feedback
// matching nothing is classified as general.
func ClassifyArea(feedback string) string {
	lower := strings.ToLower(feedback)
	for _, entry := range areaKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.area
			}
		}
	}
	return AreaGeneral
}
