package assembly

import (
	"strings"

	"github.com/daehyun/grant-agent/internal/types"
)

// sectionTitles are the human-readable headers for the standard application
// categories, in their customary numbered order.
var sectionTitles = map[string]string{
	"company":    "1. 기업 정보",
	"project":    "2. 사업 개요",
	"budget":     "3. 예산 계획",
	"technology": "4. 기술 내용",
	"market":     "5. 시장 분석",
	"team":       "6. 수행 조직",
	"plan":       "7. 추진 계획",
}

// section groups contents that share a category.
type section struct {
	Category string
	Title    string
	Items    []types.FieldContent
}

// groupSections buckets contents by the category prefix of their field id
// ("company_name" -> "company"), preserving first-seen order. Ids without a
// recognizable prefix land in a trailing 기타 section.
func groupSections(contents []types.FieldContent) []section {
	index := make(map[string]int)
	var sections []section
	for _, item := range contents {
		category := fieldCategory(item.FieldID)
		i, ok := index[category]
		if !ok {
			i = len(sections)
			index[category] = i
			sections = append(sections, section{Category: category, Title: sectionTitle(category)})
		}
		sections[i].Items = append(sections[i].Items, item)
	}
	return sections
}

func fieldCategory(fieldID string) string {
	if idx := strings.Index(fieldID, "_"); idx > 0 {
		return fieldID[:idx]
	}
	if fieldID != "" {
		return fieldID
	}
	return "기타"
}

func sectionTitle(category string) string {
	if title, ok := sectionTitles[category]; ok {
		return title
	}
	return strings.ToUpper(category) + " 정보"
}
