package generation

import (
	"fmt"
	"strings"

	"github.com/daehyun/grant-agent/internal/types"
)

// FieldKey is a stable, language-neutral identity for well-known application
// form slots. Fallback content is keyed by FieldKey rather than by display
// label so relabeling a form does not break the lookup.
type FieldKey string

// Well-known field keys.
const (
	KeyCompanyName  FieldKey = "company_name"
	KeyCEOName      FieldKey = "ceo_name"
	KeyProjectName  FieldKey = "project_name"
	KeyProjectGoal  FieldKey = "project_goal"
	KeyCoreTech     FieldKey = "core_tech"
	KeyMainProducts FieldKey = "main_products"
	KeyUnknown      FieldKey = ""
)

// keyByID maps conventional field id suffixes to keys.
var keyByID = map[string]FieldKey{
	"company_name":  KeyCompanyName,
	"ceo_name":      KeyCEOName,
	"project_name":  KeyProjectName,
	"project_goal":  KeyProjectGoal,
	"core_tech":     KeyCoreTech,
	"main_products": KeyMainProducts,
}

// keyByLabel maps the customary Korean form labels to keys, for callers
// whose field ids carry no convention.
var keyByLabel = map[string]FieldKey{
	"회사명":  KeyCompanyName,
	"대표자명": KeyCEOName,
	"사업명":  KeyProjectName,
	"사업목적": KeyProjectGoal,
	"핵심기술": KeyCoreTech,
	"주요제품": KeyMainProducts,
}

// ResolveKey classifies a field by id convention first, then by label.
func ResolveKey(field types.FieldSpec) FieldKey {
	id := strings.ToLower(field.ID)
	for suffix, key := range keyByID {
		if id == suffix || strings.HasSuffix(id, "_"+suffix) {
			return key
		}
	}
	if key, ok := keyByLabel[strings.TrimSpace(field.Label)]; ok {
		return key
	}
	return KeyUnknown
}

// fallbackContent produces the deterministic, non-AI placeholder for a field
// whose every generation attempt failed. Never errors; always returns a
// usable entry at fallback confidence.
func (g *Generator) fallbackContent(field types.FieldSpec, company *types.CompanyInfo) types.FieldContent {
	var text string
	switch ResolveKey(field) {
	case KeyCompanyName:
		text = orDefault(company.CompanyName, "[회사명을 입력하세요]")
	case KeyCEOName:
		text = orDefault(company.CEOName, "[대표자명을 입력하세요]")
	case KeyProjectName:
		text = strings.TrimSpace(company.CompanyName + " " + field.Label)
	case KeyProjectGoal:
		text = fmt.Sprintf("%s의 %s 분야 경쟁력 강화를 위한 사업입니다.", company.CompanyName, company.Industry)
	case KeyCoreTech:
		text = orDefault(company.CoreTechnologies, "[핵심기술을 입력하세요]")
	case KeyMainProducts:
		text = orDefault(company.MainProducts, "[주요제품을 입력하세요]")
	default:
		text = fmt.Sprintf("[%s에 대한 내용을 입력하세요]", field.Label)
	}

	return newFieldContent(field.ID, text, g.confidence.Fallback)
}
