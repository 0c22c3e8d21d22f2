package generation

import (
	"fmt"
	"strings"

	"github.com/daehyun/grant-agent/internal/types"
)

// categoryDescriptions name the writing task per category for the prompt.
var categoryDescriptions = map[string]string{
	"company":    "기업 기본 정보 작성",
	"project":    "사업/프로젝트 개요 작성",
	"budget":     "예산 및 재무 계획 작성",
	"technology": "기술 내용 및 개발 계획 작성",
	"market":     "시장 분석 및 사업성 검토 작성",
	"team":       "연구/사업 수행 인력 구성 작성",
	"plan":       "수행 계획 및 추진 전략 작성",
}

func toneDirective(tone types.Tone) string {
	switch tone {
	case types.ToneFormal:
		return "격식있는 공문서체"
	case types.ToneTechnical:
		return "기술적이고 구체적인 문체"
	default:
		return "전문적이고 명확한 문체"
	}
}

func lengthDirective(length types.Length) string {
	switch length {
	case types.LengthShort:
		return "간결하게 (50-100자)"
	case types.LengthLong:
		return "매우 상세하게 (300-500자)"
	default:
		return "적당히 상세하게 (100-300자)"
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// writeCompanyBlock renders the shared company context section.
func writeCompanyBlock(sb *strings.Builder, company *types.CompanyInfo) {
	sb.WriteString("## 기업 정보:\n")
	fmt.Fprintf(sb, "- 회사명: %s\n", company.CompanyName)
	fmt.Fprintf(sb, "- 대표자: %s\n", company.CEOName)
	fmt.Fprintf(sb, "- 업종: %s\n", company.Industry)
	fmt.Fprintf(sb, "- 주요 제품/서비스: %s\n", company.MainProducts)
	fmt.Fprintf(sb, "- 핵심 기술: %s\n", company.CoreTechnologies)
	fmt.Fprintf(sb, "- 직원 수: %s\n", orDefault(company.EmployeeCount, "정보없음"))
	fmt.Fprintf(sb, "- 연매출: %s\n", orDefault(company.AnnualSales, "정보없음"))
	fmt.Fprintf(sb, "- 주요 고객사: %s\n", orDefault(company.MajorClients, "정보없음"))
}

// buildCategoryPrompt composes the batched request for one category: company
// and program context, the category's field list, style directives, and a
// JSON response contract keyed by field id.
func buildCategoryPrompt(category string, fields []types.FieldSpec, req *types.GenerationRequest) string {
	task := categoryDescriptions[category]
	if task == "" {
		task = "관련 내용 작성"
	}

	var sb strings.Builder
	sb.WriteString("당신은 정부 지원사업 신청서 작성 전문가입니다.\n")
	fmt.Fprintf(&sb, "%s을 해주세요.\n\n", task)

	writeCompanyBlock(&sb, &req.CompanyInfo)

	program := &req.ProgramInfo
	sb.WriteString("\n## 지원사업 정보:\n")
	fmt.Fprintf(&sb, "- 사업명: %s\n", program.Name)
	fmt.Fprintf(&sb, "- 주관기관: %s\n", program.Organization)
	fmt.Fprintf(&sb, "- 분야: %s\n", program.Category)
	fmt.Fprintf(&sb, "- 지원규모: %s\n", program.SupportAmount)
	fmt.Fprintf(&sb, "- 신청기간: %s ~ %s\n", program.ApplicationPeriod.Start, program.ApplicationPeriod.End)

	sb.WriteString("\n## 작성할 필드들:\n")
	for _, field := range fields {
		fmt.Fprintf(&sb, "- %s: %s\n", field.Label, orDefault(field.Description, "관련 내용 작성"))
	}

	sb.WriteString("\n## 작성 지침:\n")
	fmt.Fprintf(&sb, "1. **문체**: %s\n", toneDirective(req.ResolvedTone()))
	fmt.Fprintf(&sb, "2. **길이**: %s\n", lengthDirective(req.ResolvedLength()))
	sb.WriteString("3. **내용**: 기업의 실제 정보와 지원사업의 목적에 부합하는 구체적인 내용\n")
	sb.WriteString("4. **전문성**: 해당 분야의 전문 용어를 적절히 사용\n")
	sb.WriteString("5. **차별화**: 다른 기업과 구별되는 고유한 강점 강조\n")
	if req.Options != nil && len(req.Options.Focus) > 0 {
		fmt.Fprintf(&sb, "6. **강조점**: %s\n", strings.Join(req.Options.Focus, ", "))
	}

	sb.WriteString("\n## 응답 형식:\n다음 JSON 형식으로 응답해주세요:\n\n{\n")
	for i, field := range fields {
		fmt.Fprintf(&sb, "  %q: %q", field.ID, field.Label+"에 해당하는 내용을 여기에 작성")
		if i < len(fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n각 필드에 대해 위 지침을 따라 전문적이고 설득력 있는 내용을 작성해주세요.\n")

	return sb.String()
}

// buildSingleFieldPrompt composes the smaller retry request for one field.
func buildSingleFieldPrompt(field types.FieldSpec, req *types.GenerationRequest) string {
	company := &req.CompanyInfo

	var sb strings.Builder
	fmt.Fprintf(&sb, "정부 지원사업 신청서의 %q 항목을 작성해주세요.\n\n", field.Label)
	sb.WriteString("기업 정보:\n")
	fmt.Fprintf(&sb, "- 회사명: %s\n", company.CompanyName)
	fmt.Fprintf(&sb, "- 업종: %s\n", company.Industry)
	fmt.Fprintf(&sb, "- 주요 사업: %s\n", company.MainProducts)
	fmt.Fprintf(&sb, "- 핵심 기술: %s\n", company.CoreTechnologies)
	fmt.Fprintf(&sb, "\n지원사업: %s (%s)\n\n", req.ProgramInfo.Name, req.ProgramInfo.Organization)
	fmt.Fprintf(&sb, "필드 설명: %s\n\n", orDefault(field.Description, "관련 내용을 전문적으로 작성"))

	sb.WriteString("요구사항:\n")
	sb.WriteString("- 기업의 실제 정보 반영\n")
	sb.WriteString("- 지원사업 목적에 부합\n")
	sb.WriteString("- 전문적이고 설득력 있는 내용\n")
	if field.Type == "textarea" {
		sb.WriteString("- 200-400자 내외의 상세한 설명\n")
	} else {
		sb.WriteString("- 간결하고 명확한 내용\n")
	}
	sb.WriteString("\n답변: (내용만 작성, 따옴표나 부가 설명 제외)\n")

	return sb.String()
}
