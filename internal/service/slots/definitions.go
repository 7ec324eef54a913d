package slots

import "github.com/sandevgo/intake/internal/core"

// Definition is one step of the interview script.
type Definition struct {
	Field    string
	Required bool
	Validate Validator
	Prompts  map[core.Language]string
	// Guidance is appended to the prompt when the previous answer was rejected.
	Guidance map[core.Language]string
}

func (d Definition) Prompt(lang core.Language) string {
	return localized(d.Prompts, lang)
}

func (d Definition) Hint(lang core.Language) string {
	return localized(d.Guidance, lang)
}

func localized(m map[core.Language]string, lang core.Language) string {
	if v, ok := m[lang]; ok {
		return v
	}
	return m[core.LangEnglish]
}

// DefaultScript is the inquiry interview in asking order.
var DefaultScript = []Definition{
	{
		Field:    core.FieldName,
		Required: true,
		Validate: MinLength(2),
		Prompts: map[core.Language]string{
			core.LangEnglish: "May I have your name?",
			core.LangKorean:  "성함을 알려주시겠어요?",
			core.LangChinese: "请问您怎么称呼？",
		},
		Guidance: map[core.Language]string{
			core.LangEnglish: "Please enter at least 2 characters for your name.",
			core.LangKorean:  "이름은 2자 이상 입력해 주세요.",
			core.LangChinese: "姓名请至少输入2个字符。",
		},
	},
	{
		Field:    core.FieldEmail,
		Required: true,
		Validate: Email,
		Prompts: map[core.Language]string{
			core.LangEnglish: "What email address can we reach you at?",
			core.LangKorean:  "연락 가능한 이메일 주소를 알려주세요.",
			core.LangChinese: "请留下您的电子邮箱地址。",
		},
		Guidance: map[core.Language]string{
			core.LangEnglish: "That email doesn't look right. Please use a format like name@example.com.",
			core.LangKorean:  "이메일 형식이 올바르지 않습니다. name@example.com 형식으로 입력해 주세요.",
			core.LangChinese: "邮箱格式不正确，请使用 name@example.com 这样的格式。",
		},
	},
	{
		Field:    core.FieldPhone,
		Validate: Any,
		Prompts: map[core.Language]string{
			core.LangEnglish: "Would you like to leave a phone number? (optional, type \"skip\" to continue)",
			core.LangKorean:  "전화번호를 남기시겠어요? (선택 사항, \"건너뛰기\" 입력 시 넘어갑니다)",
			core.LangChinese: "需要留下电话号码吗？（可选，输入“跳过”继续）",
		},
	},
	{
		Field:    core.FieldCompany,
		Validate: Any,
		Prompts: map[core.Language]string{
			core.LangEnglish: "Which company or organization are you with? (optional)",
			core.LangKorean:  "소속 회사나 단체가 있으신가요? (선택 사항)",
			core.LangChinese: "您所在的公司或机构是？（可选）",
		},
	},
	{
		Field:    core.FieldServiceNeeded,
		Required: true,
		Validate: MinLength(2),
		Prompts: map[core.Language]string{
			core.LangEnglish: "Which service are you interested in? (e.g. website, logo design, mobile app)",
			core.LangKorean:  "어떤 서비스가 필요하신가요? (예: 웹사이트, 로고 디자인, 모바일 앱)",
			core.LangChinese: "您需要哪项服务？（例如：网站、标志设计、移动应用）",
		},
		Guidance: map[core.Language]string{
			core.LangEnglish: "Please name the service you need.",
			core.LangKorean:  "필요하신 서비스를 알려주세요.",
			core.LangChinese: "请告诉我们您需要的服务。",
		},
	},
	{
		Field:    core.FieldBudget,
		Validate: Any,
		Prompts: map[core.Language]string{
			core.LangEnglish: "Do you have a budget range in mind? (optional)",
			core.LangKorean:  "생각하시는 예산 범위가 있으신가요? (선택 사항)",
			core.LangChinese: "您有预算范围吗？（可选）",
		},
	},
	{
		Field:    core.FieldTimeline,
		Required: true,
		Validate: MinLength(2),
		Prompts: map[core.Language]string{
			core.LangEnglish: "When would you like the project to be done?",
			core.LangKorean:  "언제까지 완료되기를 원하시나요?",
			core.LangChinese: "您希望项目什么时候完成？",
		},
		Guidance: map[core.Language]string{
			core.LangEnglish: "Please give a rough timeline, for example \"2 months\" or \"ASAP\".",
			core.LangKorean:  "대략적인 일정을 알려주세요. 예: \"2개월\", \"최대한 빨리\"",
			core.LangChinese: "请给出大致时间，例如“2个月”或“尽快”。",
		},
	},
	{
		Field:    core.FieldDescription,
		Required: true,
		Validate: MinLength(10),
		Prompts: map[core.Language]string{
			core.LangEnglish: "Finally, please describe your project in a few sentences.",
			core.LangKorean:  "마지막으로 프로젝트에 대해 간단히 설명해 주세요.",
			core.LangChinese: "最后，请简单描述一下您的项目。",
		},
		Guidance: map[core.Language]string{
			core.LangEnglish: "Please write at least 10 characters so we understand what you need.",
			core.LangKorean:  "내용을 이해할 수 있도록 10자 이상 작성해 주세요.",
			core.LangChinese: "请至少输入10个字符，方便我们了解您的需求。",
		},
	},
}
