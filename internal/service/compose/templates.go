package compose

import "github.com/sandevgo/intake/internal/core"

// template is used only when every field in requires has a value.
type template struct {
	text     string
	requires []string
}

type localizedTemplates map[core.Language][]template

// Variants are ordered most specific first; the last one of each list has no
// requirements so a category always resolves.
var (
	serviceTemplates = localizedTemplates{
		core.LangEnglish: {
			{"We'd love to help with your {serviceNeeded} for your {businessType}. Could you share a bit more about what you have in mind?", []string{core.FieldServiceNeeded, core.FieldBusinessType}},
			{"{serviceNeeded} is one of our core services. What would you like to achieve with it?", []string{core.FieldServiceNeeded}},
			{"We offer websites, online stores, mobile apps, branding and marketing. Which of these fits your project?", nil},
		},
		core.LangKorean: {
			{"{businessType}을 위한 {serviceNeeded} 작업을 도와드릴 수 있어요. 원하시는 방향을 조금 더 알려주시겠어요?", []string{core.FieldServiceNeeded, core.FieldBusinessType}},
			{"{serviceNeeded}는 저희 주요 서비스입니다. 어떤 결과를 원하시나요?", []string{core.FieldServiceNeeded}},
			{"웹사이트, 쇼핑몰, 모바일 앱, 브랜딩, 마케팅 서비스를 제공합니다. 어떤 서비스가 필요하신가요?", nil},
		},
		core.LangChinese: {
			{"我们很乐意为您的{businessType}提供{serviceNeeded}服务。能再详细说说您的想法吗？", []string{core.FieldServiceNeeded, core.FieldBusinessType}},
			{"{serviceNeeded}是我们的核心服务之一。您希望达到什么效果？", []string{core.FieldServiceNeeded}},
			{"我们提供网站、电商、移动应用、品牌和营销服务。哪一项适合您的项目？", nil},
		},
	}

	pricingTemplates = localizedTemplates{
		core.LangEnglish: {
			{"Thanks, a budget of {budget} for {serviceNeeded} gives us a good starting point. Leave your contact details and we'll send a tailored quote.", []string{core.FieldBudget, core.FieldServiceNeeded}},
			{"A budget of {budget} helps a lot. Which service would you like a quote for?", []string{core.FieldBudget}},
			{"Pricing depends on the scope of the project. Tell me which service you need and we'll prepare a tailored quote.", nil},
		},
		core.LangKorean: {
			{"{serviceNeeded} 예산 {budget} 잘 확인했습니다. 연락처를 남겨주시면 맞춤 견적을 보내드릴게요.", []string{core.FieldBudget, core.FieldServiceNeeded}},
			{"예산 {budget} 참고하겠습니다. 어떤 서비스의 견적이 필요하신가요?", []string{core.FieldBudget}},
			{"비용은 프로젝트 범위에 따라 달라집니다. 필요하신 서비스를 알려주시면 맞춤 견적을 준비해 드릴게요.", nil},
		},
		core.LangChinese: {
			{"已了解您{serviceNeeded}的预算为{budget}。留下联系方式，我们会发送定制报价。", []string{core.FieldBudget, core.FieldServiceNeeded}},
			{"预算{budget}很有参考价值。您需要哪项服务的报价？", []string{core.FieldBudget}},
			{"价格取决于项目范围。告诉我您需要的服务，我们会为您准备定制报价。", nil},
		},
	}

	consultationTemplates = localizedTemplates{
		core.LangEnglish: {
			{"We'd be glad to set up a consultation for your {businessType}. What times usually work for you?", []string{core.FieldBusinessType}},
			{"We'd be glad to set up a free consultation. What would you like to discuss?", nil},
		},
		core.LangKorean: {
			{"{businessType} 관련 상담을 기꺼이 도와드릴게요. 편하신 시간대가 있으신가요?", []string{core.FieldBusinessType}},
			{"무료 상담을 도와드릴게요. 어떤 내용을 상담하고 싶으신가요?", nil},
		},
		core.LangChinese: {
			{"很乐意为您的{businessType}安排咨询。您一般什么时间方便？", []string{core.FieldBusinessType}},
			{"我们很乐意安排免费咨询。您想讨论什么内容？", nil},
		},
	}

	supportTemplates = localizedTemplates{
		core.LangEnglish: {
			{"Sorry to hear you're having trouble. Please describe what happened and, if possible, leave an email so our team can follow up.", nil},
		},
		core.LangKorean: {
			{"불편을 드려 죄송합니다. 어떤 문제가 있었는지 알려주시고, 가능하면 이메일을 남겨주시면 담당자가 연락드리겠습니다.", nil},
		},
		core.LangChinese: {
			{"很抱歉给您带来不便。请描述一下遇到的问题，方便的话留下邮箱，我们的团队会跟进。", nil},
		},
	}

	generalTemplates = localizedTemplates{
		core.LangEnglish: {
			{"Hello {name}! How can I help you today?", []string{core.FieldName}},
			{"Hello! I can answer questions about our services, pricing and process, or help you start a project inquiry.", nil},
		},
		core.LangKorean: {
			{"{name}님, 안녕하세요! 무엇을 도와드릴까요?", []string{core.FieldName}},
			{"안녕하세요! 서비스, 비용, 진행 과정에 대해 답변드리거나 프로젝트 문의를 도와드릴 수 있어요.", nil},
		},
		core.LangChinese: {
			{"{name}，您好！今天有什么可以帮您？", []string{core.FieldName}},
			{"您好！我可以解答关于服务、价格和流程的问题，也可以帮您提交项目咨询。", nil},
		},
	}
)

var (
	fallbackText = map[core.Language]string{
		core.LangEnglish: "Thanks for your message. Could you tell me a little more so I can point you in the right direction?",
		core.LangKorean:  "메시지 감사합니다. 조금 더 자세히 알려주시면 알맞은 안내를 도와드릴게요.",
		core.LangChinese: "感谢您的留言。能再多告诉我一些吗？这样我可以更好地帮助您。",
	}

	greetingText = map[core.Language]string{
		core.LangEnglish: "Hello! I can answer questions about our services and pricing, or set up a consultation. How can I help?",
		core.LangKorean:  "안녕하세요! 서비스와 가격에 대한 질문에 답하거나 상담 일정을 잡아드릴 수 있어요. 무엇을 도와드릴까요?",
		core.LangChinese: "您好！我可以解答关于服务和价格的问题，也可以为您安排咨询。请问有什么可以帮您？",
	}

	leadInText = map[core.Language]string{
		core.LangEnglish: "Great, I'd be happy to help with that. I'll ask a few quick questions so our team can prepare a proposal.",
		core.LangKorean:  "좋습니다, 기꺼이 도와드릴게요. 제안서 준비를 위해 몇 가지만 여쭤볼게요.",
		core.LangChinese: "好的，很乐意为您提供帮助。为了准备方案，我会问您几个简单的问题。",
	}

	completionText = map[core.Language]string{
		core.LangEnglish: "Thank you, {name}! Your inquiry has been submitted. Our team will contact you at {email} shortly.",
		core.LangKorean:  "{name}님, 감사합니다! 문의가 접수되었습니다. 곧 {email}(으)로 연락드리겠습니다.",
		core.LangChinese: "谢谢您，{name}！您的咨询已提交，我们会尽快通过 {email} 与您联系。",
	}

	saveFailedText = map[core.Language]string{
		core.LangEnglish: "Sorry, we couldn't submit your inquiry due to a technical problem. Your answers are kept; send any message to try again.",
		core.LangKorean:  "죄송합니다. 기술적인 문제로 문의를 접수하지 못했습니다. 입력하신 내용은 보관되어 있으니 아무 메시지나 보내 다시 시도해 주세요.",
		core.LangChinese: "抱歉，由于技术问题未能提交您的咨询。您的信息已保留，发送任意消息即可重试。",
	}

	technicalErrorText = map[core.Language]string{
		core.LangEnglish: "Sorry, I'm having a technical issue right now. Please try again or rephrase your question.",
		core.LangKorean:  "죄송합니다. 일시적인 기술 문제가 발생했습니다. 다시 시도하시거나 질문을 바꿔서 말씀해 주세요.",
		core.LangChinese: "抱歉，系统出现了技术问题。请重试或换一种方式提问。",
	}

	quickReplyIdle = map[core.Language][]string{
		core.LangEnglish: {"I need a website", "How much does it cost?", "Book a consultation"},
		core.LangKorean:  {"웹사이트 제작 문의", "비용이 얼마인가요?", "상담 예약하기"},
		core.LangChinese: {"我想做网站", "价格是多少？", "预约咨询"},
	}

	quickReplySkip = map[core.Language]string{
		core.LangEnglish: "Skip",
		core.LangKorean:  "건너뛰기",
		core.LangChinese: "跳过",
	}
)
