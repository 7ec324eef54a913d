package intent

import "github.com/sandevgo/intake/internal/core"

// intentKeywords lists the trigger words per language. Order matters only for
// readability; every matched keyword adds one hit. Service keywords name a
// deliverable, never a generic verb.
var intentKeywords = map[core.Language]map[core.IntentCategory][]string{
	core.LangEnglish: {
		core.IntentServiceInquiry: {
			"design", "logo", "website", "web site", "landing page", "branding", "develop",
			"app", "marketing", "seo", "redesign", "hire",
		},
		core.IntentPricing: {
			"price", "pricing", "cost", "how much", "quote", "budget", "rate", "fee",
			"expensive", "cheap", "estimate", "pay",
		},
		core.IntentConsultation: {
			"consult", "meeting", "meet", "schedule", "appointment", "advice", "discuss",
			"talk to", "call me", "book a",
		},
		core.IntentSupport: {
			"help", "problem", "issue", "bug", "broken", "error", "not working", "support",
			"fix", "refund", "complaint",
		},
		core.IntentGeneral: {
			"hello", "hi", "hey", "thanks", "thank you", "bye", "who are you", "good morning",
		},
	},
	core.LangKorean: {
		core.IntentServiceInquiry: {
			"디자인", "로고", "웹사이트", "홈페이지", "개발", "제작", "앱", "어플", "브랜딩",
			"마케팅",
		},
		core.IntentPricing: {
			"가격", "비용", "견적", "얼마", "예산", "요금", "단가",
		},
		core.IntentConsultation: {
			"상담", "미팅", "컨설팅", "예약", "통화", "조언", "회의",
		},
		core.IntentSupport: {
			"문제", "오류", "에러", "고장", "도움", "지원", "환불", "버그", "안 돼", "안돼",
		},
		core.IntentGeneral: {
			"안녕", "감사", "고마", "누구",
		},
	},
	core.LangChinese: {
		core.IntentServiceInquiry: {
			"设计", "标志", "网站", "开发", "制作", "应用", "品牌", "营销",
		},
		core.IntentPricing: {
			"价格", "费用", "报价", "多少钱", "预算", "收费", "价钱",
		},
		core.IntentConsultation: {
			"咨询", "会议", "预约", "沟通", "建议", "面谈", "通话",
		},
		core.IntentSupport: {
			"问题", "错误", "故障", "帮助", "支持", "退款", "投诉", "不能用",
		},
		core.IntentGeneral: {
			"你好", "谢谢", "再见", "你是谁",
		},
	},
}

type serviceEntry struct {
	labels   map[core.Language]string
	keywords []string
}

// serviceCatalog maps surface words onto a canonical service, labelled per language.
var serviceCatalog = []serviceEntry{
	{
		labels:   map[core.Language]string{core.LangEnglish: "logo design", core.LangKorean: "로고 디자인", core.LangChinese: "标志设计"},
		keywords: []string{"logo", "로고", "标志", "商标"},
	},
	{
		labels:   map[core.Language]string{core.LangEnglish: "e-commerce store", core.LangKorean: "쇼핑몰 구축", core.LangChinese: "电商网站"},
		keywords: []string{"online store", "e-commerce", "ecommerce", "webshop", "쇼핑몰", "电商", "网店"},
	},
	{
		labels:   map[core.Language]string{core.LangEnglish: "website", core.LangKorean: "웹사이트", core.LangChinese: "网站"},
		keywords: []string{"website", "web site", "homepage", "landing page", "웹사이트", "홈페이지", "网站", "网页"},
	},
	{
		labels:   map[core.Language]string{core.LangEnglish: "mobile app", core.LangKorean: "모바일 앱", core.LangChinese: "移动应用"},
		keywords: []string{"mobile app", "app", "ios", "android", "앱", "어플", "应用", "小程序"},
	},
	{
		labels:   map[core.Language]string{core.LangEnglish: "branding", core.LangKorean: "브랜딩", core.LangChinese: "品牌设计"},
		keywords: []string{"branding", "brand identity", "rebrand", "브랜딩", "品牌"},
	},
	{
		labels:   map[core.Language]string{core.LangEnglish: "marketing", core.LangKorean: "마케팅", core.LangChinese: "营销"},
		keywords: []string{"marketing", "seo", "social media", "ads", "마케팅", "광고", "营销", "推广"},
	},
}

// businessTypes holds business nouns per language; the matched word is the entity value.
var businessTypes = map[core.Language][]string{
	core.LangEnglish: {
		"restaurant", "coffee shop", "cafe", "bakery", "startup", "clinic", "hospital", "salon",
		"gym", "law firm", "agency", "online shop", "store", "shop", "hotel", "school", "academy",
		"real estate",
	},
	core.LangKorean: {
		"식당", "음식점", "카페", "베이커리", "스타트업", "병원", "클리닉", "미용실", "헬스장",
		"학원", "호텔", "부동산", "법무법인",
	},
	core.LangChinese: {
		"餐厅", "饭店", "咖啡店", "面包店", "初创公司", "诊所", "医院", "美容院", "健身房",
		"酒店", "学校", "培训机构", "房地产", "律师事务所",
	},
}

// urgencyWords count as a timeline entity on their own.
var urgencyWords = map[core.Language][]string{
	core.LangEnglish: {"asap", "as soon as possible", "urgent", "urgently", "immediately", "right away", "this week", "next week", "next month"},
	core.LangKorean:  {"최대한 빨리", "급하게", "급해", "빨리", "이번 주", "다음 주", "다음 달"},
	core.LangChinese: {"尽快", "紧急", "马上", "本周", "下周", "下个月"},
}
