package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// ReplyPool holds the canned replies for one slot, per language.
type ReplyPool struct {
	AR []string `yaml:"ar"`
	EN []string `yaml:"en"`
}

// ForLanguage returns the pool for lang, falling back to Arabic.
func (p ReplyPool) ForLanguage(lang string) []string {
	if lang == "en" && len(p.EN) > 0 {
		return p.EN
	}
	return p.AR
}

// FixedReply describes the canned response for a fixed intent.
type FixedReply struct {
	Pool       ReplyPool `yaml:"pool"`
	ActionCard string    `yaml:"action_card,omitempty"`
	Mode       string    `yaml:"mode,omitempty"` // "motivation" or "knowledge"
}

// IntentGroup is a scored fallback intent with its keyword list.
type IntentGroup struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Keywords    []string `yaml:"keywords"`
}

// KeywordConfig carries every keyword list and reply pool the classifiers
// and the decision engine consume. It can be overridden wholesale from a
// YAML file so the lists are versionable without a rebuild.
type KeywordConfig struct {
	// Priority intent rules, evaluated in fixed order.
	PartnershipKeywords []string `yaml:"partnership_keywords"`
	BotRequestKeywords  []string `yaml:"bot_request_keywords"`
	ConsultKeywords     []string `yaml:"consult_keywords"`
	ProjectKeywords     []string `yaml:"project_keywords"`
	ServicesKeywords    []string `yaml:"services_keywords"`
	NewsletterKeywords  []string `yaml:"newsletter_keywords"`

	// Fallback scored intent groups.
	IntentGroups []IntentGroup `yaml:"intent_groups"`

	// Sentiment lists.
	PositiveKeywords []string `yaml:"positive_keywords"`
	NegativeKeywords []string `yaml:"negative_keywords"`

	// Stopword lists used by knowledge matching and concept extraction.
	StopwordsAR []string `yaml:"stopwords_ar"`
	StopwordsEN []string `yaml:"stopwords_en"`

	// Domain groups used for the AI-business flag and the out-of-scope
	// strike scan.
	DomainGroups map[string][]string `yaml:"domain_groups"`

	// Reply pools.
	Welcome          ReplyPool             `yaml:"welcome"`
	ReturningWelcome ReplyPool             `yaml:"returning_welcome"`
	Motivation       ReplyPool             `yaml:"motivation"`
	Updating         ReplyPool             `yaml:"updating"`
	FixedReplies     map[string]FixedReply `yaml:"fixed_replies"`
}

// LoadKeywords reads the keyword configuration from path, or returns the
// compiled-in defaults when path is empty or missing.
func LoadKeywords(path string) (*KeywordConfig, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("Keyword file not found, using defaults", "path", path)
			return DefaultKeywords(), nil
		}
		return nil, fmt.Errorf("failed to read keyword file: %w", err)
	}

	cfg := DefaultKeywords()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse keyword file: %w", err)
	}

	slog.Info("Keyword configuration loaded", "path", path)
	return cfg, nil
}

// DefaultKeywords returns the built-in bilingual keyword lists and reply
// pools.
func DefaultKeywords() *KeywordConfig {
	return &KeywordConfig{
		PartnershipKeywords: []string{
			"شراكة", "شريك", "تعاون معكم", "نتعاون", "partnership", "partner",
			"collaborate", "collaboration", "joint venture",
		},
		BotRequestKeywords: []string{
			"اريد بوت", "أريد بوت", "ابغى بوت", "بوت خاص", "شات بوت",
			"want a bot", "need a bot", "build a chatbot", "custom bot",
		},
		ConsultKeywords: []string{
			"استشارة", "استشاري", "نصيحة", "consult", "consultation", "advice",
		},
		ProjectKeywords: []string{
			"مشروع", "مشروعي", "فكرتي", "شركتي", "project", "startup",
			"my business", "my company", "my idea",
		},
		ServicesKeywords: []string{
			"خدمات", "الخدمات", "الاسعار", "الأسعار", "سعر", "تكلفة", "باقات",
			"services", "pricing", "price", "cost", "packages", "plans",
		},
		NewsletterKeywords: []string{
			"نشرة", "النشرة البريدية", "اشتراك", "اشترك", "newsletter",
			"subscribe", "mailing list",
		},
		// Keyword lists are kept at six entries or fewer so a single hit
		// clears the 0.15 fallback threshold with the floored denominator.
		// ai_business is longer on purpose: domain messages hit several
		// keywords at once.
		IntentGroups: []IntentGroup{
			{
				ID:          "greeting",
				Description: "تحية وترحيب",
				Keywords: []string{
					"مرحبا", "اهلا", "السلام عليكم", "هلا", "hello", "hi there",
				},
			},
			{
				ID:          "goodbye",
				Description: "وداع",
				Keywords: []string{
					"وداعا", "مع السلامة", "الى اللقاء", "باي", "goodbye", "bye",
				},
			},
			{
				ID:          "thanks_positive",
				Description: "شكر وإطراء",
				Keywords: []string{
					"شكرا", "ممتاز", "رائع", "يعطيك العافية", "thank", "awesome",
				},
			},
			{
				ID:          "negative_mood",
				Description: "ضيق أو إحباط",
				Keywords: []string{
					"حزين", "تعبان", "محبط", "زعلان", "sad", "frustrated",
				},
			},
			{
				ID:          "novalink_info",
				Description: "سؤال عن نوفالينك",
				Keywords: []string{
					"نوفالينك", "من انتم", "من أنتم", "novalink", "who are you",
					"about your company",
				},
			},
			{
				ID:          "developer_identity",
				Description: "سؤال عن المطور",
				Keywords: []string{
					"من صنعك", "من برمجك", "مطورك", "who made you", "who created you",
				},
			},
			{
				ID:          "ai_business",
				Description: "الذكاء الاصطناعي والأعمال",
				Keywords: []string{
					"ذكاء اصطناعي", "الذكاء الاصطناعي", "اتمتة", "أتمتة", "تسويق",
					"مبيعات", "artificial intelligence", "automation", "marketing",
					"chatbot",
				},
			},
			{
				ID:          "out_of_scope",
				Description: "خارج نطاق البوت",
				Keywords: []string{
					"طبخ", "رياضة", "فيلم", "طقس", "cooking", "weather",
				},
			},
		},
		PositiveKeywords: []string{
			"شكرا", "ممتاز", "رائع", "جميل", "حلو", "سعيد", "احسنت", "أحسنت",
			"يعطيك العافية", "good", "great", "thanks", "awesome", "love",
			"perfect", "happy", "nice", "excellent",
		},
		NegativeKeywords: []string{
			"سيء", "مشكلة", "خطأ", "زعلان", "محبط", "تعبان", "فاشل", "ممل",
			"bad", "problem", "error", "angry", "sad", "hate", "terrible",
			"annoying", "boring", "useless",
		},
		StopwordsAR: []string{
			"من", "في", "على", "الى", "إلى", "عن", "ما", "ماذا", "هل", "ان",
			"أن", "هذا", "هذه", "ذلك", "انا", "أنا", "انت", "أنت", "هو", "هي",
			"نحن", "مع", "كيف", "لماذا", "متى", "اين", "أين", "لا", "نعم",
			"او", "أو", "ثم", "قد", "لقد", "كان", "يكون", "التي", "الذي",
			"كل", "بعض", "غير", "بين", "يا",
		},
		StopwordsEN: []string{
			"the", "a", "an", "and", "or", "but", "is", "are", "was", "were",
			"be", "been", "i", "you", "he", "she", "it", "we", "they", "my",
			"your", "me", "us", "to", "of", "in", "on", "at", "for", "with",
			"this", "that", "these", "those", "can", "could", "do", "does",
			"did", "how", "what", "when", "where", "why", "will", "would",
			"there", "here", "have", "has", "had", "not", "no", "yes", "so",
			"about", "please",
		},
		DomainGroups: map[string][]string{
			"ai": {
				"ذكاء اصطناعي", "الذكاء الاصطناعي", "بوت", "روبوت", "اتمتة", "أتمتة",
				"artificial intelligence", "machine learning", "chatbot", "automation",
				"ai ",
			},
			"business": {
				"اعمال", "أعمال", "تجارة", "مشروع", "شركة", "متجر", "عملاء",
				"business", "company", "startup", "store", "customers", "clients",
			},
			"marketing": {
				"تسويق", "اعلان", "إعلان", "حملة", "مبيعات",
				"marketing", "advertising", "campaign", "sales", "leads",
			},
		},
		Welcome: ReplyPool{
			AR: []string{
				"أهلاً بك في نوفالينك! 👋\nأنا مساعدك الذكي لكل ما يخص الذكاء الاصطناعي والأعمال.\nكيف أقدر أساعدك اليوم؟",
			},
			EN: []string{
				"Welcome to NovaLink! 👋\nI'm your smart assistant for everything AI and business.\nHow can I help you today?",
			},
		},
		ReturningWelcome: ReplyPool{
			AR: []string{
				"أهلاً بعودتك! 😊\nكيف أقدر أساعدك هذه المرة؟",
			},
			EN: []string{
				"Welcome back! 😊\nHow can I help you this time?",
			},
		},
		Motivation: ReplyPool{
			AR: []string{
				"كل فكرة عظيمة بدأت بخطوة صغيرة. خلنا نركز على مشروعك! 🚀",
				"الذكاء الاصطناعي ممكن يوفر عليك ساعات من الشغل اليومي. اسألني كيف!",
				"النجاح في الأعمال يبدأ بقرار ذكي. وش رأيك نتكلم عن أتمتة شغلك؟",
				"أنا هنا لأسئلة الذكاء الاصطناعي والأعمال. جرب تسألني عن خدماتنا!",
			},
			EN: []string{
				"Every great idea starts with a small step. Let's focus on your project! 🚀",
				"AI can save you hours of daily work. Ask me how!",
				"Smart business starts with a smart decision. How about we talk automating your work?",
				"I'm here for AI and business questions. Try asking me about our services!",
			},
		},
		Updating: ReplyPool{
			AR: []string{
				"نقوم حالياً بتحديث المساعد. جرب مرة أخرى بعد قليل 🙏",
			},
			EN: []string{
				"We're currently updating the assistant. Please try again shortly 🙏",
			},
		},
		FixedReplies: map[string]FixedReply{
			"greeting": {
				Mode: "motivation",
				Pool: ReplyPool{
					AR: []string{
						"أهلاً وسهلاً! 😊 كيف أقدر أخدمك اليوم؟",
						"هلا والله! وش حاب تعرف عن الذكاء الاصطناعي وأعمالك؟",
					},
					EN: []string{
						"Hello and welcome! 😊 How can I help you today?",
						"Hey there! What would you like to know about AI for your business?",
					},
				},
			},
			"goodbye": {
				Mode: "motivation",
				Pool: ReplyPool{
					AR: []string{
						"مع السلامة! 👋 نتشرف بزيارتك في أي وقت.",
						"إلى اللقاء! لا تتردد ترجع إذا احتجت أي شيء.",
					},
					EN: []string{
						"Goodbye! 👋 Come back any time.",
						"See you! Don't hesitate to return if you need anything.",
					},
				},
			},
			"thanks_positive": {
				Mode: "motivation",
				Pool: ReplyPool{
					AR: []string{
						"العفو! 🙏 سعيد إني قدرت أساعدك.",
						"تسلم! أي خدمة ثانية أنا موجود.",
					},
					EN: []string{
						"You're welcome! 🙏 Glad I could help.",
						"Any time! I'm here if you need anything else.",
					},
				},
			},
			"negative_mood": {
				Mode: "motivation",
				Pool: ReplyPool{
					AR: []string{
						"أتفهم شعورك 💙 خذ نفس عميق، وكل مشكلة لها حل.\nإذا كانت تخص مشروعك، خلنا نحلها سوا.",
					},
					EN: []string{
						"I understand 💙 Take a deep breath, every problem has a solution.\nIf it's about your business, let's solve it together.",
					},
				},
			},
			"novalink_info": {
				Mode: "knowledge",
				Pool: ReplyPool{
					AR: []string{
						"نوفالينك شركة متخصصة في حلول الذكاء الاصطناعي للأعمال:\nبوتات محادثة، أتمتة، واستشارات تقنية.\nوش حاب تعرف أكثر؟",
					},
					EN: []string{
						"NovaLink builds AI solutions for businesses:\nchatbots, automation, and technical consulting.\nWhat would you like to know more about?",
					},
				},
			},
			"subscribe_interest": {
				Mode:       "knowledge",
				ActionCard: "subscribe",
				Pool: ReplyPool{
					AR: []string{
						"يسعدنا اهتمامك بالنشرة البريدية! 📬\nاضغط على زر الاشتراك وسيصلك جديدنا أولاً بأول.",
					},
					EN: []string{
						"Happy to hear you want the newsletter! 📬\nHit the subscribe button and you'll get our updates first.",
					},
				},
			},
			"consulting_purchase": {
				Mode:       "knowledge",
				ActionCard: "consult",
				Pool: ReplyPool{
					AR: []string{
						"اختيار ممتاز! 💼 نقدم استشارات وبناء بوتات مخصصة لمشروعك.\nاضغط زر الاستشارة ونتواصل معك خلال يوم عمل.",
					},
					EN: []string{
						"Great choice! 💼 We offer consulting and custom bots for your project.\nTap the consult button and we'll reach out within one business day.",
					},
				},
			},
			"collaboration": {
				Mode:       "knowledge",
				ActionCard: "contact",
				Pool: ReplyPool{
					AR: []string{
						"نرحب دائماً بالشراكات! 🤝\nاترك بيانات التواصل عبر زر التواصل وفريقنا يرد عليك بأقرب وقت.",
					},
					EN: []string{
						"We always welcome partnerships! 🤝\nLeave your contact details via the contact button and our team will get back to you.",
					},
				},
			},
			"developer_identity": {
				Mode: "motivation",
				Pool: ReplyPool{
					AR: []string{
						"تم تطويري بواسطة فريق نوفالينك 🤖 مساعد ذكي مهمته خدمة روّاد الأعمال.",
					},
					EN: []string{
						"I was built by the NovaLink team 🤖 a smart assistant made for business owners.",
					},
				},
			},
			"services_pricing": {
				Mode:       "knowledge",
				ActionCard: "pricing",
				Pool: ReplyPool{
					AR: []string{
						"نقدم عدة باقات تبدأ من خطط أساسية للمتاجر الصغيرة وحتى حلول مخصصة للشركات.\nاضغط زر الأسعار لعرض الباقات كاملة، أو اسألني عن باقة معينة.",
					},
					EN: []string{
						"We offer several packages, from basic plans for small stores to fully custom enterprise solutions.\nTap the pricing button for the full list, or ask me about a specific plan.",
					},
				},
			},
		},
	}
}

// IsStopword reports whether token is a stopword for lang.
func (k *KeywordConfig) IsStopword(token, lang string) bool {
	var list []string
	if lang == "ar" {
		list = k.StopwordsAR
	} else {
		list = k.StopwordsEN
	}
	for _, w := range list {
		if token == w {
			return true
		}
	}
	return false
}
