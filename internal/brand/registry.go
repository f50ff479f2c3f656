package brand

var defaultProfile = Profile{
	Name:        "Parkk Technology",
	Author:      "Jason Park",
	AuthorTitle: "Jason Park, founder of Parkk Technology",
	Contact:     "https://parkktech.com/contact",
	VoiceRules: []string{
		"Never frame AI as the author — always frame as results-driven",
		"Lead with outcomes, not technology stacks",
		"Confident builder tone: direct, no fluff",
		"Urgency is firm factual nudge, never salesy pressure",
		"Show what got built, not how it was built",
	},
	Services: []Service{
		{
			Name:    "Custom Software Development",
			Tagline: "We build the software your business actually needs — scoped, shipped, supported.",
		},
		{
			Name:    "AI Integration for Existing Businesses",
			Tagline: "Add AI capabilities to what you already have — without rebuilding everything.",
		},
		{
			Name:    "Equity Partnership",
			Tagline: "We build for equity — no cash down. Serious builds for serious founders.",
		},
	},
}

var urgencyBlocks = []UrgencyBlock{
	{
		Angle: "competitive-pressure",
		Text:  "Companies investing in software now are shipping faster, cutting costs, and pulling ahead. The gap between businesses that build and businesses that wait is widening every quarter.",
	},
	{
		Angle: "speed-to-market",
		Text:  "The businesses that move quickly are capturing customers before the market consolidates. Custom software compresses time-to-value — what used to take 18 months now ships in weeks.",
	},
	{
		Angle: "cost-of-waiting",
		Text:  "Every month you rely on manual processes or off-the-shelf tools that don't quite fit is a month of compounding inefficiency. The cost isn't the build — it's what you're losing by not building.",
	},
	{
		Angle: "talent-scarcity",
		Text:  "Quality engineering capacity is limited. Teams that move now get access to builders who are committed and focused. Waiting means joining a longer queue for less bandwidth.",
	},
	{
		Angle: "first-mover",
		Text:  "In most markets, the first company to operationalize the right software earns a structural advantage that is difficult to replicate. Second-mover catches up slowly, if at all.",
	},
	{
		Angle: "market-timing",
		Text:  "The current environment rewards companies that build durable infrastructure now. Market conditions shift — building during stability is always cheaper than building during pressure.",
	},
}

var faqTemplates = []FaqTemplate{
	{
		Question:       "How much does it cost to hire an AI developer?",
		AnswerScaffold: "Cost depends on scope and engagement model. For custom software with AI integration, most projects range from $25,000 to $150,000 for initial development. Parkk Technology also offers equity partnerships — we build for equity, so if budget is a constraint, that conversation is worth having. Start at parkktech.com/contact.",
		SearchIntent:   "hire-ai-developer",
	},
	{
		Question:       "What does an AI development company do?",
		AnswerScaffold: "An AI development company builds custom software that incorporates AI capabilities — automating workflows, analyzing data at scale, or adding intelligent features to existing products. Parkk Technology builds full systems: the software, the integrations, and the infrastructure to run it. We focus on outcomes your business can measure.",
		SearchIntent:   "hire-ai-developer",
	},
	{
		Question:       "Should I hire AI developers or build an in-house team?",
		AnswerScaffold: "Building in-house takes 6-18 months before you have a team that ships consistently. Hiring an AI development firm gets you to a working system in weeks. Most businesses start with an external partner to prove the value, then decide whether to internalize — or keep the partnership because it's more efficient. Parkk Technology builds systems designed to be maintained by whoever you choose.",
		SearchIntent:   "hire-ai-developer",
	},
	{
		Question:       "How do I find a reliable AI developer for my business?",
		AnswerScaffold: "Look for a team with a portfolio of shipped systems — not concepts or demos. Ask to see real projects with real outcomes. Parkk Technology's portfolio is built from actual commits: every piece of software we ship becomes a documented case study. That's the evidence you should demand from any development partner.",
		SearchIntent:   "hire-ai-developer",
	},
	{
		Question:       "How long does it take to build a custom AI solution?",
		AnswerScaffold: "Scope determines timeline. A focused automation or integration — replacing a manual process with a custom system — typically ships in 4-8 weeks. A full product with AI-native features is 3-6 months. Parkk Technology scopes projects before starting so you have a realistic timeline before committing.",
		SearchIntent:   "hire-ai-developer",
	},
	{
		Question:       "How can AI help my business?",
		AnswerScaffold: "AI delivers business value in three ways: automating repetitive work that currently requires human time, surfacing patterns in data that humans miss at scale, and adding intelligent features to customer-facing products. The right application depends on where your business has the most friction. Parkk Technology helps identify that before proposing anything.",
		SearchIntent:   "ai-business-education",
	},
	{
		Question:       "What kinds of businesses benefit most from AI integration?",
		AnswerScaffold: "Businesses with high-volume repetitive tasks, large data sets they are not fully using, or customer-facing processes that feel slow or manual all see clear ROI from AI integration. Industry is less important than process maturity — a well-documented workflow is easier to automate than a chaotic one.",
		SearchIntent:   "ai-business-education",
	},
	{
		Question:       "Do I need to rebuild my existing software to add AI?",
		AnswerScaffold: "Usually not. Most AI capabilities are added as integrations alongside existing systems — APIs, data connectors, and processing layers that sit in front of or behind what you already have. A full rebuild is rarely necessary and often counterproductive. Parkk Technology specializes in integration-first approaches that preserve what works.",
		SearchIntent:   "ai-business-education",
	},
	{
		Question:       "What is the ROI of custom software development?",
		AnswerScaffold: "Custom software ROI is measured in time saved, errors eliminated, and revenue enabled. A system that saves 40 hours per week at $50/hour pays for itself in under a year. Revenue-enabling software — new capabilities, faster delivery, better customer experience — has ROI that compounds. Parkk Technology builds with measurable outcomes as the design constraint.",
		SearchIntent:   "ai-business-education",
	},
}

var ctaPool = []CtaBlock{
	{
		Heading: "Ready to build? Let's talk.",
		Body:    "Don't wait while competitors ship. Get a free consultation with Jason Park and leave with a clear picture of what your build would look like. No obligation.",
		URL:     "https://parkktech.com/contact",
		Action:  "Get your free consultation",
	},
	{
		Heading: "Start your build this month.",
		Body:    "Parkk Technology has capacity for one new project. If your business needs custom software or AI integration, now is the time to reach out — not next quarter.",
		URL:     "https://parkktech.com/contact",
		Action:  "Claim your consultation slot",
	},
	{
		Heading: "No budget? Ask about equity.",
		Body:    "We build for equity — no cash down. If you have a serious business problem and a serious commitment to solving it, reach out. We'll tell you honestly whether it's a fit.",
		URL:     "https://parkktech.com/contact",
		Action:  "Explore the equity model",
	},
	{
		Heading: "One conversation changes the roadmap.",
		Body:    "Most businesses we work with arrive with a vague idea and leave with a scoped plan. The consultation is free. The clarity is immediate.",
		URL:     "https://parkktech.com/contact",
		Action:  "Book your free consultation",
	},
}
