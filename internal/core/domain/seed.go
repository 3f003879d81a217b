package domain

// Seed fixtures written into an empty store on first start.

func SeedUsers() []User {
	return []User{
		{ID: "u1", Name: "User A", Role: RoleUser},
		{ID: "u2", Name: "User B", Role: RoleUser},
	}
}

func SeedChats() []ChatBoard {
	return []ChatBoard{
		{Chat: Chat{ID: "c1", Title: "General"}, Messages: []ChatMessage{}},
	}
}

const (
	logoBase       = "https://placehold.co/400x400/"
	screenshotBase = "https://images.unsplash.com/"
	screenshotOpts = "?q=80&w=1200&auto=format&fit=crop"
)

func SeedProjects() []Project {
	return []Project{
		{
			ID:            "p1",
			Title:         "AI Analyzer",
			Tagline:       "Deep insights for your SaaS metrics using neural networks.",
			Description:   "AI Analyzer provides enterprise-grade machine learning insights for modern SaaS platforms. Automatically detect churn patterns, predict growth trends, and optimize your pricing strategy with data-driven confidence.",
			URL:           "https://analyzer.ai",
			Tags:          []string{"SaaS", "AI", "Analytics"},
			OwnerID:       "u1",
			CreatedAt:     1715000000000,
			ScreenshotURL: screenshotBase + "photo-1460925895917-afdab827c52f" + screenshotOpts,
			LogoURL:       logoBase + "6366f1/ffffff?text=AI",
			Votes:         128,
		},
		{
			ID:            "p2",
			Title:         "CodeForge",
			Tagline:       "The ultimate productivity suite for modern developers.",
			Description:   "CodeForge is an all-in-one developer workspace designed to eliminate context switching. It integrates your terminal, debugger, and project management tools into a single, high-performance interface.",
			URL:           "https://codeforge.dev",
			Tags:          []string{"DevTools", "Productivity", "OSS"},
			OwnerID:       "u1",
			CreatedAt:     1715100000000,
			ScreenshotURL: screenshotBase + "photo-1542831371-29b0f74f9713" + screenshotOpts,
			LogoURL:       logoBase + "0891b2/ffffff?text=CF",
			Votes:         85,
		},
		{
			ID:            "p3",
			Title:         "PixelCraft",
			Tagline:       "Revolutionary UI design tools for creative teams.",
			Description:   "PixelCraft bridges the gap between design and production. Our specialized toolset allows designers to create complex, responsive layouts that export directly to production-ready React code.",
			URL:           "https://pixelcraft.io",
			Tags:          []string{"Design", "UI/UX", "No-Code"},
			OwnerID:       "u1",
			CreatedAt:     1715200000000,
			ScreenshotURL: screenshotBase + "photo-1586717791821-3f44a563eb4c" + screenshotOpts,
			LogoURL:       logoBase + "ec4899/ffffff?text=PC",
			Votes:         212,
		},
		{
			ID:            "p4",
			Title:         "ChainLink",
			Tagline:       "Decentralized connectivity for the next-gen web.",
			Description:   "ChainLink provides secure, reliable blockchain connectivity for enterprise applications. Connect your smart contracts to real-world data and APIs with our robust decentralized oracle network.",
			URL:           "https://chainlink.network",
			Tags:          []string{"Web3", "Blockchain", "Infrastructure"},
			OwnerID:       "u1",
			CreatedAt:     1715300000000,
			ScreenshotURL: screenshotBase + "photo-1639762681485-074b7f938ba0" + screenshotOpts,
			LogoURL:       logoBase + "10b981/ffffff?text=CL",
			Votes:         45,
		},
		{
			ID:            "p5",
			Title:         "DashBoardr",
			Tagline:       "Real-time data visualization for complex datasets.",
			Description:   "DashBoardr turns your messy raw data into beautiful, actionable stories. With support for over 100 data sources, it is the last dashboarding tool your company will ever need to buy.",
			URL:           "https://dashboardr.tech",
			Tags:          []string{"Analytics", "Data", "SaaS"},
			OwnerID:       "u1",
			CreatedAt:     1715400000000,
			ScreenshotURL: screenshotBase + "photo-1551288049-bbbda536339a" + screenshotOpts,
			LogoURL:       logoBase + "f59e0b/ffffff?text=DB",
			Votes:         310,
		},
	}
}
