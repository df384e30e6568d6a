package models

func boolPtr(v bool) *bool { return &v }

// Default returns a fresh copy of the built-in site document. Readers fall
// back to it whenever the store cannot provide a usable document.
func Default() Document {
	return Document{
		Profile: Profile{
			Name:      "WeCreate",
			Bio:       "Building the future of work. \nAI Training & Community in South Florida.",
			AvatarURL: "",
			Verified:  true,
		},
		SocialLinks: []SocialLink{
			{ID: "1", Platform: "instagram", URL: "https://www.instagram.com/hello_wecreate/"},
			{ID: "2", Platform: "linkedin", URL: "https://www.linkedin.com/company/wecreate-enterprises"},
			{ID: "3", Platform: "email", URL: "mailto:info@wecreatehub.com"},
		},
		Buttons: []LinkButton{
			{
				ID:         "btn1",
				Title:      "AI Career Intensive",
				Subtitle:   "Launch your AI career in 12 weeks. Application Open.",
				URL:        "/programs",
				Icon:       "rocket_launch",
				IsExternal: false,
				IsActive:   true,
				FullWidth:  boolPtr(true),
				Price:      "Applications Open",
				CtaText:    "Apply Now",
			},
			{
				ID:         "btn2",
				Title:      "Upcoming Events",
				Subtitle:   "Workshops, meetups & community gatherings.",
				URL:        "/events",
				Icon:       "calendar_month",
				IsExternal: false,
				IsActive:   true,
				FullWidth:  boolPtr(true),
				CtaText:    "View Calendar",
			},
			{
				ID:         "btn3",
				Title:      "Partner With Us",
				Subtitle:   "For corporations & educators looking to innovate.",
				URL:        "/partnership",
				Icon:       "handshake",
				IsExternal: false,
				IsActive:   true,
				FullWidth:  boolPtr(true),
				CtaText:    "Collaborate",
			},
			{
				ID:         "btn4",
				Title:      "Join the Community",
				Subtitle:   "Connect with builders on Skool.",
				URL:        "https://www.skool.com/builder-hub-by-wecreate-7670",
				Icon:       "groups",
				IsExternal: true,
				IsActive:   true,
				FullWidth:  boolPtr(true),
				Price:      "Free",
				CtaText:    "Join Now",
			},
		},
		Sections: []InfoSection{
			{
				ID:      "sec1",
				Title:   "Admissions Policy",
				Content: "WeCreate is committed to an inclusive admissions process. We do not require a background in computer science. Our selection is based on motivation, curiosity, and a willingness to learn. Applicants must be at least 18 years of age.",
				Icon:    "policy",
			},
			{
				ID:      "sec2",
				Title:   "Technical Requirements",
				Content: "• Reliable laptop (Mac, Windows, or Linux) with 8GB+ RAM.\n• Stable internet connection.\n• Google account.\n• Visual Studio Code installed.",
				Icon:    "laptop_mac",
			},
			{
				ID:      "sec3",
				Title:   "Contact Support",
				Content: "Need specific help? Reach out directly.\n\ninfo@wecreatehub.com\n(315) 570-9317",
				Icon:    "contact_support",
			},
		},
		Events: []EventItem{
			{
				ID:          "evt1",
				Month:       "NOV",
				Day:         "3",
				Type:        "COMMUNITY",
				Title:       "AI Office Hours",
				Time:        "7:00 PM - 9:00 PM EST",
				Location:    "Virtual (via AI Foundry Skool)",
				Description: "Come with your questions and connect with fellow builders, mentors, and partners from the AI tech scene. Share what you're working on, get feedback, and get your questions answered.",
				ButtonText:  "RSVP Today",
				TypeColor:   "text-[#0bceff]",
				URL:         "https://www.skool.com/builder-hub-by-wecreate-7670",
			},
			{
				ID:          "evt2",
				Month:       "NOV",
				Day:         "4",
				Type:        "WORKSHOP",
				Title:       "AI Exploration Labs",
				Time:        "5:00 PM - 6:00 PM EST",
				Location:    "Virtual",
				Description: "Explore, build, and collaborate with us as we embark on another adventure at AI Exploration Labs.",
				ButtonText:  "Register Now",
				TypeColor:   "text-blue-600",
				URL:         "https://luma.com/calendar/cal-ZJoLn2kvSHHzV7u",
			},
			{
				ID:          "evt3",
				Month:       "NOV",
				Day:         "10",
				Type:        "COMMUNITY",
				Title:       "AI Office Hours",
				Time:        "7:00 PM - 9:00 PM EST",
				Location:    "Virtual (via AI Foundry Skool)",
				Description: "Come with your questions and connect with fellow builders, mentors, and partners from the AI tech scene. Share what you're working on, get feedback, and get your questions answered.",
				ButtonText:  "RSVP Today",
				TypeColor:   "text-[#0bceff]",
				URL:         "https://www.skool.com/builder-hub-by-wecreate-7670",
			},
		},
		SocialGallery: []SocialPost{
			{
				ID:        "s1",
				Title:     "Studio Flow",
				VideoURL:  "https://assets.mixkit.co/videos/preview/mixkit-working-at-a-creative-office-9033-large.mp4",
				Link:      "https://www.instagram.com/hello_wecreate/",
				Thumbnail: "https://images.unsplash.com/photo-1531482615713-2afd69097998?q=80&w=2670&auto=format&fit=crop",
				Type:      "Studio Life",
			},
			{
				ID:        "s2",
				Title:     "AI Workshop",
				VideoURL:  "https://assets.mixkit.co/videos/preview/mixkit-software-developer-working-on-his-laptop-34440-large.mp4",
				Link:      "https://ailaunch.netlify.app/",
				Thumbnail: "https://images.unsplash.com/photo-1581092918056-0c4c3acd3789?q=80&w=2670&auto=format&fit=crop",
				Type:      "Education",
			},
			{
				ID:        "s3",
				Title:     "Build Sprints",
				VideoURL:  "https://assets.mixkit.co/videos/preview/mixkit-young-man-working-on-his-laptop-at-home-42472-large.mp4",
				Link:      "https://www.linkedin.com/company/wecreate-enterprises",
				Thumbnail: "https://images.unsplash.com/photo-1552664730-d307ca884978?q=80&w=2670&auto=format&fit=crop",
				Type:      "Community",
			},
			{
				ID:        "s4",
				Title:     "Future Labs",
				VideoURL:  "https://assets.mixkit.co/videos/preview/mixkit-man-working-on-his-laptop-34442-large.mp4",
				Link:      "/services",
				Thumbnail: "https://images.unsplash.com/photo-1517245386807-bb43f82c33c4?q=80&w=2670&auto=format&fit=crop",
				Type:      "Innovation",
			},
		},
	}
}
