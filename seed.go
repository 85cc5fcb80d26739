package portfolio

import "github.com/avelis/portfolio/views"

// Seed inserts example projects and blog posts so the site is non-empty on
// first run. It only runs when the projects table is empty, so existing data
// is never touched on later startups.
func Seed(s *Store) error {
	n, err := s.CountProjects()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	projects := []views.Project{
		{
			Title:            "Devpulse AI",
			Description:      "A powerful VS Code extension that leverages Gemini AI to enhance development productivity through intelligent code suggestions, automated documentation, and smart debugging assistance.",
			ShortDescription: "VS Code Extension powered by Gemini AI",
			ImageURL:         "img/works/preview/Microsoft.VisualStudio.Services.Icons.png",
			Tags:             "VS Code Extension, Gemini AI, Python, JavaScript",
			GithubURL:        "https://github.com/",
			LiveURL:          "https://marketplace.visualstudio.com/",
			Category:         "web",
			Featured:         true,
		},
		{
			Title:            "Websage AI",
			Description:      "AI-powered web scraping tool that intelligently extracts data from websites using advanced machine learning algorithms.",
			ShortDescription: "AI for scraping data from websites",
			ImageURL:         "img/works/preview/1200x800_prv-02.webp",
			Tags:             "Flask/Python, JavaScript, AI Agentic",
			GithubURL:        "https://github.com/",
			LiveURL:          "https://websage-ai.com",
			Category:         "web",
			Featured:         true,
		},
		{
			Title:            "Delivery Service App",
			Description:      "Mobile application for food delivery service with real-time tracking, payment integration, and user management.",
			ShortDescription: "Mobile app design",
			ImageURL:         "img/works/preview/1200x800_prv-03.webp",
			Tags:             "UI/UX, Mobile, Flutter",
			GithubURL:        "https://github.com/",
			LiveURL:          "https://delivery-app.com",
			Category:         "mobile",
			Featured:         true,
		},
	}
	for _, p := range projects {
		if _, err := s.CreateProject(p); err != nil {
			return err
		}
	}

	posts := []views.BlogPost{
		{
			Title:         "Frontend innovations and user journeys",
			Slug:          "frontend-innovations-user-journeys",
			Content:       "Exploring the latest trends in frontend development and how they impact user experience design...",
			Excerpt:       "Exploring the latest trends in frontend development and how they impact user experience design.",
			FeaturedImage: "img/blog/1000x1250_psec-01.webp",
			Tags:          "Frontend, React, JavaScript",
			Published:     true,
			Featured:      true,
		},
		{
			Title:         "Branding in creating digital experiences",
			Slug:          "branding-digital-experiences",
			Content:       "How effective branding strategies can enhance digital user experiences and build stronger connections...",
			Excerpt:       "How effective branding strategies can enhance digital user experiences and build stronger connections.",
			FeaturedImage: "img/blog/1000x1250_psec-02.webp",
			Tags:          "UI/UX, Design, Branding",
			Published:     true,
			Featured:      false,
		},
	}
	for _, p := range posts {
		if _, err := s.CreatePost(p); err != nil {
			return err
		}
	}
	return nil
}
