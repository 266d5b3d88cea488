// Package portfolio holds the mock profile content shown on the desktop and
// plain-text renderers for it.
package portfolio

// GitHubUser is the profile header of the GitHub dashboard.
type GitHubUser struct {
	Name        string
	Username    string
	Followers   int
	Following   int
	PublicRepos int
}

// Repository is one repository card.
type Repository struct {
	Name        string
	Description string
	Language    string
	Stars       int
	Forks       int
	Updated     string
}

// Activity is one entry of the recent activity feed.
type Activity struct {
	Kind    string
	Repo    string
	Message string
	Time    string
}

// GitHubData is everything the GitHub window renders.
type GitHubData struct {
	User          GitHubUser
	Contributions int
	Repositories  []Repository
	Activity      []Activity
	// Weekly commit counts, oldest first.
	Weekly []float64
}

// LeetCodeStats summarizes solved problems.
type LeetCodeStats struct {
	TotalSolved   int
	TotalProblems int
	Easy          int
	Medium        int
	Hard          int
	Ranking       int
	Streak        int
}

// Submission is one recent accepted submission.
type Submission struct {
	Title      string
	Difficulty string
	Status     string
	Time       string
	Runtime    string
}

// Contest is the next scheduled contest.
type Contest struct {
	Name string
	Date string
	Time string
}

// LeetCodeData is everything the LeetCode window renders.
type LeetCodeData struct {
	Stats       LeetCodeStats
	Submissions []Submission
	Contest     Contest
}

// Section is a static tab of the central panel.
type Section struct {
	ID       string
	Title    string
	Headline string
	Body     string
}

// GitHub returns the mock GitHub dashboard.
func GitHub() GitHubData {
	return GitHubData{
		User: GitHubUser{
			Name:        "Sanjay Kumar",
			Username:    "sanjay-dev",
			Followers:   234,
			Following:   180,
			PublicRepos: 42,
		},
		Contributions: 1245,
		Repositories: []Repository{
			{Name: "ai-portfolio-dashboard", Description: "Modern AI-powered portfolio dashboard built with React and TypeScript", Language: "TypeScript", Stars: 128, Forks: 23, Updated: "2 days ago"},
			{Name: "machine-learning-toolkit", Description: "Comprehensive ML toolkit for data preprocessing and model training", Language: "Python", Stars: 89, Forks: 15, Updated: "1 week ago"},
			{Name: "react-component-library", Description: "Reusable React components with TypeScript and Storybook", Language: "JavaScript", Stars: 156, Forks: 34, Updated: "3 days ago"},
			{Name: "api-gateway-service", Description: "Scalable API gateway built with Node.js and Express", Language: "JavaScript", Stars: 67, Forks: 12, Updated: "5 days ago"},
		},
		Activity: []Activity{
			{Kind: "commit", Repo: "ai-portfolio-dashboard", Message: "Add responsive dock animations", Time: "2 hours ago"},
			{Kind: "star", Repo: "react-component-library", Time: "1 day ago"},
			{Kind: "commit", Repo: "machine-learning-toolkit", Message: "Implement feature scaling pipeline", Time: "2 days ago"},
			{Kind: "fork", Repo: "open-source-project", Time: "3 days ago"},
		},
		Weekly: []float64{
			12, 18, 9, 22, 30, 25, 14, 19, 27, 33, 21, 16, 24,
			38, 29, 17, 26, 35, 41, 28, 23, 31, 44, 36, 27, 39,
		},
	}
}

// LeetCode returns the mock LeetCode progress.
func LeetCode() LeetCodeData {
	return LeetCodeData{
		Stats: LeetCodeStats{
			TotalSolved:   78,
			TotalProblems: 150,
			Easy:          45,
			Medium:        28,
			Hard:          5,
			Ranking:       12453,
			Streak:        15,
		},
		Submissions: []Submission{
			{Title: "Two Sum", Difficulty: "Easy", Status: "Accepted", Time: "2 hours ago", Runtime: "68ms"},
			{Title: "Binary Tree Inorder Traversal", Difficulty: "Easy", Status: "Accepted", Time: "1 day ago", Runtime: "52ms"},
			{Title: "Longest Substring Without Repeating Characters", Difficulty: "Medium", Status: "Accepted", Time: "2 days ago", Runtime: "84ms"},
			{Title: "Valid Palindrome", Difficulty: "Easy", Status: "Accepted", Time: "3 days ago", Runtime: "76ms"},
		},
		Contest: Contest{Name: "Weekly Contest 382", Date: "2024-01-21", Time: "10:30 AM PST"},
	}
}

// Sections returns the non-chat tabs of the central panel.
func Sections() []Section {
	return []Section{
		{ID: "resume", Title: "Resume", Headline: "Resume Analysis", Body: "AI-powered resume optimization coming soon..."},
		{ID: "projects", Title: "Projects", Headline: "Project Showcase", Body: "Interactive project portfolio coming soon..."},
		{ID: "skills", Title: "Skills", Headline: "Skills Matrix", Body: "Dynamic skills visualization coming soon..."},
		{ID: "contact", Title: "Contact", Headline: "Contact Information", Body: "Professional contact details coming soon..."},
		{ID: "playground", Title: "AI Lab", Headline: "AI Playground", Body: "Experimental AI features coming soon..."},
	}
}

// Blog returns the placeholder shown in the blog window.
func Blog() Section {
	return Section{ID: "blog", Title: "Blog", Headline: "Engineering Notes", Body: "Long-form posts are being drafted. Check back soon."}
}

// WeatherCelsius is the mock temperature in the top bar.
const WeatherCelsius = 22
