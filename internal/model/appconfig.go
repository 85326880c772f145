package model

// maxRecentJobs bounds how many job paths AppConfig.RecentJobs keeps.
const maxRecentJobs = 10

// AppConfig holds the nesting CLI's persistent preferences: the kerf a
// new run defaults to when none is given explicitly, and the jobs it
// has most recently saved.
type AppConfig struct {
	DefaultKerf float64  `json:"default_kerf"`
	RecentJobs  []string `json:"recent_jobs"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultKerf: 0.3,
		RecentJobs:  []string{},
	}
}

// AddRecentJob moves path to the front of RecentJobs, removing any
// earlier occurrence, and trims the list to maxRecentJobs entries.
func (c *AppConfig) AddRecentJob(path string) {
	jobs := make([]string, 0, len(c.RecentJobs)+1)
	jobs = append(jobs, path)
	for _, j := range c.RecentJobs {
		if j != path {
			jobs = append(jobs, j)
		}
	}
	if len(jobs) > maxRecentJobs {
		jobs = jobs[:maxRecentJobs]
	}
	c.RecentJobs = jobs
}
