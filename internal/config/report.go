package config

// ReportConfig holds configuration for the Allure reporting sink
type ReportConfig struct {
	ResultsDir string
}

// Enabled reports whether a reporting sink is configured
func (c ReportConfig) Enabled() bool {
	return c.ResultsDir != ""
}

// LoadReportConfig loads reporting configuration. The -alluredir flag takes
// precedence over ALLURE_RESULTS_DIR.
func LoadReportConfig(flags *Flags, getenv func(string) string) ReportConfig {
	if flags != nil && flags.AllureDir != "" {
		return ReportConfig{ResultsDir: flags.AllureDir}
	}
	return ReportConfig{ResultsDir: getenv("ALLURE_RESULTS_DIR")}
}
