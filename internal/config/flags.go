package config

import "flag"

// Flags holds the command-line options registered on the test binary
type Flags struct {
	Headless  bool
	AllureDir string
}

// RegisterFlags adds the harness options to fs. It must be called before
// fs is parsed, typically from TestMain:
//
//	flags := config.RegisterFlags(flag.CommandLine)
//	flag.Parse()
func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.BoolVar(&f.Headless, "headless", false, "Run in headless mode")
	fs.StringVar(&f.AllureDir, "alluredir", "", "Directory for Allure results; diagnostics are attached only when set")
	return f
}
