package browser

// Switches appended in headless mode so Chromium can run inside a container
// without a display server, with a small /dev/shm and no user namespaces.
var containerArgs = []string{
	"--disable-extensions",
	"--headless",
	"--disable-gpu",
	"--no-sandbox",
	"--disable-dev-shm-usage",
}

// ContainerArgs returns a copy of the switches used in headless mode.
func ContainerArgs() []string {
	return append([]string(nil), containerArgs...)
}

// LaunchOptions configures a single browser launch.
type LaunchOptions struct {
	Headless       bool
	Args           []string
	Channel        string
	ExecutablePath string
}

// NewLaunchOptions builds launch options for the given headless setting.
// Headed launches carry no extra switches.
func NewLaunchOptions(headless bool) LaunchOptions {
	opts := LaunchOptions{Headless: headless}
	if headless {
		opts.Args = ContainerArgs()
	}
	return opts
}
