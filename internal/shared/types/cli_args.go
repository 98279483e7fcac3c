package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Data       string
	Addr       string
	AWSProfile string
	Region     string
	CancerType string
	Sexes      []string
	ReportName string
	ReportType []string
	Dir        string
}
