package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Data       string   `json:"data" yaml:"data" toml:"data"`
	Addr       string   `json:"addr" yaml:"addr" toml:"addr"`
	AWSProfile string   `json:"aws_profile" yaml:"aws_profile" toml:"aws_profile"`
	Region     string   `json:"region" yaml:"region" toml:"region"`
	CancerType string   `json:"cancer_type" yaml:"cancer_type" toml:"cancer_type"`
	Sexes      []string `json:"sexes" yaml:"sexes" toml:"sexes"`
	ReportName string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir        string   `json:"dir" yaml:"dir" toml:"dir"`
}
