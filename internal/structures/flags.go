package structures

type CliFlags struct {
	ConfigPath string
	DebugMode  bool
	Fetch      bool
	OCID       string
	Date       string
}
