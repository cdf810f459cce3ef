package installer

// InstallState collects the RECALL_* variables the wizard writes to .env.
type InstallState struct {
	EnvVars map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
	}
}
