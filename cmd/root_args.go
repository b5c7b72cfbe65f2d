package cmd

import (
	"time"

	"github.com/ramaditya/webtask/internal/config"
	"github.com/ramaditya/webtask/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Hiring.Endpoint: {
		Name:        "hiring-endpoint",
		Description: "The hiring API endpoint that issues the webhook",
	},
	&config.Profile.Source: {
		Name:        "profile-source",
		Description: "Where the candidate profile is read from. Supported values are 'console', 'config' and 'ssm'",
		Short:       helpers.Ptr("s"),
	},
	&config.Profile.Name: {
		Name:        "profile-name",
		Description: "The candidate name when the profile source is 'config'",
	},
	&config.Profile.RegNo: {
		Name:        "profile-reg-no",
		Description: "The candidate registration number when the profile source is 'config'",
	},
	&config.Profile.Email: {
		Name:        "profile-email",
		Description: "The candidate email when the profile source is 'config'",
	},
	&config.Profile.SSMKey: {
		Name:        "profile-ssm-key",
		Description: "The SSM parameter holding the JSON candidate profile when the profile source is 'ssm'",
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.SkipStartup: {
		Name:        "skip-startup",
		Description: "Exit immediately without collecting input or calling the hiring API. The environment variable takes effect whenever it is set",
		Env:         helpers.Ptr(skipStartupEnv),
	},
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Hiring.Timeout: {
		Name:        "hiring-timeout",
		Description: "Timeout of each HTTP call to the hiring API (0 disables it)",
	},
}
