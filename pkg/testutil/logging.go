package testutil

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logs are discarded unless tests run verbosely, or VAULT_TEST_LOGS is set.
func init() {
	var isVerbose bool
	for _, arg := range os.Args {
		if arg == "-test.v=true" || arg == "-test.v" {
			isVerbose = true
		}
	}
	if len(os.Getenv("VAULT_TEST_LOGS")) > 0 {
		isVerbose = true
	}

	logrus.SetLevel(logrus.TraceLevel)

	if !isVerbose {
		logrus.StandardLogger().Out = io.Discard
	}
}

func DisableLogging() (reset func()) {
	originalLogOutput := logrus.StandardLogger().Out
	logrus.StandardLogger().Out = io.Discard
	return func() {
		logrus.StandardLogger().Out = originalLogOutput
	}
}
